package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/web"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagWebAddr     string
	flagSessionIdle int
	flagVerbose     bool
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the 2048 HTTP/WebSocket server",
	Long: `Start an HTTP server that exposes 2048 games as a JSON API.

Every game is a session with its own ID. Moves can be sent as plain
requests or over a WebSocket that answers each command with the board.
Idle sessions are closed and their scores recorded.

Endpoints:
  GET    /health
  GET    /api/modes
  POST   /api/games                 {"mode": "4x4"}
  GET    /api/games/{id}
  POST   /api/games/{id}/move       {"direction": "left"}
  POST   /api/games/{id}/undo
  POST   /api/games/{id}/reset
  DELETE /api/games/{id}
  GET    /api/games/{id}/ws
  GET    /api/scores/{mode}?limit=10

Examples:
  t2048 web
  t2048 web --addr 127.0.0.1:9000
  t2048 web --session-idle 10 --verbose`,
	Run: runWeb,
}

func init() {
	defaults := web.DefaultConfig()
	webCmd.Flags().StringVar(&flagWebAddr, "addr", defaults.Address, "HTTP server address (host:port)")
	webCmd.Flags().IntVar(&flagSessionIdle, "session-idle", int(defaults.SessionIdle/time.Minute), "Minutes before an idle game session is closed")
	webCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Log every request")
}

func runWeb(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048-web",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}

	cfg := web.DefaultConfig()
	cfg.Address = flagWebAddr
	cfg.SessionIdle = time.Duration(flagSessionIdle) * time.Minute

	server := web.NewServer(cfg, t2048.GetConfig(), store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting 2048 web server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	runErr := server.ListenAndServe(ctx)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", runErr)
		os.Exit(1)
	}
}
