// t2048 plays the 2048 sliding-tile puzzle in the terminal, over SSH or
// through an HTTP/WebSocket API.
//
// Usage:
//
//	t2048 list              - List board modes
//	t2048 play [mode]       - Play a mode (default 4x4)
//	t2048 menu              - Start menu to pick modes interactively
//	t2048 serve             - Start SSH server for remote play
//	t2048 web               - Start HTTP/WebSocket server
//	t2048 scores <mode>     - Show high scores for a mode
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--db <path>            - Set database path (default: ~/.t2048/scores.db)
//	--config <path>        - Load game config from a YAML file
//	--difficulty <preset>  - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - Slide and merge tiles in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the board in four directions; equal tiles merge and their sum is
added to the score. Reach the 2048 tile to win, keep playing for more.

Available commands:
  list     - Show all board modes
  play     - Play a mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  web      - Start HTTP/WebSocket API server
  scores   - View high scores

Examples:
  t2048 list
  t2048 play
  t2048 play 5x5 --difficulty hard
  t2048 menu
  t2048 serve --ssh :2222
  t2048 web --addr :8048
  t2048 scores 4x4`,
	SilenceUsage:      true,
	PersistentPreRunE: loadGameConfig,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.t2048/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadGameConfig loads the YAML config, applies the difficulty preset and
// hands the result to the game package before any command runs.
func loadGameConfig(_ *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	cfg, err := config.LoadT2048(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyT2048Preset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return err
	}

	t2048.SetConfig(cfg)
	return nil
}

// parseModeArg returns the mode named by args, or 4x4 when there is none.
func parseModeArg(args []string) (t2048.Mode, error) {
	if len(args) == 0 {
		return t2048.Mode4x4, nil
	}
	mode, err := t2048.ParseMode(args[0])
	if err != nil {
		return "", fmt.Errorf("unknown mode %q (run 't2048 list' to see available modes)", args[0])
	}
	return mode, nil
}
