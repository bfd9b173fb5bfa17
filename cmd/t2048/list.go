package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all board modes",
	Long:  `Shows every board mode with its game ID, grid size and start tiles.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	cfg := t2048.GetConfig()

	fmt.Println("Available modes:")
	fmt.Println()

	fmt.Printf("  %-5s  %-9s  %-6s  %-4s  %s\n", "Mode", "ID", "Name", "Size", "Start tiles")
	fmt.Printf("  %-5s  %-9s  %-6s  %-4s  %s\n", "----", "--", "----", "----", "-----------")

	for _, m := range t2048.Modes {
		id := m.Mode.GameID()
		if !registry.Exists(id) {
			continue
		}
		size, start := m.Size, m.StartTiles
		if mc, ok := cfg.Mode(string(m.Mode)); ok {
			size, start = mc.Size, mc.StartTiles
		}
		fmt.Printf("  %-5s  %-9s  %-6s  %-4d  %d\n", m.Mode, id, m.Name, size, start)
	}

	fmt.Println()
	fmt.Printf("Win tile: %d   Chance of a 4: %.0f%%   Undo depth: %d\n",
		cfg.Rules.WinTile, cfg.Rules.Spawn4*100, cfg.Rules.HistoryCapacity)
	fmt.Println()
	fmt.Println("Run 't2048 play <mode>' to play.")
}
