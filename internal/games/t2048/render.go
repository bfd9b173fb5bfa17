package t2048

import (
	"fmt"
	"strconv"
	"time"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border), fits 6 digits
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// boardDimensions returns the board width and height in characters.
func boardDimensions(size int) (w, h int) {
	return size*cellWidth + 1, size*cellHeight + 1
}

// tileColor picks a color per tile value; large values share the last one.
func tileColor(val int) core.Color {
	switch val {
	case 2:
		return core.ColorWhite
	case 4:
		return core.ColorBrightWhite
	case 8:
		return core.ColorYellow
	case 16:
		return core.ColorOrange
	case 32:
		return core.ColorRed
	case 64:
		return core.ColorBrightRed
	case 128:
		return core.ColorBrightYellow
	case 256:
		return core.ColorGreen
	case 512:
		return core.ColorBrightGreen
	case 1024:
		return core.ColorCyan
	case 2048:
		return core.ColorBrightCyan
	case 4096:
		return core.ColorMagenta
	default:
		return core.ColorBrightMagenta
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.engine == nil {
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	size := g.engine.Size()
	boardW, boardH := boardDimensions(size)
	area := core.NewRect(0, hudHeight+1, g.screenW, boardH)
	board := core.CenteredRect(area, boardW, boardH)
	board.X = core.Clamp(board.X, 0, g.screenW)

	g.renderHUD(dst, board.X, board.W)
	g.renderBoard(dst, board.X, board.Y, size)
	g.renderOverlays(dst, board)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and counters.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := g.Title()
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	scoreStr := fmt.Sprintf("Score: %d", g.engine.Score())
	dst.DrawText(boardX, 1, scoreStr)

	bestStr := fmt.Sprintf("Best: %d", g.engine.BestScore())
	dst.DrawText(max(boardX+boardW-len(bestStr), boardX), 1, bestStr)

	infoStr := fmt.Sprintf("Moves: %d  Max: %d  Time: %s",
		g.engine.MoveCount(), g.engine.MaxTile(), formatElapsed(g.engine.Elapsed()))
	dst.DrawTextColored(max(boardX+(boardW-len(infoStr))/2, 0), 2, infoStr, core.ColorGray)
}

// formatElapsed renders a duration as mm:ss.
func formatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// renderBoard draws the grid lines and tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY, size int) {
	for y := range size + 1 {
		for x := range size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == size:
				corner = '┐'
			case y == size && x == 0:
				corner = '└'
			case y == size && x == size:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == size:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == size:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < size {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	for row := range size {
		for col := range size {
			val := g.engine.Cell(row, col)
			if val == 0 {
				continue
			}

			cellX := boardX + col*cellWidth + 1
			cellY := boardY + row*cellHeight + 1

			valStr := strconv.Itoa(val)
			padLeft := max((cellWidth-1-len(valStr))/2, 0)
			dst.DrawTextColored(cellX+padLeft, cellY, valStr, tileColor(val))
		}
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	switch {
	case g.paused:
		g.drawOverlay(dst, board, "PAUSED", "Press P to resume")
	case g.engine.GameOver():
		maxStr := fmt.Sprintf("Max tile: %d", g.engine.MaxTile())
		hint := "R: restart"
		if g.engine.CanUndo() {
			hint = "R: restart  U: undo"
		}
		g.drawOverlay(dst, board, "GAME OVER", maxStr, hint)
	case g.engine.Won() && !g.winAcknowledged:
		g.drawOverlay(dst, board, "YOU WIN!", "Enter: keep playing", "Q: quit")
	}
}

// drawOverlay draws a text box centered over area.
func (g *Game) drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.CenteredRect(area, maxLen+4, len(lines)+2)
	centerX, _ := box.Center()

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/hjkl: Move | U: Undo | P: Pause | Ctrl+R: Restart | Q: Quit"
}
