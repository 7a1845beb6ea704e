package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/games/t2048/engine"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3

	spawnColor = core.ColorBrightCyan // Tile added by the last move
)

// minScreenSize returns the smallest screen that fits an n x n board with
// the HUD and the controls line.
func minScreenSize(n int) (w, h int) {
	boardW := n*cellWidth + 1
	boardH := n*cellHeight + 1
	return max(boardW, 34) + 2, hudHeight + 1 + boardH + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.Snapshot()
	board := boardRect(snap.Grid, g.screenW)

	g.renderHUD(dst, snap, board)
	renderBoard(dst, snap, board)
	g.renderOverlays(dst, snap, board)

	dst.DrawTextCenteredColor(board.Bottom()+1, g.Controls(), core.ColorGray)
}

// boardRect places the board below the HUD, centered horizontally.
func boardRect(grid engine.Grid, screenW int) core.Rect {
	w := grid.Width()*cellWidth + 1
	h := len(grid)*cellHeight + 1
	return core.NewRect((screenW-w)/2, hudHeight+1, w, h)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	minW, minH := minScreenSize(g.variant.Rules.Size)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minW, minH))
}

// renderHUD draws the title, score, best score and target.
func (g *Game) renderHUD(dst *core.Screen, snap Snapshot, board core.Rect) {
	title := g.Title()
	dst.DrawTextColor(board.X+(board.W-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(board.X, 1, fmt.Sprintf("Score: %d", snap.Score))

	best := fmt.Sprintf("Best: %d", snap.Best)
	dst.DrawText(board.Right()-len(best), 1, best)

	target := "Endless"
	if snap.Target > 0 {
		target = fmt.Sprintf("Target: %d", snap.Target)
	}
	dst.DrawTextColor(board.X, 2, target, core.ColorCyan)

	moves := fmt.Sprintf("Moves: %d", snap.Moves)
	dst.DrawText(board.Right()-len(moves), 2, moves)
}

// renderBoard draws the grid lines and tiles. The tile added by the last
// move is shown in spawnColor.
func renderBoard(dst *core.Screen, snap Snapshot, board core.Rect) {
	rows := len(snap.Grid)
	cols := snap.Grid.Width()

	for y := range rows + 1 {
		for x := range cols + 1 {
			px := board.X + x*cellWidth
			py := board.Y + y*cellHeight

			dst.SetColor(px, py, junction(x, y, cols, rows), core.ColorGray)

			if x < cols {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if y < rows {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	for y, row := range snap.Grid {
		for x, val := range row {
			cellX, cellY := tileOrigin(board, y, x)

			if val == 0 {
				dst.SetColor(cellX+(cellWidth-1)/2, cellY, '·', core.ColorGray)
				continue
			}

			color := core.TileColor(val)
			if spawn := snap.LastSpawn; spawn != nil && spawn.Row == y && spawn.Col == x {
				color = spawnColor
			}

			valStr := strconv.Itoa(val)
			padLeft := max((cellWidth-1-len(valStr))/2, 0)
			dst.DrawTextColor(cellX+padLeft, cellY, valStr, color)
		}
	}
}

// tileOrigin returns the screen position of the first cell inside a tile.
func tileOrigin(board core.Rect, row, col int) (x, y int) {
	return board.X + col*cellWidth + 1, board.Y + row*cellHeight + 1
}

// junction picks the box-drawing rune for a grid line crossing.
func junction(x, y, cols, rows int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == cols:
		return '┐'
	case y == rows && x == 0:
		return '└'
	case y == rows && x == cols:
		return '┘'
	case y == 0:
		return '┬'
	case y == rows:
		return '┴'
	case x == 0:
		return '├'
	case x == cols:
		return '┤'
	default:
		return '┼'
	}
}

// renderOverlays draws state overlays on top of the board.
func (g *Game) renderOverlays(dst *core.Screen, snap Snapshot, board core.Rect) {
	switch {
	case snap.Status == StatusNotStarted:
		drawOverlay(dst, board, core.ColorBrightCyan, g.variant.Description, "Press Enter to start")
	case snap.Paused:
		drawOverlay(dst, board, core.ColorYellow, "PAUSED", "P: resume  M: menu")
	case snap.Status == StatusWon:
		drawOverlay(dst, board, core.ColorBrightGreen,
			"YOU WIN!",
			fmt.Sprintf("Score: %d", snap.Score),
			"R: play again  M: menu")
	case snap.Status == StatusLost:
		drawOverlay(dst, board, core.ColorBrightRed,
			"GAME OVER",
			fmt.Sprintf("Score: %d  Max tile: %d", snap.Score, snap.MaxTile),
			"R: try again  M: menu")
	}
}

// drawOverlay draws a boxed message centered on area.
func drawOverlay(dst *core.Screen, area core.Rect, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := area.Centered(maxLen+4, len(lines)+2)
	centerX, _ := box.Center()

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)

	for i, line := range lines {
		c := core.ColorDefault
		if i == 0 {
			c = color
		}
		dst.DrawTextColor(centerX-len(line)/2, box.Y+1+i, line, c)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/hjkl: Move | P: Pause | R: Restart | Q: Quit"
}
