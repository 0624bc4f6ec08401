package tui

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/mc2048/internal/core"
	"github.com/vovakirdan/mc2048/internal/game"
)

const (
	minCellWidth = 5 // Width of each cell including its left border
	cellHeight   = 2 // Height of each cell including its top border
	hudHeight    = 3
)

// Board holds what the board renderer needs besides the game itself.
type Board struct {
	Snapshot  game.Snapshot
	HighScore int
	Status    string // one line under the HUD, e.g. "thinking..."
}

// cellWidth fits the widest tile on the board plus one space each side.
func cellWidth(maxTile int) int {
	return max(minCellWidth, len(strconv.Itoa(maxTile))+3)
}

// BoardSize returns the width and height the board needs on screen.
func BoardSize(n, maxTile int) (int, int) {
	return n*cellWidth(maxTile) + 1, hudHeight + 1 + n*cellHeight + 1
}

// DrawBoard draws the HUD and the grid centered horizontally on dst.
func DrawBoard(dst *core.Screen, b Board) {
	dst.Clear()

	n := b.Snapshot.Size
	cw := cellWidth(b.Snapshot.MaxTile)
	boardW, boardH := BoardSize(n, b.Snapshot.MaxTile)
	if dst.Width() < boardW || dst.Height() < boardH {
		drawTooSmall(dst)
		return
	}

	boardX := (dst.Width() - boardW) / 2
	boardY := hudHeight + 1

	drawHUD(dst, b, boardX, boardW)
	drawGrid(dst, b.Snapshot.Grid, boardX, boardY, cw)

	if b.Snapshot.Terminal {
		area := core.NewRect(boardX, boardY, boardW, n*cellHeight+1)
		drawOverlay(dst, area,
			"GAME OVER",
			fmt.Sprintf("Max tile: %d", b.Snapshot.MaxTile),
			"Any key: new game",
		)
	}
}

// drawTooSmall shows a "window too small" message.
func drawTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// drawHUD draws the title, score and best tile.
func drawHUD(dst *core.Screen, b Board, boardX, boardW int) {
	title := fmt.Sprintf("2048 %dx%d", b.Snapshot.Size, b.Snapshot.Size)
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightWhite)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", b.Snapshot.Score))

	best := fmt.Sprintf("Best: %d", max(b.HighScore, b.Snapshot.Score))
	dst.DrawText(max(boardX, boardX+boardW-len(best)), 1, best)

	info := fmt.Sprintf("Max: %d", b.Snapshot.MaxTile)
	if m := game.HighestMilestone(b.Snapshot.MaxTile); m != nil {
		info = fmt.Sprintf("Max: %d  %s", b.Snapshot.MaxTile, m.Name)
	}
	if b.Status != "" {
		info = b.Status
	}
	dst.DrawTextColored(boardX+(boardW-len(info))/2, 2, info, core.ColorGray)
}

// drawGrid draws the cell borders and the tiles.
func drawGrid(dst *core.Screen, g game.Grid, boardX, boardY, cw int) {
	n := g.Size()
	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cw
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.Set(px, py, corner)

			if x < n {
				for i := 1; i < cw; i++ {
					dst.Set(px+i, py, '─')
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.Set(px, py+i, '│')
				}
			}
		}
	}

	for y, row := range g {
		for x, val := range row {
			cellX := boardX + x*cw + 1
			cellY := boardY + y*cellHeight + 1

			text := "·"
			if val != 0 {
				text = strconv.Itoa(val)
			}
			pad := max(0, (cw-1-len([]rune(text)))/2)
			dst.DrawTextColored(cellX+pad, cellY, text, core.TileColor(val))
		}
	}
}

// drawOverlay draws a boxed message centered in area.
func drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := area.Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	centerX, _ := box.Center()
	for i, line := range lines {
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}
