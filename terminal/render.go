package main

import (
	"fmt"

	"github.com/JunalChowdhuryG/Expo-Snake/sim"
	"github.com/gdamore/tcell/v2"
)

// canvas is the part of tcell.Screen the renderer writes to.
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

var (
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHead   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleBody   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFood   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// layout maps board positions onto terminal cells. The board sits inside a
// one-cell border with the status line underneath.
type layout struct {
	cfg        sim.Config
	cols, rows int // board size in board cells
	cellW      int // terminal columns per board cell
}

// newLayout fits cfg onto a w x h terminal. Grid cells are two columns wide
// to look square; continuous boards are scaled to the free area.
func newLayout(cfg sim.Config, w, h int) layout {
	if cfg.Model == sim.Grid {
		return layout{cfg: cfg, cols: cfg.Columns, rows: cfg.Rows, cellW: 2}
	}
	return layout{cfg: cfg, cols: max(w-2, 1), rows: max(h-3, 1), cellW: 1}
}

func (l layout) width() int  { return l.cols*l.cellW + 2 }
func (l layout) height() int { return l.rows + 2 }

// cell returns the terminal position of a board point.
func (l layout) cell(p sim.Point) (int, int) {
	var cx, cy int
	if l.cfg.Model == sim.Grid {
		cx, cy = int(p.X), int(p.Y)
	} else {
		// Points inside the wrap margin pin to the edge.
		cx = clampInt(int(p.X/l.cfg.Width*float64(l.cols)), 0, l.cols-1)
		cy = clampInt(int(p.Y/l.cfg.Height*float64(l.rows)), 0, l.rows-1)
	}
	return 1 + cx*l.cellW, 1 + cy
}

// hud is the status line content.
type hud struct {
	Best  int
	Games int
}

// draw renders one snapshot. It only reads st.
func draw(c canvas, l layout, st sim.State, h hud) {
	drawBorder(c, l)

	for _, f := range st.Food {
		x, y := l.cell(f)
		c.SetContent(x, y, '*', nil, styleFood)
	}
	for i := len(st.Snake) - 1; i >= 1; i-- {
		x, y := l.cell(st.Snake[i])
		c.SetContent(x, y, 'o', nil, styleBody)
	}
	if len(st.Snake) > 0 {
		x, y := l.cell(st.Head())
		c.SetContent(x, y, '@', nil, styleHead)
	}

	status := fmt.Sprintf(" score %d  level %d  length %d  best %d  games %d ", st.Score, st.Level, st.Len(), h.Best, h.Games)
	if l.cfg.Model == sim.Continuous {
		status += fmt.Sprintf(" speed %.1f ", st.Velocity.Len())
	}
	drawText(c, 0, l.height(), status, styleText)

	switch {
	case st.IsGameOver:
		drawCentered(c, l, " GAME OVER - enter to restart ")
	case st.IsPaused:
		drawCentered(c, l, " PAUSED ")
	}
}

func drawBorder(c canvas, l layout) {
	w, h := l.width(), l.height()
	for x := 1; x < w-1; x++ {
		c.SetContent(x, 0, '─', nil, styleBorder)
		c.SetContent(x, h-1, '─', nil, styleBorder)
	}
	for y := 1; y < h-1; y++ {
		c.SetContent(0, y, '│', nil, styleBorder)
		c.SetContent(w-1, y, '│', nil, styleBorder)
	}
	c.SetContent(0, 0, '┌', nil, styleBorder)
	c.SetContent(w-1, 0, '┐', nil, styleBorder)
	c.SetContent(0, h-1, '└', nil, styleBorder)
	c.SetContent(w-1, h-1, '┘', nil, styleBorder)
}

func drawCentered(c canvas, l layout, text string) {
	x := (l.width() - len(text)) / 2
	drawText(c, max(x, 0), l.height()/2, text, styleBanner)
}

func drawText(c canvas, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		c.SetContent(x+i, y, r, nil, style)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
