// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package grid implements the broadphase spatial hash (component B):
// a uniform grid of CELL_SIZE x CELL_SIZE cells over [0,W]x[0,H], holding
// ships only (planets are few enough to scan linearly — see
// internal/engine/simulate). Grounded on server/world/sector's sectorID
// cell-addressing scheme, simplified from that package's resizable
// power-of-two sector table to a fixed-size grid sized once per game,
// since this engine's map dimensions never change mid-game.
package grid

import (
	"math"

	"github.com/haliteii/engine/internal/engine"
	"github.com/haliteii/engine/internal/geom"
)

// CollisionMap is rebuilt at the top of each event-detection pass; it is
// never incrementally mutated during event resolution.
type CollisionMap struct {
	cellSize   float64
	cols, rows int
	cells      [][]engine.EntityID
}

// Build indexes every alive ship in m into a fresh grid. cellSize must
// satisfy cellSize >= 2*maxShipRadius + maxVelocity so that a single cell
// of spill (the 4-neighbor query below) always suffices (spec.md §4.B).
func Build(m *engine.Map, cellSize float64) *CollisionMap {
	cols := int(math.Ceil(m.Width()/cellSize)) + 1
	rows := int(math.Ceil(m.Height()/cellSize)) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	g := &CollisionMap{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([][]engine.EntityID, cols*rows),
	}

	m.ForEachShip(func(id engine.EntityID, ship *engine.Ship) {
		col, row := g.cellOf(ship.Location)
		if idx := g.index(col, row); idx >= 0 {
			g.cells[idx] = append(g.cells[idx], id)
		}
	})

	return g
}

func (g *CollisionMap) cellOf(loc geom.Location) (col, row int) {
	col = int(loc.X / g.cellSize)
	row = int(loc.Y / g.cellSize)
	return
}

func (g *CollisionMap) index(col, row int) int {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return -1
	}
	return row*g.cols + col
}

func (g *CollisionMap) append(out []engine.EntityID, col, row int) []engine.EntityID {
	if idx := g.index(col, row); idx >= 0 {
		out = append(out, g.cells[idx]...)
	}
	return out
}

// Query appends every ship EntityID whose home cell overlaps the disk
// (loc, r) to out and returns the extended slice. It examines the owning
// cell plus up to 3 adjacent cells: one cell in whichever horizontal
// direction the disk spills, one in whichever vertical direction it
// spills, and the diagonal combining them only when it spills in both axes
// (a 4-neighbor test, not an 8-neighbor one — see spec.md §4.B).
func (g *CollisionMap) Query(loc geom.Location, r float64, out []engine.EntityID) []engine.EntityID {
	col, row := g.cellOf(loc)
	out = g.append(out, col, row)

	cellLeft := float64(col) * g.cellSize
	cellRight := cellLeft + g.cellSize
	cellTop := float64(row) * g.cellSize
	cellBottom := cellTop + g.cellSize

	dcol, drow := 0, 0

	if loc.X-r < cellLeft {
		dcol = -1
	} else if loc.X+r >= cellRight {
		dcol = 1
	}
	if loc.Y-r < cellTop {
		drow = -1
	} else if loc.Y+r >= cellBottom {
		drow = 1
	}

	if dcol != 0 {
		out = g.append(out, col+dcol, row)
	}
	if drow != 0 {
		out = g.append(out, col, row+drow)
	}
	if dcol != 0 && drow != 0 {
		out = g.append(out, col+dcol, row+drow)
	}

	return out
}
