// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import "github.com/haliteii/engine/internal/geom"

// Planet is never created or moved after map generation; it is destroyed
// exactly once, which is terminal (spec.md §3).
type Planet struct {
	// Immutable for the planet's lifetime.
	Location     geom.Location
	Radius       float64
	DockingSpots int

	// Mutable.
	Health              float64
	Owned               bool
	Owner               PlayerID
	DockedShips         []int // ShipIndex, ordered, no duplicates, len <= DockingSpots
	CurrentProduction   float64
	RemainingProduction float64
	Frozen              bool

	alive   bool
	pending bool
}

// Alive reports whether the planet has not yet been destroyed.
func (p *Planet) Alive() bool {
	return p != nil && p.alive && !p.pending
}

// HasDockedShip reports whether shipIndex is already recorded as docked.
func (p *Planet) HasDockedShip(shipIndex int) bool {
	for _, s := range p.DockedShips {
		if s == shipIndex {
			return true
		}
	}
	return false
}

// RemoveDockedShip removes shipIndex from the docked list, if present.
func (p *Planet) RemoveDockedShip(shipIndex int) {
	for i, s := range p.DockedShips {
		if s == shipIndex {
			p.DockedShips = append(p.DockedShips[:i], p.DockedShips[i+1:]...)
			return
		}
	}
}

// FreeDockingSpot reports whether another ship may begin docking.
func (p *Planet) FreeDockingSpot() bool {
	return len(p.DockedShips) < p.DockingSpots
}
