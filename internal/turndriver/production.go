// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package turndriver

import (
	"math"

	"github.com/haliteii/engine/internal/engine"
	"github.com/haliteii/engine/internal/geom"
	"github.com/haliteii/engine/internal/transcript"
)

// runProduction advances every owned, unfrozen planet's production and
// spawns a ship for any planet whose current production has crossed
// PRODUCTION_PER_SHIP, per spec.md §4.F-5. RemainingProduction is the
// planet's finite production budget, set at map-generation time and spent
// down turn by turn; a planet that exhausts it stops producing even with
// ships still docked.
func (d *Driver) runProduction() []transcript.Event {
	var spawned []transcript.Event

	d.Map.ForEachPlanet(func(pid engine.EntityID, p *engine.Planet) {
		if !p.Owned || p.Frozen || len(p.DockedShips) == 0 {
			return
		}

		addend := d.Config.BaseProductivity + d.Config.AdditionalProductivity*float64(len(p.DockedShips)-1)
		if addend > p.RemainingProduction {
			addend = p.RemainingProduction
		}
		p.CurrentProduction += addend
		p.RemainingProduction -= addend

		for p.CurrentProduction >= d.Config.ProductionPerShip {
			loc, ok := d.findSpawnSite(p)
			if !ok {
				break // crowded out; the banked production carries over to next turn
			}
			p.CurrentProduction -= d.Config.ProductionPerShip

			newID := d.Map.SpawnShip(p.Owner, loc, d.Config.ShipRadius, d.Config.MaxShipHealth)
			spawned = append(spawned, transcript.Spawn(newID, loc, p.Location))
		}
	})

	return spawned
}

// findSpawnSite scans integer offsets (dx,dy) in [-SPAWN_RADIUS,SPAWN_RADIUS]^2
// around p, mapping each through the planet's own radius along the
// dx,dy direction, and returns the in-bounds, unoccupied candidate nearest
// the map center. The scan is exhaustive (every candidate is considered
// before one is chosen) and a tie goes to the first candidate in scan
// order (dx, then dy, ascending), so it produces the same result on every
// run given the same map and planet state.
func (d *Driver) findSpawnSite(p *engine.Planet) (geom.Location, bool) {
	cx, cy := d.Map.Width()/2, d.Map.Height()/2

	var best geom.Location
	bestDist := math.Inf(1)
	found := false

	r := d.Config.SpawnRadius
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			theta := math.Atan2(float64(dy), float64(dx))
			offsetX := float64(dx) + p.Radius*math.Cos(theta)
			offsetY := float64(dy) + p.Radius*math.Sin(theta)

			candidate, ok := d.Map.LocationWithDelta(p.Location, offsetX, offsetY)
			if !ok {
				continue
			}
			if len(d.Map.Test(candidate, 2*d.Config.ShipRadius)) != 0 {
				continue
			}

			dist := geom.Distance(candidate, geom.Location{X: cx, Y: cy})
			if dist < bestDist {
				best, bestDist, found = candidate, dist, true
			}
		}
	}

	return best, found
}
