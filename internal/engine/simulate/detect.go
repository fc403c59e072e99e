// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package simulate

import (
	"math"
	"sort"

	"github.com/haliteii/engine/internal/config"
	"github.com/haliteii/engine/internal/engine"
	"github.com/haliteii/engine/internal/engine/collision"
	"github.com/haliteii/engine/internal/engine/grid"
	"github.com/haliteii/engine/internal/geom"
)

// roundEventTime quantizes t to 1/EventTimePrecision, per spec.md §4.D: two
// events whose raw times differ only by floating-point noise must still
// land in the same resolution batch.
func roundEventTime(t float64, precision int) float64 {
	p := float64(precision)
	return math.Round(t*p) / p
}

// Detect scans the current frame (ship positions and velocities as they
// stand before any movement is committed) and returns every Attack,
// Collision and Desertion event, deduplicated and ready for Resolve.
func Detect(m *engine.Map, cfg config.Constants) []Event {
	g := grid.Build(m, cfg.CellSize)
	seen := make(map[key]Event)

	var buf []engine.EntityID
	m.ForEachShip(func(id1 engine.EntityID, s1 *engine.Ship) {
		reach := s1.Radius + s1.Velocity.Magnitude() + cfg.WeaponRadius
		buf = buf[:0]
		buf = g.Query(s1.Location, reach, buf)

		for _, id2 := range buf {
			if id2.Same(id1) {
				continue
			}
			s2 := m.GetShip(id2)
			if s2 == nil || !s2.Alive() {
				continue
			}
			detectShipPair(m, cfg, id1, s1, id2, s2, seen)
		}

		m.ForEachPlanet(func(pid engine.EntityID, p *engine.Planet) {
			detectShipPlanet(cfg, id1, s1, pid, p, seen)
		})

		detectDesertion(m, cfg, id1, s1, seen)
	})

	events := make([]Event, 0, len(seen))
	for _, e := range seen {
		events = append(events, e)
	}
	// seen is a map, so range order is randomized per run; sort into a
	// deterministic order rather than leaving that to whatever Resolve does
	// with it.
	sort.Slice(events, func(i, j int) bool { return eventLess(events[i], events[j]) })
	return events
}

func emit(seen map[key]Event, e Event) {
	seen[eventKey(e)] = e
}

func detectShipPair(m *engine.Map, cfg config.Constants, id1 engine.EntityID, s1 *engine.Ship, id2 engine.EntityID, s2 *engine.Ship, seen map[key]Event) {
	dist := geom.Distance(s1.Location, s2.Location)

	if id1.Player != id2.Player {
		rAtk := s1.Radius + s2.Radius + cfg.WeaponRadius
		if dist <= s1.Velocity.Magnitude()+s2.Velocity.Magnitude()+cfg.WeaponRadius {
			hit, t := collision.TimeBetween(rAtk, s1.Location, s2.Location, s1.Velocity, s2.Velocity)
			switch {
			case hit && t >= 0 && t <= 1:
				emit(seen, Event{Type: Attack, A: id1, B: id2, Time: roundEventTime(t, cfg.EventTimePrecision)})
			case dist <= rAtk:
				emit(seen, Event{Type: Attack, A: id1, B: id2, Time: 0})
			}
		}
	}

	rCol := s1.Radius + s2.Radius
	if dist <= s1.Velocity.Magnitude()+s2.Velocity.Magnitude()+rCol {
		hit, t := collision.TimeBetween(rCol, s1.Location, s2.Location, s1.Velocity, s2.Velocity)
		if hit && t >= 0 && t <= 1 {
			emit(seen, Event{Type: Collision, A: id1, B: id2, Time: roundEventTime(t, cfg.EventTimePrecision)})
		}
	}
}

func detectShipPlanet(cfg config.Constants, id1 engine.EntityID, s1 *engine.Ship, pid engine.EntityID, p *engine.Planet, seen map[key]Event) {
	dist := geom.Distance(s1.Location, p.Location)
	r := s1.Radius + p.Radius
	if dist > s1.Velocity.Magnitude()+r {
		return
	}
	hit, t := collision.TimeBetween(r, s1.Location, p.Location, s1.Velocity, geom.Velocity2{})
	if hit && t >= 0 && t <= 1 {
		emit(seen, Event{Type: Collision, A: id1, B: pid, Time: roundEventTime(t, cfg.EventTimePrecision)})
	}
}

// detectDesertion preserves the reference rule's positive-velocity-only
// quirk (spec.md §4.D, §9 note 1): a ship that drifts off the left or
// bottom edge (negative velocity component) is never flagged, only the
// right/top edges are considered.
func detectDesertion(m *engine.Map, cfg config.Constants, id1 engine.EntityID, s1 *engine.Ship, seen map[key]Event) {
	final := s1.Location.MoveBy(s1.Velocity, 1)
	if m.WithinBounds(final) {
		return
	}

	var candidates []float64
	if s1.Velocity.Dx > 0 {
		t := (m.Width() - s1.Location.X) / s1.Velocity.Dx
		if t >= 0 && t <= 1 {
			candidates = append(candidates, t)
		}
	}
	if s1.Velocity.Dy > 0 {
		t := (m.Height() - s1.Location.Y) / s1.Velocity.Dy
		if t >= 0 && t <= 1 {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return
	}

	earliest := candidates[0]
	for _, t := range candidates[1:] {
		if t < earliest {
			earliest = t
		}
	}
	emit(seen, Event{Type: Desertion, A: id1, B: id1, Time: roundEventTime(earliest, cfg.EventTimePrecision)})
}
