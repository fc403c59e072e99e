// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import "github.com/haliteii/engine/internal/geom"

// Map is the rectangular [0,W)x[0,H) world holding planets and, per player,
// ships. The Map exclusively owns all entities (spec.md §3): everything
// outside this package addresses entities only by EntityID, an index into
// one of the arenas below, never by a pointer held across mutation.
type Map struct {
	width, height float64

	planets []Planet
	ships   [][]Ship // ships[player][index]

	pending []EntityID // entities marked by UnsafeKillEntity since last CleanupEntities
}

// NewMap creates a map of the given dimensions with the given initial
// planets (placement is the out-of-scope map generator's concern) and
// numPlayers empty ship arenas.
func NewMap(width, height float64, planets []Planet, numPlayers int) *Map {
	m := &Map{
		width:   width,
		height:  height,
		planets: planets,
		ships:   make([][]Ship, numPlayers),
	}
	for i := range m.planets {
		m.planets[i].alive = true
	}
	return m
}

func (m *Map) Width() float64  { return m.width }
func (m *Map) Height() float64 { return m.height }
func (m *Map) NumPlayers() int { return len(m.ships) }

// WithinBounds reports whether a location lies inside [0,W)x[0,H).
func (m *Map) WithinBounds(l geom.Location) bool {
	return l.X >= 0 && l.X < m.width && l.Y >= 0 && l.Y < m.height
}

// LocationWithDelta offsets base by (dx,dy) and reports whether the result
// is within bounds.
func (m *Map) LocationWithDelta(base geom.Location, dx, dy float64) (geom.Location, bool) {
	l := geom.Location{X: base.X + dx, Y: base.Y + dy}
	return l, m.WithinBounds(l)
}

// IsValid reports whether id currently addresses a live entity.
func (m *Map) IsValid(id EntityID) bool {
	switch id.Kind {
	case KindShip:
		s := m.GetShip(id)
		return s.Alive()
	case KindPlanet:
		p := m.GetPlanet(id)
		return p.Alive()
	default:
		return false
	}
}

// GetShip returns the ship addressed by id, or nil if id is not a valid
// ship reference (out of range or wrong kind). The pointer must not be
// retained past the current operation (arena-by-index: slices may be
// reallocated by AddEntity-equivalents, i.e. SpawnShip).
func (m *Map) GetShip(id EntityID) *Ship {
	if id.Kind != KindShip {
		return nil
	}
	if id.Player < 0 || int(id.Player) >= len(m.ships) {
		return nil
	}
	arena := m.ships[id.Player]
	if id.Index < 0 || id.Index >= len(arena) {
		return nil
	}
	return &arena[id.Index]
}

// GetPlanet returns the planet addressed by id, or nil.
func (m *Map) GetPlanet(id EntityID) *Planet {
	if id.Kind != KindPlanet {
		return nil
	}
	if id.Index < 0 || id.Index >= len(m.planets) {
		return nil
	}
	return &m.planets[id.Index]
}

// EntityView is a read-only geometric snapshot of an entity, independent of
// its concrete kind. The broadphase grid and collision solver (components
// B, C) operate purely in terms of EntityViews.
type EntityView struct {
	ID       EntityID
	Location geom.Location
	Velocity geom.Velocity2
	Radius   float64
	Player   PlayerID // KindShip only
}

// GetEntity returns a geometric view of whatever id addresses, and whether
// it was valid.
func (m *Map) GetEntity(id EntityID) (EntityView, bool) {
	switch id.Kind {
	case KindShip:
		s := m.GetShip(id)
		if !s.Alive() {
			return EntityView{}, false
		}
		return EntityView{ID: id, Location: s.Location, Velocity: s.Velocity, Radius: s.Radius, Player: id.Player}, true
	case KindPlanet:
		p := m.GetPlanet(id)
		if !p.Alive() {
			return EntityView{}, false
		}
		return EntityView{ID: id, Location: p.Location, Velocity: geom.Velocity2{}, Radius: p.Radius}, true
	default:
		return EntityView{}, false
	}
}

// SpawnShip adds a new, full-health, undocked ship for player at location
// and returns its EntityID.
func (m *Map) SpawnShip(player PlayerID, location geom.Location, radius, maxHealth float64) EntityID {
	arena := m.ships[player]
	index := len(arena)
	m.ships[player] = append(arena, Ship{
		Location:     location,
		Health:       maxHealth,
		Radius:       radius,
		DockedPlanet: NoPlanet,
		alive:        true,
	})
	return ShipID(player, index)
}

// UnsafeKillEntity marks an entity for removal without running any side
// effects (no explosions, no docked-list cleanup, no events). Pairs with
// CleanupEntities, which commits the removal. A marked entity reports
// !Alive() at once, so later checks in the same batch already skip it;
// its slot keeps its fields until CleanupEntities runs (spec.md §4.A,
// §4.E step 7).
func (m *Map) UnsafeKillEntity(id EntityID) {
	switch id.Kind {
	case KindShip:
		s := m.GetShip(id)
		if s == nil || s.pending || !s.alive {
			return
		}
		s.pending = true
	case KindPlanet:
		p := m.GetPlanet(id)
		if p == nil || p.pending || !p.alive {
			return
		}
		p.pending = true
	default:
		return
	}
	m.pending = append(m.pending, id)
}

// CleanupEntities commits every deferred removal since the last call.
func (m *Map) CleanupEntities() {
	for _, id := range m.pending {
		switch id.Kind {
		case KindShip:
			if s := m.GetShip(id); s != nil {
				s.alive = false
				s.pending = false
			}
		case KindPlanet:
			if p := m.GetPlanet(id); p != nil {
				p.alive = false
				p.pending = false
			}
		}
	}
	m.pending = m.pending[:0]
}

// Test does an exact (non-broadphase) scan for every entity whose disk
// (location, radius) overlaps the query disk. Used off the collision hot
// path (e.g. spawn-site search), per spec.md §4.A.
func (m *Map) Test(location geom.Location, radius float64) []EntityID {
	var out []EntityID
	for player := range m.ships {
		for index := range m.ships[player] {
			s := &m.ships[player][index]
			if !s.Alive() {
				continue
			}
			if geom.Distance(location, s.Location) <= radius+s.Radius {
				out = append(out, ShipID(PlayerID(player), index))
			}
		}
	}
	for index := range m.planets {
		p := &m.planets[index]
		if !p.Alive() {
			continue
		}
		if geom.Distance(location, p.Location) <= radius+p.Radius {
			out = append(out, PlanetID(index))
		}
	}
	return out
}

// ForEachShip iterates alive ships in ascending (player, shipIndex) order —
// the iteration order spec.md §5 requires for reproducible tie-breaking.
// The callback may be called with entities that die mid-iteration only if
// CleanupEntities has not yet been invoked; it must not call SpawnShip.
func (m *Map) ForEachShip(fn func(id EntityID, ship *Ship)) {
	for player := range m.ships {
		arena := m.ships[player]
		for index := range arena {
			s := &arena[index]
			if !s.Alive() {
				continue
			}
			fn(ShipID(PlayerID(player), index), s)
		}
	}
}

// ForEachPlanet iterates alive planets in ascending index order.
func (m *Map) ForEachPlanet(fn func(id EntityID, planet *Planet)) {
	for index := range m.planets {
		p := &m.planets[index]
		if !p.Alive() {
			continue
		}
		fn(PlanetID(index), p)
	}
}

// AllPlanets exposes the raw planet slice, dead planets included, for
// read-only scans.
func (m *Map) AllPlanets() []Planet {
	return m.planets
}

// PlanetCount returns the number of planet slots (alive or not).
func (m *Map) PlanetCount() int {
	return len(m.planets)
}

// AliveShipCount returns how many ships player currently has.
func (m *Map) AliveShipCount(player PlayerID) int {
	count := 0
	for i := range m.ships[player] {
		if m.ships[player][i].Alive() {
			count++
		}
	}
	return count
}

// Resize sets the map's dimensions (used only at construction time in this
// engine; the map never resizes mid-game, unlike the teacher's shrinking
// world radius, because planet placement is fixed for the life of a game).
func (m *Map) Resize(width, height float64) {
	m.width, m.height = width, height
}

// Center returns the geometric center of the map.
func (m *Map) Center() geom.Location {
	return geom.Location{X: m.width / 2, Y: m.height / 2}
}
