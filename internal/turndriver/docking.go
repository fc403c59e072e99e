// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package turndriver

import (
	"github.com/haliteii/engine/internal/config"
	"github.com/haliteii/engine/internal/engine"
	"github.com/haliteii/engine/internal/geom"
	"github.com/haliteii/engine/internal/moveio"
)

// clearFrozenPlanets resets every planet's contested-dock flag at the top
// of a turn. This must range via ForEachPlanet (a pointer callback), not
// over a []Planet value slice: ranging by value copies each Planet and the
// assignment lands on the copy, so the clear silently never sticks — the
// exact bug spec.md §9 calls out and requires fixing here.
func clearFrozenPlanets(m *engine.Map) {
	m.ForEachPlanet(func(_ engine.EntityID, p *engine.Planet) {
		p.Frozen = false
	})
}

// applyMoves validates and applies the commands queued at a single
// micro-step. Callers pass in only the moves whose MoveNo matches the
// current step, so each ship contributes at most one command here.
func (d *Driver) applyMoves(moves []moveio.Move) {
	dockAttempts := make(map[int][]engine.EntityID) // planet index -> attempting ships this turn

	for _, mv := range moves {
		switch mv.Kind {
		case moveio.Thrust:
			applyThrust(d.Map, d.Config, mv)
		case moveio.Dock:
			if planetIdx, ok := tryDock(d.Map, d.Config, mv); ok {
				dockAttempts[planetIdx] = append(dockAttempts[planetIdx], mv.Ship)
			}
		case moveio.Undock:
			tryUndock(d.Map, mv.Ship)
		}
	}

	resolveDockContention(d.Map, dockAttempts)
}

func applyThrust(m *engine.Map, cfg config.Constants, mv moveio.Move) {
	s := m.GetShip(mv.Ship)
	if s == nil || !s.Alive() || s.DockingStatus != engine.Undocked {
		return
	}
	magnitude := mv.Magnitude
	if magnitude > cfg.MaxAcceleration {
		magnitude = cfg.MaxAcceleration
	}
	if magnitude < 0 {
		magnitude = 0
	}
	s.Velocity = s.Velocity.AccelerateBy(magnitude, mv.Angle)
}

// tryDock begins docking if the ship and planet satisfy the range, slot
// and ownership preconditions, and reports the planet's index so the
// contention pass can later decide whether multiple players raced for the
// same neutral planet this turn. It does not yet commit ownership.
func tryDock(m *engine.Map, cfg config.Constants, mv moveio.Move) (planetIndex int, accepted bool) {
	s := m.GetShip(mv.Ship)
	p := m.GetPlanet(mv.Planet)
	if s == nil || p == nil || !s.Alive() || !p.Alive() {
		return 0, false
	}
	if s.DockingStatus != engine.Undocked || !s.Velocity.Zero() || p.Frozen || !p.FreeDockingSpot() {
		return 0, false
	}
	if p.Owned && p.Owner != mv.Ship.Player {
		return 0, false
	}
	if geom.Distance(s.Location, p.Location) > s.Radius+p.Radius+cfg.DockRadius {
		return 0, false
	}

	s.DockingStatus = engine.Docking
	s.DockingProgress = cfg.DockTurns
	s.DockedPlanet = mv.Planet.Index
	p.DockedShips = append(p.DockedShips, mv.Ship.Index)
	return mv.Planet.Index, true
}

// resolveDockContention freezes any previously-unowned planet that more
// than one player tried to claim in the same turn: none of this turn's
// claims against it take effect, and the planet sits out production and
// new docking attempts until the freeze clears at the top of next turn.
func resolveDockContention(m *engine.Map, attempts map[int][]engine.EntityID) {
	for planetIdx, ships := range attempts {
		p := m.GetPlanet(engine.PlanetID(planetIdx))
		if p == nil || p.Owned {
			continue
		}

		distinct := make(map[engine.PlayerID]bool)
		for _, sid := range ships {
			distinct[sid.Player] = true
		}
		if len(distinct) <= 1 {
			for pl := range distinct {
				p.Owned = true
				p.Owner = pl
			}
			continue
		}

		p.Frozen = true
		for _, sid := range ships {
			if s := m.GetShip(sid); s != nil {
				s.Undock()
			}
		}
		p.DockedShips = nil
	}
}

func tryUndock(m *engine.Map, id engine.EntityID) {
	s := m.GetShip(id)
	if s == nil || !s.Alive() || s.DockingStatus != engine.Docked {
		return
	}
	if p := m.GetPlanet(engine.PlanetID(s.DockedPlanet)); p != nil {
		p.RemoveDockedShip(id.Index)
	}
	s.DockingStatus = engine.Undocking
	s.DockingProgress = 0 // counts up to DockTurns in tickDocking, mirroring Docking's countdown in reverse
}

// commitMovement advances every surviving ship to its end-of-turn position.
// Ships destroyed mid-frame were already removed by Resolve's per-batch
// CleanupEntities, so this only ever moves entities that made it through
// the whole frame.
func commitMovement(m *engine.Map) {
	m.ForEachShip(func(_ engine.EntityID, s *engine.Ship) {
		s.Location = s.Location.MoveBy(s.Velocity, 1)
	})
}

// tickDocking advances the Docking/Undocking countdowns and applies docked
// regeneration. It runs at the start of the turn, before this turn's moves
// are applied, so a ship that starts Docking this turn doesn't have its
// countdown ticked until the following turn.
func tickDocking(m *engine.Map, cfg config.Constants) {
	m.ForEachShip(func(_ engine.EntityID, s *engine.Ship) {
		switch s.DockingStatus {
		case engine.Docking:
			s.DockingProgress--
			if s.DockingProgress <= 0 {
				s.DockingStatus = engine.Docked
				s.DockingProgress = 0
			}
		case engine.Undocking:
			s.DockingProgress++
			if s.DockingProgress >= cfg.DockTurns {
				s.Undock()
			}
		case engine.Docked:
			s.Health += cfg.DockedShipRegeneration
			if s.Health > cfg.MaxShipHealth {
				s.Health = cfg.MaxShipHealth
			}
		}
	})
}

// applyDrag scrubs a constant amount of speed off every ship's velocity
// each turn, clamped so it never reverses direction.
func applyDrag(m *engine.Map, cfg config.Constants) {
	m.ForEachShip(func(_ engine.EntityID, s *engine.Ship) {
		mag := s.Velocity.Magnitude()
		if mag == 0 {
			return
		}
		newMag := mag - cfg.Drag
		if newMag < 0 {
			newMag = 0
		}
		scale := newMag / mag
		s.Velocity.Dx *= scale
		s.Velocity.Dy *= scale
	})
}

func tickWeaponCooldowns(m *engine.Map) {
	m.ForEachShip(func(_ engine.EntityID, s *engine.Ship) {
		if s.WeaponCooldown > 0 {
			s.WeaponCooldown--
		}
	})
}
