// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package simulate

import (
	"math"
	"sort"

	"github.com/haliteii/engine/internal/config"
	"github.com/haliteii/engine/internal/engine"
	"github.com/haliteii/engine/internal/geom"
	"github.com/haliteii/engine/internal/transcript"
)

// Resolve sorts events into ascending-time batches and applies each batch in
// turn, committing entity removals between batches so a later batch never
// observes an entity that an earlier one destroyed mid-frame (spec.md §4.E).
// damageDealt accumulates each player's total weapon damage dealt this
// frame, per attack target added (before the per-target split), for the
// turn's statistics.
func Resolve(m *engine.Map, cfg config.Constants, events []Event, damageDealt map[engine.PlayerID]float64) []transcript.Event {
	sort.Slice(events, func(i, j int) bool { return eventLess(events[i], events[j]) })

	var records []transcript.Event
	i := 0
	for i < len(events) {
		j := i + 1
		for j < len(events) && events[j].Time == events[i].Time {
			j++
		}
		records = append(records, resolveBatch(m, cfg, events[i:j], events[i].Time, damageDealt)...)
		m.CleanupEntities()
		i = j
	}
	return records
}

type attackAccum struct {
	attacker engine.EntityID
	targets  []engine.EntityID
}

func resolveBatch(m *engine.Map, cfg config.Constants, batch []Event, t float64, damageDealt map[engine.PlayerID]float64) []transcript.Event {
	var records []transcript.Event

	attackers := make(map[engine.EntityID]*attackAccum)
	var order []engine.EntityID
	damage := make(map[engine.EntityID]float64)

	addAttack := func(attacker, target engine.EntityID) {
		s := m.GetShip(attacker)
		if s == nil || !s.Alive() || s.WeaponCooldown != 0 || s.DockingStatus != engine.Undocked {
			return
		}
		acc, ok := attackers[attacker]
		if !ok {
			acc = &attackAccum{attacker: attacker}
			attackers[attacker] = acc
			order = append(order, attacker)
		}
		acc.targets = append(acc.targets, target)
		if damageDealt != nil {
			damageDealt[attacker.Player] += cfg.WeaponDamage
		}
	}

	for _, e := range batch {
		if !m.IsValid(e.A) || !m.IsValid(e.B) {
			continue
		}
		switch e.Type {
		case Attack:
			addAttack(e.A, e.B)
			addAttack(e.B, e.A)
		case Collision:
			records = append(records, resolveCollision(m, cfg, e, t)...)
		case Desertion:
			records = append(records, resolveDesertion(m, cfg, e, t)...)
		}
	}

	for _, attacker := range order {
		acc := attackers[attacker]
		s := m.GetShip(attacker)
		if s == nil || !s.Alive() {
			continue
		}
		perTarget := cfg.WeaponDamage / float64(len(acc.targets))
		for _, target := range acc.targets {
			damage[target] += perTarget
		}
		s.WeaponCooldown = cfg.WeaponCooldown

		targetLocs := make([]geom.Location, len(acc.targets))
		for k, tid := range acc.targets {
			if view, ok := m.GetEntity(tid); ok {
				targetLocs[k] = view.Location
			}
		}
		records = append(records, transcript.Attack(attacker, s.Location, acc.targets, targetLocs, t))
	}

	// Apply in idLess order, not map order, so the resulting records are
	// the same on every run.
	targets := make([]engine.EntityID, 0, len(damage))
	for target := range damage {
		targets = append(targets, target)
	}
	sort.Slice(targets, func(i, j int) bool { return idLess(targets[i], targets[j]) })
	for _, target := range targets {
		records = append(records, damageEntity(m, cfg, target, damage[target], t)...)
	}

	return records
}

// resolveCollision applies the inline collision damage rule: ship-vs-ship
// collisions are mutually destructive (each takes the other's current HP),
// ship-vs-planet collisions apply the ship's own HP to both sides.
func resolveCollision(m *engine.Map, cfg config.Constants, e Event, t float64) []transcript.Event {
	if e.A.Kind == engine.KindShip && e.B.Kind == engine.KindShip {
		sa := m.GetShip(e.A)
		sb := m.GetShip(e.B)
		if sa == nil || sb == nil || !sa.Alive() || !sb.Alive() {
			return nil
		}
		dmgToA, dmgToB := sb.Health, sa.Health
		var recs []transcript.Event
		recs = append(recs, damageEntity(m, cfg, e.A, dmgToA, t)...)
		recs = append(recs, damageEntity(m, cfg, e.B, dmgToB, t)...)
		return recs
	}

	shipID, planetID := e.A, e.B
	if shipID.Kind != engine.KindShip {
		shipID, planetID = e.B, e.A
	}
	s := m.GetShip(shipID)
	if s == nil || !s.Alive() {
		return nil
	}
	dmg := s.Health
	var recs []transcript.Event
	recs = append(recs, damageEntity(m, cfg, shipID, dmg, t)...)
	recs = append(recs, damageEntity(m, cfg, planetID, dmg, t)...)
	return recs
}

func resolveDesertion(m *engine.Map, cfg config.Constants, e Event, t float64) []transcript.Event {
	s := m.GetShip(e.A)
	if s == nil || !s.Alive() {
		return nil
	}
	return damageEntity(m, cfg, e.A, s.Health, t)
}

// damageEntity applies dmg to id, killing it outright when dmg meets or
// exceeds current health (spec.md §4.E kill_entity/damage_entity).
func damageEntity(m *engine.Map, cfg config.Constants, id engine.EntityID, dmg, t float64) []transcript.Event {
	switch id.Kind {
	case engine.KindShip:
		s := m.GetShip(id)
		if s == nil || !s.Alive() {
			return nil
		}
		if dmg >= s.Health {
			return killEntity(m, cfg, id, t)
		}
		s.Health -= dmg
		return nil
	case engine.KindPlanet:
		p := m.GetPlanet(id)
		if p == nil || !p.Alive() {
			return nil
		}
		if dmg >= p.Health {
			return killEntity(m, cfg, id, t)
		}
		p.Health -= dmg
		return nil
	default:
		return nil
	}
}

// killEntity destroys id. Destroying a planet undocks every ship attached
// to it and then applies the area-effect explosion, over a snapshot of
// candidates taken before any explosion damage is applied (spec.md §4.E
// step 6) so the blast never chains onto ships the blast itself displaces.
func killEntity(m *engine.Map, cfg config.Constants, id engine.EntityID, t float64) []transcript.Event {
	switch id.Kind {
	case engine.KindShip:
		s := m.GetShip(id)
		if s == nil || !s.Alive() {
			return nil
		}
		deathLoc := s.Location.MoveBy(s.Velocity, t)
		radius := s.Radius
		if s.DockingStatus != engine.Undocked && s.DockedPlanet != engine.NoPlanet {
			if p := m.GetPlanet(engine.PlanetID(s.DockedPlanet)); p != nil {
				p.RemoveDockedShip(id.Index)
			}
		}
		m.UnsafeKillEntity(id)
		return []transcript.Event{transcript.Destroyed(id, deathLoc, radius, t)}

	case engine.KindPlanet:
		p := m.GetPlanet(id)
		if p == nil || !p.Alive() {
			return nil
		}
		for _, shipIndex := range p.DockedShips {
			if s := m.GetShip(engine.ShipID(p.Owner, shipIndex)); s != nil {
				s.Undock()
			}
		}
		p.DockedShips = nil

		location, radius := p.Location, p.Radius
		candidates := m.Test(location, radius+cfg.ExplosionRadius)
		m.UnsafeKillEntity(id)

		records := []transcript.Event{transcript.Destroyed(id, location, radius, t)}
		for _, cid := range candidates {
			if cid.Same(id) {
				continue
			}
			view, ok := m.GetEntity(cid)
			if !ok {
				continue
			}
			d := geom.Distance(location, view.Location) - view.Radius
			var dmg float64
			switch {
			case d < radius:
				dmg = math.Inf(1)
			case d-radius <= cfg.ExplosionRadius:
				dmg = cfg.MaxShipHealth * (1 - (d-radius)/(2*cfg.ExplosionRadius))
			default:
				dmg = 0
			}
			if dmg > 0 {
				records = append(records, damageEntity(m, cfg, cid, dmg, t)...)
			}
		}
		return records

	default:
		return nil
	}
}
