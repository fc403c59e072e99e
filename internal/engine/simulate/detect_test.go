// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package simulate

import (
	"testing"

	"github.com/haliteii/engine/internal/config"
	"github.com/haliteii/engine/internal/engine"
	"github.com/haliteii/engine/internal/geom"
)

func newTestMap(cfg config.Constants, players int) *engine.Map {
	return engine.NewMap(200, 200, nil, players)
}

func TestDetectHeadOnAttack(t *testing.T) {
	cfg := config.Default()
	m := newTestMap(cfg, 2)
	a := m.SpawnShip(0, geom.Location{X: 100, Y: 80}, cfg.ShipRadius, cfg.MaxShipHealth)
	// 10 apart, closing at 14/turn: inside both the attack reach (7+7+5) and
	// the collision reach (7+7+1), with contact times 0.286 and 0.643.
	b := m.SpawnShip(1, geom.Location{X: 110, Y: 80}, cfg.ShipRadius, cfg.MaxShipHealth)
	m.GetShip(a).Velocity = geom.Velocity2{Dx: 7}
	m.GetShip(b).Velocity = geom.Velocity2{Dx: -7}

	events := Detect(m, cfg)

	var sawAttack, sawCollision bool
	for _, e := range events {
		if e.Type == Attack && e.A.Same(a) && e.B.Same(b) || e.Type == Attack && e.A.Same(b) && e.B.Same(a) {
			sawAttack = true
		}
		if e.Type == Collision && (e.A.Same(a) || e.A.Same(b)) {
			sawCollision = true
		}
	}
	if !sawAttack {
		t.Fatalf("expected an attack event between closing enemy ships, got %v", events)
	}
	if !sawCollision {
		t.Fatalf("expected a collision event between closing ships on the same course, got %v", events)
	}
}

func TestDetectSamePlayerNoAttack(t *testing.T) {
	cfg := config.Default()
	m := newTestMap(cfg, 1)
	a := m.SpawnShip(0, geom.Location{X: 100, Y: 80}, cfg.ShipRadius, cfg.MaxShipHealth)
	b := m.SpawnShip(0, geom.Location{X: 140, Y: 80}, cfg.ShipRadius, cfg.MaxShipHealth)
	m.GetShip(a).Velocity = geom.Velocity2{Dx: 7}
	m.GetShip(b).Velocity = geom.Velocity2{Dx: -7}

	events := Detect(m, cfg)
	for _, e := range events {
		if e.Type == Attack {
			t.Fatalf("same-player ships must never generate attack events, got %v", e)
		}
	}
}

func TestDetectDesertionIgnoresNegativeVelocity(t *testing.T) {
	cfg := config.Default()
	m := newTestMap(cfg, 1)
	// Drifts left off the x=0 edge: only positive-velocity components are
	// considered, so this must not produce a desertion event.
	a := m.SpawnShip(0, geom.Location{X: 1, Y: 100}, cfg.ShipRadius, cfg.MaxShipHealth)
	m.GetShip(a).Velocity = geom.Velocity2{Dx: -5}

	events := Detect(m, cfg)
	for _, e := range events {
		if e.Type == Desertion {
			t.Fatalf("desertion off the negative-velocity edge should never be detected, got %v", e)
		}
	}
}

func TestDetectDesertionPositiveEdge(t *testing.T) {
	cfg := config.Default()
	m := newTestMap(cfg, 1)
	a := m.SpawnShip(0, geom.Location{X: 198, Y: 100}, cfg.ShipRadius, cfg.MaxShipHealth)
	m.GetShip(a).Velocity = geom.Velocity2{Dx: 5}

	events := Detect(m, cfg)
	found := false
	for _, e := range events {
		if e.Type == Desertion && e.A.Same(a) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a desertion event crossing the positive x edge, got %v", events)
	}
}
