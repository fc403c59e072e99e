// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package simulate

import (
	"testing"

	"github.com/haliteii/engine/internal/config"
	"github.com/haliteii/engine/internal/engine"
	"github.com/haliteii/engine/internal/geom"
	"github.com/haliteii/engine/internal/transcript"
)

func TestResolveShipShipCollisionWeakerDies(t *testing.T) {
	cfg := config.Default()
	m := engine.NewMap(200, 200, nil, 2)
	a := m.SpawnShip(0, geom.Location{X: 10, Y: 10}, cfg.ShipRadius, 100)
	b := m.SpawnShip(1, geom.Location{X: 10.5, Y: 10}, cfg.ShipRadius, 50)

	records := Resolve(m, cfg, []Event{{Type: Collision, A: a, B: b, Time: 0}}, nil)

	if !m.GetShip(a).Alive() || m.GetShip(a).Health != 50 {
		t.Fatalf("stronger ship should survive having lost the weaker one's HP, got alive=%v health=%v", m.GetShip(a).Alive(), m.GetShip(a).Health)
	}
	if m.GetShip(b).Alive() {
		t.Fatalf("weaker ship (50hp) hit by 100 dmg should die")
	}

	var sawDestroyed bool
	for _, r := range records {
		if r.Kind == transcript.EventDestroyed && r.DestroyedID.Same(b) {
			sawDestroyed = true
		}
	}
	if !sawDestroyed {
		t.Fatalf("expected a destroyed record for the dead ship, got %v", records)
	}
}

func TestResolveAttackSplitsAcrossTargets(t *testing.T) {
	cfg := config.Default()
	m := engine.NewMap(200, 200, nil, 2)
	attacker := m.SpawnShip(0, geom.Location{X: 0, Y: 0}, cfg.ShipRadius, cfg.MaxShipHealth)
	t1 := m.SpawnShip(1, geom.Location{X: 1, Y: 0}, cfg.ShipRadius, cfg.MaxShipHealth)
	t2 := m.SpawnShip(1, geom.Location{X: 2, Y: 0}, cfg.ShipRadius, cfg.MaxShipHealth)

	dealt := map[engine.PlayerID]float64{}
	Resolve(m, cfg, []Event{
		{Type: Attack, A: attacker, B: t1, Time: 0},
		{Type: Attack, A: attacker, B: t2, Time: 0},
	}, dealt)

	want := cfg.MaxShipHealth - cfg.WeaponDamage/2
	if m.GetShip(t1).Health != want || m.GetShip(t2).Health != want {
		t.Fatalf("expected damage split evenly across 2 targets, got %v, %v", m.GetShip(t1).Health, m.GetShip(t2).Health)
	}
	if m.GetShip(attacker).WeaponCooldown != cfg.WeaponCooldown {
		t.Fatalf("attacker should enter weapon cooldown after attacking")
	}
	if dealt[0] != cfg.WeaponDamage*2 {
		t.Fatalf("damage-dealt tally should count full WEAPON_DAMAGE per target added, got %v", dealt[0])
	}
}

func TestResolveDesertionKillsShip(t *testing.T) {
	cfg := config.Default()
	m := engine.NewMap(200, 200, nil, 1)
	a := m.SpawnShip(0, geom.Location{X: 198, Y: 100}, cfg.ShipRadius, cfg.MaxShipHealth)

	Resolve(m, cfg, []Event{{Type: Desertion, A: a, B: a, Time: 0.4}}, nil)

	if m.GetShip(a).Alive() {
		t.Fatalf("desertion event should kill the ship outright")
	}
}

func TestKillEntityIdempotent(t *testing.T) {
	cfg := config.Default()
	m := engine.NewMap(200, 200, nil, 1)
	a := m.SpawnShip(0, geom.Location{X: 10, Y: 10}, cfg.ShipRadius, 1)

	first := killEntity(m, cfg, a, 0)
	m.CleanupEntities()
	second := killEntity(m, cfg, a, 0)

	if len(first) != 1 {
		t.Fatalf("expected one destroyed record from the first kill, got %v", first)
	}
	if second != nil {
		t.Fatalf("killing an already-dead entity must be a no-op, got %v", second)
	}
}

func TestPlanetExplosionInstantKillsInsideRadius(t *testing.T) {
	cfg := config.Default()
	planets := []engine.Planet{{Location: geom.Location{X: 100, Y: 100}, Radius: 5, DockingSpots: 2}}
	m := engine.NewMap(200, 200, planets, 1)
	near := m.SpawnShip(0, geom.Location{X: 102, Y: 100}, cfg.ShipRadius, cfg.MaxShipHealth)
	far := m.SpawnShip(0, geom.Location{X: 100, Y: 100 + 5 + cfg.ExplosionRadius + 50}, cfg.ShipRadius, cfg.MaxShipHealth)

	records := killEntity(m, cfg, engine.PlanetID(0), 0)
	_ = records

	if m.GetShip(near).Alive() {
		t.Fatalf("ship inside the planet's own radius should be destroyed by the explosion")
	}
	if !m.GetShip(far).Alive() {
		t.Fatalf("ship well outside the explosion radius should be unaffected")
	}
}
