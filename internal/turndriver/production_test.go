// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package turndriver

import (
	"math"
	"math/rand"
	"testing"

	"github.com/haliteii/engine/internal/config"
	"github.com/haliteii/engine/internal/engine"
	"github.com/haliteii/engine/internal/geom"
)

func newDriverForProduction(m *engine.Map, cfg config.Constants) *Driver {
	return &Driver{Map: m, Config: cfg, Rand: rand.New(rand.NewSource(1)), Log: func(string, ...interface{}) {}}
}

func TestRunProductionAccumulatesAndSpawns(t *testing.T) {
	cfg := config.Default()
	planet := engine.Planet{
		Location:            geom.Location{X: 50, Y: 50},
		Radius:              3,
		DockingSpots:        2,
		Health:              100,
		Owned:               true,
		Owner:               0,
		RemainingProduction: 1000,
	}
	m := engine.NewMap(100, 100, []engine.Planet{planet}, 1)
	ship := m.SpawnShip(0, geom.Location{X: 52, Y: 50}, cfg.ShipRadius, cfg.MaxShipHealth)
	p := m.GetPlanet(engine.PlanetID(0))
	p.DockedShips = []int{ship.Index}

	d := newDriverForProduction(m, cfg)

	before := countShips(m, engine.PlayerID(0))
	turnsNeeded := 0
	for countShips(m, engine.PlayerID(0)) == before && turnsNeeded < 1000 {
		d.runProduction()
		turnsNeeded++
	}
	if turnsNeeded == 0 || turnsNeeded >= 1000 {
		t.Fatalf("expected production to accumulate toward PRODUCTION_PER_SHIP over a bounded number of turns, took %d", turnsNeeded)
	}

	// The ship spawns in the same call that carries current production to
	// PRODUCTION_PER_SHIP, and its cost is deducted from the bank.
	wantTurns := int(math.Ceil(cfg.ProductionPerShip / cfg.BaseProductivity))
	wantLeft := float64(wantTurns)*cfg.BaseProductivity - cfg.ProductionPerShip
	if turnsNeeded != wantTurns || p.CurrentProduction != wantLeft {
		t.Fatalf("expected a new ship on turn %d with %v production left, got turn %d with %v", wantTurns, wantLeft, turnsNeeded, p.CurrentProduction)
	}
}

func TestRunProductionStopsWhenBudgetDepleted(t *testing.T) {
	cfg := config.Default()
	planet := engine.Planet{
		Location:            geom.Location{X: 50, Y: 50},
		Radius:              3,
		DockingSpots:        1,
		Health:              100,
		Owned:               true,
		Owner:               0,
		RemainingProduction: 0,
	}
	m := engine.NewMap(100, 100, []engine.Planet{planet}, 1)
	ship := m.SpawnShip(0, geom.Location{X: 52, Y: 50}, cfg.ShipRadius, cfg.MaxShipHealth)
	p := m.GetPlanet(engine.PlanetID(0))
	p.DockedShips = []int{ship.Index}

	d := newDriverForProduction(m, cfg)
	for i := 0; i < 50; i++ {
		d.runProduction()
	}

	if p.CurrentProduction != 0 {
		t.Fatalf("expected a planet with zero remaining production to never accumulate current production, got %v", p.CurrentProduction)
	}
	if countShips(m, engine.PlayerID(0)) != 1 {
		t.Fatalf("expected no ship spawned once remaining production is exhausted")
	}
}

func TestFindSpawnSiteIsDeterministicAndNearestToCenter(t *testing.T) {
	cfg := config.Default()
	planet := engine.Planet{Location: geom.Location{X: 10, Y: 50}, Radius: 3, DockingSpots: 1}
	m := engine.NewMap(100, 100, []engine.Planet{planet}, 1)
	p := m.GetPlanet(engine.PlanetID(0))

	d := newDriverForProduction(m, cfg)

	loc1, ok1 := d.findSpawnSite(p)
	loc2, ok2 := d.findSpawnSite(p)
	if !ok1 || !ok2 {
		t.Fatalf("expected a spawn site to be found on an empty map")
	}
	if loc1 != loc2 {
		t.Fatalf("expected findSpawnSite to be deterministic, got %+v then %+v", loc1, loc2)
	}

	center := geom.Location{X: m.Width() / 2, Y: m.Height() / 2}
	if geom.Distance(loc1, p.Location) >= float64(cfg.SpawnRadius)+p.Radius+1 || geom.Distance(loc1, center) >= geom.Distance(p.Location, center) {
		t.Fatalf("expected the chosen site to be near the planet and biased toward map center, got %+v", loc1)
	}
}

func countShips(m *engine.Map, player engine.PlayerID) int {
	n := 0
	m.ForEachShip(func(id engine.EntityID, _ *engine.Ship) {
		if id.Player == player {
			n++
		}
	})
	return n
}
