// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package simulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haliteii/engine/internal/config"
	"github.com/haliteii/engine/internal/engine"
	"github.com/haliteii/engine/internal/geom"
)

func TestResolveShipPlanetCollisionDamagesBoth(t *testing.T) {
	cfg := config.Default()
	planets := []engine.Planet{{Location: geom.Location{X: 50, Y: 50}, Radius: 3, DockingSpots: 1, Health: 40}}
	m := engine.NewMap(200, 200, planets, 1)
	ship := m.SpawnShip(0, geom.Location{X: 53.2, Y: 50}, cfg.ShipRadius, 30)

	records := Resolve(m, cfg, []Event{{Type: Collision, A: ship, B: engine.PlanetID(0), Time: 0}}, nil)
	require.NotEmpty(t, records, "a ship-planet collision should produce at least one transcript record")

	planet := m.GetPlanet(engine.PlanetID(0))
	require.NotNil(t, planet)
	assert.False(t, m.GetShip(ship).Alive(), "a ship-planet collision applies the ship's own HP to itself, an instant kill")
	assert.Equal(t, 10.0, planet.Health, "the planet takes the same ship-HP damage and survives at 40-30")
}

func TestResolveMultipleBatchesCommitBetween(t *testing.T) {
	cfg := config.Default()
	m := engine.NewMap(200, 200, nil, 3)
	a := m.SpawnShip(0, geom.Location{X: 0, Y: 0}, cfg.ShipRadius, 10)
	b := m.SpawnShip(1, geom.Location{X: 1, Y: 0}, cfg.ShipRadius, 10)
	c := m.SpawnShip(2, geom.Location{X: 2, Y: 0}, cfg.ShipRadius, 10)

	events := []Event{
		{Type: Collision, A: a, B: b, Time: 0},
		{Type: Collision, A: b, B: c, Time: 0.5},
	}

	records := Resolve(m, cfg, events, nil)
	assert.NotEmpty(t, records)
	assert.False(t, m.GetShip(a).Alive())
	assert.False(t, m.GetShip(b).Alive())
}
