// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package turndriver

import (
	"context"
	"testing"

	"github.com/haliteii/engine/internal/config"
	"github.com/haliteii/engine/internal/engine"
	"github.com/haliteii/engine/internal/geom"
	"github.com/haliteii/engine/internal/moveio"
	"github.com/haliteii/engine/internal/transcript"
)

type stubSource struct {
	moves []moveio.Move
}

func (s stubSource) RequestMoves(ctx context.Context, player engine.PlayerID, turn int) ([]moveio.Move, error) {
	return s.moves, nil
}

func TestStepTerminatesWhenOnePlayerRemains(t *testing.T) {
	cfg := config.Default()
	m := engine.NewMap(100, 100, nil, 2)
	m.SpawnShip(0, geom.Location{X: 10, Y: 10}, cfg.ShipRadius, cfg.MaxShipHealth)
	// Player 1 starts with no ships, so the game should already be over.

	d := New(m, cfg, []moveio.Source{stubSource{}, stubSource{}}, nil, 1)
	over, winner := d.Step(context.Background())

	if !over {
		t.Fatalf("expected the game to end immediately with only one player fielding ships")
	}
	if winner != 0 {
		t.Fatalf("expected player 0 to win, got %v", winner)
	}
}

func TestStepAppliesThrustAndRecordsFrame(t *testing.T) {
	cfg := config.Default()
	m := engine.NewMap(100, 100, nil, 2)
	a := m.SpawnShip(0, geom.Location{X: 10, Y: 10}, cfg.ShipRadius, cfg.MaxShipHealth)
	m.SpawnShip(1, geom.Location{X: 90, Y: 90}, cfg.ShipRadius, cfg.MaxShipHealth)

	rec := transcript.NewRecorder(100, 100, 2, cfg)
	sources := []moveio.Source{
		stubSource{moves: []moveio.Move{{Kind: moveio.Thrust, Ship: a, Magnitude: 5, Angle: 0}}},
		stubSource{},
	}
	d := New(m, cfg, sources, rec, 1)

	d.Step(context.Background())

	if m.GetShip(a).Location.X <= 10 {
		t.Fatalf("expected ship to have moved after thrusting, got %+v", m.GetShip(a).Location)
	}
	if len(rec.Frames()) != 1 {
		t.Fatalf("expected exactly one recorded frame, got %d", len(rec.Frames()))
	}
}

func TestDockCompletesAfterDockTurns(t *testing.T) {
	cfg := config.Default()
	planets := []engine.Planet{{Location: geom.Location{X: 50, Y: 50}, Radius: 2, DockingSpots: 1}}
	m := engine.NewMap(100, 100, planets, 1)
	ship := m.SpawnShip(0, geom.Location{X: 50 + 2 + cfg.DockRadius, Y: 50}, cfg.ShipRadius, cfg.MaxShipHealth)

	d := New(m, cfg, []moveio.Source{stubSource{
		moves: []moveio.Move{{Kind: moveio.Dock, Ship: ship, Planet: engine.PlanetID(0)}},
	}}, nil, 1)

	d.Step(context.Background()) // issues the dock command
	d.Sources[0] = stubSource{}
	for i := 0; i < cfg.DockTurns; i++ {
		d.Step(context.Background())
	}

	if m.GetShip(ship).DockingStatus != engine.Docked {
		t.Fatalf("expected ship to have finished docking, got %v", m.GetShip(ship).DockingStatus)
	}
}
