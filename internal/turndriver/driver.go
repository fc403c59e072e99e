// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package turndriver implements the per-turn orchestration (component F):
// move retrieval, command application, event detection/resolution, the
// docking state machine, production and spawning, drag and cooldowns, and
// the end-of-game termination check. Grounded in structure on server/hub.go:
// a single goroutine owns all mutation of the Map, the way Hub.run is the
// only goroutine that ever touches *sector.World.
package turndriver

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/haliteii/engine/internal/config"
	"github.com/haliteii/engine/internal/engine"
	"github.com/haliteii/engine/internal/engine/simulate"
	"github.com/haliteii/engine/internal/metrics"
	"github.com/haliteii/engine/internal/moveio"
	"github.com/haliteii/engine/internal/transcript"
)

// Driver runs one game to completion, turn by turn.
type Driver struct {
	Map      *engine.Map
	Config   config.Constants
	Sources  []moveio.Source // one per player, indexed by PlayerID
	Recorder *transcript.Recorder
	MaxTurns int
	Rand     *rand.Rand

	// Log receives one line per turn for operational visibility, mirroring
	// server/log.go's plain fmt-based turn/period logging rather than a
	// structured logging library.
	Log func(format string, args ...interface{})

	// Metrics, if set, is notified of per-turn timing and counts (component
	// metrics). Left nil in tests that don't care about observability.
	Metrics interface {
		ObserveTurn(durationSeconds float64, events, destroyed int)
	}

	// TurnLogPath, if non-empty, receives one CSV row per turn
	// (turn,duration,events,destroyed) via metrics.AppendCSV.
	TurnLogPath string

	turn int
}

// New builds a Driver ready to run, with Rand seeded from seed. No turn
// step currently draws from Rand, so the seed does not affect the game.
func New(m *engine.Map, cfg config.Constants, sources []moveio.Source, rec *transcript.Recorder, seed int64) *Driver {
	return &Driver{
		Map:      m,
		Config:   cfg,
		Sources:  sources,
		Recorder: rec,
		MaxTurns: config.MaxTurns(m.Width(), m.Height()),
		Rand:     rand.New(rand.NewSource(seed)),
		Log:      defaultLog,
	}
}

// Run drives turns until the game ends (a single player remains, or the
// turn budget is exhausted) or ctx is cancelled.
func (d *Driver) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		over, winner := d.Step(ctx)
		if over {
			d.Log("game over after turn %d, winner=%v", d.turn, winner)
			return nil
		}
	}
}

// Step plays exactly one turn and reports whether the game has ended.
//
// Component ordering within a turn is fixed: retrieve moves, tick docking,
// then the inner micro-step loop (apply this step's queued moves, detect
// and resolve events, commit movement), then production, drag, cooldowns.
func (d *Driver) Step(ctx context.Context) (over bool, winner engine.PlayerID) {
	start := time.Now()
	turn := d.turn
	d.turn++

	moves := d.collectMoves(ctx, turn)

	tickDocking(d.Map, d.Config)
	clearFrozenPlanets(d.Map)

	var applied []transcript.Event
	totalEvents := 0
	maxQueued := d.Config.MaxQueuedMoves
	if maxQueued < 1 {
		maxQueued = 1
	}
	for moveNo := 0; moveNo < maxQueued; moveNo++ {
		d.applyMoves(movesForStep(moves, moveNo))

		events := simulate.Detect(d.Map, d.Config)
		totalEvents += len(events)
		applied = append(applied, simulate.Resolve(d.Map, d.Config, events, nil)...)

		commitMovement(d.Map)
	}

	spawned := d.runProduction()
	applyDrag(d.Map, d.Config)
	tickWeaponCooldowns(d.Map)

	if d.Recorder != nil {
		d.Recorder.RecordTurn(turn, append(applied, spawned...), d.Map)
	}

	destroyed := 0
	for _, e := range applied {
		if e.Kind == transcript.EventDestroyed {
			destroyed++
		}
	}
	elapsed := time.Since(start).Seconds()

	if d.Metrics != nil {
		d.Metrics.ObserveTurn(elapsed, totalEvents, destroyed)
	}
	if d.TurnLogPath != "" {
		if err := metrics.AppendCSV(d.TurnLogPath, []interface{}{turn, elapsed, totalEvents, destroyed}); err != nil {
			d.Log("turn log write failed: %v", err)
		}
	}

	return d.checkTermination(turn)
}

func (d *Driver) checkTermination(turn int) (over bool, winner engine.PlayerID) {
	alivePlayers := 0
	var last engine.PlayerID
	for p := 0; p < d.Map.NumPlayers(); p++ {
		if d.Map.AliveShipCount(engine.PlayerID(p)) > 0 {
			alivePlayers++
			last = engine.PlayerID(p)
		}
	}
	if alivePlayers <= 1 {
		return true, last
	}
	if turn+1 >= d.MaxTurns {
		return true, engine.PlayerID(-1)
	}
	return false, engine.PlayerID(-1)
}

func defaultLog(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}
