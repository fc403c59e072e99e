// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package moveio defines the boundary between the turn driver and whatever
// transport feeds it player commands. The network/process layer that
// actually talks to a bot is out of this engine's scope; this package only
// fixes the contract (Source) and ships one concrete adapter (a local
// subprocess) so the contract is provably satisfiable.
package moveio

import (
	"context"
	"time"

	"github.com/haliteii/engine/internal/engine"
)

// Kind distinguishes the three move commands a ship may receive in a turn.
type Kind uint8

const (
	Thrust Kind = iota
	Dock
	Undock
)

// Move is one command queued against a single ship. Only the fields
// relevant to Kind are meaningful: Thrust uses Magnitude/Angle, Dock uses
// Planet, Undock uses neither. MoveNo is the ship's occurrence index for
// this turn (0 for its first command, 1 for its second, ...) and selects
// which micro-step of the turn driver's inner loop applies it; a ship that
// submits only one command this turn occupies MoveNo 0 and is a no-op in
// every later micro-step.
type Move struct {
	Kind      Kind
	Ship      engine.EntityID
	Magnitude float64 // Thrust only, clamped to config.Constants.MaxAcceleration
	Angle     float64 // Thrust only, radians
	Planet    engine.EntityID
	MoveNo    int
}

// Source retrieves one player's queued moves for the turn that is about to
// play out. Implementations must respect ctx's deadline: a player that does
// not respond in time is treated as having issued no moves this turn. The
// player stays in the game; a timeout does not remove its ships or planets.
type Source interface {
	RequestMoves(ctx context.Context, player engine.PlayerID, turn int) ([]Move, error)
}

// DefaultTimeout bounds how long the turn driver waits for a single
// player's move source before treating them as having submitted nothing.
const DefaultTimeout = 2 * time.Second
