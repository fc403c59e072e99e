// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package turndriver

import (
	"context"
	"sync"

	"github.com/haliteii/engine/internal/engine"
	"github.com/haliteii/engine/internal/moveio"
)

// collectMoves fans a RequestMoves call out to every player's Source
// concurrently and joins the results, the way spawn.go's Spawn fans barrel
// placement out across a WaitGroup rather than serializing player I/O
// behind the turn loop. A player whose source errors or times out simply
// contributes no moves this turn.
func (d *Driver) collectMoves(ctx context.Context, turn int) []moveio.Move {
	perPlayer := make([][]moveio.Move, len(d.Sources))

	var wg sync.WaitGroup
	for i, src := range d.Sources {
		if src == nil {
			continue
		}
		wg.Add(1)
		go func(i int, src moveio.Source) {
			defer wg.Done()
			reqCtx, cancel := context.WithTimeout(ctx, moveio.DefaultTimeout)
			defer cancel()
			moves, err := src.RequestMoves(reqCtx, engine.PlayerID(i), turn)
			if err != nil {
				d.Log("player %d move request failed: %v", i, err)
				return
			}
			perPlayer[i] = moves
		}(i, src)
	}
	wg.Wait()

	var all []moveio.Move
	for _, moves := range perPlayer {
		all = append(all, moves...)
	}
	return all
}

// movesForStep filters a turn's full retrieved move set down to the
// commands queued at micro-step moveNo, preserving collection order.
func movesForStep(moves []moveio.Move, moveNo int) []moveio.Move {
	var out []moveio.Move
	for _, mv := range moves {
		if mv.MoveNo == moveNo {
			out = append(out, mv)
		}
	}
	return out
}
