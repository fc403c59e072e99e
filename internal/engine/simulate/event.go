// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package simulate implements event detection and resolution (components D
// and E): scanning a frame's motion for attacks, collisions and desertions,
// then applying them in quantized-time batches. Grounded in structure on
// server/physics.go's ForEntitiesAndOthers pairwise-resolution callback,
// even though the event semantics here (attack/collision/desertion, damage
// accounting, planet explosions) are novel to this engine.
package simulate

import "github.com/haliteii/engine/internal/engine"

// Type distinguishes the three kinds of event a frame scan can produce.
type Type uint8

const (
	Attack Type = iota
	Collision
	Desertion
)

// Event is a single detected, time-quantized occurrence within a frame.
// Desertion events carry the same id in both A and B.
type Event struct {
	Type Type
	A, B engine.EntityID
	Time float64 // quantized via roundEventTime, always in [0,1]
}

func idLess(a, b engine.EntityID) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	if a.Player != b.Player {
		return a.Player < b.Player
	}
	return a.Index < b.Index
}

// eventLess totally orders events by (Time, Type, A, B), using idLess to
// break ties on the entity IDs. Map iteration order and sort stability are
// both unspecified in Go, so every consumer of detected events must resolve
// ties through this ordering rather than relying on either.
func eventLess(a, b Event) bool {
	if a.Time != b.Time {
		return a.Time < b.Time
	}
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	if !a.A.Same(b.A) {
		return idLess(a.A, b.A)
	}
	return idLess(a.B, b.B)
}

// canonical returns (a,b) ordered so that the pair key is independent of
// detection order — the same physical event reached from either entity's
// scan must dedupe to one record.
func canonical(a, b engine.EntityID) (engine.EntityID, engine.EntityID) {
	if idLess(b, a) {
		return b, a
	}
	return a, b
}

type key struct {
	typ  Type
	a, b engine.EntityID
	t    float64
}

func eventKey(e Event) key {
	a, b := canonical(e.A, e.B)
	return key{typ: e.Type, a: a, b: b, t: e.Time}
}
