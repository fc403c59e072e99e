// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transcript is the recorder (component G): it captures per-turn
// map snapshots and events for the external replay serializer (applied
// moves are not captured), and hands events off as a tagged variant rather than the
// polymorphic base-Event/virtual-serialize() design of the system this
// engine replaces (spec.md §9: "re-architect as a tagged variant ... no
// subclassing").
package transcript

import "github.com/haliteii/engine/internal/engine"
import "github.com/haliteii/engine/internal/geom"

// EventKind tags which of the three event shapes an Event carries.
type EventKind uint8

const (
	EventDestroyed EventKind = iota
	EventAttack
	EventSpawn
)

// Event is the tagged variant described in spec.md §4.G / §9. Only the
// fields relevant to Kind are populated; the recorder does not interpret
// these records, it only forwards them to Marshal.
type Event struct {
	Kind EventKind
	Time float64

	// EventDestroyed
	DestroyedID       engine.EntityID
	DestroyedLocation geom.Location
	DestroyedRadius   float64

	// EventAttack
	AttackerID       engine.EntityID
	AttackerLocation geom.Location
	TargetIDs        []engine.EntityID
	TargetLocations  []geom.Location

	// EventSpawn
	NewShipID      engine.EntityID
	SpawnLocation  geom.Location
	PlanetLocation geom.Location
}

// Destroyed builds a EventDestroyed record.
func Destroyed(id engine.EntityID, loc geom.Location, radius, t float64) Event {
	return Event{Kind: EventDestroyed, Time: t, DestroyedID: id, DestroyedLocation: loc, DestroyedRadius: radius}
}

// Attack builds a EventAttack record for one attacker and its targets.
func Attack(attacker engine.EntityID, attackerLoc geom.Location, targets []engine.EntityID, targetLocs []geom.Location, t float64) Event {
	return Event{
		Kind:             EventAttack,
		Time:             t,
		AttackerID:       attacker,
		AttackerLocation: attackerLoc,
		TargetIDs:        targets,
		TargetLocations:  targetLocs,
	}
}

// Spawn builds a EventSpawn record.
func Spawn(newShip engine.EntityID, spawnLoc, planetLoc geom.Location) Event {
	return Event{Kind: EventSpawn, NewShipID: newShip, SpawnLocation: spawnLoc, PlanetLocation: planetLoc}
}
