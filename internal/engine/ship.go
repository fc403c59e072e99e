// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import "github.com/haliteii/engine/internal/geom"

// DockingStatus is a ship's position in the dock/undock state machine
// (spec.md §3, §4.F-4): Undocked -(Dock)-> Docking -> Docked -(Undock)->
// Undocking -> Undocked.
type DockingStatus uint8

const (
	Undocked DockingStatus = iota
	Docking
	Docked
	Undocking
)

func (s DockingStatus) String() string {
	switch s {
	case Undocked:
		return "undocked"
	case Docking:
		return "docking"
	case Docked:
		return "docked"
	case Undocking:
		return "undocking"
	default:
		return "unknown"
	}
}

// NoPlanet is the sentinel for Ship.DockedPlanet when a ship isn't attached
// to any planet.
const NoPlanet = -1

// Ship is one player's vessel.
type Ship struct {
	Location geom.Location
	Velocity geom.Velocity2

	Health float64 // 0 < Health <= MaxShipHealth while alive
	Radius float64 // constant per ship, set from config.Constants.ShipRadius

	WeaponCooldown int // turns until next attack, >= 0

	DockingStatus   DockingStatus
	DockingProgress int // counts down to 0
	DockedPlanet    int // PlanetIndex, or NoPlanet

	alive   bool // membership in the Map's per-player slice
	pending bool // marked by UnsafeKillEntity, committed by CleanupEntities
}

// Alive reports whether the ship is currently present in the world.
func (s *Ship) Alive() bool {
	return s != nil && s.alive && !s.pending
}

// Undock resets docking-related state back to Undocked with no planet. Used
// both by the normal Undocking countdown and by forced detachment when a
// ship's planet is destroyed out from under it.
func (s *Ship) Undock() {
	s.DockingStatus = Undocked
	s.DockingProgress = 0
	s.DockedPlanet = NoPlanet
}
