// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package geom holds the geometric primitives of the world model (component
// A): locations, velocities and the scalar helpers the collision solver and
// event detector are built on. Values, not fixed-point wire encodings —
// everything here is float64 so the quadratic collision solver in
// internal/engine/collision stays exact enough to reproduce byte-identical
// transcripts (see spec.md §4.C, §8).
package geom

import "math"

// Location is a point in the map's [0,W)x[0,H) rectangle.
type Location struct {
	X, Y float64
}

// Velocity2 is a 2D velocity in units/turn.
type Velocity2 struct {
	Dx, Dy float64
}

// Distance returns the Euclidean distance between two locations.
func Distance(a, b Location) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// DistanceSquared avoids the sqrt when only comparison is needed.
func DistanceSquared(a, b Location) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// MoveBy advances a location by velocity*t.
func (l Location) MoveBy(v Velocity2, t float64) Location {
	return Location{X: l.X + v.Dx*t, Y: l.Y + v.Dy*t}
}

// Sub returns the vector from b to a (a-b).
func (l Location) Sub(b Location) Velocity2 {
	return Velocity2{Dx: l.X - b.X, Dy: l.Y - b.Y}
}

// Magnitude is the speed represented by the velocity.
func (v Velocity2) Magnitude() float64 {
	return math.Hypot(v.Dx, v.Dy)
}

// Angle is the direction of travel, in radians, atan2(dy,dx).
func (v Velocity2) Angle() float64 {
	return math.Atan2(v.Dy, v.Dx)
}

// AccelerateBy adds a thrust applied at the given angle (radians).
func (v Velocity2) AccelerateBy(thrust, angle float64) Velocity2 {
	return Velocity2{
		Dx: v.Dx + thrust*math.Cos(angle),
		Dy: v.Dy + thrust*math.Sin(angle),
	}
}

// DegreesToRadians converts an integer degree move argument (§6) to radians.
func DegreesToRadians(deg int) float64 {
	return float64(deg) * math.Pi / 180.0
}

// Zero reports whether the velocity is exactly zero (used by the docking
// precondition in §4.F-4, which requires velocity exactly zero).
func (v Velocity2) Zero() bool {
	return v.Dx == 0 && v.Dy == 0
}
