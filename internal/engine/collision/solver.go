// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package collision implements the closed-form quadratic time-to-contact
// solver (component C). No teacher code computes this exactly — mk48
// resolves collisions with swept rectangle (SAT) tests instead of an exact
// time of impact — so this is new code written in the spec's own formulas,
// kept in the small-pure-function style of world/collision.go's
// satCollision: no receivers beyond the values involved, early returns,
// no state.
package collision

import "math"

// Time returns a time t at which the distance between two points moving
// at constant velocity equals r, or (false, _) if there is none: the
// smaller root when both roots are >= 0, otherwise the larger one. With a
// nonzero relative velocity the reported t can be negative (a single
// negative root, or two negative roots), so callers filter t to [0,1].
// The degenerate branches below are load-bearing for determinism
// (spec.md §4.C, §9 note 3) and must not be simplified or reordered.
func Time(r, l1x, l1y, l2x, l2y, v1x, v1y, v2x, v2y float64) (hit bool, t float64) {
	dx := l1x - l2x
	dy := l1y - l2y
	deltaVx := v1x - v2x
	deltaVy := v1y - v2y

	a := deltaVx*deltaVx + deltaVy*deltaVy
	b := 2 * (dx*deltaVx + dy*deltaVy)
	c := dx*dx+dy*dy - r*r

	if a == 0 {
		if b == 0 {
			if c <= 0 {
				return true, 0
			}
			return false, 0
		}
		t = -c / b
		return t >= 0, t
	}

	delta := b*b - 4*a*c
	if delta < 0 {
		return false, 0
	}
	if delta == 0 {
		return true, -b / (2 * a)
	}

	sqrtDelta := math.Sqrt(delta)
	t1 := -b + sqrtDelta
	t2 := -b - sqrtDelta

	if t1 >= 0 && t2 >= 0 {
		return true, math.Min(t1, t2) / (2 * a)
	}
	return true, math.Max(t1, t2) / (2 * a)
}
