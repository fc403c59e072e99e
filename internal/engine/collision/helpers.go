// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package collision

import "github.com/haliteii/engine/internal/geom"

// TimeBetween is the geom.Location/Velocity2 convenience wrapper around
// Time. Ship-planet variants pass a zero velocity for the stationary body,
// per spec.md §4.C.
func TimeBetween(r float64, l1, l2 geom.Location, v1, v2 geom.Velocity2) (hit bool, t float64) {
	return Time(r, l1.X, l1.Y, l2.X, l2.Y, v1.Dx, v1.Dy, v2.Dx, v2.Dy)
}
