// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package httpapi serves the admin status endpoint and a read-only
// spectator feed over a websocket, per SPEC_FULL.md's ambient/domain stack.
// Compiling a frame for the wire is the one place this engine deliberately
// drops back to float32 (component A/C stay float64 for determinism); a
// spectator only ever renders the result, so the teacher's math32 precision
// is the right tool here, not an engine-wide compromise.
package httpapi

import (
	"github.com/chewxy/math32"

	"github.com/haliteii/engine/internal/engine"
	"github.com/haliteii/engine/internal/geom"
)

// WireShip is a spectator-facing, float32 ship record: position, a single
// speed+heading pair instead of a velocity vector, and just enough status
// to render docking state.
type WireShip struct {
	ID      string  `json:"id"`
	X       float32 `json:"x"`
	Y       float32 `json:"y"`
	Speed   float32 `json:"speed"`
	Heading float32 `json:"heading"`
	Health  float32 `json:"health"`
	Docking uint8   `json:"docking"`
}

// WirePlanet is a spectator-facing, float32 planet record.
type WirePlanet struct {
	ID     string  `json:"id"`
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Health float32 `json:"health"`
	Owner  int32   `json:"owner"`
	Owned  bool    `json:"owned"`
}

// WireFrame is one turn's spectator snapshot.
type WireFrame struct {
	Turn    int32        `json:"turn"`
	Ships   []WireShip   `json:"ships"`
	Planets []WirePlanet `json:"planets"`
}

// EncodeFrame compresses the live map into a WireFrame, converting each
// ship's velocity vector into a speed/heading pair with math32 (the
// teacher's own float32 toolkit) rather than carrying raw float64 Dx/Dy
// across the wire.
func EncodeFrame(turn int, m *engine.Map) WireFrame {
	frame := WireFrame{Turn: int32(turn)}

	m.ForEachShip(func(id engine.EntityID, s *engine.Ship) {
		frame.Ships = append(frame.Ships, WireShip{
			ID:      id.String(),
			X:       float32(s.Location.X),
			Y:       float32(s.Location.Y),
			Speed:   velocitySpeed(s.Velocity),
			Heading: velocityHeading(s.Velocity),
			Health:  float32(s.Health),
			Docking: uint8(s.DockingStatus),
		})
	})
	m.ForEachPlanet(func(id engine.EntityID, p *engine.Planet) {
		frame.Planets = append(frame.Planets, WirePlanet{
			ID:     id.String(),
			X:      float32(p.Location.X),
			Y:      float32(p.Location.Y),
			Health: float32(p.Health),
			Owner:  int32(p.Owner),
			Owned:  p.Owned,
		})
	})

	return frame
}

func velocitySpeed(v geom.Velocity2) float32 {
	return math32.Hypot(float32(v.Dx), float32(v.Dy))
}

func velocityHeading(v geom.Velocity2) float32 {
	return math32.Atan2(float32(v.Dy), float32(v.Dx))
}
