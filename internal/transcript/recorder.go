// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"github.com/google/uuid"

	"github.com/haliteii/engine/internal/config"
	"github.com/haliteii/engine/internal/engine"
	"github.com/haliteii/engine/internal/geom"
)

// Header is written once, before the first Frame, and carries everything a
// replay viewer needs to interpret the frames that follow without access to
// the live Constants value the match was run with. GameID is an opaque
// identifier distinct from the map generator's numeric seed: two games
// generated from the same seed still get distinct GameIDs.
type Header struct {
	GameID        string
	Width, Height float64
	NumPlayers    int
	Constants     config.Constants
}

// ShipSnapshot is one ship's state as recorded at the end of a turn.
type ShipSnapshot struct {
	ID              engine.EntityID
	Location        geom.Location
	Velocity        geom.Velocity2
	Health          float64
	DockingStatus   engine.DockingStatus
	DockingProgress int
	DockedPlanet    int
}

// PlanetSnapshot is one planet's state as recorded at the end of a turn.
type PlanetSnapshot struct {
	ID                  engine.EntityID
	Health              float64
	Owned               bool
	Owner               engine.PlayerID
	DockedShips         []int
	RemainingProduction float64
}

// Frame is one turn's record: every event the turn's detection/resolution
// and production passes produced, and the resulting map state. The moves
// applied during the turn are not recorded.
type Frame struct {
	Turn    int
	Events  []Event
	Ships   []ShipSnapshot
	Planets []PlanetSnapshot
}

// Recorder accumulates a header and a sequence of frames for one game and
// serializes them as newline-delimited JSON (one header line, then one
// frame line per turn) so a viewer can stream a transcript without holding
// the whole game in memory.
type Recorder struct {
	header Header
	frames []Frame
}

// NewRecorder starts a new recording for a game of the given dimensions,
// player count and ruleset, stamping a fresh GameID.
func NewRecorder(width, height float64, numPlayers int, cfg config.Constants) *Recorder {
	return &Recorder{header: Header{
		GameID:     uuid.New().String(),
		Width:      width,
		Height:     height,
		NumPlayers: numPlayers,
		Constants:  cfg,
	}}
}

// RecordTurn appends one frame, snapshotting every alive entity in m.
func (r *Recorder) RecordTurn(turn int, events []Event, m *engine.Map) {
	frame := Frame{Turn: turn, Events: events}

	m.ForEachShip(func(id engine.EntityID, s *engine.Ship) {
		frame.Ships = append(frame.Ships, ShipSnapshot{
			ID:              id,
			Location:        s.Location,
			Velocity:        s.Velocity,
			Health:          s.Health,
			DockingStatus:   s.DockingStatus,
			DockingProgress: s.DockingProgress,
			DockedPlanet:    s.DockedPlanet,
		})
	})
	m.ForEachPlanet(func(id engine.EntityID, p *engine.Planet) {
		frame.Planets = append(frame.Planets, PlanetSnapshot{
			ID:                  id,
			Health:              p.Health,
			Owned:               p.Owned,
			Owner:               p.Owner,
			DockedShips:         append([]int(nil), p.DockedShips...),
			RemainingProduction: p.RemainingProduction,
		})
	})

	r.frames = append(r.frames, frame)
}

// Header returns the recorded game's header.
func (r *Recorder) Header() Header {
	return r.header
}

// Frames returns every frame recorded so far, in turn order.
func (r *Recorder) Frames() []Frame {
	return r.frames
}

// WriteTo serializes the header followed by every frame as newline
// delimited JSON onto w.
func (r *Recorder) WriteTo(w interface{ Write([]byte) (int, error) }) error {
	headerBytes, err := Marshal(r.header)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(headerBytes, '\n')); err != nil {
		return err
	}
	for _, f := range r.frames {
		b, err := Marshal(f)
		if err != nil {
			return err
		}
		if _, err := w.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}
