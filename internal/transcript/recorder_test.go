// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"bytes"
	"strings"
	"testing"

	"github.com/haliteii/engine/internal/config"
	"github.com/haliteii/engine/internal/engine"
	"github.com/haliteii/engine/internal/geom"
)

func TestRecorderWriteToEmitsHeaderThenFrames(t *testing.T) {
	cfg := config.Default()
	m := engine.NewMap(100, 100, nil, 1)
	m.SpawnShip(0, geom.Location{X: 1, Y: 1}, cfg.ShipRadius, cfg.MaxShipHealth)

	r := NewRecorder(100, 100, 1, cfg)
	r.RecordTurn(0, nil, m)
	r.RecordTurn(1, []Event{Destroyed(engine.ShipID(0, 0), geom.Location{X: 1, Y: 1}, cfg.ShipRadius, 0.5)}, m)

	var buf bytes.Buffer
	if err := r.WriteTo(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 1 header line + 2 frame lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"NumPlayers":1`) {
		t.Fatalf("header line missing expected field: %s", lines[0])
	}
	if !strings.Contains(lines[2], "ship(0,0)") {
		t.Fatalf("expected compact EntityID encoding in frame, got %s", lines[2])
	}
}
