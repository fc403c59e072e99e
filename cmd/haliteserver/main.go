// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command haliteserver runs one game to completion: it loads constants,
// builds a map, spawns one move source per player, and drives turns until
// the game ends, the way server_main/main.go boots a Hub and runs it to
// serve connections.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/haliteii/engine/internal/config"
	"github.com/haliteii/engine/internal/engine"
	"github.com/haliteii/engine/internal/geom"
	"github.com/haliteii/engine/internal/httpapi"
	"github.com/haliteii/engine/internal/metrics"
	"github.com/haliteii/engine/internal/moveio"
	"github.com/haliteii/engine/internal/transcript"
	"github.com/haliteii/engine/internal/turndriver"
)

func main() {
	var (
		configPath  string
		width       float64
		height      float64
		players     int
		seed        int64
		port        int
		transcript_ string
		turnLog     string
		bots        string
	)

	flag.StringVar(&configPath, "config", "", "path to a constants override file (yaml/json/toml)")
	flag.Float64Var(&width, "width", 384, "map width")
	flag.Float64Var(&height, "height", 256, "map height")
	flag.IntVar(&players, "players", 2, "number of players")
	flag.Int64Var(&seed, "seed", 1, "seed for the turn driver's RNG (no turn step currently draws from it)")
	flag.IntVar(&port, "port", 8192, "http service port for /status and /spectate; <0 disables the HTTP server")
	flag.StringVar(&transcript_, "transcript", "", "path to write the newline-delimited JSON transcript; empty disables recording")
	flag.StringVar(&turnLog, "turn-log", "", "path to append a per-turn CSV row; empty disables it")
	flag.StringVar(&bots, "bots", "", "comma-separated subprocess command per player, e.g. './bot1,./bot2'; missing entries default to an always-idle source")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	planets := symmetricPlanets(width, height, players, cfg)
	m := engine.NewMap(width, height, planets, players)

	sources, closeSources := buildSources(bots, players)
	defer closeSources()

	var rec *transcript.Recorder
	if transcript_ != "" {
		rec = transcript.NewRecorder(width, height, players, cfg)
	}

	driver := turndriver.New(m, cfg, sources, rec, seed)
	driver.TurnLogPath = turnLog

	turnMetrics := metrics.NewTurn(prometheus.DefaultRegisterer)
	driver.Metrics = turnMetrics

	var server *httpapi.Server
	if port >= 0 {
		server = httpapi.NewServer()
		go func() {
			log.Printf("halite engine http started on :%d", port)
			log.Println(serveHTTP(port, server))
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	turn := 0
	for {
		select {
		case <-ctx.Done():
			log.Println("shutting down: ", ctx.Err())
			writeTranscript(transcript_, rec)
			return
		default:
		}

		over, winner := driver.Step(ctx)
		if server != nil {
			server.SetStatus(httpapi.Status{Turn: turn, NumPlayers: players, GameOver: over})
			server.Broadcast(httpapi.EncodeFrame(turn, m))
		}
		turn++
		if over {
			log.Printf("game over after %d turns, winner=%v", turn, winner)
			writeTranscript(transcript_, rec)
			return
		}
	}
}

func writeTranscript(path string, rec *transcript.Recorder) {
	if path == "" || rec == nil {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		log.Printf("transcript create: %v", err)
		return
	}
	defer f.Close()
	if err := rec.WriteTo(f); err != nil {
		log.Printf("transcript write: %v", err)
	}
}

// buildSources wires one moveio.Source per player from a comma-separated
// command list, the way server_main/main.go wires one bot client per
// missing human connection. A blank entry (or a short list) gets an
// always-idle source instead of failing the whole match.
func buildSources(bots string, players int) ([]moveio.Source, func()) {
	commands := strings.Split(bots, ",")
	sources := make([]moveio.Source, players)
	var closers []func() error

	for i := 0; i < players; i++ {
		if i < len(commands) && strings.TrimSpace(commands[i]) != "" {
			src, err := moveio.NewSubprocessSource(strings.TrimSpace(commands[i]))
			if err != nil {
				log.Printf("player %d: failed to start %q: %v, falling back to idle", i, commands[i], err)
				sources[i] = idleSource{}
				continue
			}
			sources[i] = src
			closers = append(closers, src.Close)
			continue
		}
		sources[i] = idleSource{}
	}

	return sources, func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.Printf("close source: %v", err)
			}
		}
	}
}

// serveHTTP blocks serving server's handler on port, logging requests to
// stdout the same combined-log format server_main/main.go gets for free
// from its own handler registration.
func serveHTTP(port int, server *httpapi.Server) error {
	return http.ListenAndServe(fmt.Sprintf(":%d", port), server.Handler(os.Stdout))
}

// idleSource never issues a move; a convenience stand-in for players whose
// subprocess bot is unavailable or unconfigured.
type idleSource struct{}

func (idleSource) RequestMoves(ctx context.Context, player engine.PlayerID, turn int) ([]moveio.Move, error) {
	return nil, nil
}

// symmetricPlanets places one production planet per player along the
// border of a centered ring, plus a neutral planet at the map center, the
// minimal placement needed to exercise docking/production/combat end to
// end; a full procedural map generator is out of scope (spec.md §1).
func symmetricPlanets(width, height float64, players int, cfg config.Constants) []engine.Planet {
	cx, cy := width/2, height/2
	ringRadius := math.Min(width, height) * 0.35

	out := make([]engine.Planet, 0, players+1)
	out = append(out, engine.Planet{
		Location:            geom.Location{X: cx, Y: cy},
		Radius:              3,
		DockingSpots:        2,
		Health:              4 * cfg.MaxShipHealth,
		RemainingProduction: remainingProduction(2, cfg),
	})

	for i := 0; i < players; i++ {
		angle := 2 * math.Pi * float64(i) / float64(players)
		loc := geom.Location{X: cx + ringRadius*math.Cos(angle), Y: cy + ringRadius*math.Sin(angle)}
		out = append(out, engine.Planet{
			Location:            loc,
			Radius:              2,
			DockingSpots:        2,
			Health:              2 * cfg.MaxShipHealth,
			Owned:               true,
			Owner:               engine.PlayerID(i),
			RemainingProduction: remainingProduction(2, cfg),
		})
	}
	return out
}

// remainingProduction gives a planet enough banked production to crew every
// docking spot twice over before running dry. The reference rules leave a
// planet's initial resource endowment to the map generator, which this
// engine doesn't implement (spec.md §1); this is this placement routine's
// own stand-in formula, not a spec-mandated one.
func remainingProduction(dockingSpots int, cfg config.Constants) float64 {
	return cfg.ProductionPerShip * float64(dockingSpots) * 2
}
