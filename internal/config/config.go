// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config defines the immutable set of game constants threaded
// through every engine constructor, replacing the GameConstants::get()
// singleton pattern this engine is descended from.
package config

import (
	"math"
	"strings"

	"github.com/spf13/viper"
)

// Constants is the full, process-wide-immutable set of tunables recognized
// by the turn engine. A Constants value is built once at startup and never
// mutated afterward; every component receives it by value.
type Constants struct {
	MaxShipHealth float64 // MAX_SHIP_HEALTH
	ShipRadius    float64 // SHIP_RADIUS

	WeaponRadius   float64 // WEAPON_RADIUS
	WeaponDamage   float64 // WEAPON_DAMAGE
	WeaponCooldown int     // WEAPON_COOLDOWN

	MaxAcceleration float64 // MAX_ACCELERATION: thrust magnitude ceiling per turn
	DockRadius      float64 // DOCK_RADIUS: planet surface distance within which a ship may dock

	Drag float64 // DRAG

	DockTurns               int     // DOCK_TURNS
	DockedShipRegeneration  float64 // DOCKED_SHIP_REGENERATION
	BaseProductivity        float64 // BASE_PRODUCTIVITY
	AdditionalProductivity  float64 // ADDITIONAL_PRODUCTIVITY
	ProductionPerShip       float64 // PRODUCTION_PER_SHIP
	SpawnRadius             int     // SPAWN_RADIUS
	ExplosionRadius         float64 // EXPLOSION_RADIUS

	MaxQueuedMoves      int // MAX_QUEUED_MOVES
	EventTimePrecision  int // EVENT_TIME_PRECISION

	CellSize float64 // broadphase grid cell size (component B)
}

// Default returns the reference rule set used throughout spec.md's
// worked examples (MAX_SHIP_HEALTH=255, SHIP_RADIUS=0.5, etc).
func Default() Constants {
	return Constants{
		MaxShipHealth: 255,
		ShipRadius:    0.5,

		WeaponRadius:   5,
		WeaponDamage:   64,
		WeaponCooldown: 1,

		MaxAcceleration: 7,
		DockRadius:      4,

		Drag: 0.23,

		DockTurns:              5,
		DockedShipRegeneration: 0.5,
		BaseProductivity:       6,
		AdditionalProductivity: 3,
		ProductionPerShip:      72,
		SpawnRadius:            3,
		ExplosionRadius:        10,

		MaxQueuedMoves:     1,
		EventTimePrecision: 1000,

		// Must satisfy CellSize >= 2*max_ship_radius + max_velocity (§4.B).
		// Ships accelerate by at most 7 units/turn in the reference rules,
		// so 2*0.5 + 7 = 8 is the floor; round up for headroom.
		CellSize: 16,
	}
}

// Load reads constants from the compiled-in defaults, a config file (if
// present) and environment variables prefixed HALITE_, with precedence
// from lowest to highest: defaults < file < env.
//
// configPath may be empty, in which case only env vars override the
// defaults.
func Load(configPath string) (Constants, error) {
	c := Default()

	v := viper.New()
	v.SetEnvPrefix("HALITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, c)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Constants{}, err
		}
	}

	c.MaxShipHealth = v.GetFloat64("max_ship_health")
	c.ShipRadius = v.GetFloat64("ship_radius")
	c.WeaponRadius = v.GetFloat64("weapon_radius")
	c.WeaponDamage = v.GetFloat64("weapon_damage")
	c.WeaponCooldown = v.GetInt("weapon_cooldown")
	c.MaxAcceleration = v.GetFloat64("max_acceleration")
	c.DockRadius = v.GetFloat64("dock_radius")
	c.Drag = v.GetFloat64("drag")
	c.DockTurns = v.GetInt("dock_turns")
	c.DockedShipRegeneration = v.GetFloat64("docked_ship_regeneration")
	c.BaseProductivity = v.GetFloat64("base_productivity")
	c.AdditionalProductivity = v.GetFloat64("additional_productivity")
	c.ProductionPerShip = v.GetFloat64("production_per_ship")
	c.SpawnRadius = v.GetInt("spawn_radius")
	c.ExplosionRadius = v.GetFloat64("explosion_radius")
	c.MaxQueuedMoves = v.GetInt("max_queued_moves")
	c.EventTimePrecision = v.GetInt("event_time_precision")
	c.CellSize = v.GetFloat64("cell_size")

	return c, nil
}

func setDefaults(v *viper.Viper, c Constants) {
	v.SetDefault("max_ship_health", c.MaxShipHealth)
	v.SetDefault("ship_radius", c.ShipRadius)
	v.SetDefault("weapon_radius", c.WeaponRadius)
	v.SetDefault("weapon_damage", c.WeaponDamage)
	v.SetDefault("weapon_cooldown", c.WeaponCooldown)
	v.SetDefault("max_acceleration", c.MaxAcceleration)
	v.SetDefault("dock_radius", c.DockRadius)
	v.SetDefault("drag", c.Drag)
	v.SetDefault("dock_turns", c.DockTurns)
	v.SetDefault("docked_ship_regeneration", c.DockedShipRegeneration)
	v.SetDefault("base_productivity", c.BaseProductivity)
	v.SetDefault("additional_productivity", c.AdditionalProductivity)
	v.SetDefault("production_per_ship", c.ProductionPerShip)
	v.SetDefault("spawn_radius", c.SpawnRadius)
	v.SetDefault("explosion_radius", c.ExplosionRadius)
	v.SetDefault("max_queued_moves", c.MaxQueuedMoves)
	v.SetDefault("event_time_precision", c.EventTimePrecision)
	v.SetDefault("cell_size", c.CellSize)
}

// MaxTurns returns the turn budget for a map of the given dimensions:
// 100 + floor(sqrt(W*H)), per §4.F.
func MaxTurns(width, height float64) int {
	if width <= 0 || height <= 0 {
		return 100
	}
	return 100 + int(math.Sqrt(width*height))
}
