package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	envconfig "github.com/tomz197/spacedodge/internal/config"
)

// ErrUnknownProfile is returned when a profile name is not registered.
var ErrUnknownProfile = errors.New("unknown difficulty profile")

// Profile is a difficulty preset. Health and score per asteroid size are
// fixed; the profile only changes pacing and asteroid scale.
type Profile struct {
	Name        string
	BaseSpeed   float64 // Asteroid base speed in px/tick
	SpawnChance float64 // Per-tick probability of an asteroid spawn attempt

	SmallMultiplier  float64
	MediumMultiplier float64
	LargeMultiplier  float64
}

// Classic is the slower desktop tuning.
var Classic = Profile{
	Name:             "classic",
	BaseSpeed:        2,
	SpawnChance:      0.03,
	SmallMultiplier:  1.0,
	MediumMultiplier: 1.5,
	LargeMultiplier:  1.75,
}

// Arcade has bigger rocks and denser waves.
var Arcade = Profile{
	Name:             "arcade",
	BaseSpeed:        3,
	SpawnChance:      0.08,
	SmallMultiplier:  1.0,
	MediumMultiplier: 1.75,
	LargeMultiplier:  2.5,
}

var profiles = map[string]Profile{
	Classic.Name: Classic,
	Arcade.Name:  Arcade,
}

// ProfileByName looks up a registered profile, case-insensitively.
func ProfileByName(name string) (Profile, error) {
	p, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q (have %s)", ErrUnknownProfile, name, strings.Join(ProfileNames(), ", "))
	}
	return p, nil
}

// ProfileNames returns the registered profile names in sorted order.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MaxMultiplier returns the largest size multiplier, used for spawn margins.
func (p Profile) MaxMultiplier() float64 {
	return max(p.SmallMultiplier, p.MediumMultiplier, p.LargeMultiplier)
}

// Validate reports whether the profile can drive a simulation.
func (p Profile) Validate() error {
	switch {
	case !finite(p.BaseSpeed, p.SpawnChance, p.SmallMultiplier, p.MediumMultiplier, p.LargeMultiplier):
		return fmt.Errorf("profile %q: values must be finite numbers", p.Name)
	case p.BaseSpeed <= 0:
		return fmt.Errorf("profile %q: base speed must be positive", p.Name)
	case p.SpawnChance < 0 || p.SpawnChance > 1:
		return fmt.Errorf("profile %q: spawn chance must be within [0,1]", p.Name)
	case p.SmallMultiplier <= 0 || p.MediumMultiplier <= 0 || p.LargeMultiplier <= 0:
		return fmt.Errorf("profile %q: size multipliers must be positive", p.Name)
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ProfileFromEnv returns the profile named by SPACEDODGE_PROFILE, or the
// fallback profile when unset. SPACEDODGE_SPAWN_CHANCE and
// SPACEDODGE_BASE_SPEED override the preset's pacing.
func ProfileFromEnv(fallback string) (Profile, error) {
	p, err := ProfileByName(envconfig.GetEnv("SPACEDODGE_PROFILE", fallback))
	if err != nil {
		return Profile{}, err
	}
	p.SpawnChance = envconfig.GetEnvFloat("SPACEDODGE_SPAWN_CHANCE", p.SpawnChance)
	p.BaseSpeed = envconfig.GetEnvFloat("SPACEDODGE_BASE_SPEED", p.BaseSpeed)
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}
