// Package config centralizes all tunable game parameters.
package config

import "time"

// Terminal playfield - the logical resolution used by terminal clients.
// Actual rendering scales to fit terminal size.
const (
	FieldWidth  = 480 // Logical field width
	FieldHeight = 320 // Logical field height
)

// Desktop window defaults.
const (
	WindowWidth  = 800
	WindowHeight = 600
)

// Ship
const (
	ShipWidth          = 30.0 // Visual width; height follows the sprite aspect ratio
	ShipHitboxRatio    = 0.7  // Hitbox is 70% of the visual size
	ShipAnimationSpeed = 0.15 // Fraction of the remaining distance covered per tick
	ShipSnapDistance   = 1.0  // Start animation ends within this distance
	FlameMinSize       = 7.0
	FlameMaxSize       = 12.0
	FlameFlickerRate   = 0.3
)

// Weapons
const (
	BaseFireRate        = 400 * time.Millisecond
	RapidFireRate       = 50 * time.Millisecond
	WideShotFireRate    = 180 * time.Millisecond
	RapidFireDuration   = 5000 * time.Millisecond
	SpreadShotDuration  = 6000 * time.Millisecond
	WideShotDuration    = 7000 * time.Millisecond
	MalfunctionDuration = 5000 * time.Millisecond

	MalfunctionSparkChance = 0.2
)

// Bullets
const (
	BulletSpeed       = 7.0
	BulletWidth       = 5.0
	BulletHeight      = 10.0
	WideBulletWidth   = 35.0
	WideBulletHeight  = 10.0
	BulletSpreadSpeed = 2.5
)

// Asteroids
const (
	BaseAsteroidSize    = 30.0
	AsteroidSpeedMin    = 0.7  // Speed roll range, multiplied by the profile base speed
	AsteroidSpeedMax    = 1.3
	AsteroidSpinRange   = 0.05 // Rotation roll spans [-0.025, 0.025] rad/tick before scaling
	AsteroidDriftRange  = 1.0  // Drift roll spans [-0.5, 0.5] px/tick
	AsteroidHitSlowdown = 0.9
)

// Powerups
const (
	PowerupSize       = 15.0
	PowerupSpeed      = 2.0
	PowerupDropChance = 0.2
)

// Floating score texts
const (
	FloatSpeed = 0.8
	FloatLife  = 60 // Frames
)

// Particles
const (
	ParticleFriction = 0.98
	DefaultMaxLife   = 60.0 // Fade reference for particles without an explicit max life
)

// Background
const (
	NumStars = 100
)

// Scoring
const (
	ScoreEaseFraction = 0.05
	ScoreEaseMinStep  = 1.0
)

// Persistence
const (
	HighScoreKey = "spaceDodgeHighScore"
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 240 // Terminal columns beyond this are letterboxed
	MaxTermHeight         = 80
)

// Inactivity (SSH sessions)
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)
