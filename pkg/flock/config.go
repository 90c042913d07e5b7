package flock

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid flock config")

//go:embed config.schema.json
var defaultSchema string

const defaultSchemaURL = "config.schema.json"

// Behavior describes one steering rule: how strong it is and the cone of
// awareness (radius plus angular aperture centred on the heading) it uses.
type Behavior struct {
	Coefficient float64 `json:"coefficient"`
	Radius      float64 `json:"radius"`
	SightAngle  float64 `json:"sightAngle"`         // degrees, full aperture
	MinRange    float64 `json:"minRange,omitempty"` // only used by separation
}

// Sight returns the full aperture of the cone in radians.
func (b Behavior) Sight() float64 {
	return b.SightAngle * math.Pi / 180
}

// Behaviors groups the four steering rules.
type Behaviors struct {
	Separation Behavior `json:"separation"`
	Alignment  Behavior `json:"alignment"`
	Cohesion   Behavior `json:"cohesion"`
	Mouse      Behavior `json:"mouse"`
}

// Arena is the window the flock lives in. The simulation frame is centred on
// the window with y pointing up; agents are kept Margin units away from every edge.
type Arena struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
}

// Bounds returns the inner rectangle agents are reflected into.
func (a Arena) Bounds() (minX, maxX, minY, maxY float64) {
	return -a.Width/2 + a.Margin, a.Width/2 - a.Margin, -a.Height/2 + a.Margin, a.Height/2 - a.Margin
}

// Contains reports whether p lies inside the inner rectangle (edges included).
func (a Arena) Contains(p Position) bool {
	minX, maxX, minY, maxY := a.Bounds()
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

// Spawn is the centred rectangle initial positions are drawn from.
type Spawn struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Config struct {
	// Population
	NumAgents int    `json:"numAgents"`
	Seed      uint64 `json:"seed"` // 0 draws a random seed

	// Geometry
	Arena Arena `json:"arena"`
	Spawn Spawn `json:"spawn"`

	// Physics
	MaxSpeed  float64   `json:"maxSpeed"` // units per second
	Behaviors Behaviors `json:"behaviors"`

	// Neighbour search through a uniform grid instead of the full scan.
	SpatialIndex bool `json:"spatialIndex"`

	// Host side
	MaxFrameTime float64 `json:"maxFrameTime"` // seconds, caps the dt handed to a tick
	Lightness    float64 `json:"lightness"`
}

func DefaultConfig() *Config {
	return &Config{
		NumAgents: 200,
		Arena:     Arena{Width: 700, Height: 500, Margin: 20},
		Spawn:     Spawn{Width: 500, Height: 500},
		MaxSpeed:  100,
		Behaviors: DefaultBehaviors(),

		MaxFrameTime: 0.25,
		Lightness:    DefaultLightness,
	}
}

// DefaultBehaviors returns the reference tuning of the four steering rules.
func DefaultBehaviors() Behaviors {
	return Behaviors{
		Separation: Behavior{Coefficient: 500, Radius: 120, SightAngle: 360, MinRange: 1e-5},
		Alignment:  Behavior{Coefficient: 1, Radius: 30, SightAngle: 120},
		Cohesion:   Behavior{Coefficient: 10, Radius: 80, SightAngle: 300},
		Mouse:      Behavior{Coefficient: 30000, Radius: 240, SightAngle: 120},
	}
}

// Validate checks the invariants the simulation relies on.
func (c *Config) Validate() error {
	switch {
	case !finite(c.Arena.Width, c.Arena.Height, c.Arena.Margin, c.Spawn.Width, c.Spawn.Height,
		c.MaxSpeed, c.MaxFrameTime, c.Lightness):
		return fmt.Errorf("%w: arena, spawn, maxSpeed, maxFrameTime and lightness must be finite", ErrInvalidConfig)
	case c.NumAgents < 0:
		return fmt.Errorf("%w: numAgents must not be negative, got %d", ErrInvalidConfig, c.NumAgents)
	case c.Arena.Width <= 2*c.Arena.Margin || c.Arena.Height <= 2*c.Arena.Margin:
		return fmt.Errorf("%w: arena %gx%g leaves no room inside a margin of %g",
			ErrInvalidConfig, c.Arena.Width, c.Arena.Height, c.Arena.Margin)
	case c.Arena.Margin < 0:
		return fmt.Errorf("%w: arena margin must not be negative", ErrInvalidConfig)
	case c.Spawn.Width < 0 || c.Spawn.Height < 0:
		return fmt.Errorf("%w: spawn region must not be negative", ErrInvalidConfig)
	case !(c.MaxSpeed > 0) || math.IsInf(c.MaxSpeed, 0):
		return fmt.Errorf("%w: maxSpeed must be a positive number, got %g", ErrInvalidConfig, c.MaxSpeed)
	case c.MaxFrameTime < 0:
		return fmt.Errorf("%w: maxFrameTime must not be negative", ErrInvalidConfig)
	case c.Lightness < 0 || c.Lightness > 1:
		return fmt.Errorf("%w: lightness must be within [0, 1], got %g", ErrInvalidConfig, c.Lightness)
	}
	return c.Behaviors.validate()
}

func (b Behaviors) validate() error {
	rules := []struct {
		name string
		b    Behavior
	}{
		{"separation", b.Separation},
		{"alignment", b.Alignment},
		{"cohesion", b.Cohesion},
		{"mouse", b.Mouse},
	}
	for _, r := range rules {
		if !finite(r.b.Coefficient, r.b.Radius, r.b.SightAngle, r.b.MinRange) {
			return fmt.Errorf("%w: %s values must be finite numbers", ErrInvalidConfig, r.name)
		}
		if r.b.Radius < 0 || r.b.MinRange < 0 {
			return fmt.Errorf("%w: %s ranges must not be negative", ErrInvalidConfig, r.name)
		}
		if r.b.SightAngle < 0 || r.b.SightAngle > 360 {
			return fmt.Errorf("%w: %s sightAngle must be within [0, 360], got %g", ErrInvalidConfig, r.name, r.b.SightAngle)
		}
	}
	return nil
}

// finite reports whether none of vs is NaN or infinite.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// LoadConfig loads configuration from a JSON file and validates it against the schema.
// An empty schemaFile uses the schema embedded in this package. Fields missing from
// the file keep their DefaultConfig value.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	// 1. Compile Schema
	var (
		sch *jsonschema.Schema
		err error
	)
	if schemaFile == "" {
		sch, err = jsonschema.CompileString(defaultSchemaURL, defaultSchema)
	} else {
		sch, err = jsonschema.Compile(schemaFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Validate
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Overlay onto the defaults
	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
