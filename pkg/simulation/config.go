package simulation

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lao-tseu-is-alive/go-boids-flocking/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-boids-flocking/pkg/geometry"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Variants of the steering rules.
const (
	VariantBasic        = "basic"
	VariantPredatorPrey = "predator-prey"
)

// World topologies.
const (
	// TopologyTorus wraps agents around the edges and measures
	// distances across them.
	TopologyTorus = "torus"
	// TopologyPlane neither wraps nor folds distances.
	TopologyPlane = "plane"
)

//go:embed flock.schema.json
var embeddedSchema string

const embeddedSchemaURL = "flock.schema.json"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	Variant  string `json:"variant"`
	Topology string `json:"topology"`

	// Population. Predators are taken out of Population and only exist
	// in the predator-prey variant.
	Population int `json:"population"`
	Predators  int `json:"predators"`

	// Physics
	MaxForce float64 `json:"maxForce"`
	MaxSpeed float64 `json:"maxSpeed"`
	Timestep float64 `json:"timestep"`

	// Perception radii. The predator-prey variant uses PerceptionRadius
	// for every rule.
	AlignRadius      float64 `json:"alignRadius"`
	CohesionRadius   float64 `json:"cohesionRadius"`
	SeparationRadius float64 `json:"separationRadius"`
	PerceptionRadius float64 `json:"perceptionRadius"`

	Weights behavior.Weights `json:"weights"`

	SameRoleCohesion bool `json:"sameRoleCohesion"`
	AverageAvoidance bool `json:"averageAvoidance"`
	// PlanarDirections keeps steering along unwrapped position differences
	// on a torus.
	PlanarDirections bool `json:"planarDirections"`

	// Seed makes the initial population reproducible. Zero picks a random seed.
	Seed uint64 `json:"seed"`

	// Workers steers agents on several goroutines when > 1.
	Workers int `json:"workers"`
}

func DefaultConfig() *Config {
	p := behavior.DefaultParams()
	return &Config{
		WorldWidth:       1000,
		WorldHeight:      800,
		Variant:          VariantBasic,
		Topology:         TopologyTorus,
		Population:       100,
		Predators:        0,
		MaxForce:         p.MaxForce,
		MaxSpeed:         p.MaxSpeed,
		Timestep:         1,
		AlignRadius:      p.AlignRadius,
		CohesionRadius:   p.CohesionRadius,
		SeparationRadius: p.SeparationRadius,
		PerceptionRadius: p.PerceptionRadius,
		Weights:          behavior.DefaultWeights(),
	}
}

// LoadConfig loads configuration from a JSON or YAML file and validates it
// against the schema. An empty schemaFile uses the embedded schema.
// Fields missing from the file keep their DefaultConfig value.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	sch, err := compileSchema(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	raw, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isYAML(configFile) {
		raw, err = yamlToJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode config yaml: %w", err)
		}
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigOrDefault is LoadConfig, except that an empty configFile
// yields DefaultConfig.
func LoadConfigOrDefault(configFile string, schemaFile string) (*Config, error) {
	if configFile == "" {
		return DefaultConfig(), nil
	}
	return LoadConfig(configFile, schemaFile)
}

func compileSchema(schemaFile string) (*jsonschema.Schema, error) {
	if schemaFile == "" {
		return jsonschema.CompileString(embeddedSchemaURL, embeddedSchema)
	}
	return jsonschema.Compile(schemaFile)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// yamlToJSON re-encodes a YAML document as JSON so that both formats go
// through the same schema validation.
func yamlToJSON(b []byte) ([]byte, error) {
	var v interface{}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// Validate checks the constraints the schema cannot express.
func (c *Config) Validate() error {
	switch c.Variant {
	case VariantBasic, VariantPredatorPrey:
	default:
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, c.Variant)
	}
	switch c.Topology {
	case TopologyTorus, TopologyPlane:
	default:
		return fmt.Errorf("%w: unknown topology %q", ErrInvalidConfig, c.Topology)
	}
	if c.Population < 0 {
		return fmt.Errorf("%w: population %d is negative", ErrInvalidConfig, c.Population)
	}
	if c.Predators < 0 || c.Predators > c.Population {
		return fmt.Errorf("%w: predators %d not in [0, population %d]", ErrInvalidConfig, c.Predators, c.Population)
	}
	return nil
}

// PredatorPrey reports whether the predator-prey variant is selected.
func (c *Config) PredatorPrey() bool {
	return c.Variant == VariantPredatorPrey
}

// Wraps reports whether agents wrap around the world edges.
func (c *Config) Wraps() bool {
	return c.Topology == TopologyTorus
}

// Rules derives the steering rules for this deployment. The metric always
// matches the topology so that perception agrees with wraparound.
func (c *Config) Rules() behavior.Rules {
	var metric geometry.Metric = geometry.Plane{}
	if c.Wraps() {
		metric = geometry.Torus{Width: c.WorldWidth, Height: c.WorldHeight}
	}
	return behavior.Rules{
		Metric:           metric,
		PredatorPrey:     c.PredatorPrey(),
		SameRoleCohesion: c.PredatorPrey() && c.SameRoleCohesion,
		AverageAvoidance: c.AverageAvoidance,
		PlanarDirections: c.PlanarDirections,
	}
}

// Params derives the per-agent parameters.
func (c *Config) Params() behavior.Params {
	p := behavior.Params{
		MaxForce:         c.MaxForce,
		MaxSpeed:         c.MaxSpeed,
		AlignRadius:      c.AlignRadius,
		CohesionRadius:   c.CohesionRadius,
		SeparationRadius: c.SeparationRadius,
		PerceptionRadius: c.PerceptionRadius,
	}
	if c.PredatorPrey() {
		p.AlignRadius = c.PerceptionRadius
		p.CohesionRadius = c.PerceptionRadius
		p.SeparationRadius = c.PerceptionRadius
	}
	return p
}

// Frame bundles everything Advance needs for one step with the given weights.
func (c *Config) Frame(w behavior.Weights) Frame {
	return Frame{
		Weights:  w,
		Rules:    c.Rules(),
		Wrap:     c.Wraps(),
		Width:    c.WorldWidth,
		Height:   c.WorldHeight,
		Timestep: c.Timestep,
		Workers:  c.Workers,
	}
}
