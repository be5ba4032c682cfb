package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// Config captures the tunable parameters needed to bootstrap a chunk server.
type Config struct {
	Server      ServerConfig      `json:"server"`
	World       WorldConfig       `json:"world"`
	Terrain     TerrainConfig     `json:"terrain"`
	Persistence PersistenceConfig `json:"persistence"`
}

type ServerConfig struct {
	ID          string        `json:"id"`
	Description string        `json:"description"`
	TickRate    time.Duration `json:"tickRate"` // integer nanoseconds in JSON, e.g. 33000000
}

// WorldConfig mirrors WorldMetrics plus the bits needed to bootstrap a
// registry and an initial preload radius.
type WorldConfig struct {
	ChunkSize      int     `json:"chunkSize"`
	MaxHeight      int     `json:"maxHeight"`
	MaxLightLevel  int     `json:"maxLightLevel"`
	Dimension      float64 `json:"dimension"`
	RenderRadius   int     `json:"renderRadius"`
	PreloadWidth   int     `json:"preloadWidth"`
	RegistryPath   string  `json:"registryPath"` // empty uses the built-in default palette
	MaxLoadedChunk int     `json:"maxLoadedChunks"`
}

type TerrainConfig struct {
	Seed        int64   `json:"seed"`
	Frequency   float64 `json:"frequency"`
	Amplitude   float64 `json:"amplitude"`
	Octaves     int     `json:"octaves"`
	Persistence float64 `json:"persistence"`
	Lacunarity  float64 `json:"lacunarity"`
	Workers     int     `json:"workers"`
}

type PersistenceConfig struct {
	DataDir      string        `json:"dataDir"`
	SaveInterval time.Duration `json:"saveInterval"`
}

// Load reads configuration from a JSON file if provided. An empty path returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ID:          "chunk-server-0",
			Description: "local development chunk server",
			TickRate:    33 * time.Millisecond,
		},
		World: WorldConfig{
			ChunkSize:      16,
			MaxHeight:      256,
			MaxLightLevel:  15,
			Dimension:      1,
			RenderRadius:   8,
			PreloadWidth:   4,
			RegistryPath:   "",
			MaxLoadedChunk: 1024,
		},
		Terrain: TerrainConfig{
			Seed:        1337,
			Frequency:   0.01,
			Amplitude:   24,
			Octaves:     4,
			Persistence: 0.45,
			Lacunarity:  2.0,
			Workers:     4,
		},
		Persistence: PersistenceConfig{
			DataDir:      "./data",
			SaveInterval: 5 * time.Second,
		},
	}
}

func (c *Config) Validate() error {
	if c.Server.ID == "" {
		return errors.New("server.id must be set")
	}
	if c.World.ChunkSize <= 0 {
		return errors.New("world.chunkSize must be positive")
	}
	if c.World.MaxHeight <= 0 {
		return errors.New("world.maxHeight must be positive")
	}
	if c.World.MaxLightLevel <= 0 {
		return errors.New("world.maxLightLevel must be positive")
	}
	if c.World.Dimension <= 0 {
		return errors.New("world.dimension must be positive")
	}
	if c.World.RenderRadius <= 0 {
		return errors.New("world.renderRadius must be positive")
	}
	if c.Terrain.Workers < 0 {
		return errors.New("terrain.workers cannot be negative")
	}
	if c.Terrain.Octaves <= 0 {
		return errors.New("terrain.octaves must be positive")
	}
	return nil
}
