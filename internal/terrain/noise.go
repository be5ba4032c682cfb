// Package terrain implements the world.Generator and world.Decorator used to
// stock a freshly-allocated chunk with stone, soil, grass and forest cover.
package terrain

import (
	"log"
	"runtime"
	"sync"

	opensimplex "github.com/ojrac/opensimplex-go"

	"chunkserver/internal/config"
	"chunkserver/internal/registry"
	"chunkserver/internal/world"
)

// NoiseGenerator fills a chunk with a fractal-noise heightfield: stone below
// the surface, a few layers of dirt, and a grass cap. It is deterministic in
// voxel coordinate, so regenerating the same chunk twice reproduces it
// exactly.
type NoiseGenerator struct {
	cfg config.TerrainConfig
	reg *registry.Registry

	noise opensimplex.Noise
}

// NewNoiseGenerator builds a generator seeded from cfg.Seed. Two generators
// built from the same seed and config produce identical terrain.
func NewNoiseGenerator(cfg config.TerrainConfig, reg *registry.Registry) *NoiseGenerator {
	return &NoiseGenerator{
		cfg:   cfg,
		reg:   reg,
		noise: opensimplex.New(cfg.Seed),
	}
}

// Fill implements world.Generator. Columns are assigned to a worker pool,
// the way the teacher's own column generation parallelizes across
// runtime.GOMAXPROCS workers, with progress logged at 10% increments.
func (g *NoiseGenerator) Fill(w *world.ChunkWriter) {
	min, max := w.Min(), w.Max()
	width := max.X - min.X
	depth := max.Z - min.Z
	totalColumns := width * depth
	if totalColumns <= 0 {
		return
	}

	type column struct{ x, z int }
	tasks := make(chan column, totalColumns)
	for x := min.X; x < max.X; x++ {
		for z := min.Z; z < max.Z; z++ {
			tasks <- column{x, z}
		}
	}
	close(tasks)

	workers := g.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > totalColumns {
		workers = totalColumns
	}
	if workers <= 0 {
		workers = 1
	}

	var wg sync.WaitGroup
	var done int64
	var mu sync.Mutex
	nextLogPercent := 10

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for col := range tasks {
				g.fillColumn(w, min.Y, max.Y, col.x, col.z)

				mu.Lock()
				done++
				progress := int(done) * 100 / totalColumns
				if progress >= nextLogPercent {
					log.Printf("terrain: column pass %d%% complete", progress)
					nextLogPercent += 10
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
}

func (g *NoiseGenerator) fillColumn(w *world.ChunkWriter, minY, maxY, vx, vz int) {
	surface := g.surfaceHeight(vx, vz, minY, maxY)

	for vy := minY; vy < maxY && vy <= surface; vy++ {
		switch {
		case vy == surface:
			w.SetVoxel(vx, vy, vz, registry.GrassID)
		case vy >= surface-3:
			w.SetVoxel(vx, vy, vz, registry.DirtID)
		default:
			w.SetVoxel(vx, vy, vz, registry.StoneID)
		}
	}
}

// surfaceHeight evaluates fractal noise at (vx, vz) and maps it onto
// [minY, maxY) around a baseline 40% up the column.
func (g *NoiseGenerator) surfaceHeight(vx, vz, minY, maxY int) int {
	baseline := minY + (maxY-minY)*2/5
	n := g.fractalNoise(float64(vx), float64(vz))
	h := baseline + int(n*g.cfg.Amplitude)
	if h < minY {
		h = minY
	}
	if h >= maxY {
		h = maxY - 1
	}
	return h
}

// fractalNoise sums octaves of opensimplex noise at increasing frequency and
// decreasing amplitude, normalized back into roughly [-1, 1].
func (g *NoiseGenerator) fractalNoise(x, y float64) float64 {
	frequency := g.cfg.Frequency
	amplitude := 1.0
	sum := 0.0
	maxAmplitude := 0.0

	for i := 0; i < g.cfg.Octaves; i++ {
		sum += g.noise.Eval2(x*frequency, y*frequency) * amplitude
		maxAmplitude += amplitude
		amplitude *= g.cfg.Persistence
		frequency *= g.cfg.Lacunarity
	}
	if maxAmplitude == 0 {
		return 0
	}
	return sum / maxAmplitude
}

// FlatGenerator is a deterministic reference terrain used to pin exact test
// scenarios that must not drift if the noise tuning changes: stone below
// y=10, a single dirt cap at y=10, air above.
type FlatGenerator struct{}

func (FlatGenerator) Fill(w *world.ChunkWriter) {
	min, max := w.Min(), w.Max()
	for vx := min.X; vx < max.X; vx++ {
		for vz := min.Z; vz < max.Z; vz++ {
			for vy := min.Y; vy < max.Y && vy <= 10; vy++ {
				if vy == 10 {
					w.SetVoxel(vx, vy, vz, registry.DirtID)
				} else {
					w.SetVoxel(vx, vy, vz, registry.StoneID)
				}
			}
		}
	}
}
