package terrain

import (
	"testing"

	"chunkserver/internal/config"
	"chunkserver/internal/registry"
	"chunkserver/internal/world"
)

func testMetrics() world.WorldMetrics {
	return world.WorldMetrics{
		ChunkSize:     16,
		MaxHeight:     64,
		MaxLightLevel: 15,
		Dimension:     1,
		RenderRadius:  2,
	}
}

func TestNoiseGeneratorDeterministicForSameSeed(t *testing.T) {
	cfg := config.TerrainConfig{
		Seed:        424242,
		Frequency:   0.02,
		Amplitude:   20,
		Octaves:     3,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Workers:     2,
	}
	reg := registry.Default()

	genA := NewNoiseGenerator(cfg, reg)
	genB := NewNoiseGenerator(cfg, reg)

	for _, p := range [][2]float64{{0, 0}, {17.0, -42.0}, {1000.0, 1000.0}, {-5.0, 300.0}} {
		a := genA.fractalNoise(p[0], p[1])
		b := genB.fractalNoise(p[0], p[1])
		if a != b {
			t.Fatalf("fractalNoise(%v) = %v, want %v (same seed must reproduce)", p, a, b)
		}
	}
}

func TestNoiseGeneratorFillProducesLayeredColumn(t *testing.T) {
	cfg := config.TerrainConfig{
		Seed:        1,
		Frequency:   0.05,
		Amplitude:   4,
		Octaves:     2,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Workers:     2,
	}
	reg := registry.Default()
	gen := NewNoiseGenerator(cfg, reg)
	metrics := testMetrics()

	ck := world.NewChunker(metrics, reg, gen, nil)
	ck.Preload(2)

	chunk, ok := ck.Get(world.Coords2{})
	if !ok {
		t.Fatal("expected the preloaded origin chunk to be ready")
	}
	if chunk.IsEmpty() {
		t.Fatal("noise-filled chunk must not be reported empty")
	}

	surface := chunk.TopY()
	if surface <= 0 {
		t.Fatalf("TopY = %d, want a positive surface somewhere in the column", surface)
	}

	topID := chunk.Voxel(chunk.Min.X, int(chunk.Height(chunk.Min.X, chunk.Min.Z)), chunk.Min.Z)
	if topID != registry.GrassID {
		t.Errorf("surface voxel id = %d, want grass (%d)", topID, registry.GrassID)
	}
}

func TestFlatGeneratorMatchesReferenceLayers(t *testing.T) {
	reg := registry.Default()
	metrics := testMetrics()
	ck := world.NewChunker(metrics, reg, FlatGenerator{}, nil)
	ck.Preload(2)

	chunk, ok := ck.Get(world.Coords2{})
	if !ok {
		t.Fatal("expected the preloaded origin chunk to be ready")
	}

	vx, vz := chunk.Min.X+3, chunk.Min.Z+3
	if got := chunk.Voxel(vx, 10, vz); got != registry.DirtID {
		t.Errorf("voxel at y=10 = %d, want dirt", got)
	}
	if got := chunk.Voxel(vx, 9, vz); got != registry.StoneID {
		t.Errorf("voxel at y=9 = %d, want stone", got)
	}
	if got := chunk.Voxel(vx, 11, vz); got != registry.AirID {
		t.Errorf("voxel at y=11 = %d, want air", got)
	}
}
