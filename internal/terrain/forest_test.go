package terrain

import (
	"testing"

	"chunkserver/internal/registry"
	"chunkserver/internal/world"
)

func TestForestDecoratorPlantsOnlyOnGrass(t *testing.T) {
	reg := registry.Default()
	metrics := testMetrics()

	forest := &ForestDecorator{Seed: 7, Density: 1, MinTrunk: 4, MaxTrunk: 4}
	ck := world.NewChunker(metrics, reg, FlatGenerator{}, forest)
	ck.Preload(2)

	chunk, ok := ck.Get(world.Coords2{})
	if !ok {
		t.Fatal("expected the preloaded origin chunk to be ready")
	}

	surfaceY := int32(10) // FlatGenerator's dirt cap
	foundWood := false
	for lx := 0; lx < metrics.ChunkSize; lx++ {
		for lz := 0; lz < metrics.ChunkSize; lz++ {
			vx := chunk.Min.X + lx
			vz := chunk.Min.Z + lz
			if chunk.Voxel(vx, int(surfaceY)+1, vz) == registry.WoodID {
				foundWood = true
			}
		}
	}
	if foundWood {
		t.Error("forest decorator must not plant on a dirt surface (FlatGenerator never caps with grass)")
	}
}

func TestForestDecoratorDensityZeroPlantsNothing(t *testing.T) {
	reg := registry.Default()
	metrics := testMetrics()

	forest := &ForestDecorator{Seed: 7, Density: 0, MinTrunk: 4, MaxTrunk: 4}
	gen := grassCapGenerator{}
	ck := world.NewChunker(metrics, reg, gen, forest)
	ck.Preload(2)

	chunk, ok := ck.Get(world.Coords2{})
	if !ok {
		t.Fatal("expected the preloaded origin chunk to be ready")
	}

	for lx := 0; lx < metrics.ChunkSize; lx++ {
		for lz := 0; lz < metrics.ChunkSize; lz++ {
			vx := chunk.Min.X + lx
			vz := chunk.Min.Z + lz
			for vy := 0; vy < metrics.MaxHeight; vy++ {
				if chunk.Voxel(vx, vy, vz) == registry.WoodID {
					t.Fatalf("density 0 must never place a tree, found wood at (%d,%d,%d)", vx, vy, vz)
				}
			}
		}
	}
}

func TestForestDecoratorDensityOnePlantsATree(t *testing.T) {
	reg := registry.Default()
	metrics := testMetrics()

	forest := &ForestDecorator{Seed: 7, Density: 1, MinTrunk: 4, MaxTrunk: 4}
	gen := grassCapGenerator{}
	ck := world.NewChunker(metrics, reg, gen, forest)
	ck.Preload(2)

	chunk, ok := ck.Get(world.Coords2{})
	if !ok {
		t.Fatal("expected the preloaded origin chunk to be ready")
	}

	foundWood := false
	for lx := 0; lx < metrics.ChunkSize; lx++ {
		for lz := 0; lz < metrics.ChunkSize; lz++ {
			vx := chunk.Min.X + lx
			vz := chunk.Min.Z + lz
			for vy := 0; vy < metrics.MaxHeight; vy++ {
				if chunk.Voxel(vx, vy, vz) == registry.WoodID {
					foundWood = true
				}
			}
		}
	}
	if !foundWood {
		t.Error("density 1 with adequate headroom must plant at least one tree in a 16x16 column")
	}
}

// grassCapGenerator is a flat world whose entire surface is grass, giving
// the forest decorator a plantable column everywhere and plenty of
// headroom above it.
type grassCapGenerator struct{}

func (grassCapGenerator) Fill(w *world.ChunkWriter) {
	min, max := w.Min(), w.Max()
	for vx := min.X; vx < max.X; vx++ {
		for vz := min.Z; vz < max.Z; vz++ {
			for vy := min.Y; vy <= 10 && vy < max.Y; vy++ {
				if vy == 10 {
					w.SetVoxel(vx, vy, vz, registry.GrassID)
				} else {
					w.SetVoxel(vx, vy, vz, registry.StoneID)
				}
			}
		}
	}
}
