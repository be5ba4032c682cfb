package world

import (
	"testing"

	"chunkserver/internal/registry"
)

func testMetrics() WorldMetrics {
	return WorldMetrics{
		ChunkSize:     16,
		MaxHeight:     256,
		MaxLightLevel: 15,
		Dimension:     1,
		RenderRadius:  2,
	}
}

// airGenerator fills nothing, leaving every voxel as air.
type airGenerator struct{}

func (airGenerator) Fill(w *ChunkWriter) {}

// solidGenerator fills every voxel with a fixed block id.
type solidGenerator struct{ id uint32 }

func (g solidGenerator) Fill(w *ChunkWriter) {
	min, max := w.Min(), w.Max()
	for vx := min.X; vx < max.X; vx++ {
		for vz := min.Z; vz < max.Z; vz++ {
			for vy := min.Y; vy < max.Y; vy++ {
				w.SetVoxel(vx, vy, vz, g.id)
			}
		}
	}
}

type noopDecorator struct{}

func (noopDecorator) Decorate(ck *Chunker, coords Coords2) {}

// readyChunker builds a Chunker with coords and all 8 of its horizontal
// neighbors present and decorated, so Get(coords) reports ready without
// needing a full Generate() call over a wide radius.
func readyChunker(t *testing.T, reg *registry.Registry, gen Generator) (*Chunker, Coords2) {
	t.Helper()
	metrics := testMetrics()
	ck := NewChunker(metrics, reg, gen, noopDecorator{})

	center := Coords2{}
	chunk := ck.generateChunk(center)
	ck.chunks[center] = chunk
	ck.decorateChunk(center)
	ck.buildHeightMap(center)

	for _, nc := range neighborChunks(center) {
		n := newChunk(nc, metrics)
		n.needsTerrain = false
		n.needsDecoration = false
		ck.chunks[nc] = n
	}
	return ck, center
}
