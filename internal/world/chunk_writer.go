package world

import "chunkserver/internal/registry"

// ChunkWriter is the narrow facade handed to a Generator. It exposes only
// voxel writes and the chunk's bounds so generators cannot reach lifecycle
// flags, lighting or meshing directly — the Chunker alone owns those.
type ChunkWriter struct {
	chunk    *Chunk
	registry *registry.Registry
	wrote    bool
}

// Min returns the inclusive voxel-space lower bound of the chunk being filled.
func (w *ChunkWriter) Min() Coords3 { return w.chunk.Min }

// Max returns the exclusive voxel-space upper bound of the chunk being filled.
func (w *ChunkWriter) Max() Coords3 { return w.chunk.Max }

// ChunkSize is the horizontal edge length in voxels.
func (w *ChunkWriter) ChunkSize() int { return w.chunk.metrics.ChunkSize }

// MaxHeight is the vertical extent in voxels.
func (w *ChunkWriter) MaxHeight() int { return w.chunk.metrics.MaxHeight }

// SetVoxel writes a block id at a global voxel coordinate inside this
// chunk's bounds.
func (w *ChunkWriter) SetVoxel(vx, vy, vz int, id uint32) {
	w.chunk.setVoxel(vx, vy, vz, id)
	if !w.registry.IsAir(id) {
		w.wrote = true
	}
}

// Generator fills a freshly-allocated chunk with terrain. Implementations
// must be deterministic functions of voxel coordinate so that regenerating
// the same chunk twice produces identical output.
type Generator interface {
	Fill(w *ChunkWriter)
}

// Decorator places structures after terrain for every chunk in the
// generate/preload radius has landed. A Decorator may write into neighbor
// chunks via the Chunker it is given, which is why load() generates terrain
// 4 chunks beyond the decoration radius.
type Decorator interface {
	Decorate(chunker *Chunker, coords Coords2)
}
