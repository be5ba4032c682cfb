// Package world implements the voxel chunk collection: the lifecycle state
// machine that generates, decorates, lights and meshes columnar chunks, and
// routes arbitrary voxel edits back through those derived artifacts.
package world

import (
	"errors"
	"sync"

	"chunkserver/internal/registry"
)

// Chunker is the Chunks container: the single owner of every loaded Chunk.
// It is safe for concurrent use, but the mutex exists to catch accidental
// concurrent callers rather than to enable real parallel mutation — the
// core is specified as single-writer, single-threaded (propagation reads
// and writes neighboring chunks, so parallel edits would race).
type Chunker struct {
	mu sync.Mutex

	metrics   WorldMetrics
	registry  *registry.Registry
	generator Generator
	decorator Decorator

	chunks map[Coords2]*Chunk
}

// NewChunker constructs an empty container. A nil generator fills chunks
// with air; a nil decorator skips decoration entirely.
func NewChunker(metrics WorldMetrics, reg *registry.Registry, generator Generator, decorator Decorator) *Chunker {
	return &Chunker{
		metrics:   metrics,
		registry:  reg,
		generator: generator,
		decorator: decorator,
		chunks:    make(map[Coords2]*Chunk),
	}
}

// Metrics returns the immutable configuration this container was built with.
func (ck *Chunker) Metrics() WorldMetrics { return ck.metrics }

// Registry returns the read-only block oracle this container queries.
func (ck *Chunker) Registry() *registry.Registry { return ck.registry }

// Len reports how many chunks are currently resident.
func (ck *Chunker) Len() int {
	ck.mu.Lock()
	defer ck.mu.Unlock()
	return len(ck.chunks)
}

// Preload loads a square-ish neighborhood of radius width around the origin,
// used to warm the world before any player connects.
func (ck *Chunker) Preload(width int16) {
	ck.mu.Lock()
	defer ck.mu.Unlock()
	ck.load(Coords2{}, width)
}

// Generate loads the neighborhood of renderRadius around center, the normal
// entry point as a player moves through the world.
func (ck *Chunker) Generate(center Coords2, renderRadius int16) {
	ck.mu.Lock()
	defer ck.mu.Unlock()
	ck.load(center, renderRadius)
}

// load implements §4.1: stage and insert terrain for the wider annulus,
// decorate the inner radius, then build height maps for everything
// decorated. All terrain generation finishes before any decoration begins,
// and all decoration finishes before any height-map build.
func (ck *Chunker) load(center Coords2, renderRadius int16) {
	terrainRadius := int(renderRadius) + 4
	decorateRadius := int(renderRadius)

	staged := make(map[Coords2]*Chunk)
	for x := -terrainRadius; x <= terrainRadius; x++ {
		for z := -terrainRadius; z <= terrainRadius; z++ {
			if x*x+z*z >= terrainRadius*terrainRadius {
				continue
			}
			coords := Coords2{X: center.X + x, Z: center.Z + z}
			if _, exists := ck.chunks[coords]; exists {
				continue
			}
			if _, already := staged[coords]; already {
				continue
			}
			staged[coords] = ck.generateChunk(coords)
		}
	}
	for coords, chunk := range staged {
		ck.chunks[coords] = chunk
	}

	decorated := make([]Coords2, 0, decorateRadius*decorateRadius)
	for x := -decorateRadius; x <= decorateRadius; x++ {
		for z := -decorateRadius; z <= decorateRadius; z++ {
			if x*x+z*z > decorateRadius*decorateRadius {
				continue
			}
			coords := Coords2{X: center.X + x, Z: center.Z + z}
			chunk, ok := ck.chunks[coords]
			if !ok || !chunk.needsDecoration {
				continue
			}
			ck.decorateChunk(coords)
			decorated = append(decorated, coords)
		}
	}

	for _, coords := range decorated {
		ck.buildHeightMap(coords)
	}
}

// generateChunk allocates a chunk and runs terrain generation over it,
// resolving Open Question (b): is_empty reflects whether Fill actually
// wrote any non-air voxel, not a hardcoded true. A generated chunk is
// flagged needsSaving, since none of it has been persisted yet.
func (ck *Chunker) generateChunk(coords Coords2) *Chunk {
	chunk := newChunk(coords, ck.metrics)
	if ck.generator != nil {
		writer := &ChunkWriter{chunk: chunk, registry: ck.registry}
		ck.generator.Fill(writer)
		chunk.isEmpty = !writer.wrote
	}
	chunk.needsTerrain = false
	chunk.needsSaving = true
	return chunk
}

func (ck *Chunker) decorateChunk(coords Coords2) {
	chunk := ck.chunks[coords]
	if ck.decorator != nil {
		ck.decorator.Decorate(ck, coords)
	}
	chunk.needsDecoration = false
}

// buildHeightMap scans every column of coords from the top down; the first
// voxel that is neither air nor a plant becomes that column's height, and
// topY is raised to cover every non-air voxel passed on the way, plants
// included.
func (ck *Chunker) buildHeightMap(coords Coords2) {
	chunk, ok := ck.chunks[coords]
	if !ok {
		return
	}
	size := ck.metrics.ChunkSize
	for lx := 0; lx < size; lx++ {
		for lz := 0; lz < size; lz++ {
			vx := chunk.Min.X + lx
			vz := chunk.Min.Z + lz
			h := int32(0)
			for ly := ck.metrics.MaxHeight - 1; ly >= 0; ly-- {
				block := ck.registry.GetBlockByID(chunk.Voxel(vx, ly, vz))
				if !block.IsEmpty {
					chunk.raiseTopY(int32(ly))
				}
				if !block.IsEmpty && !block.IsPlant {
					h = int32(ly)
					break
				}
			}
			chunk.setHeight(vx, vz, h)
			chunk.raiseTopY(h)
		}
	}
}

// Restore installs a chunk recovered from a persistence snapshot: terrain,
// decoration and propagation are all marked complete, and the height map and
// topY watermark are rebuilt from the restored voxel data, so a restored
// chunk behaves exactly like one that had gone through load() followed by a
// remesh. The caller supplies dense local-order arrays sized for metrics.
func (ck *Chunker) Restore(coords Coords2, voxels []uint32, sunlight, torchLight []uint8) {
	ck.mu.Lock()
	defer ck.mu.Unlock()

	chunk := newChunk(coords, ck.metrics)
	copy(chunk.voxels, voxels)
	copy(chunk.sunlight, sunlight)
	copy(chunk.torchLight, torchLight)
	chunk.needsTerrain = false
	chunk.needsDecoration = false
	chunk.needsPropagation = false
	chunk.isDirty = true
	chunk.isEmpty = true
	for _, id := range chunk.voxels {
		if !ck.registry.IsAir(id) {
			chunk.isEmpty = false
			break
		}
	}
	ck.chunks[coords] = chunk
	ck.buildHeightMap(coords)
}

// SetVoxelByVoxel writes a voxel and dirties its containing chunk, without
// touching height maps or lighting. Decorators use this directly; Update
// layers height-map maintenance and light propagation on top of it.
func (ck *Chunker) SetVoxelByVoxel(vx, vy, vz int, id uint32) {
	chunk, ok := ck.getChunkByVoxel(vx, vz)
	if !ok {
		return
	}
	chunk.setVoxel(vx, vy, vz, id)
	chunk.isDirty = true
	if !ck.registry.IsAir(id) {
		chunk.isEmpty = false
	}
}

// VoxelAt resolves a voxel at an arbitrary world coordinate, which may lie in
// a neighboring chunk. Decorators use this to read already-generated terrain
// before placing structures, since the height map for a chunk being decorated
// hasn't been built yet. Returns false if the coordinate's chunk isn't loaded
// or vy is out of vertical range.
func (ck *Chunker) VoxelAt(vx, vy, vz int) (uint32, bool) {
	return ck.voxelAt(vx, vy, vz)
}

func (ck *Chunker) getChunkByVoxel(vx, vz int) (*Chunk, bool) {
	coords := VoxelToChunk(Coords3{X: vx, Z: vz}, ck.metrics.ChunkSize)
	chunk, ok := ck.chunks[coords]
	return chunk, ok
}

// voxelAt resolves a voxel that may be in a different chunk than the one the
// caller started from, e.g. for boundary stencil sampling in the mesher or
// cross-chunk light propagation. Returns false if the voxel's chunk is not
// loaded or vy is out of vertical range.
func (ck *Chunker) voxelAt(vx, vy, vz int) (uint32, bool) {
	if vy < 0 || vy >= ck.metrics.MaxHeight {
		return 0, false
	}
	chunk, ok := ck.getChunkByVoxel(vx, vz)
	if !ok {
		return 0, false
	}
	return chunk.Voxel(vx, vy, vz), true
}

func (ck *Chunker) sunlightAt(vx, vy, vz int) (uint8, bool) {
	if vy < 0 || vy >= ck.metrics.MaxHeight {
		return 0, false
	}
	chunk, ok := ck.getChunkByVoxel(vx, vz)
	if !ok {
		return 0, false
	}
	return chunk.Sunlight(vx, vy, vz), true
}

func (ck *Chunker) torchLightAt(vx, vy, vz int) (uint8, bool) {
	if vy < 0 || vy >= ck.metrics.MaxHeight {
		return 0, false
	}
	chunk, ok := ck.getChunkByVoxel(vx, vz)
	if !ok {
		return 0, false
	}
	return chunk.TorchLight(vx, vy, vz), true
}

// neighborChunks returns the 8 horizontal neighbor coordinates of coords.
// Open Question (a): always 8, not the 6 an off-by-one loop would yield.
func neighborChunks(coords Coords2) [8]Coords2 {
	var out [8]Coords2
	for i, off := range CHUNK_NEIGHBORS {
		out[i] = Coords2{X: coords.X + off.X, Z: coords.Z + off.Z}
	}
	return out
}

// isReady implements the §3 readiness predicate: the chunk itself must have
// finished terrain and decoration, and all 8 horizontal neighbors must exist
// and have finished decoration too.
func (ck *Chunker) isReady(coords Coords2) bool {
	chunk, ok := ck.chunks[coords]
	if !ok || !chunk.selfReady() {
		return false
	}
	for _, nc := range neighborChunks(coords) {
		neighbor, ok := ck.chunks[nc]
		if !ok || neighbor.needsDecoration {
			return false
		}
	}
	return true
}

// Get returns a chunk only if it is fully ready, transparently remeshing it
// first if it is dirty. A not-ready chunk is reported as an absent result,
// never an error — lazy-not-ready is an expected steady-state condition.
func (ck *Chunker) Get(coords Coords2) (*Chunk, bool) {
	ck.mu.Lock()
	defer ck.mu.Unlock()
	if !ck.isReady(coords) {
		return nil, false
	}
	chunk := ck.chunks[coords]
	if chunk.isDirty {
		ck.remeshChunk(coords)
	}
	return chunk, true
}

// remeshChunk implements the §4.1 remesh policy.
func (ck *Chunker) remeshChunk(coords Coords2) {
	chunk, ok := ck.chunks[coords]
	if !ok || !chunk.isDirty {
		return
	}
	if chunk.needsPropagation {
		ck.propagateChunk(coords)
	}
	for _, nc := range neighborChunks(coords) {
		if neighbor, ok := ck.chunks[nc]; ok && neighbor.needsPropagation {
			ck.propagateChunk(nc)
		}
	}
	chunk.meshes.Opaque = meshChunk(ck, chunk, false)
	chunk.meshes.Transparent = meshChunk(ck, chunk, true)
	chunk.isDirty = false
}

// DirtySnapshots returns every chunk currently flagged needsSaving. The
// outer persistence driver is responsible for clearing the flag on each
// chunk it successfully durably writes; the core never clears it itself.
func (ck *Chunker) DirtySnapshots() []*Chunk {
	ck.mu.Lock()
	defer ck.mu.Unlock()
	var out []*Chunk
	for _, chunk := range ck.chunks {
		if chunk.needsSaving {
			out = append(out, chunk)
		}
	}
	return out
}

// Unload is an explicit non-goal: chunk eviction is not implemented.
func (ck *Chunker) Unload(coords Coords2) error {
	return errors.New("world: chunk unloading is not implemented")
}
