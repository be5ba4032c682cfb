package world

import "fmt"

// Meshes holds the last-built render geometry for one chunk. Both fields are
// nil until the chunk has been remeshed at least once.
type Meshes struct {
	Opaque      *Mesh
	Transparent *Mesh
}

// Chunk owns one column of voxels plus its derived lighting, height map and
// mesh pair. A Chunk is owned by its Chunker; callers reach one through
// Chunker.Get, or through Chunker.DirtySnapshots for persistence.
type Chunk struct {
	Coords Coords2
	Min    Coords3
	Max    Coords3

	metrics WorldMetrics

	voxels     []uint32
	sunlight   []uint8
	torchLight []uint8
	heightMap  []int32
	topY       int32

	needsTerrain     bool
	needsDecoration  bool
	needsPropagation bool
	isDirty          bool
	needsSaving      bool
	isEmpty          bool

	meshes Meshes
}

// newChunk allocates a Chunk with needsTerrain, needsDecoration and
// needsPropagation set. needsSaving starts false; generateChunk sets it for
// chunks created by load(). isDirty starts true so the first remesh after propagation actually runs.
func newChunk(coords Coords2, metrics WorldMetrics) *Chunk {
	min := Coords3{X: coords.X * metrics.ChunkSize, Y: 0, Z: coords.Z * metrics.ChunkSize}
	max := Coords3{X: min.X + metrics.ChunkSize, Y: metrics.MaxHeight, Z: min.Z + metrics.ChunkSize}
	return &Chunk{
		Coords:           coords,
		Min:              min,
		Max:              max,
		metrics:          metrics,
		voxels:           make([]uint32, metrics.voxelCount()),
		sunlight:         make([]uint8, metrics.voxelCount()),
		torchLight:       make([]uint8, metrics.voxelCount()),
		heightMap:        make([]int32, metrics.columnCount()),
		topY:             3,
		needsTerrain:     true,
		needsDecoration:  true,
		needsPropagation: true,
		isDirty:          true,
		needsSaving:      false,
		isEmpty:          true,
	}
}

func (c *Chunk) localIndex(lx, ly, lz int) int {
	return (lx*c.metrics.MaxHeight+ly)*c.metrics.ChunkSize + lz
}

func (c *Chunk) heightIndex(lx, lz int) int {
	return lx*c.metrics.ChunkSize + lz
}

// local converts a global voxel coordinate into this chunk's local indices,
// reporting whether the coordinate actually falls inside the chunk's bounds.
func (c *Chunk) local(vx, vy, vz int) (lx, ly, lz int, ok bool) {
	lx = vx - c.Min.X
	lz = vz - c.Min.Z
	ly = vy
	if lx < 0 || lz < 0 || lx >= c.metrics.ChunkSize || lz >= c.metrics.ChunkSize {
		return 0, 0, 0, false
	}
	if ly < 0 || ly >= c.metrics.MaxHeight {
		return 0, 0, 0, false
	}
	return lx, ly, lz, true
}

func (c *Chunk) mustLocal(vx, vy, vz int) (int, int, int) {
	lx, ly, lz, ok := c.local(vx, vy, vz)
	if !ok {
		panic(fmt.Sprintf("world: voxel (%d,%d,%d) outside chunk %s bounds %v-%v", vx, vy, vz, c.Coords, c.Min, c.Max))
	}
	return lx, ly, lz
}

// Voxel returns the block id at a global voxel coordinate. Panics if the
// coordinate is outside this chunk, matching the core's fail-fast contract
// for caller-promised bounds.
func (c *Chunk) Voxel(vx, vy, vz int) uint32 {
	lx, ly, lz := c.mustLocal(vx, vy, vz)
	return c.voxels[c.localIndex(lx, ly, lz)]
}

// setVoxel writes a block id. It does not touch dirty/saving flags; callers
// that mutate state (Chunker.load, Chunker.Update) set those explicitly so
// the ordering guarantees of the update algorithm stay visible at the call
// site instead of being hidden inside this setter.
func (c *Chunk) setVoxel(vx, vy, vz int, id uint32) {
	lx, ly, lz := c.mustLocal(vx, vy, vz)
	c.voxels[c.localIndex(lx, ly, lz)] = id
}

func (c *Chunk) Sunlight(vx, vy, vz int) uint8 {
	lx, ly, lz := c.mustLocal(vx, vy, vz)
	return c.sunlight[c.localIndex(lx, ly, lz)]
}

func (c *Chunk) setSunlight(vx, vy, vz int, level uint8) {
	lx, ly, lz := c.mustLocal(vx, vy, vz)
	c.sunlight[c.localIndex(lx, ly, lz)] = level
}

func (c *Chunk) TorchLight(vx, vy, vz int) uint8 {
	lx, ly, lz := c.mustLocal(vx, vy, vz)
	return c.torchLight[c.localIndex(lx, ly, lz)]
}

func (c *Chunk) setTorchLight(vx, vy, vz int, level uint8) {
	lx, ly, lz := c.mustLocal(vx, vy, vz)
	c.torchLight[c.localIndex(lx, ly, lz)] = level
}

// Height returns the height map value for the column containing (vx, vz).
func (c *Chunk) Height(vx, vz int) int32 {
	lx := vx - c.Min.X
	lz := vz - c.Min.Z
	return c.heightMap[c.heightIndex(lx, lz)]
}

func (c *Chunk) setHeight(vx, vz int, h int32) {
	lx := vx - c.Min.X
	lz := vz - c.Min.Z
	c.heightMap[c.heightIndex(lx, lz)] = h
}

// TopY returns the current mesher watermark.
func (c *Chunk) TopY() int32 {
	return c.topY
}

func (c *Chunk) raiseTopY(y int32) {
	if top := y + 3; top > c.topY {
		c.topY = top
	}
}

// selfReady reports whether this chunk alone has finished terrain and
// decoration. It does not check neighbors; see Chunker.isReady for the full
// readiness predicate.
func (c *Chunk) selfReady() bool {
	return !c.needsTerrain && !c.needsDecoration
}

// NeedsSaving reports whether an outer persistence driver should snapshot
// this chunk. The core never clears this flag itself.
func (c *Chunk) NeedsSaving() bool {
	return c.needsSaving
}

// ClearNeedsSaving is called by an outer persistence driver once a snapshot
// has been durably written. The core never calls this itself.
func (c *Chunk) ClearNeedsSaving() {
	c.needsSaving = false
}

// IsEmpty reports whether no non-air voxel has been written into this chunk
// by generation, decoration, Update or Restore. It is not recomputed when
// voxels are set back to air.
func (c *Chunk) IsEmpty() bool {
	return c.isEmpty
}

// Meshes returns the last-built mesh pair. Both are nil before the first
// remesh, and either may be nil if no geometry of that kind was emitted.
func (c *Chunk) Meshes() Meshes {
	return c.meshes
}

// RawVoxels returns the chunk's dense voxel array in local (lx,ly,lz) order,
// for an outer persistence driver to encode. Callers must not mutate it.
func (c *Chunk) RawVoxels() []uint32 { return c.voxels }

// RawSunlight returns the chunk's dense sunlight array in local order.
func (c *Chunk) RawSunlight() []uint8 { return c.sunlight }

// RawTorchLight returns the chunk's dense torch light array in local order.
func (c *Chunk) RawTorchLight() []uint8 { return c.torchLight }

// ForEachColumn invokes fn for every local column with its height map value
// and world-space voxel coordinate.
func (c *Chunk) ForEachColumn(fn func(lx, lz int, vx, vz int, height int32)) {
	size := c.metrics.ChunkSize
	for lx := 0; lx < size; lx++ {
		for lz := 0; lz < size; lz++ {
			fn(lx, lz, c.Min.X+lx, c.Min.Z+lz, c.heightMap[c.heightIndex(lx, lz)])
		}
	}
}
