package terrain

import (
	"chunkserver/internal/registry"
	"chunkserver/internal/world"
)

// ForestDecorator scatters single-trunk trees across a decorated chunk,
// grounded on a deterministic per-column hash so a tree's placement and
// shape depend only on its world position and seed, never on chunk load
// order.
type ForestDecorator struct {
	Seed     int64
	Density  float64 // fraction of eligible columns that grow a tree, 0..1
	MinTrunk int
	MaxTrunk int
}

// NewForestDecorator returns a decorator with the reference density and
// trunk-height range used by cmd/chunkserver's default world.
func NewForestDecorator(seed int64) *ForestDecorator {
	return &ForestDecorator{
		Seed:     seed,
		Density:  0.02,
		MinTrunk: 4,
		MaxTrunk: 6,
	}
}

// Decorate implements world.Decorator. It walks every column of the chunk
// at coords, and for each column whose surface voxel is grass, rolls a
// deterministic hash against Density; a hit grows a trunk and a small
// leaf canopy through chunker.SetVoxelByVoxel, which may reach into
// neighboring chunks near a chunk's edge.
func (d *ForestDecorator) Decorate(chunker *world.Chunker, coords world.Coords2) {
	metrics := chunker.Metrics()
	reg := chunker.Registry()
	size := metrics.ChunkSize

	minX := coords.X * size
	minZ := coords.Z * size

	for lx := 0; lx < size; lx++ {
		for lz := 0; lz < size; lz++ {
			vx := minX + lx
			vz := minZ + lz

			surfaceY, ok := d.surfaceOf(chunker, reg, vx, vz, metrics.MaxHeight)
			if !ok {
				continue
			}

			h := hash3(vx, surfaceY, vz, d.Seed)
			chance := float64(h&0xFFFF) / 0x10000
			if chance >= d.Density {
				continue
			}
			if !d.clearAbove(chunker, vx, surfaceY, vz, metrics.MaxHeight) {
				continue
			}

			trunkHeight := d.MinTrunk
			if d.MaxTrunk > d.MinTrunk {
				trunkHeight += int((h >> 8) % uint32(d.MaxTrunk-d.MinTrunk+1))
			}
			d.growTree(chunker, vx, surfaceY, vz, trunkHeight, metrics.MaxHeight)
		}
	}
}

// surfaceOf scans downward from the top of the world for the first non-air
// voxel and reports it only if that voxel is grass, since the height map
// for a chunk under decoration hasn't been built yet.
func (d *ForestDecorator) surfaceOf(chunker *world.Chunker, reg *registry.Registry, vx, vz, maxHeight int) (int, bool) {
	for vy := maxHeight - 1; vy >= 0; vy-- {
		id, ok := chunker.VoxelAt(vx, vy, vz)
		if !ok {
			continue
		}
		if reg.IsAir(id) {
			continue
		}
		if id == registry.GrassID {
			return vy, true
		}
		return 0, false
	}
	return 0, false
}

// clearAbove confirms there is open headroom for a tree above the surface,
// so trees don't spawn poking through an overhang.
func (d *ForestDecorator) clearAbove(chunker *world.Chunker, vx, surfaceY, vz, maxHeight int) bool {
	const minClearance = 8
	for vy := surfaceY + 1; vy < surfaceY+minClearance && vy < maxHeight; vy++ {
		id, ok := chunker.VoxelAt(vx, vy, vz)
		if ok && !chunker.Registry().IsAir(id) {
			return false
		}
	}
	return surfaceY+minClearance <= maxHeight
}

func (d *ForestDecorator) growTree(chunker *world.Chunker, vx, surfaceY, vz, trunkHeight, maxHeight int) {
	top := surfaceY
	for level := 1; level <= trunkHeight && surfaceY+level < maxHeight; level++ {
		chunker.SetVoxelByVoxel(vx, surfaceY+level, vz, registry.WoodID)
		top = surfaceY + level
	}
	d.growCanopy(chunker, vx, top, vz, maxHeight)
}

// growCanopy stamps a small cross-shaped cluster of leaves around and above
// the trunk's top voxel, which the caller has already set to wood.
func (d *ForestDecorator) growCanopy(chunker *world.Chunker, vx, top, vz, maxHeight int) {
	offsets := []struct{ dx, dy, dz int }{
		{0, 1, 0},
		{1, 0, 0}, {-1, 0, 0}, {0, 0, 1}, {0, 0, -1},
		{1, 1, 0}, {-1, 1, 0}, {0, 1, 1}, {0, 1, -1},
	}
	for _, off := range offsets {
		ty := top + off.dy
		if ty < 0 || ty >= maxHeight {
			continue
		}
		chunker.SetVoxelByVoxel(vx+off.dx, ty, vz+off.dz, registry.LeavesID)
	}
}

func hash3(x, y, z int, seed int64) uint32 {
	h := uint32(x*374761393 + y*668265263 + z*2147483647 + int(seed))
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}
