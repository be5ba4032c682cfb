package world

// VOXEL_NEIGHBORS are the 6 axis-aligned unit offsets used by the light
// engine's flood fill.
var VOXEL_NEIGHBORS = [6]Coords3{
	{X: 1, Y: 0, Z: 0},
	{X: -1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: -1, Z: 0},
	{X: 0, Y: 0, Z: 1},
	{X: 0, Y: 0, Z: -1},
}

// CHUNK_NEIGHBORS are the 8 horizontal chunk offsets a chunk must have
// present (and not needs_decoration) to be considered ready.
var CHUNK_NEIGHBORS = [8]Coords2{
	{X: -1, Z: -1}, {X: 0, Z: -1}, {X: 1, Z: -1},
	{X: -1, Z: 0}, {X: 1, Z: 0},
	{X: -1, Z: 1}, {X: 0, Z: 1}, {X: 1, Z: 1},
}

// CHUNK_HORIZONTAL_NEIGHBORS are the 4 cardinal chunk offsets. remeshChunk
// does not use them; it propagates all 8 CHUNK_NEIGHBORS.
var CHUNK_HORIZONTAL_NEIGHBORS = [4]Coords2{
	{X: 1, Z: 0}, {X: -1, Z: 0}, {X: 0, Z: 1}, {X: 0, Z: -1},
}

// corner describes one vertex of a quad: its unit-cube offset, its UV corner,
// and which two of the face's side neighbors plus the diagonal corner
// neighbor feed its AO sample.
type corner struct {
	pos            Coords3
	u, v           float32
	side1, side2   Coords3
	cornerNeighbor Coords3
}

// blockFace describes one of the 6 directions a solid-block quad can face.
type blockFace struct {
	dir     Coords3
	corners [4]corner
	mat3    string // "top" / "side" / "bottom" slot used when the block is mat3-textured
	mat6    string // cardinal slot used when the block is mat6-textured
}

// BLOCK_FACES enumerates the 6 faces of a unit voxel cube, winding each
// face's 4 corners so that index pairs (0,1,2,2,1,3) produce a
// correctly-oriented quad facing outward along dir.
var BLOCK_FACES = [6]blockFace{
	{ // +X (east)
		dir:  Coords3{X: 1, Y: 0, Z: 0},
		mat6: "east",
		mat3: "side",
		corners: [4]corner{
			{pos: Coords3{X: 1, Y: 0, Z: 0}, u: 0, v: 1, side1: Coords3{X: 1, Y: -1, Z: 0}, side2: Coords3{X: 1, Y: 0, Z: -1}, cornerNeighbor: Coords3{X: 1, Y: -1, Z: -1}},
			{pos: Coords3{X: 1, Y: 0, Z: 1}, u: 1, v: 1, side1: Coords3{X: 1, Y: -1, Z: 0}, side2: Coords3{X: 1, Y: 0, Z: 1}, cornerNeighbor: Coords3{X: 1, Y: -1, Z: 1}},
			{pos: Coords3{X: 1, Y: 1, Z: 0}, u: 0, v: 0, side1: Coords3{X: 1, Y: 1, Z: 0}, side2: Coords3{X: 1, Y: 0, Z: -1}, cornerNeighbor: Coords3{X: 1, Y: 1, Z: -1}},
			{pos: Coords3{X: 1, Y: 1, Z: 1}, u: 1, v: 0, side1: Coords3{X: 1, Y: 1, Z: 0}, side2: Coords3{X: 1, Y: 0, Z: 1}, cornerNeighbor: Coords3{X: 1, Y: 1, Z: 1}},
		},
	},
	{ // -X (west)
		dir:  Coords3{X: -1, Y: 0, Z: 0},
		mat6: "west",
		mat3: "side",
		corners: [4]corner{
			{pos: Coords3{X: 0, Y: 0, Z: 1}, u: 0, v: 1, side1: Coords3{X: -1, Y: -1, Z: 0}, side2: Coords3{X: -1, Y: 0, Z: 1}, cornerNeighbor: Coords3{X: -1, Y: -1, Z: 1}},
			{pos: Coords3{X: 0, Y: 0, Z: 0}, u: 1, v: 1, side1: Coords3{X: -1, Y: -1, Z: 0}, side2: Coords3{X: -1, Y: 0, Z: -1}, cornerNeighbor: Coords3{X: -1, Y: -1, Z: -1}},
			{pos: Coords3{X: 0, Y: 1, Z: 1}, u: 0, v: 0, side1: Coords3{X: -1, Y: 1, Z: 0}, side2: Coords3{X: -1, Y: 0, Z: 1}, cornerNeighbor: Coords3{X: -1, Y: 1, Z: 1}},
			{pos: Coords3{X: 0, Y: 1, Z: 0}, u: 1, v: 0, side1: Coords3{X: -1, Y: 1, Z: 0}, side2: Coords3{X: -1, Y: 0, Z: -1}, cornerNeighbor: Coords3{X: -1, Y: 1, Z: -1}},
		},
	},
	{ // +Y (top)
		dir:  Coords3{X: 0, Y: 1, Z: 0},
		mat6: "top",
		mat3: "top",
		corners: [4]corner{
			{pos: Coords3{X: 0, Y: 1, Z: 0}, u: 0, v: 1, side1: Coords3{X: -1, Y: 1, Z: 0}, side2: Coords3{X: 0, Y: 1, Z: -1}, cornerNeighbor: Coords3{X: -1, Y: 1, Z: -1}},
			{pos: Coords3{X: 1, Y: 1, Z: 0}, u: 1, v: 1, side1: Coords3{X: 1, Y: 1, Z: 0}, side2: Coords3{X: 0, Y: 1, Z: -1}, cornerNeighbor: Coords3{X: 1, Y: 1, Z: -1}},
			{pos: Coords3{X: 0, Y: 1, Z: 1}, u: 0, v: 0, side1: Coords3{X: -1, Y: 1, Z: 0}, side2: Coords3{X: 0, Y: 1, Z: 1}, cornerNeighbor: Coords3{X: -1, Y: 1, Z: 1}},
			{pos: Coords3{X: 1, Y: 1, Z: 1}, u: 1, v: 0, side1: Coords3{X: 1, Y: 1, Z: 0}, side2: Coords3{X: 0, Y: 1, Z: 1}, cornerNeighbor: Coords3{X: 1, Y: 1, Z: 1}},
		},
	},
	{ // -Y (bottom)
		dir:  Coords3{X: 0, Y: -1, Z: 0},
		mat6: "bottom",
		mat3: "bottom",
		corners: [4]corner{
			{pos: Coords3{X: 0, Y: 0, Z: 1}, u: 0, v: 1, side1: Coords3{X: -1, Y: -1, Z: 0}, side2: Coords3{X: 0, Y: -1, Z: 1}, cornerNeighbor: Coords3{X: -1, Y: -1, Z: 1}},
			{pos: Coords3{X: 1, Y: 0, Z: 1}, u: 1, v: 1, side1: Coords3{X: 1, Y: -1, Z: 0}, side2: Coords3{X: 0, Y: -1, Z: 1}, cornerNeighbor: Coords3{X: 1, Y: -1, Z: 1}},
			{pos: Coords3{X: 0, Y: 0, Z: 0}, u: 0, v: 0, side1: Coords3{X: -1, Y: -1, Z: 0}, side2: Coords3{X: 0, Y: -1, Z: -1}, cornerNeighbor: Coords3{X: -1, Y: -1, Z: -1}},
			{pos: Coords3{X: 1, Y: 0, Z: 0}, u: 1, v: 0, side1: Coords3{X: 1, Y: -1, Z: 0}, side2: Coords3{X: 0, Y: -1, Z: -1}, cornerNeighbor: Coords3{X: 1, Y: -1, Z: -1}},
		},
	},
	{ // +Z (south)
		dir:  Coords3{X: 0, Y: 0, Z: 1},
		mat6: "south",
		mat3: "side",
		corners: [4]corner{
			{pos: Coords3{X: 1, Y: 0, Z: 1}, u: 0, v: 1, side1: Coords3{X: 0, Y: -1, Z: 1}, side2: Coords3{X: 1, Y: 0, Z: 1}, cornerNeighbor: Coords3{X: 1, Y: -1, Z: 1}},
			{pos: Coords3{X: 0, Y: 0, Z: 1}, u: 1, v: 1, side1: Coords3{X: 0, Y: -1, Z: 1}, side2: Coords3{X: -1, Y: 0, Z: 1}, cornerNeighbor: Coords3{X: -1, Y: -1, Z: 1}},
			{pos: Coords3{X: 1, Y: 1, Z: 1}, u: 0, v: 0, side1: Coords3{X: 0, Y: 1, Z: 1}, side2: Coords3{X: 1, Y: 0, Z: 1}, cornerNeighbor: Coords3{X: 1, Y: 1, Z: 1}},
			{pos: Coords3{X: 0, Y: 1, Z: 1}, u: 1, v: 0, side1: Coords3{X: 0, Y: 1, Z: 1}, side2: Coords3{X: -1, Y: 0, Z: 1}, cornerNeighbor: Coords3{X: -1, Y: 1, Z: 1}},
		},
	},
	{ // -Z (north)
		dir:  Coords3{X: 0, Y: 0, Z: -1},
		mat6: "north",
		mat3: "side",
		corners: [4]corner{
			{pos: Coords3{X: 0, Y: 0, Z: 0}, u: 0, v: 1, side1: Coords3{X: 0, Y: -1, Z: -1}, side2: Coords3{X: -1, Y: 0, Z: -1}, cornerNeighbor: Coords3{X: -1, Y: -1, Z: -1}},
			{pos: Coords3{X: 1, Y: 0, Z: 0}, u: 1, v: 1, side1: Coords3{X: 0, Y: -1, Z: -1}, side2: Coords3{X: 1, Y: 0, Z: -1}, cornerNeighbor: Coords3{X: 1, Y: -1, Z: -1}},
			{pos: Coords3{X: 0, Y: 1, Z: 0}, u: 0, v: 0, side1: Coords3{X: 0, Y: 1, Z: -1}, side2: Coords3{X: -1, Y: 0, Z: -1}, cornerNeighbor: Coords3{X: -1, Y: 1, Z: -1}},
			{pos: Coords3{X: 1, Y: 1, Z: 0}, u: 1, v: 0, side1: Coords3{X: 0, Y: 1, Z: -1}, side2: Coords3{X: 1, Y: 0, Z: -1}, cornerNeighbor: Coords3{X: 1, Y: -1, Z: -1}},
		},
	},
}

// plantCorner is one vertex of a crossed-quad plant face, in unit-cube space
// before the plant_shrink transform.
type plantCorner struct {
	pos  Coords3
	u, v float32
}

// plantFace is one of the two crossed quads a plant voxel emits.
type plantFace struct {
	corners [4]plantCorner
}

// PLANT_FACES is the fixed crossed-quad geometry used for plant voxels
// (torches, saplings, and anything else the registry marks IsPlant).
var PLANT_FACES = [2]plantFace{
	{
		corners: [4]plantCorner{
			{pos: Coords3{X: 0, Y: 0, Z: 0}, u: 0, v: 1},
			{pos: Coords3{X: 1, Y: 0, Z: 1}, u: 1, v: 1},
			{pos: Coords3{X: 0, Y: 1, Z: 0}, u: 0, v: 0},
			{pos: Coords3{X: 1, Y: 1, Z: 1}, u: 1, v: 0},
		},
	},
	{
		corners: [4]plantCorner{
			{pos: Coords3{X: 1, Y: 0, Z: 0}, u: 0, v: 1},
			{pos: Coords3{X: 0, Y: 0, Z: 1}, u: 1, v: 1},
			{pos: Coords3{X: 1, Y: 1, Z: 0}, u: 0, v: 0},
			{pos: Coords3{X: 0, Y: 1, Z: 1}, u: 1, v: 0},
		},
	},
}

// AO_TABLE maps an ao_index in [0,3] to a 0-255 darkening value; divide by
// 255 to get the [0,1] factor stored in a Mesh's AOs slice.
var AO_TABLE = [4]float32{100, 170, 210, 255}

// BOUNDARY_STENCIL_OFFSETS are the 26 face/edge/corner neighbor offsets a
// block-face vertex samples from in Pass A, paired index-for-index with
// boundaryStencilTests below: 6 face offsets, then 12 edge offsets, then 8
// corner offsets.
var BOUNDARY_STENCIL_OFFSETS = [26]Coords3{
	{X: -1}, {Y: -1}, {Z: -1},
	{X: 1}, {Y: 1}, {Z: 1},
	{X: -1, Y: -1}, {X: -1, Z: -1}, {X: -1, Y: 1}, {X: -1, Z: 1},
	{X: 1, Y: -1}, {X: 1, Z: -1}, {X: 1, Y: 1}, {X: 1, Z: 1},
	{Y: -1, Z: -1}, {Y: 1, Z: -1}, {Y: -1, Z: 1}, {Y: 1, Z: 1},
	{X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: 1},
	{X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1},
}

// boundaryStencilTests reports, for a vertex at voxel-lattice position pos
// inside a chunk spanning [min,max], which of the 26
// BOUNDARY_STENCIL_OFFSETS entries apply: only the ones whose face, edge or
// corner the vertex actually lies on are tested, matching which of a
// vertex's coordinates sit exactly on the chunk boundary.
func boundaryStencilTests(pos, min, max Coords3) [26]bool {
	return [26]bool{
		pos.X == min.X, pos.Y == min.Y, pos.Z == min.Z,
		pos.X == max.X, pos.Y == max.Y, pos.Z == max.Z,

		pos.X == min.X && pos.Y == min.Y,
		pos.X == min.X && pos.Z == min.Z,
		pos.X == min.X && pos.Y == max.Y,
		pos.X == min.X && pos.Z == max.Z,
		pos.X == max.X && pos.Y == min.Y,
		pos.X == max.X && pos.Z == min.Z,
		pos.X == max.X && pos.Y == max.Y,
		pos.X == max.X && pos.Z == max.Z,
		pos.Y == min.Y && pos.Z == min.Z,
		pos.Y == max.Y && pos.Z == min.Z,
		pos.Y == min.Y && pos.Z == max.Z,
		pos.Y == max.Y && pos.Z == max.Z,

		pos.X == min.X && pos.Y == min.Y && pos.Z == min.Z,
		pos.X == min.X && pos.Y == min.Y && pos.Z == max.Z,
		pos.X == min.X && pos.Y == max.Y && pos.Z == min.Z,
		pos.X == min.X && pos.Y == max.Y && pos.Z == max.Z,
		pos.X == max.X && pos.Y == min.Y && pos.Z == min.Z,
		pos.X == max.X && pos.Y == min.Y && pos.Z == max.Z,
		pos.X == max.X && pos.Y == max.Y && pos.Z == min.Z,
		pos.X == max.X && pos.Y == max.Y && pos.Z == max.Z,
	}
}

const plantShrink = 0.6

// standardIndices and flippedIndices are the two triangulations a quad can
// use; see the AO/torch quad-flip rule in mesh.go.
var standardIndices = [6]int32{0, 1, 2, 2, 1, 3}
var flippedIndices = [6]int32{0, 1, 3, 3, 2, 0}
