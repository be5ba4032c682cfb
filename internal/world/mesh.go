package world

import (
	"math"

	"chunkserver/internal/registry"
)

// Mesh is the render-ready geometry produced for one chunk, for either its
// opaque or its transparent voxel set. All positions are pre-multiplied by
// WorldMetrics.Dimension.
type Mesh struct {
	Positions   []float32
	Indices     []int32
	UVs         []float32
	AOs         []float32
	Sunlights   []int32
	TorchLights []int32
}

// vertexAccum is the Pass A per-vertex light accumulator: a running count
// plus sunlight/torchlight sums, keyed by a quantized vertex position so
// faces of this chunk that share a vertex smooth together. It lives for one
// meshChunk call; light from across a chunk boundary enters only through
// the boundary stencil samples.
type vertexAccum struct {
	count    int
	sunSum   int
	torchSum int
}

type vertexKey [3]int64

// quantizeKey turns a world-space position into a stable integer key. Block
// vertices already land on an integer*dimension lattice; plant vertices are
// shrunk toward the column center and so need the same quantization to
// dedup correctly — both round to the nearest 1/1000 of a world unit.
func quantizeKey(x, y, z float64) vertexKey {
	const q = 1000.0
	return vertexKey{
		int64(math.Round(x * q)),
		int64(math.Round(y * q)),
		int64(math.Round(z * q)),
	}
}

type pendingCorner struct {
	pos  [3]float64
	u, v float32
	ao   float32
	key  vertexKey
}

type pendingFace struct {
	corners  [4]pendingCorner
	skipFlip bool
}

// meshChunk runs the two-pass greedy mesher over chunk's voxel range for
// either the opaque or the transparent voxel set. Pass A (gathering light
// samples into accum as each face is visited) and the smoothing step
// (dividing each accum bucket once the whole range has been visited) are
// interleaved with building the pendingFace list so the implementation does
// a single traversal; Pass B (final geometry emission, AO/torch quad-flip)
// runs afterward once every vertex's smoothed light is known.
func meshChunk(ck *Chunker, chunk *Chunk, transparent bool) *Mesh {
	reg := ck.registry
	size := ck.metrics.ChunkSize
	dim := ck.metrics.Dimension

	top := int(chunk.topY)
	if top >= ck.metrics.MaxHeight {
		top = ck.metrics.MaxHeight - 1
	}

	accum := make(map[vertexKey]*vertexAccum)
	addSample := func(key vertexKey, vx, vy, vz int) {
		id, ok := ck.voxelAt(vx, vy, vz)
		if !ok || !reg.GetTransparencyByID(id) {
			return
		}
		sun, _ := ck.sunlightAt(vx, vy, vz)
		torch, _ := ck.torchLightAt(vx, vy, vz)
		a := accum[key]
		if a == nil {
			a = &vertexAccum{}
			accum[key] = a
		}
		a.count++
		a.sunSum += int(sun)
		a.torchSum += int(torch)
	}

	var faces []pendingFace

	for lx := 0; lx < size; lx++ {
		vx := chunk.Min.X + lx
		for lz := 0; lz < size; lz++ {
			vz := chunk.Min.Z + lz
			for vy := 0; vy <= top; vy++ {
				id := chunk.Voxel(vx, vy, vz)
				block := reg.GetBlockByID(id)
				if !(block.IsSolid || block.IsPlant) {
					continue
				}
				if block.IsTransparent != transparent {
					continue
				}

				if block.IsPlant {
					emitPlantFaces(&faces, addSample, block, vx, vy, vz, dim)
					continue
				}

				emitBlockFaces(ck, chunk, &faces, addSample, reg, block, id, vx, vy, vz, dim, transparent)
			}
		}
	}

	if len(faces) == 0 {
		return nil
	}

	smoothed := func(key vertexKey) (float64, float64) {
		a := accum[key]
		if a == nil || a.count == 0 {
			return 0, 0
		}
		return float64(a.sunSum) / float64(a.count), float64(a.torchSum) / float64(a.count)
	}

	mesh := &Mesh{}
	for _, face := range faces {
		var sun, torch, ao [4]float64
		for i, c := range face.corners {
			s, t := smoothed(c.key)
			sun[i], torch[i] = s, t
			ao[i] = float64(c.ao)
		}

		indices := standardIndices
		if !face.skipFlip {
			diagAO := ao[0]+ao[3] > ao[1]+ao[2]
			ozao := (torch[0]+torch[3] < torch[1]+torch[2]) && (ao[0]+ao[3] == ao[1]+ao[2])
			oneZero := torch[0] <= 0 || torch[1] <= 0 || torch[2] <= 0 || torch[3] <= 0
			mid := (torch[0] + torch[3]) / 2
			anzp1 := (torch[1] > mid && mid > torch[2]) || (torch[2] > mid && mid > torch[1])
			anz := oneZero && anzp1
			if diagAO || ozao || anz {
				indices = flippedIndices
			}
		}

		base := int32(len(mesh.Positions) / 3)
		for i, c := range face.corners {
			mesh.Positions = append(mesh.Positions, float32(c.pos[0]), float32(c.pos[1]), float32(c.pos[2]))
			mesh.UVs = append(mesh.UVs, c.u, c.v)
			mesh.AOs = append(mesh.AOs, c.ao)
			mesh.Sunlights = append(mesh.Sunlights, int32(math.Round(sun[i])))
			mesh.TorchLights = append(mesh.TorchLights, int32(math.Round(torch[i])))
		}
		for _, idx := range indices {
			mesh.Indices = append(mesh.Indices, base+idx)
		}
	}

	return mesh
}

func emitPlantFaces(
	faces *[]pendingFace,
	addSample func(vertexKey, int, int, int),
	block registry.Block,
	vx, vy, vz int,
	dim float64,
) {
	texName := block.Textures["all"]
	uv := block.UVMap[texName]

	for _, pf := range PLANT_FACES {
		face := pendingFace{skipFlip: true}
		for i, c := range pf.corners {
			px := float64(c.pos.X)*plantShrink + (1-plantShrink)/2 + float64(vx)
			py := float64(vy + c.pos.Y)
			pz := float64(c.pos.Z)*plantShrink + (1-plantShrink)/2 + float64(vz)
			pos := [3]float64{px * dim, py * dim, pz * dim}
			key := quantizeKey(pos[0], pos[1], pos[2])
			addSample(key, vx, vy, vz)

			u := uv.StartU + c.u*(uv.EndU-uv.StartU)
			v := uv.StartV + (1-c.v)*(uv.EndV-uv.StartV)
			face.corners[i] = pendingCorner{pos: pos, u: u, v: v, ao: 1.0, key: key}
		}
		*faces = append(*faces, face)
	}
}

func textureSlot(block registry.Block, face blockFace) string {
	switch block.TextureKind() {
	case registry.Mat1:
		return block.Textures["all"]
	case registry.Mat3:
		return block.Textures[face.mat3]
	default:
		return block.Textures[face.mat6]
	}
}

func aoIndex(side1Transparent, side2Transparent, cornerTransparent bool) int {
	if side1Transparent && side2Transparent {
		return 0
	}
	t := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}
	return 3 - (t(side1Transparent) + t(side2Transparent) + t(cornerTransparent))
}

func emitBlockFaces(
	ck *Chunker,
	chunk *Chunk,
	faces *[]pendingFace,
	addSample func(vertexKey, int, int, int),
	reg *registry.Registry,
	block registry.Block,
	id uint32,
	vx, vy, vz int,
	dim float64,
	transparent bool,
) {
	for _, face := range BLOCK_FACES {
		nx, ny, nz := vx+face.dir.X, vy+face.dir.Y, vz+face.dir.Z
		nid, ok := ck.voxelAt(nx, ny, nz)
		if !ok {
			continue
		}
		neighbor := reg.GetBlockByID(nid)
		if !neighbor.IsTransparent {
			continue
		}
		sumDir := face.dir.X + face.dir.Y + face.dir.Z
		emit := !transparent || neighbor.IsEmpty || nid != id || (neighbor.TransparentStandalone && sumDir >= 1)
		if !emit {
			continue
		}

		texName := textureSlot(block, face)
		uv := block.UVMap[texName]

		var out pendingFace
		for i, c := range face.corners {
			s1id, s1ok := ck.voxelAt(vx+c.side1.X, vy+c.side1.Y, vz+c.side1.Z)
			s2id, s2ok := ck.voxelAt(vx+c.side2.X, vy+c.side2.Y, vz+c.side2.Z)
			cnid, cnok := ck.voxelAt(vx+c.cornerNeighbor.X, vy+c.cornerNeighbor.Y, vz+c.cornerNeighbor.Z)
			s1t := s1ok && reg.GetTransparencyByID(s1id)
			s2t := s2ok && reg.GetTransparencyByID(s2id)
			cnt := cnok && reg.GetTransparencyByID(cnid)
			ao := AO_TABLE[aoIndex(s1t, s2t, cnt)] / 255.0

			px := (float64(vx) + float64(c.pos.X)) * dim
			py := (float64(vy) + float64(c.pos.Y)) * dim
			pz := (float64(vz) + float64(c.pos.Z)) * dim
			key := quantizeKey(px, py, pz)

			addSample(key, nx, ny, nz)
			pos := Coords3{X: vx + c.pos.X, Y: vy + c.pos.Y, Z: vz + c.pos.Z}
			tests := boundaryStencilTests(pos, chunk.Min, chunk.Max)
			for j, matches := range tests {
				if !matches {
					continue
				}
				off := BOUNDARY_STENCIL_OFFSETS[j]
				sx, sy, sz := nx+off.X, ny+off.Y, nz+off.Z
				sid, sok := ck.voxelAt(sx, sy, sz)
				if sok && reg.GetTransparencyByID(sid) {
					addSample(key, sx, sy, sz)
				}
			}

			u := uv.StartU + c.u*(uv.EndU-uv.StartU)
			v := uv.StartV + c.v*(uv.EndV-uv.StartV)
			out.corners[i] = pendingCorner{pos: [3]float64{px, py, pz}, u: u, v: v, ao: ao, key: key}
		}
		*faces = append(*faces, out)
	}
}
