package world

// lightNode is one entry in a flood-fill or removal BFS queue: a voxel
// coordinate carrying the light level it is propagating (flood) or the
// level it held before being zeroed (removal).
type lightNode struct {
	x, y, z int
	level   uint8
}

var horizontalVoxelOffsets = [4]Coords3{
	{X: 1, Y: 0, Z: 0},
	{X: -1, Y: 0, Z: 0},
	{X: 0, Y: 0, Z: 1},
	{X: 0, Y: 0, Z: -1},
}

// propagateChunk implements the §4.2 initial propagation pass: seed sunlight
// top-down per column, seed torch light at every emitter voxel, then flood
// both fields independently.
func (ck *Chunker) propagateChunk(coords Coords2) {
	chunk, ok := ck.chunks[coords]
	if !ok {
		return
	}
	maxLight := uint8(ck.metrics.MaxLightLevel)
	size := ck.metrics.ChunkSize

	var sunQueue, torchQueue []lightNode
	seeded := make(map[Coords3]bool)

	for lx := 0; lx < size; lx++ {
		for lz := 0; lz < size; lz++ {
			vx := chunk.Min.X + lx
			vz := chunk.Min.Z + lz
			h := int(chunk.Height(vx, vz))
			for vy := ck.metrics.MaxHeight - 1; vy >= 0; vy-- {
				id := chunk.Voxel(vx, vy, vz)
				block := ck.registry.GetBlockByID(id)

				if vy > h && block.IsTransparent {
					chunk.setSunlight(vx, vy, vz, maxLight)
					key := Coords3{X: vx, Y: vy, Z: vz}
					if !seeded[key] {
						sunQueue = append(sunQueue, lightNode{vx, vy, vz, maxLight})
						seeded[key] = true
					}
					for _, off := range horizontalVoxelOffsets {
						nx, nz := vx+off.X, vz+off.Z
						nh, ok := ck.heightAt(nx, nz)
						if !ok {
							continue
						}
						nid, ok := ck.voxelAt(nx, vy, nz)
						if !ok {
							continue
						}
						if ck.registry.GetTransparencyByID(nid) && int(nh) > vy {
							if !seeded[key] {
								sunQueue = append(sunQueue, lightNode{vx, vy, vz, maxLight})
								seeded[key] = true
							}
						}
					}
				}

				if block.IsLight {
					level := uint8(block.LightLevel)
					chunk.setTorchLight(vx, vy, vz, level)
					torchQueue = append(torchQueue, lightNode{vx, vy, vz, level})
				}
			}
		}
	}

	ck.floodLight(torchQueue, false)
	ck.floodLight(sunQueue, true)

	chunk.needsPropagation = false
	chunk.needsSaving = true
}

func (ck *Chunker) heightAt(vx, vz int) (int32, bool) {
	chunk, ok := ck.getChunkByVoxel(vx, vz)
	if !ok {
		return 0, false
	}
	return chunk.Height(vx, vz), true
}

// floodLight runs a 6-neighborhood BFS from queue, writing the stronger of
// each visited light field. sunlight_drop — is_sunlight && oy==-1 &&
// level==MaxLightLevel — is the one place a step does not decay by 1; it
// must use the identical test in removeLight below.
func (ck *Chunker) floodLight(queue []lightNode, isSunlight bool) {
	maxLevel := uint8(ck.metrics.MaxLightLevel)
	maxHeight := ck.metrics.MaxHeight

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		for _, off := range VOXEL_NEIGHBORS {
			ny := node.y + off.Y
			if ny < 0 || ny >= maxHeight {
				continue
			}
			nx, nz := node.x+off.X, node.z+off.Z

			sunlightDrop := isSunlight && off.Y == -1 && node.level == maxLevel
			var nl uint8
			if sunlightDrop {
				nl = node.level
			} else {
				if node.level == 0 {
					continue
				}
				nl = node.level - 1
			}

			chunk, ok := ck.getChunkByVoxel(nx, nz)
			if !ok {
				continue
			}
			id := chunk.Voxel(nx, ny, nz)
			if !ck.registry.GetTransparencyByID(id) {
				continue
			}

			var existing uint8
			if isSunlight {
				existing = chunk.Sunlight(nx, ny, nz)
			} else {
				existing = chunk.TorchLight(nx, ny, nz)
			}
			if existing >= nl {
				continue
			}

			if isSunlight {
				chunk.setSunlight(nx, ny, nz, nl)
			} else {
				chunk.setTorchLight(nx, ny, nz, nl)
			}
			chunk.needsSaving = true
			queue = append(queue, lightNode{nx, ny, nz, nl})
		}
	}
}

// removeLight runs a BFS from the already-zeroed (or about-to-be-zeroed)
// source node(s), zeroing anything that was lit by it and collecting
// everything lit by some other source onto a refill queue, which is then
// reflooded once removal finishes.
func (ck *Chunker) removeLight(start []lightNode, isSunlight bool) {
	maxLevel := uint8(ck.metrics.MaxLightLevel)
	maxHeight := ck.metrics.MaxHeight

	queue := append([]lightNode(nil), start...)
	var refill []lightNode

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		for _, off := range VOXEL_NEIGHBORS {
			ny := node.y + off.Y
			if ny < 0 || ny >= maxHeight {
				continue
			}
			nx, nz := node.x+off.X, node.z+off.Z

			chunk, ok := ck.getChunkByVoxel(nx, nz)
			if !ok {
				continue
			}
			var nl uint8
			if isSunlight {
				nl = chunk.Sunlight(nx, ny, nz)
			} else {
				nl = chunk.TorchLight(nx, ny, nz)
			}
			if nl == 0 {
				continue
			}

			sunlightFall := isSunlight && off.Y == -1 && node.level == maxLevel && nl == maxLevel
			if nl < node.level || sunlightFall {
				if isSunlight {
					chunk.setSunlight(nx, ny, nz, 0)
				} else {
					chunk.setTorchLight(nx, ny, nz, 0)
				}
				chunk.needsSaving = true
				queue = append(queue, lightNode{nx, ny, nz, nl})
			} else {
				refill = append(refill, lightNode{nx, ny, nz, nl})
			}
		}
	}

	ck.floodLight(refill, isSunlight)
}
