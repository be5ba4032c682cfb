package world

import "fmt"

// Update is the single voxel edit entry point. It writes the voxel, repairs
// the height map, and — if the chunk has already completed its initial
// light propagation — removes the old voxel's light contribution and
// reseeds light for the new one, in the order required by §5's ordering
// guarantee: voxel write together with the saving and dirty flags, height
// update, light remove, light flood, all before control returns.
func (ck *Chunker) Update(vx, vy, vz int, id uint32) {
	ck.mu.Lock()
	defer ck.mu.Unlock()

	chunk, ok := ck.getChunkByVoxel(vx, vz)
	if !ok {
		panic(fmt.Sprintf("world: update at voxel (%d,%d,%d) has no loaded chunk", vx, vy, vz))
	}

	curID := chunk.Voxel(vx, vy, vz)
	cur := ck.registry.GetBlockByID(curID)
	newBlock := ck.registry.GetBlockByID(id)

	chunk.needsSaving = true
	wasPropagated := !chunk.needsPropagation

	chunk.setVoxel(vx, vy, vz, id)
	chunk.isDirty = true
	if !ck.registry.IsAir(id) {
		chunk.isEmpty = false
	}

	ck.maintainHeight(chunk, vx, vy, vz, id)

	if !wasPropagated {
		return
	}

	maxLight := uint8(ck.metrics.MaxLightLevel)

	switch {
	case cur.IsLight:
		level := chunk.TorchLight(vx, vy, vz)
		chunk.setTorchLight(vx, vy, vz, 0)
		ck.removeLight([]lightNode{{vx, vy, vz, level}}, false)
	case cur.IsTransparent && !newBlock.IsTransparent:
		if level := chunk.Sunlight(vx, vy, vz); level > 0 {
			chunk.setSunlight(vx, vy, vz, 0)
			ck.removeLight([]lightNode{{vx, vy, vz, level}}, true)
		}
		if level := chunk.TorchLight(vx, vy, vz); level > 0 {
			chunk.setTorchLight(vx, vy, vz, 0)
			ck.removeLight([]lightNode{{vx, vy, vz, level}}, false)
		}
	}

	switch {
	case newBlock.IsLight:
		level := uint8(newBlock.LightLevel)
		chunk.setTorchLight(vx, vy, vz, level)
		ck.floodLight([]lightNode{{vx, vy, vz, level}}, false)
	case newBlock.IsTransparent && !cur.IsTransparent:
		ck.reseedLight(chunk, vx, vy, vz, maxLight)
	}
}

// maintainHeight repairs height_map[vx,vz] after a voxel write, per §4.3
// step 3: air removed from the top of the column walks downward for the
// new surface; a non-air voxel above the current surface raises it.
func (ck *Chunker) maintainHeight(chunk *Chunk, vx, vy, vz int, id uint32) {
	isAir := ck.registry.IsAir(id)
	height := chunk.Height(vx, vz)

	if isAir && int32(vy) == height {
		newHeight := int32(0)
		for y := vy - 1; y >= 0; y-- {
			b := ck.registry.GetBlockByID(chunk.Voxel(vx, y, vz))
			if !b.IsEmpty && !b.IsPlant {
				newHeight = int32(y)
				break
			}
		}
		chunk.setHeight(vx, vz, newHeight)
	} else if !isAir && int32(vy) > height {
		chunk.setHeight(vx, vz, int32(vy))
	}
}

// reseedLight handles the opaque-to-transparent transition of §4.3 step 4's
// last clause: either reseed full sunlight at the world's top layer, or pull
// light in from whichever of the 6 neighbors is already lit. The top-layer
// special case only ever applies to the sunlight field — torch light has no
// "top of the world" shortcut and always takes the neighbor-pull branch,
// mirroring chunks.rs's per-field `is_sunlight && vy == max_height - 1` test
// inside the shared `[false, true]` loop over both fields.
func (ck *Chunker) reseedLight(chunk *Chunk, vx, vy, vz int, maxLight uint8) {
	for _, isSunlight := range [2]bool{true, false} {
		if isSunlight && vy == ck.metrics.MaxHeight-1 {
			chunk.setSunlight(vx, vy, vz, maxLight)
			ck.floodLight([]lightNode{{vx, vy, vz, maxLight}}, true)
			continue
		}

		var queue []lightNode
		for _, off := range VOXEL_NEIGHBORS {
			ny := vy + off.Y
			if ny < 0 || ny >= ck.metrics.MaxHeight {
				continue
			}
			nx, nz := vx+off.X, vz+off.Z
			neighborChunk, ok := ck.getChunkByVoxel(nx, nz)
			if !ok {
				continue
			}
			var nl uint8
			if isSunlight {
				nl = neighborChunk.Sunlight(nx, ny, nz)
			} else {
				nl = neighborChunk.TorchLight(nx, ny, nz)
			}
			if nl == 0 {
				continue
			}
			nblock := ck.registry.GetBlockByID(neighborChunk.Voxel(nx, ny, nz))
			eligible := nblock.IsTransparent
			if !isSunlight {
				eligible = eligible || nblock.IsLight
			}
			if !eligible {
				continue
			}
			queue = append(queue, lightNode{nx, ny, nz, nl})
		}
		ck.floodLight(queue, isSunlight)
	}
}
