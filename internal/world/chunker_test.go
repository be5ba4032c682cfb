package world

import (
	"testing"

	"chunkserver/internal/registry"
)

func TestGetReportsNotReadyUntilNeighborsDecorated(t *testing.T) {
	reg := registry.Default()
	metrics := testMetrics()
	ck := NewChunker(metrics, reg, airGenerator{}, noopDecorator{})

	center := Coords2{}
	chunk := ck.generateChunk(center)
	ck.chunks[center] = chunk
	ck.decorateChunk(center)
	ck.buildHeightMap(center)

	if _, ok := ck.Get(center); ok {
		t.Fatal("chunk must not be ready before its neighbors exist")
	}

	// Add neighbors one short of the full ring: still not ready.
	all := neighborChunks(center)
	for _, nc := range all[:7] {
		n := newChunk(nc, metrics)
		n.needsTerrain = false
		n.needsDecoration = false
		ck.chunks[nc] = n
	}
	if _, ok := ck.Get(center); ok {
		t.Fatal("chunk must not be ready with only 7 of 8 neighbors present")
	}

	last := newChunk(all[7], metrics)
	last.needsTerrain = false
	last.needsDecoration = false
	ck.chunks[all[7]] = last

	if _, ok := ck.Get(center); !ok {
		t.Error("chunk must be ready once self and all 8 neighbors have finished decoration")
	}
}

func TestGetRemeshesLazilyWhenDirty(t *testing.T) {
	reg := registry.Default()
	ck, coords := readyChunker(t, reg, airGenerator{})

	chunk := ck.chunks[coords]
	if chunk.meshes.Opaque != nil || chunk.meshes.Transparent != nil {
		t.Fatal("a never-remeshed chunk should carry no mesh geometry yet")
	}
	if !chunk.isDirty {
		t.Fatal("a chunk fresh out of generateChunk should still be dirty")
	}

	got, ok := ck.Get(coords)
	if !ok {
		t.Fatal("expected the chunk to be ready")
	}
	if got.isDirty {
		t.Error("Get must clear isDirty by remeshing")
	}
	if got.needsPropagation {
		t.Error("Get must propagate light before meshing a chunk that still needed it")
	}
}

func TestDirtySnapshotsDoesNotClearTheFlag(t *testing.T) {
	reg := registry.Default()
	ck, coords := readyChunker(t, reg, airGenerator{})
	if _, ok := ck.Get(coords); !ok {
		t.Fatal("expected chunk to be ready")
	}

	chunk := ck.chunks[coords]
	if !chunk.NeedsSaving() {
		t.Fatal("propagation should have marked the chunk as needing a save")
	}

	snapshots := ck.DirtySnapshots()
	found := false
	for _, s := range snapshots {
		if s.Coords == coords {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the dirty chunk in the snapshot list")
	}
	if !chunk.NeedsSaving() {
		t.Error("DirtySnapshots must not clear needsSaving itself")
	}

	again := ck.DirtySnapshots()
	foundAgain := false
	for _, s := range again {
		if s.Coords == coords {
			foundAgain = true
		}
	}
	if !foundAgain {
		t.Error("the chunk should still appear in a second call until ClearNeedsSaving is invoked")
	}
}

func TestNeighborChunksEnumeratesAllEight(t *testing.T) {
	got := neighborChunks(Coords2{X: 5, Z: -5})
	seen := make(map[Coords2]bool)
	for _, c := range got {
		seen[c] = true
	}
	if len(seen) != 8 {
		t.Fatalf("expected 8 distinct neighbor coordinates, got %d", len(seen))
	}
	if seen[Coords2{X: 5, Z: -5}] {
		t.Error("a chunk is not its own neighbor")
	}
	for _, want := range []Coords2{{4, -6}, {5, -6}, {6, -6}, {4, -5}, {6, -5}, {4, -4}, {5, -4}, {6, -4}} {
		if !seen[want] {
			t.Errorf("missing expected neighbor %v", want)
		}
	}
}

func TestRestoreReproducesPersistedState(t *testing.T) {
	reg := registry.Default()
	metrics := testMetrics()
	ck := NewChunker(metrics, reg, solidGenerator{id: registry.StoneID}, noopDecorator{})

	center := Coords2{}
	original := ck.generateChunk(center)
	ck.chunks[center] = original
	ck.decorateChunk(center)
	ck.buildHeightMap(center)
	ck.propagateChunk(center)

	voxels := append([]uint32(nil), original.RawVoxels()...)
	sunlight := append([]uint8(nil), original.RawSunlight()...)
	torch := append([]uint8(nil), original.RawTorchLight()...)

	fresh := NewChunker(metrics, reg, nil, nil)
	fresh.Restore(center, voxels, sunlight, torch)

	restored, ok := fresh.chunks[center]
	if !ok {
		t.Fatal("Restore must install the chunk")
	}
	if restored.needsTerrain || restored.needsDecoration || restored.needsPropagation {
		t.Error("a restored chunk must report terrain, decoration and propagation as already complete")
	}
	if restored.isEmpty {
		t.Error("a chunk restored from all-stone voxel data must not be marked empty")
	}
	if restored.Voxel(0, 0, 0) != registry.StoneID {
		t.Errorf("restored voxel = %d, want %d", restored.Voxel(0, 0, 0), registry.StoneID)
	}
	if restored.Height(0, 0) != original.Height(0, 0) {
		t.Errorf("restored height = %d, want %d matching the original", restored.Height(0, 0), original.Height(0, 0))
	}
}
