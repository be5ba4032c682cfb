package persistence

import (
	"testing"

	"chunkserver/internal/world"
)

func TestMemoryStoreSaveLoadRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	coords := world.Coords2{X: 3, Z: -2}
	snap := Snapshot{
		Coords:     coords,
		Voxels:     []uint32{1, 2, 3},
		Sunlight:   []uint8{15, 14, 0},
		TorchLight: []uint8{0, 5, 9},
	}

	if err := store.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := store.Load(coords)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("expected a snapshot to be found")
	}
	if len(got.Voxels) != 3 || got.Voxels[2] != 3 {
		t.Errorf("Voxels = %v, want %v", got.Voxels, snap.Voxels)
	}
	if got.Sunlight[0] != 15 || got.TorchLight[2] != 9 {
		t.Errorf("round-tripped light arrays don't match: %+v", got)
	}
}

func TestMemoryStoreLoadMissingReturnsFalse(t *testing.T) {
	store := NewMemoryStore()
	_, ok, err := store.Load(world.Coords2{X: 99, Z: 99})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Error("expected no snapshot for an unsaved coordinate")
	}
}

func TestMemoryStoreSaveIsIsolatedFromCallerMutation(t *testing.T) {
	store := NewMemoryStore()
	coords := world.Coords2{}
	voxels := []uint32{1, 1, 1}
	if err := store.Save(Snapshot{Coords: coords, Voxels: voxels}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	voxels[0] = 99 // mutate the caller's slice after saving

	got, ok, _ := store.Load(coords)
	if !ok {
		t.Fatal("expected snapshot to be found")
	}
	if got.Voxels[0] != 1 {
		t.Errorf("stored snapshot changed after caller mutated its own slice: %v", got.Voxels)
	}
}

func TestMemoryStoreDeleteRemovesSnapshot(t *testing.T) {
	store := NewMemoryStore()
	coords := world.Coords2{X: 1, Z: 1}
	store.Save(Snapshot{Coords: coords, Voxels: []uint32{1}})

	if err := store.Delete(coords); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.Load(coords); ok {
		t.Error("expected snapshot to be gone after Delete")
	}
}

func TestMemoryStoreForEachVisitsAllSnapshots(t *testing.T) {
	store := NewMemoryStore()
	want := map[world.Coords2]bool{
		{X: 0, Z: 0}: true,
		{X: 1, Z: 0}: true,
		{X: 0, Z: 1}: true,
	}
	for c := range want {
		store.Save(Snapshot{Coords: c, Voxels: []uint32{1}})
	}

	seen := make(map[world.Coords2]bool)
	err := store.ForEach(func(snap Snapshot) bool {
		seen[snap.Coords] = true
		return true
	})
	if err != nil {
		t.Fatalf("ForEach: %v", err)
	}
	if len(seen) != len(want) {
		t.Fatalf("visited %d snapshots, want %d", len(seen), len(want))
	}
	for c := range want {
		if !seen[c] {
			t.Errorf("missing snapshot for %v", c)
		}
	}
}
