package world

import "testing"

func TestWorldToVoxel(t *testing.T) {
	cases := []struct {
		name string
		w    Vec3
		dim  float64
		want Coords3
	}{
		{"origin", Vec3{0, 0, 0}, 1, Coords3{0, 0, 0}},
		{"positive interior", Vec3{3.7, 10.1, 0.2}, 1, Coords3{3, 10, 0}},
		{"negative rounds toward -inf, not toward zero", Vec3{-0.5, -1.0, -3.2}, 1, Coords3{-1, -1, -4}},
		{"scaled dimension", Vec3{5.0, 5.0, 5.0}, 2, Coords3{2, 2, 2}},
		{"negative scaled dimension", Vec3{-1.0, -5.0, -0.1}, 2, Coords3{-1, -3, -1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := WorldToVoxel(c.w, c.dim); got != c.want {
				t.Errorf("WorldToVoxel(%v, %v) = %v, want %v", c.w, c.dim, got, c.want)
			}
		})
	}
}

func TestVoxelToChunk(t *testing.T) {
	cases := []struct {
		name string
		v    Coords3
		size int
		want Coords2
	}{
		{"origin", Coords3{0, 0, 0}, 16, Coords2{0, 0}},
		{"last voxel of chunk 0", Coords3{15, 0, 15}, 16, Coords2{0, 0}},
		{"first voxel of chunk 1", Coords3{16, 0, 16}, 16, Coords2{1, 1}},
		{"negative voxel maps to negative chunk, not chunk 0", Coords3{-1, 0, -1}, 16, Coords2{-1, -1}},
		{"deep negative", Coords3{-17, 0, -16}, 16, Coords2{-2, -1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := VoxelToChunk(c.v, c.size); got != c.want {
				t.Errorf("VoxelToChunk(%v, %d) = %v, want %v", c.v, c.size, got, c.want)
			}
		})
	}
}

func TestCoords3Add(t *testing.T) {
	a := Coords3{X: 1, Y: 2, Z: 3}
	b := Coords3{X: -1, Y: 5, Z: 0}
	if got, want := a.Add(b), (Coords3{X: 0, Y: 7, Z: 3}); got != want {
		t.Errorf("Add = %v, want %v", got, want)
	}
}
