package registry

// Default ids for the built-in palette. Terrain and decoration code that
// doesn't load a custom registry uses these directly.
const (
	StoneID uint32 = 1
	DirtID  uint32 = 2
	GrassID uint32 = 3
	GlassID uint32 = 4
	WaterID uint32 = 5
	LeavesID uint32 = 6
	TorchID uint32 = 7
	SaplingID uint32 = 8
	WoodID    uint32 = 9
)

// Default returns the built-in block palette used by cmd/chunkserver and by
// tests that don't supply their own registry. Textures/UVs are populated
// with a single-tile atlas layout so the mesher has something to sample.
func Default() *Registry {
	tile := func(col, row int) UV {
		const tiles = 16
		const step = float32(1) / float32(tiles)
		return UV{
			StartU: float32(col) * step,
			EndU:   float32(col+1) * step,
			StartV: float32(row) * step,
			EndV:   float32(row+1) * step,
		}
	}

	defs := []BlockDef{
		{
			ID:       StoneID,
			Name:     "Stone",
			Textures: map[string]string{"all": "stone"},
			UVMap:    map[string]UV{"stone": tile(0, 0)},
		},
		{
			ID:       DirtID,
			Name:     "Dirt",
			Textures: map[string]string{"all": "dirt"},
			UVMap:    map[string]UV{"dirt": tile(1, 0)},
		},
		{
			ID:   GrassID,
			Name: "Grass",
			Textures: map[string]string{
				"top":    "grass_top",
				"side":   "grass_side",
				"bottom": "dirt",
			},
			UVMap: map[string]UV{
				"grass_top":  tile(2, 0),
				"grass_side": tile(3, 0),
				"dirt":       tile(1, 0),
			},
		},
		{
			ID:                    GlassID,
			Name:                  "Glass",
			IsTransparent:         true,
			TransparentStandalone: true,
			Textures:              map[string]string{"all": "glass"},
			UVMap:                 map[string]UV{"glass": tile(4, 0)},
		},
		{
			ID:            WaterID,
			Name:          "Water",
			IsTransparent: true,
			Textures:      map[string]string{"all": "water"},
			UVMap:         map[string]UV{"water": tile(5, 0)},
		},
		{
			ID:       LeavesID,
			Name:     "Leaves",
			Textures: map[string]string{"all": "leaves"},
			UVMap:    map[string]UV{"leaves": tile(6, 0)},
		},
		{
			ID:            TorchID,
			Name:          "Torch",
			IsPlant:       true,
			IsLight:       true,
			IsTransparent: true,
			LightLevel:    14,
			Textures:      map[string]string{"all": "torch"},
			UVMap:         map[string]UV{"torch": tile(7, 0)},
		},
		{
			ID:            SaplingID,
			Name:          "Sapling",
			IsPlant:       true,
			IsTransparent: true,
			Textures:      map[string]string{"all": "sapling"},
			UVMap:         map[string]UV{"sapling": tile(8, 0)},
		},
		{
			ID:       WoodID,
			Name:     "Wood",
			Textures: map[string]string{"top": "wood_top", "side": "wood_side", "bottom": "wood_top"},
			UVMap: map[string]UV{
				"wood_top":  tile(9, 0),
				"wood_side": tile(10, 0),
			},
		},
	}

	return New(defs)
}
