package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRegistryAirIsTransparentAndEmpty(t *testing.T) {
	r := Default()
	air := r.GetBlockByID(AirID)
	if !air.IsTransparent {
		t.Fatalf("air must be transparent")
	}
	if !air.IsEmpty {
		t.Fatalf("air must be empty")
	}
	if !r.IsAir(AirID) {
		t.Fatalf("IsAir(0) should be true")
	}
}

func TestDefaultRegistryStoneIsOpaqueSolid(t *testing.T) {
	r := Default()
	stone := r.GetBlockByID(StoneID)
	if stone.IsTransparent {
		t.Fatalf("stone must be opaque")
	}
	if !stone.IsSolid || !stone.IsBlock {
		t.Fatalf("stone must be a solid block")
	}
	if stone.TextureKind() != Mat1 {
		t.Fatalf("stone should use a single texture slot, got %s", stone.TextureKind())
	}
}

func TestDefaultRegistryGrassUsesThreeSlots(t *testing.T) {
	r := Default()
	grass := r.GetBlockByID(GrassID)
	if grass.TextureKind() != Mat3 {
		t.Fatalf("grass should use top/side/bottom texturing, got %s", grass.TextureKind())
	}
}

func TestDefaultRegistryTorchIsLightEmittingPlant(t *testing.T) {
	r := Default()
	torch := r.GetBlockByID(TorchID)
	if !torch.IsLight || torch.LightLevel != 14 {
		t.Fatalf("torch must emit light level 14, got %+v", torch)
	}
	if !r.IsPlant(TorchID) {
		t.Fatalf("torch should mesh as a plant")
	}
}

func TestGetBlockByIDUnknownFallsBackToAir(t *testing.T) {
	r := Default()
	block := r.GetBlockByID(9999)
	if !block.IsEmpty || !block.IsTransparent {
		t.Fatalf("unknown id should fail safe as air, got %+v", block)
	}
}

func TestGetTypeMapResolvesKnownNames(t *testing.T) {
	r := Default()
	ids := r.GetTypeMap([]string{"Stone", "Dirt", "Unknown"})
	if ids["Stone"] != StoneID || ids["Dirt"] != DirtID {
		t.Fatalf("unexpected type map: %+v", ids)
	}
	if _, ok := ids["Unknown"]; ok {
		t.Fatalf("unknown name should not resolve")
	}
}

func TestLoadReadsYAMLDefinitions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blocks.yaml")
	contents := `
blocks:
  - id: 1
    name: Stone
    textures:
      all: stone
    uvMap:
      stone: {startU: 0, endU: 1, startV: 0, endV: 1}
  - id: 2
    name: Glowroot
    isPlant: true
    isLight: true
    isTransparent: true
    lightLevel: 9
    textures:
      all: glowroot
    uvMap:
      glowroot: {startU: 0, endU: 1, startV: 0, endV: 1}
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write registry file: %v", err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}

	stone := r.GetBlockByID(1)
	if stone.IsTransparent {
		t.Fatalf("stone should be opaque")
	}

	glow := r.GetBlockByID(2)
	if !glow.IsLight || glow.LightLevel != 9 {
		t.Fatalf("glowroot should emit light level 9, got %+v", glow)
	}
}
