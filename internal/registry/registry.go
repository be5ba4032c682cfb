// Package registry implements the read-only block/texture/UV oracle that the
// voxel world core queries by numeric voxel id. Nothing in this package
// mutates after construction, so a *Registry may be shared freely across
// chunk goroutines.
package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// UV describes the texture-atlas rectangle sampled for one face corner.
type UV struct {
	StartU float32 `yaml:"startU"`
	EndU   float32 `yaml:"endU"`
	StartV float32 `yaml:"startV"`
	EndV   float32 `yaml:"endV"`
}

// TextureKind classifies how many distinct texture slots a block uses, which
// decides how the mesher picks a UV rect for a given face.
type TextureKind string

const (
	Mat1 TextureKind = "mat1" // same texture on all six faces, slot "all"
	Mat3 TextureKind = "mat3" // top / side / bottom
	Mat6 TextureKind = "mat6" // one slot per cardinal face
)

// Block is the read-only shape of a voxel id, as queried by the world core.
type Block struct {
	ID                     uint32
	Name                   string
	IsSolid                bool
	IsTransparent          bool
	IsBlock                bool // false for plants, which use PLANT_FACES instead of BLOCK_FACES
	IsPlant                bool
	IsLight                bool
	IsEmpty                bool // true only for air
	TransparentStandalone  bool // e.g. glass: between identical neighbors only the positive-direction face is kept
	LightLevel             int
	Textures               map[string]string
	UVMap                  map[string]UV
}

// TextureKind reports which of the three face-texturing schemes this block uses.
func (b Block) TextureKind() TextureKind {
	if _, ok := b.Textures["all"]; ok {
		return Mat1
	}
	_, hasTop := b.Textures["top"]
	_, hasSide := b.Textures["side"]
	_, hasBottom := b.Textures["bottom"]
	if hasTop && hasSide && hasBottom && len(b.Textures) == 3 {
		return Mat3
	}
	return Mat6
}

// BlockDef is the on-disk (YAML) representation of a block definition.
type BlockDef struct {
	ID                    uint32            `yaml:"id"`
	Name                  string            `yaml:"name"`
	IsSolid               bool              `yaml:"isSolid"`
	IsTransparent         bool              `yaml:"isTransparent"`
	IsPlant               bool              `yaml:"isPlant"`
	IsLight               bool              `yaml:"isLight"`
	TransparentStandalone bool              `yaml:"transparentStandalone"`
	LightLevel            int               `yaml:"lightLevel"`
	Textures              map[string]string `yaml:"textures"`
	UVMap                 map[string]UV     `yaml:"uvMap"`
}

type blockFile struct {
	Blocks []BlockDef `yaml:"blocks"`
}

// AirID is the reserved voxel id for empty space.
const AirID uint32 = 0

// Registry is the immutable, concurrency-safe block oracle.
type Registry struct {
	blocks map[uint32]Block
	byName map[string]uint32
}

// New builds a registry from in-memory definitions, used by tests and by the
// bundled default palette. An explicit air entry is not required; id 0 is
// always treated as air regardless of what defs say about it.
func New(defs []BlockDef) *Registry {
	r := &Registry{
		blocks: make(map[uint32]Block, len(defs)+1),
		byName: make(map[string]uint32, len(defs)+1),
	}
	r.blocks[AirID] = Block{
		ID:            AirID,
		Name:          "Air",
		IsTransparent: true,
		IsEmpty:       true,
	}
	r.byName["Air"] = AirID

	for _, def := range defs {
		if def.ID == AirID {
			continue
		}
		block := Block{
			ID:                    def.ID,
			Name:                  def.Name,
			IsSolid:               !def.IsPlant,
			IsTransparent:         def.IsTransparent,
			IsBlock:               !def.IsPlant,
			IsPlant:               def.IsPlant,
			IsLight:               def.IsLight,
			IsEmpty:               false,
			TransparentStandalone: def.TransparentStandalone,
			LightLevel:            def.LightLevel,
			Textures:              def.Textures,
			UVMap:                 def.UVMap,
		}
		r.blocks[def.ID] = block
		if def.Name != "" {
			r.byName[def.Name] = def.ID
		}
	}
	return r
}

// Load reads block definitions from a YAML file on disk.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read block registry: %w", err)
	}
	var file blockFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse block registry: %w", err)
	}
	return New(file.Blocks), nil
}

// GetBlockByID returns the block definition for id. Unknown ids behave as air
// so that a malformed voxel value fails safe rather than panicking deep
// inside the mesher or light engine.
func (r *Registry) GetBlockByID(id uint32) Block {
	if block, ok := r.blocks[id]; ok {
		return block
	}
	return r.blocks[AirID]
}

// GetTextureByID returns the texture-slot map for id.
func (r *Registry) GetTextureByID(id uint32) map[string]string {
	return r.GetBlockByID(id).Textures
}

// GetUVByID returns the texture-name to UV-rect map for id.
func (r *Registry) GetUVByID(id uint32) map[string]UV {
	return r.GetBlockByID(id).UVMap
}

// GetTransparencyByID reports whether id is transparent (used pervasively by
// the light engine and mesher face-culling rules).
func (r *Registry) GetTransparencyByID(id uint32) bool {
	return r.GetBlockByID(id).IsTransparent
}

// IsAir reports whether id is the reserved air id.
func (r *Registry) IsAir(id uint32) bool {
	return id == AirID
}

// IsPlant reports whether id renders via PLANT_FACES rather than BLOCK_FACES.
func (r *Registry) IsPlant(id uint32) bool {
	return r.GetBlockByID(id).IsPlant
}

// GetTypeMap resolves a batch of block names to their ids, used by terrain
// generators and decorators that want to look up ids once at construction.
func (r *Registry) GetTypeMap(names []string) map[string]uint32 {
	out := make(map[string]uint32, len(names))
	for _, name := range names {
		if id, ok := r.byName[name]; ok {
			out[name] = id
		}
	}
	return out
}
