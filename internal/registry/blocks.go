package registry

import (
	"log/slog"

	"minivox/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockDefinition defines the properties of a block type: how it collides,
// how it culls its neighbors, and what a renderer paints it with.
type BlockDefinition struct {
	ID   world.BlockType
	Name string

	// IsSolid blocks movement and stops rays.
	IsSolid bool
	// IsTransparent keeps neighbors facing this block visible.
	IsTransparent bool

	TopColor    mgl32.Vec3
	SideColor   mgl32.Vec3
	BottomColor mgl32.Vec3
}

// Registry is the lookup table from block type to definition. Unknown
// types resolve to a loud magenta placeholder instead of disappearing.
// Owned by the engine; accessed only from the step goroutine.
type Registry struct {
	blocks      map[world.BlockType]*BlockDefinition
	names       map[string]world.BlockType
	placeholder *BlockDefinition

	log    *slog.Logger
	warned map[world.BlockType]bool
}

// New builds a registry holding the built-in block set.
func New(log *slog.Logger) *Registry {
	r := &Registry{
		blocks: make(map[world.BlockType]*BlockDefinition),
		names:  make(map[string]world.BlockType),
		placeholder: &BlockDefinition{
			Name:        "placeholder",
			IsSolid:     true,
			TopColor:    mgl32.Vec3{1.0, 0.0, 1.0},
			SideColor:   mgl32.Vec3{1.0, 0.0, 1.0},
			BottomColor: mgl32.Vec3{1.0, 0.0, 1.0},
		},
		log:    log,
		warned: make(map[world.BlockType]bool),
	}

	r.Register(&BlockDefinition{
		ID:            world.BlockTypeAir,
		Name:          "air",
		IsSolid:       false,
		IsTransparent: true,
	})

	r.Register(&BlockDefinition{
		ID:          world.BlockTypeGrass,
		Name:        "grass",
		IsSolid:     true,
		TopColor:    mgl32.Vec3{0.35, 0.68, 0.28},
		SideColor:   mgl32.Vec3{0.44, 0.55, 0.28},
		BottomColor: mgl32.Vec3{0.45, 0.33, 0.22},
	})

	r.Register(&BlockDefinition{
		ID:          world.BlockTypeDirt,
		Name:        "dirt",
		IsSolid:     true,
		TopColor:    mgl32.Vec3{0.45, 0.33, 0.22},
		SideColor:   mgl32.Vec3{0.45, 0.33, 0.22},
		BottomColor: mgl32.Vec3{0.45, 0.33, 0.22},
	})

	r.Register(&BlockDefinition{
		ID:          world.BlockTypeStone,
		Name:        "stone",
		IsSolid:     true,
		TopColor:    mgl32.Vec3{0.55, 0.55, 0.58},
		SideColor:   mgl32.Vec3{0.52, 0.52, 0.55},
		BottomColor: mgl32.Vec3{0.50, 0.50, 0.52},
	})

	r.Register(&BlockDefinition{
		ID:          world.BlockTypeWood,
		Name:        "wood",
		IsSolid:     true,
		TopColor:    mgl32.Vec3{0.55, 0.42, 0.25},
		SideColor:   mgl32.Vec3{0.42, 0.31, 0.18},
		BottomColor: mgl32.Vec3{0.55, 0.42, 0.25},
	})

	// Leaves pass rays and bodies through, and they do not hide their
	// neighbors, so canopies stay airy instead of turning into shells.
	r.Register(&BlockDefinition{
		ID:            world.BlockTypeLeaves,
		Name:          "leaves",
		IsSolid:       false,
		IsTransparent: true,
		TopColor:      mgl32.Vec3{0.22, 0.48, 0.18},
		SideColor:     mgl32.Vec3{0.22, 0.48, 0.18},
		BottomColor:   mgl32.Vec3{0.18, 0.40, 0.15},
	})

	return r
}

// Register installs a definition, replacing any previous one for the same
// type.
func (r *Registry) Register(def *BlockDefinition) {
	r.blocks[def.ID] = def
	r.names[def.Name] = def.ID
}

// Lookup returns the definition for a block type. A type nobody
// registered resolves to the placeholder and logs once per type.
func (r *Registry) Lookup(t world.BlockType) *BlockDefinition {
	if def, ok := r.blocks[t]; ok {
		return def
	}
	if !r.warned[t] {
		r.warned[t] = true
		r.log.Warn("no definition for block type, using placeholder", "type", uint16(t))
	}
	return r.placeholder
}

// ByName resolves a block name to its type.
func (r *Registry) ByName(name string) (world.BlockType, bool) {
	t, ok := r.names[name]
	return t, ok
}

// IsSolid reports whether the block type blocks movement and rays.
func (r *Registry) IsSolid(t world.BlockType) bool {
	return r.Lookup(t).IsSolid
}

// IsTransparent reports whether the block type keeps its neighbors
// visible.
func (r *Registry) IsTransparent(t world.BlockType) bool {
	return r.Lookup(t).IsTransparent
}
