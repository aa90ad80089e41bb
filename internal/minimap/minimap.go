// Package minimap renders top-down snapshots of the resident world, one
// pixel per block column.
package minimap

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"minivox/internal/profiling"
	"minivox/internal/registry"
	"minivox/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Columns are lit by altitude: the deepest floor renders at shadeFloor
// brightness, a column peaking at the world ceiling at full brightness.
const (
	shadeFloor = 0.55
	shadeSpan  = 0.45
)

// background fills columns with no blocks and pixels outside the loaded
// area.
var background = color.RGBA{R: 13, G: 15, B: 20, A: 255}

// Renderer paints top-down views of the resident chunks, colored by the
// topmost block of each column.
type Renderer struct {
	store *world.ChunkStore
	reg   *registry.Registry
}

// New builds a renderer reading from the given store and registry.
func New(store *world.ChunkStore, reg *registry.Registry) *Renderer {
	return &Renderer{store: store, reg: reg}
}

// Render draws every resident chunk and marks the viewer position with a
// white cross. World +X runs right and +Z runs down. With nothing
// resident it returns one blank chunk worth of background.
func (r *Renderer) Render(viewer mgl32.Vec3) *image.RGBA {
	defer profiling.Track("minimap.Render")()

	keys := r.store.Keys()
	var minX, maxX, minZ, maxZ int
	if len(keys) > 0 {
		// Keys are sorted by X, so the X extent is free.
		minX, maxX = keys[0].X, keys[len(keys)-1].X
		minZ, maxZ = keys[0].Z, keys[0].Z
		for _, key := range keys {
			if key.Z < minZ {
				minZ = key.Z
			}
			if key.Z > maxZ {
				maxZ = key.Z
			}
		}
	}

	width := (maxX - minX + 1) * world.ChunkSizeX
	height := (maxZ - minZ + 1) * world.ChunkSizeZ
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Rect, image.NewUniform(background), image.Point{}, draw.Src)

	for _, key := range keys {
		chunk := r.store.Chunk(key)
		baseX := (key.X - minX) * world.ChunkSizeX
		baseZ := (key.Z - minZ) * world.ChunkSizeZ
		for lx := 0; lx < world.ChunkSizeX; lx++ {
			for lz := 0; lz < world.ChunkSizeZ; lz++ {
				img.SetRGBA(baseX+lx, baseZ+lz, r.columnColor(chunk, lx, lz))
			}
		}
	}

	px := int(math.Floor(float64(viewer.X()))) - minX*world.ChunkSizeX
	pz := int(math.Floor(float64(viewer.Z()))) - minZ*world.ChunkSizeZ
	drawMarker(img, px, pz)

	label := fmt.Sprintf("%d chunks, viewer %.0f %.0f", len(keys), viewer.X(), viewer.Z())
	drawLabel(img, 3, height-4, label)
	return img
}

// columnColor scans a column from the top down and shades the first
// non-air block by its altitude. An empty column gets the background.
func (r *Renderer) columnColor(chunk *world.Chunk, lx, lz int) color.RGBA {
	for y := world.ChunkSizeY - 1; y >= 0; y-- {
		t := chunk.GetBlock(lx, y, lz)
		if t == world.BlockTypeAir {
			continue
		}
		return shadeColor(r.reg.Lookup(t).TopColor, y)
	}
	return background
}

func shadeColor(c mgl32.Vec3, y int) color.RGBA {
	shade := shadeFloor + shadeSpan*float32(y)/float32(world.ChunkSizeY-1)
	return color.RGBA{
		R: channel(c.X() * shade),
		G: channel(c.Y() * shade),
		B: channel(c.Z() * shade),
		A: 255,
	}
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// drawMarker paints a small cross. Arms falling outside the image clip.
func drawMarker(img *image.RGBA, x, y int) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for d := -2; d <= 2; d++ {
		img.SetRGBA(x+d, y, white)
		img.SetRGBA(x, y+d, white)
	}
}

// drawLabel draws one line of text with the built-in 7x13 bitmap face,
// so no font asset is needed.
func drawLabel(img *image.RGBA, x, y int, text string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// WritePNG encodes the image to a PNG file at path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating map file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding map: %w", err)
	}
	return f.Close()
}
