// Package preview renders a top-down-isometric debug PNG of a loaded chunk,
// useful for eyeballing terrain and decoration output without a client.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sort"

	"chunkserver/internal/registry"
	"chunkserver/internal/world"
)

const (
	tileWidth    = 32
	tileHeight   = 16
	blockHeight  = 16
	ambientLight = 0.2
)

type voxelFace struct {
	lx, ly, lz int
	id         uint32
	screenX    int
	screenY    int
}

// SaveChunkPreview renders an isometric preview PNG for chunk into a file
// named "chunk_<x>_<z>.png" under outputDir.
func SaveChunkPreview(chunk *world.Chunk, reg *registry.Registry, outputDir string) error {
	if chunk == nil {
		return fmt.Errorf("preview: chunk is nil")
	}

	size := chunk.Max.X - chunk.Min.X
	height := chunk.Max.Y - chunk.Min.Y
	depth := chunk.Max.Z - chunk.Min.Z
	if size <= 0 || depth <= 0 || height <= 0 {
		return fmt.Errorf("preview: invalid chunk bounds %+v..%+v", chunk.Min, chunk.Max)
	}

	imgWidth := (size+depth)*tileWidth/2 + tileWidth
	imgHeight := (size+depth)*tileHeight/2 + height*blockHeight + tileHeight
	img := image.NewNRGBA(image.Rect(0, 0, imgWidth, imgHeight))

	background := color.NRGBA{R: 10, G: 10, B: 18, A: 255}
	draw.Draw(img, img.Bounds(), &image.Uniform{background}, image.Point{}, draw.Src)

	faces := collectVoxelFaces(chunk, reg)
	sort.Slice(faces, func(i, j int) bool {
		a, b := faces[i], faces[j]
		if a.screenY != b.screenY {
			return a.screenY < b.screenY
		}
		if a.screenX != b.screenX {
			return a.screenX < b.screenX
		}
		if a.lz != b.lz {
			return a.lz < b.lz
		}
		if a.ly != b.ly {
			return a.ly > b.ly
		}
		return a.lx < b.lx
	})

	offsetX := depth * tileWidth / 2
	offsetY := height * blockHeight
	for _, face := range faces {
		renderVoxel(img, offsetX+face.screenX, offsetY+face.screenY, reg.GetBlockByID(face.id))
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("preview: create output directory: %w", err)
	}
	path := filepath.Join(outputDir, fmt.Sprintf("chunk_%d_%d.png", chunk.Coords.X, chunk.Coords.Z))
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: create file: %w", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("preview: encode png: %w", err)
	}
	return nil
}

func collectVoxelFaces(chunk *world.Chunk, reg *registry.Registry) []voxelFace {
	size := chunk.Max.X - chunk.Min.X
	height := chunk.Max.Y - chunk.Min.Y
	depth := chunk.Max.Z - chunk.Min.Z
	faces := make([]voxelFace, 0, size*depth)

	for lx := 0; lx < size; lx++ {
		for lz := 0; lz < depth; lz++ {
			vx, vz := chunk.Min.X+lx, chunk.Min.Z+lz
			top := int(chunk.Height(vx, vz))
			if top < 0 {
				continue
			}
			if top >= height {
				top = height - 1
			}
			id := chunk.Voxel(vx, chunk.Min.Y+top, vz)
			if reg.IsAir(id) {
				continue
			}
			screenX := (lx - lz) * tileWidth / 2
			screenY := (lx+lz)*tileHeight/2 - top*blockHeight
			faces = append(faces, voxelFace{lx: lx, ly: top, lz: lz, id: id, screenX: screenX, screenY: screenY})
		}
	}
	return faces
}

func renderVoxel(img *image.NRGBA, baseX, baseY int, block registry.Block) {
	base := paletteColor(block)
	emission := clampFloat(float64(block.LightLevel)/15, 0, 1)

	topColor := shade(base, ambientLight+0.4+0.6*emission)
	leftColor := shade(base, ambientLight+0.25+0.4*emission)
	rightColor := shade(base, ambientLight+0.15+0.3*emission)

	top := []image.Point{
		{X: baseX, Y: baseY - blockHeight},
		{X: baseX + tileWidth/2, Y: baseY - blockHeight + tileHeight/2},
		{X: baseX, Y: baseY - blockHeight + tileHeight},
		{X: baseX - tileWidth/2, Y: baseY - blockHeight + tileHeight/2},
	}
	left := []image.Point{
		{X: baseX - tileWidth/2, Y: baseY - blockHeight + tileHeight/2},
		{X: baseX, Y: baseY - blockHeight + tileHeight},
		{X: baseX, Y: baseY + tileHeight},
		{X: baseX - tileWidth/2, Y: baseY + tileHeight/2},
	}
	right := []image.Point{
		{X: baseX + tileWidth/2, Y: baseY - blockHeight + tileHeight/2},
		{X: baseX, Y: baseY - blockHeight + tileHeight},
		{X: baseX, Y: baseY + tileHeight},
		{X: baseX + tileWidth/2, Y: baseY + tileHeight/2},
	}

	fillPolygon(img, left, leftColor)
	fillPolygon(img, right, rightColor)
	fillPolygon(img, top, topColor)
}

// paletteColor picks a debug color by block name. There's no color field on
// registry.Block, so this is a fixed palette for the built-in blocks plus a
// gray fallback for anything else (custom YAML registries, unknown ids).
func paletteColor(block registry.Block) color.NRGBA {
	switch block.Name {
	case "Stone":
		return color.NRGBA{R: 120, G: 120, B: 124, A: 255}
	case "Dirt":
		return color.NRGBA{R: 121, G: 85, B: 58, A: 255}
	case "Grass":
		return color.NRGBA{R: 86, G: 156, B: 70, A: 255}
	case "Glass":
		return color.NRGBA{R: 200, G: 225, B: 230, A: 255}
	case "Water":
		return color.NRGBA{R: 51, G: 94, B: 168, A: 255}
	case "Leaves":
		return color.NRGBA{R: 58, G: 110, B: 46, A: 255}
	case "Torch":
		return color.NRGBA{R: 235, G: 180, B: 70, A: 255}
	case "Sapling":
		return color.NRGBA{R: 104, G: 150, B: 82, A: 255}
	case "Wood":
		return color.NRGBA{R: 96, G: 68, B: 40, A: 255}
	default:
		return color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	}
}

func shade(base color.NRGBA, factor float64) color.NRGBA {
	factor = clampFloat(factor, 0, 1)
	return color.NRGBA{
		R: uint8(math.Round(float64(base.R) * factor)),
		G: uint8(math.Round(float64(base.G) * factor)),
		B: uint8(math.Round(float64(base.B) * factor)),
		A: 255,
	}
}

func clampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func fillPolygon(img *image.NRGBA, pts []image.Point, col color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	bounds := img.Bounds()
	if minY < bounds.Min.Y {
		minY = bounds.Min.Y
	}
	if maxY > bounds.Max.Y-1 {
		maxY = bounds.Max.Y - 1
	}

	var crossings []int
	for y := minY; y <= maxY; y++ {
		crossings = crossings[:0]
		for i := range pts {
			j := (i + 1) % len(pts)
			x1, y1 := pts[i].X, pts[i].Y
			x2, y2 := pts[j].X, pts[j].Y
			if y1 == y2 {
				continue
			}
			lo, hi := y1, y2
			if lo > hi {
				lo, hi = hi, lo
			}
			if y < lo || y >= hi {
				continue
			}
			x := x1 + (y-y1)*(x2-x1)/(y2-y1)
			crossings = append(crossings, x)
		}
		if len(crossings) < 2 {
			continue
		}
		sort.Ints(crossings)
		for i := 0; i+1 < len(crossings); i += 2 {
			xStart, xEnd := crossings[i], crossings[i+1]
			if xStart > xEnd {
				xStart, xEnd = xEnd, xStart
			}
			if xEnd < bounds.Min.X || xStart >= bounds.Max.X {
				continue
			}
			if xStart < bounds.Min.X {
				xStart = bounds.Min.X
			}
			if xEnd > bounds.Max.X-1 {
				xEnd = bounds.Max.X - 1
			}
			for x := xStart; x <= xEnd; x++ {
				idx := (y-bounds.Min.Y)*img.Stride + (x-bounds.Min.X)*4
				img.Pix[idx] = col.R
				img.Pix[idx+1] = col.G
				img.Pix[idx+2] = col.B
				img.Pix[idx+3] = col.A
			}
		}
	}
}
