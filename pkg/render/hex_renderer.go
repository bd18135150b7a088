package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"go-hex-lanes/pkg/hexmap"
)

// Marker is a dot drawn on top of the map, e.g. a walking enemy. It sits
// Progress of the way from Hex to Next.
type Marker struct {
	Hex      hexmap.Hex
	Next     hexmap.Hex
	Progress float64
	Color    color.RGBA
	Radius   float32
}

// HexRenderer draws a grid with ebiten. The static map is pre-rendered into
// an image and only rebuilt by RenderMapImage.
type HexRenderer struct {
	grid         *hexmap.Grid
	hexSize      float64
	screenWidth  int
	screenHeight int
	colors       MapColors
	fillImg      *ebiten.Image
	fillVs       []ebiten.Vertex
	fillIs       []uint16
	strokeVs     []ebiten.Vertex
	strokeIs     []uint16
	fontFace     font.Face
	mapImage     *ebiten.Image // предрендеренная карта

	ShowCoords bool
}

// NewHexRenderer creates a renderer and pre-renders grid.
func NewHexRenderer(grid *hexmap.Grid, hexSize float64, screenWidth, screenHeight int) *HexRenderer {
	fillImg := ebiten.NewImage(1, 1)
	fillImg.Fill(color.White)

	r := &HexRenderer{
		grid:         grid,
		hexSize:      hexSize,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		colors:       DefaultColors(),
		fillImg:      fillImg,
		fillVs:       make([]ebiten.Vertex, 0, 18),
		fillIs:       make([]uint16, 0, 18),
		strokeVs:     make([]ebiten.Vertex, 0, 36),
		strokeIs:     make([]uint16, 0, 36),
		fontFace:     basicfont.Face7x13,
		mapImage:     ebiten.NewImage(screenWidth, screenHeight),
	}
	r.RenderMapImage()
	return r
}

// SetGrid swaps the grid, e.g. after regeneration, and re-renders.
func (r *HexRenderer) SetGrid(grid *hexmap.Grid) {
	r.grid = grid
	r.RenderMapImage()
}

// RenderMapImage rebuilds the static map image.
func (r *HexRenderer) RenderMapImage() {
	r.mapImage.Fill(r.colors.Background)
	if r.grid == nil {
		return
	}
	coords := r.grid.Coords()
	for _, h := range coords {
		r.drawHexFill(r.mapImage, h)
	}
	for _, h := range coords {
		r.drawHexOutline(r.mapImage, h)
	}
}

// Draw puts the pre-rendered map and the markers on screen.
func (r *HexRenderer) Draw(screen *ebiten.Image, markers []Marker) {
	screen.DrawImage(r.mapImage, nil)
	for _, m := range markers {
		x, y := r.center(m.Hex)
		if m.Progress > 0 {
			nx, ny := r.center(m.Next)
			x += (nx - x) * m.Progress
			y += (ny - y) * m.Progress
		}
		vector.DrawFilledCircle(screen, float32(x), float32(y), m.Radius, m.Color, true)
		vector.StrokeCircle(screen, float32(x), float32(y), m.Radius, 1, DarkenColor(m.Color), true)
	}
}

// HexAt converts a screen position to the hex under it.
func (r *HexRenderer) HexAt(x, y int) hexmap.Hex {
	return hexmap.PixelToHex(float64(x)-float64(r.screenWidth)/2, float64(y)-float64(r.screenHeight)/2, r.hexSize)
}

func (r *HexRenderer) center(h hexmap.Hex) (float64, float64) {
	x, y := h.ToPixel(r.hexSize)
	return x + float64(r.screenWidth)/2, y + float64(r.screenHeight)/2
}

func (r *HexRenderer) hexPath(h hexmap.Hex) vector.Path {
	x, y := r.center(h)
	path := vector.Path{}
	for i := 0; i < 6; i++ {
		angle := math.Pi/3*float64(i) + math.Pi/6
		px := x + r.hexSize*math.Cos(angle)
		py := y + r.hexSize*math.Sin(angle)
		if i == 0 {
			path.MoveTo(float32(px), float32(py))
		} else {
			path.LineTo(float32(px), float32(py))
		}
	}
	path.Close()
	return path
}

func (r *HexRenderer) drawHexFill(target *ebiten.Image, h hexmap.Hex) {
	tile, ok := r.grid.Tile(h)
	if !ok {
		return
	}
	fill := r.colors.TileColor(tile)
	path := r.hexPath(h)

	r.fillVs, r.fillIs = path.AppendVerticesAndIndicesForFilling(r.fillVs[:0], r.fillIs[:0])
	paint(r.fillVs, fill)
	target.DrawTriangles(r.fillVs, r.fillIs, r.fillImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})

	label := ""
	switch {
	case r.ShowCoords:
		label = fmt.Sprintf("%d,%d", h.Q, h.R)
	case tile.Kind == hexmap.EdgeSpawn, tile.Kind == hexmap.Pathway && tile.LaneID >= 0 && r.grid.DistanceToHub(h) == r.grid.Radius-1:
		label = fmt.Sprint(tile.LaneID)
	}
	if label == "" {
		return
	}
	x, y := r.center(h)
	bounds := text.BoundString(r.fontFace, label)
	w, ht := bounds.Max.X-bounds.Min.X, bounds.Max.Y-bounds.Min.Y
	text.Draw(target, label, r.fontFace, int(x)-w/2, int(y)+ht/2, r.colors.TextColorFor(fill))
}

func (r *HexRenderer) drawHexOutline(target *ebiten.Image, h hexmap.Hex) {
	tile, ok := r.grid.Tile(h)
	if !ok {
		return
	}
	path := r.hexPath(h)
	r.strokeVs, r.strokeIs = path.AppendVerticesAndIndicesForStroke(r.strokeVs[:0], r.strokeIs[:0], &vector.StrokeOptions{
		Width: r.colors.StrokeWidth,
	})
	paint(r.strokeVs, DarkenColor(r.colors.TileColor(tile)))
	target.DrawTriangles(r.strokeVs, r.strokeIs, r.fillImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

func paint(vs []ebiten.Vertex, c color.RGBA) {
	for i := range vs {
		vs[i].ColorR = float32(c.R) / 255
		vs[i].ColorG = float32(c.G) / 255
		vs[i].ColorB = float32(c.B) / 255
		vs[i].ColorA = float32(c.A) / 255
	}
}
