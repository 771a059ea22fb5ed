// Package renderdebug draws a single end-of-match PNG of the final
// board: terrain, flags, and surviving actors. It is strictly an
// after-the-fact debugging aid, never on the per-turn path — the same
// separation between simulation and rendering a live streaming pipeline
// would draw, just without a per-frame loop.
package renderdebug

import (
	"image/color"

	"github.com/fogleman/gg"

	"arenahost/internal/actor"
	"arenahost/internal/vecmath"
	"arenahost/internal/worldmap"
	"arenahost/internal/worldstate"
)

// CellPixels is the size in pixels of one terrain cell in the rendered
// board.
const CellPixels = 8

var (
	colorLand    = color.RGBA{34, 40, 34, 255}
	colorWater   = color.RGBA{20, 60, 110, 255}
	colorFlag    = color.RGBA{200, 170, 40, 255}
	colorTower   = color.RGBA{120, 30, 30, 255}
	colorBotP1   = color.RGBA{70, 170, 230, 255}
	colorBotP2   = color.RGBA{230, 90, 70, 255}
	colorGrid    = color.RGBA{60, 60, 60, 255}
)

// Render draws the final authoritative state, in player 1's unflipped
// frame and with both players' bots, to path as a PNG.
func Render(st *worldstate.State, path string) error {
	size := st.Map().Size()
	px := size * CellPixels
	dc := gg.NewContext(px, px)

	drawTerrain(dc, st.Map())
	drawGrid(dc, size)
	drawActors(dc, st)

	return dc.SavePNG(path)
}

func drawTerrain(dc *gg.Context, m *worldmap.Map) {
	size := m.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cellColor := colorLand
			switch m.At(vecmath.Vec2D{X: x, Y: y}) {
			case worldmap.Water:
				cellColor = colorWater
			case worldmap.Flag:
				cellColor = colorFlag
			case worldmap.Tower:
				cellColor = colorTower
			}
			dc.SetColor(cellColor)
			dc.DrawRectangle(float64(x*CellPixels), float64(y*CellPixels), CellPixels, CellPixels)
			dc.Fill()
		}
	}
}

func drawGrid(dc *gg.Context, size int) {
	dc.SetColor(colorGrid)
	dc.SetLineWidth(1)
	for i := 0; i <= size; i++ {
		p := float64(i * CellPixels)
		dc.DrawLine(p, 0, p, float64(size*CellPixels))
		dc.Stroke()
		dc.DrawLine(0, p, float64(size*CellPixels), p)
		dc.Stroke()
	}
}

func drawActors(dc *gg.Context, st *worldstate.State) {
	for _, b := range st.Bots() {
		c := colorBotP1
		if b.Player == actor.Player2 {
			c = colorBotP2
		}
		dc.SetColor(c)
		cx := b.Position.X*float64(CellPixels) + CellPixels/2
		cy := b.Position.Y*float64(CellPixels) + CellPixels/2
		dc.DrawCircle(cx, cy, CellPixels/3)
		dc.Fill()
	}
}
