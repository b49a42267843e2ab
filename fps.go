package aether

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsCounter renders the current FPS and TPS into a small cached image,
// refreshed every ~0.5 seconds.
type fpsCounter struct {
	img     *ebiten.Image
	elapsed float64
	op      ebiten.DrawImageOptions
}

func newFPSCounter() *fpsCounter {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsCounter{img: ebiten.NewImage(100, 32), elapsed: 0.5}
}

func (c *fpsCounter) update(dt float64) {
	c.elapsed += dt
	if c.elapsed < 0.5 {
		return
	}
	c.elapsed = 0
	c.img.Clear()
	// Semi-transparent background for readability
	c.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(c.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (c *fpsCounter) draw(screen *ebiten.Image) {
	c.op.GeoM.Reset()
	screen.DrawImage(c.img, &c.op)
}
