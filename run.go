package aether

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Background fills the screen before Content. Zero means transparent.
	Background Color
	// Content draws what the overlays sit on. It may be nil.
	Content func(dst *ebiten.Image)
	// OnUpdate, if set, runs every tick before the stack updates. Returning
	// a non-nil error (ebiten.Termination to quit cleanly) stops the loop.
	OnUpdate func() error
	// ShowFPS prints the current FPS/TPS in the top-left corner.
	ShowFPS bool
}

// Run opens a window and drives stack with an ebiten.Game. It blocks until
// the window closes and detaches every layer before returning.
func Run(stack *Stack, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	defer stack.Close()
	return ebiten.RunGame(&game{stack: stack, cfg: cfg, fps: newFPSCounter()})
}

// game adapts a Stack to ebiten.Game.
type game struct {
	stack *Stack
	cfg   RunConfig
	fps   *fpsCounter
}

func (g *game) Update() error {
	if g.cfg.OnUpdate != nil {
		if err := g.cfg.OnUpdate(); err != nil {
			return err
		}
	}
	g.stack.Update()
	if g.cfg.ShowFPS {
		g.fps.update(1.0 / float64(ebiten.TPS()))
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.Background.A > 0 {
		screen.Fill(g.cfg.Background)
	}
	g.stack.Draw(screen, g.cfg.Content)
	if g.cfg.ShowFPS {
		g.fps.draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
