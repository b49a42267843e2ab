package weather

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Flash fades a LightningFlash from full to zero. Create one with
// LightningFlash.Flash and call Update(dt) each tick; there is no global
// animation manager. A Flash is not safe for concurrent use.
type Flash struct {
	tween  *gween.Tween
	target *LightningFlash
	Done   bool
}

// Flash fires a flash that fades out over d (DefaultFlashDuration if d <= 0).
// Progress jumps to 1 immediately.
func (l *LightningFlash) Flash(d time.Duration) *Flash {
	if d <= 0 {
		d = DefaultFlashDuration
	}
	l.SetProgress(1)
	return &Flash{
		tween:  gween.New(1, 0, float32(d.Seconds()), ease.OutCubic),
		target: l,
	}
}

// Update advances the fade by dt seconds and writes progress. It reports
// whether the flash has finished; a finished flash leaves progress at 0.
func (f *Flash) Update(dt float32) bool {
	if f.Done {
		return true
	}
	val, finished := f.tween.Update(dt)
	if finished {
		f.Stop()
		return true
	}
	f.target.SetProgress(float64(val))
	return false
}

// Stop ends the flash early and resets progress to 0.
func (f *Flash) Stop() {
	if f.Done {
		return
	}
	f.Done = true
	f.target.SetProgress(0)
}
