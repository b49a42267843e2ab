package weather

import (
	"testing"
	"time"

	"github.com/phanxgames/aether"
)

func allEffects() map[string]aether.Effect {
	return map[string]aether.Effect{
		"rain":      NewRain(),
		"snow":      NewSnow(),
		"clouds":    NewClouds(),
		"lightning": NewLightningFlash(),
	}
}

func TestUniformsMatchShaderInputs(t *testing.T) {
	for name, e := range allEffects() {
		t.Run(name, func(t *testing.T) {
			inputs, err := aether.ParseInputs(e.ShaderSource())
			if err != nil {
				t.Fatalf("ParseInputs: %v", err)
			}
			if _, ok := inputs[aether.UniformResolution]; !ok {
				t.Errorf("shader does not declare %s", aether.UniformResolution)
			}
			_, hasTime := inputs[aether.UniformTime]
			if hasTime != e.Animated() {
				t.Errorf("declares Time = %v, Animated = %v", hasTime, e.Animated())
			}
			for key, v := range e.Uniforms() {
				in, ok := inputs[key]
				if !ok {
					t.Errorf("uniform %q not declared by shader", key)
					continue
				}
				if !in.Accepts(v.Kind()) {
					t.Errorf("uniform %q: %s input does not accept %s", key, in.Type, v.Kind())
				}
			}
		})
	}
}

func TestAllUniformsBind(t *testing.T) {
	for name, e := range allEffects() {
		t.Run(name, func(t *testing.T) {
			p, err := aether.NewProgram(e.ShaderSource(), nil)
			if err != nil {
				t.Fatalf("NewProgram: %v", err)
			}
			u := e.Uniforms()
			if got := aether.BindAll(p, u); got != len(u) {
				t.Errorf("BindAll = %d, want %d", got, len(u))
			}
		})
	}
}

func TestRainIntensityClamp(t *testing.T) {
	tests := []struct {
		set, want int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{3, 3},
		{5, 5},
		{9, 5},
	}
	r := NewRain()
	for _, tt := range tests {
		r.SetIntensity(tt.set)
		if got := r.Uniforms()["Intensity"].Int(); got != tt.want {
			t.Errorf("SetIntensity(%d): uniform = %d, want %d", tt.set, got, tt.want)
		}
		if r.Intensity() != tt.set {
			t.Errorf("Intensity() = %d, want %d", r.Intensity(), tt.set)
		}
	}
}

func TestRainPresets(t *testing.T) {
	tests := []struct {
		name      string
		rain      *Rain
		intensity int
		speed     float64
		dropLen   float64
		wind      Wind
	}{
		{"light", LightRain(), 1, 0.7, 0.6, Wind{Angle: 0.05, Strength: 0.2}},
		{"moderate", ModerateRain(), 3, 1.0, 1.0, LightBreeze},
		{"heavy", HeavyRain(), 4, 1.3, 1.3, LightBreeze},
		{"storm", Storm(), 5, 1.8, 1.5, StrongWind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.rain.Intensity() != tt.intensity {
				t.Errorf("Intensity = %d, want %d", tt.rain.Intensity(), tt.intensity)
			}
			if tt.rain.Speed() != tt.speed {
				t.Errorf("Speed = %v, want %v", tt.rain.Speed(), tt.speed)
			}
			if tt.rain.DropLength() != tt.dropLen {
				t.Errorf("DropLength = %v, want %v", tt.rain.DropLength(), tt.dropLen)
			}
			if tt.rain.Wind() != tt.wind {
				t.Errorf("Wind = %v, want %v", tt.rain.Wind(), tt.wind)
			}
			if tt.rain.Colors() != DefaultRainColors() {
				t.Errorf("Colors = %v, want defaults", tt.rain.Colors())
			}
		})
	}
}

func TestRainWindAngleUniform(t *testing.T) {
	r := Storm()
	if got := r.Uniforms()["WindAngle"].Floats()[0]; got != float32(StrongWind.Angle) {
		t.Errorf("WindAngle = %v, want %v", got, float32(StrongWind.Angle))
	}
}

func TestSnowPresets(t *testing.T) {
	tests := []struct {
		name    string
		snow    *Snow
		density int
		speed   float64
		size    float64
		wind    Wind
	}{
		{"light", LightSnow(), 1, 0.6, 1.0, Calm},
		{"moderate", ModerateSnow(), 3, 1.0, 1.0, DefaultWind},
		{"heavy", HeavySnow(), 4, 1.2, 1.2, DefaultWind},
		{"blizzard", Blizzard(), 5, 1.5, 1.3, StrongWind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.snow.Density() != tt.density {
				t.Errorf("Density = %d, want %d", tt.snow.Density(), tt.density)
			}
			if tt.snow.Speed() != tt.speed {
				t.Errorf("Speed = %v, want %v", tt.snow.Speed(), tt.speed)
			}
			if tt.snow.FlakeSize() != tt.size {
				t.Errorf("FlakeSize = %v, want %v", tt.snow.FlakeSize(), tt.size)
			}
			if tt.snow.Wind() != tt.wind {
				t.Errorf("Wind = %v, want %v", tt.snow.Wind(), tt.wind)
			}
		})
	}
}

func TestSnowDensityClamp(t *testing.T) {
	s := NewSnow()
	s.SetDensity(0)
	if got := s.Uniforms()["Density"].Int(); got != 1 {
		t.Errorf("Density uniform = %d, want 1", got)
	}
	s.SetDensity(12)
	if got := s.Uniforms()["Density"].Int(); got != MaxSnowDensity {
		t.Errorf("Density uniform = %d, want %d", got, MaxSnowDensity)
	}
}

func TestCloudsCoverageClamp(t *testing.T) {
	tests := []struct {
		set  float64
		want float32
	}{
		{-0.5, 0},
		{0.35, 0.35},
		{1.7, 1},
	}
	c := NewClouds()
	for _, tt := range tests {
		c.SetCoverage(tt.set)
		if got := c.Uniforms()["Coverage"].Floats()[0]; got != tt.want {
			t.Errorf("SetCoverage(%v): uniform = %v, want %v", tt.set, got, tt.want)
		}
	}
}

func TestCloudPresets(t *testing.T) {
	tests := []struct {
		name     string
		clouds   *Clouds
		coverage float64
		speed    float64
	}{
		{"default", NewClouds(), 0.30, 1.0},
		{"wispy", WispyClouds(), 0.15, 0.6},
		{"partly", PartlyCloudy(), 0.35, 1.0},
		{"overcast", Overcast(), 0.85, 0.4},
	}
	for _, tt := range tests {
		if tt.clouds.Coverage() != tt.coverage || tt.clouds.Speed() != tt.speed {
			t.Errorf("%s = (%v, %v), want (%v, %v)", tt.name,
				tt.clouds.Coverage(), tt.clouds.Speed(), tt.coverage, tt.speed)
		}
	}
}

func TestLightningUniformClamps(t *testing.T) {
	l := NewLightningFlash()
	l.SetProgress(2)
	l.SetForkIntensity(-1)
	l.SetBoltCount(0)
	u := l.Uniforms()
	if got := u["Progress"].Floats()[0]; got != 1 {
		t.Errorf("Progress = %v, want 1", got)
	}
	if got := u["ForkIntensity"].Floats()[0]; got != 0 {
		t.Errorf("ForkIntensity = %v, want 0", got)
	}
	if got := u["BoltCount"].Int(); got != 1 {
		t.Errorf("BoltCount = %d, want 1", got)
	}
	if l.Animated() {
		t.Error("LightningFlash should not be animated")
	}
}

func TestSettersNotify(t *testing.T) {
	r := NewRain()
	s := NewSnow()
	c := NewClouds()
	l := NewLightningFlash()

	count := 0
	for _, o := range []aether.Observable{r, s, c, l} {
		o.Observe(func() { count++ })
	}
	setters := []func(){
		func() { r.SetIntensity(2) },
		func() { r.SetSpeed(2) },
		func() { r.SetDropLength(2) },
		func() { r.SetColors(RainColors{}) },
		func() { r.SetWind(Calm) },
		func() { s.SetDensity(2) },
		func() { s.SetSpeed(2) },
		func() { s.SetFlakeSize(2) },
		func() { s.SetColor(aether.ColorWhite) },
		func() { s.SetHaloColor(aether.ColorWhite) },
		func() { s.SetWind(Calm) },
		func() { c.SetCoverage(0.5) },
		func() { c.SetSpeed(2) },
		func() { c.SetColor(aether.ColorWhite) },
		func() { l.SetProgress(0.5) },
		func() { l.SetBrightness(2) },
		func() { l.SetBoltCount(2) },
		func() { l.SetForkIntensity(0.5) },
		func() { l.SetColor(aether.ColorWhite) },
	}
	for _, set := range setters {
		set()
	}
	if count != len(setters) {
		t.Errorf("notifications = %d, want %d", count, len(setters))
	}
}

func TestFlashFadesToZero(t *testing.T) {
	l := NewLightningFlash()
	f := l.Flash(300 * time.Millisecond)
	if l.Progress() != 1 {
		t.Fatalf("Progress after Flash = %v, want 1", l.Progress())
	}
	prev := l.Progress()
	steps := 0
	for !f.Update(1.0 / 60) {
		steps++
		if p := l.Progress(); p > prev {
			t.Fatalf("Progress rose from %v to %v", prev, p)
		}
		prev = l.Progress()
		if steps > 100 {
			t.Fatal("flash never finished")
		}
	}
	if steps < 15 || steps > 20 {
		t.Errorf("steps = %d, want about 18 at 60 TPS", steps)
	}
	if l.Progress() != 0 {
		t.Errorf("Progress after finish = %v, want 0", l.Progress())
	}
	if !f.Done {
		t.Error("Done should be true")
	}
	if !f.Update(1.0 / 60) {
		t.Error("Update after finish should report done")
	}
}

func TestFlashStopResets(t *testing.T) {
	l := NewLightningFlash()
	f := l.Flash(0)
	f.Update(0.05)
	if l.Progress() <= 0 {
		t.Fatalf("Progress mid-flash = %v, want > 0", l.Progress())
	}
	f.Stop()
	if l.Progress() != 0 {
		t.Errorf("Progress after Stop = %v, want 0", l.Progress())
	}
	if !f.Done {
		t.Error("Done should be true after Stop")
	}
}
