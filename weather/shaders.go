package weather

// Kage sources for the weather effects. All use //kage:unit pixels; the
// pipeline supplies Resolution (target size) and, for animated effects, Time.
// Outputs are premultiplied as Ebitengine expects.
//
// The hash functions are by Dave Hoskins (MIT License),
// https://www.shadertoy.com/view/4djSRW

const rainShaderSrc = `//kage:unit pixels

package main

var Resolution vec2
var Time float
var Intensity int
var Speed float
var DropLength float
var RainColor vec4
var HaloColor vec4
var TintColor vec4
var WindAngle float

func hash(p vec2) float {
	p3 := fract(vec3(p.xyx) * vec3(0.1031, 0.1030, 0.0973))
	p3 += dot(p3, p3.yzx+33.33)
	return fract((p3.x + p3.y) * p3.z)
}

func hash13(p vec3) float {
	p3 := fract(p * 0.1031)
	p3 += dot(p3, p3.zyx+31.32)
	return fract((p3.x + p3.y) * p3.z)
}

// rainLayer returns (core, halo) intensity for one depth layer.
func rainLayer(uv vec2, layerSeed float, layerDepth float) vec2 {
	// Far layers are denser, shorter and slower.
	numCols := 35.0 + layerDepth*50.0
	colID := floor(uv.x * numCols)
	localX := fract(uv.x*numCols) - 0.5
	baseDropLen := 0.35 * DropLength * (1.0 - layerDepth*0.3)
	spawnInterval := 0.75 / (0.6 + layerDepth)
	depthSpeed := 1.0 - layerDepth*0.65
	t := mod(Time, 600.0) * Speed * depthSpeed * (0.8 + hash(vec2(layerSeed, colID))*0.5)

	core := 0.0
	halo := 0.0
	for slot := -1; slot <= 2; slot++ {
		spawnTime := floor(t/spawnInterval+float(slot)) * spawnInterval
		dropRnd := hash13(vec3(colID, spawnTime, layerSeed))
		age := t - spawnTime
		dropSpeed := 0.4 + hash13(vec3(colID, spawnTime, layerSeed+200.0))*0.35
		lenVar := 0.65 + hash13(vec3(colID, spawnTime, layerSeed+150.0))*0.7
		dropLen := baseDropLen * lenVar
		dy := uv.y - age*dropSpeed
		// 12% of slots stay empty.
		if dropRnd >= 0.12 && age >= 0.0 && dy <= 0.0 && dy >= -dropLen {
			// 0 = tail (top), 1 = head (bottom)
			dropT := clamp(1.0+dy/dropLen, 0.0, 1.0)
			jitter := (hash13(vec3(colID, spawnTime, layerSeed+50.0)) - 0.5) * 0.25
			absDx := abs((localX - jitter) / numCols)
			widthVar := 0.8 + hash13(vec3(colID, spawnTime, layerSeed+100.0))*0.4
			coreW := mix(0.0025, 0.0014, layerDepth) * widthVar
			tailTaper := mix(0.5, 1.0, smoothstep(0.0, 0.20, dropT))
			headBulge := 1.0 + 0.25*smoothstep(0.88, 1.0, dropT)
			w := coreW * tailTaper * headBulge
			haloW := w + 0.003
			if absDx <= haloW {
				aa := max(w*0.4, 1.0/Resolution.x)
				coreShape := 1.0 - smoothstep(w-aa, w, absDx)
				haloShape := (1.0 - smoothstep(w, haloW, absDx)) * (1.0 - coreShape)
				tailFade := smoothstep(0.0, 0.18, dropT)
				headFade := 1.0 - smoothstep(0.93, 1.0, dropT)
				brightness := (0.65 + 0.25*dropT) * tailFade * headFade
				depthFade := mix(1.0, 0.45, layerDepth*layerDepth)
				contrib := brightness * (0.6 + dropRnd*0.4) * depthFade
				core += coreShape * contrib
				halo += haloShape * contrib
			}
		}
	}
	return vec2(core, halo)
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	if Resolution.x < 1.0 || Resolution.y < 1.0 {
		return vec4(0)
	}
	pos := (dstPos.xy - imageDstOrigin()) / Resolution
	uv := vec2(pos.x+pos.y*WindAngle, pos.y)

	core := 0.0
	halo := 0.0
	for i := 0; i < 5; i++ {
		if i < Intensity {
			layer := rainLayer(uv, float(i)*7.23, float(i)/5.0)
			core += layer.x
			halo += layer.y
		}
	}
	edgeFade := smoothstep(0.0, 0.06, uv.y) * (1.0 - smoothstep(0.94, 1.0, uv.y))
	core = clamp(core*edgeFade, 0.0, 1.8)
	halo = clamp(halo*edgeFade, 0.0, 1.0)

	// Dark halo behind the bright core.
	col := RainColor.rgb
	alpha := 0.0
	total := core + halo
	if total >= 0.001 {
		col = (RainColor.rgb*core + HaloColor.rgb*halo) / total
		coreA := RainColor.a * core
		haloA := HaloColor.a * halo
		alpha = clamp(coreA+haloA*(1.0-min(coreA, 1.0)), 0.0, 1.0)
	}
	// Atmospheric tint sits behind the drops and deepens with intensity.
	tintA := TintColor.a * float(Intensity) / 5.0
	outA := alpha + tintA*(1.0-alpha)
	return vec4(col*alpha+TintColor.rgb*tintA*(1.0-alpha), outA)
}
`

const snowShaderSrc = `//kage:unit pixels

package main

var Resolution vec2
var Time float
var Density int
var Speed float
var FlakeSize float
var SnowColor vec4
var HaloColor vec4
var WindStrength float

func hash(p vec2) float {
	p3 := fract(vec3(p.xyx) * vec3(0.1031, 0.1030, 0.0973))
	p3 += dot(p3, p3.yzx+33.33)
	return fract((p3.x + p3.y) * p3.z)
}

// branchDist is the distance to one side branch leaning toward the arm tip.
func branchDist(ax float, ay float, pos float, size float) float {
	lean := 0.20
	invE := 1.0 / (lean*lean + 1.0)
	t := clamp(((ax-pos)*lean+ay)*invE/size, 0.0, 1.0)
	return length(vec2(ax-pos-t*lean*size, ay-t*size))
}

// snowLayer returns (core, halo) intensity for one depth layer.
func snowLayer(pos vec2, layerSeed float, layerDepth float) vec2 {
	t := mod(Time, 600.0) * Speed
	gridScale := 4.5 + layerDepth*9.0
	fallRate := mix(0.5, 0.12, layerDepth)
	y := pos.y - t*fallRate
	x := pos.x + sin(y*1.8+t*0.6+layerSeed)*WindStrength*0.12 - t*0.04

	cellUV := vec2(x, y) * gridScale
	cellID := floor(cellUV)
	cellFrac := fract(cellUV)
	skip := hash(cellID + layerSeed + 200.0)
	rx := hash(cellID + layerSeed)
	ry := hash(cellID + layerSeed + 100.0)
	diff := cellFrac - vec2(0.2+rx*0.6, 0.2+ry*0.6)
	dist := length(diff)
	sizeVar := 0.6 + hash(cellID+layerSeed+300.0)*0.4
	radius := 0.144 * FlakeSize * sizeVar * mix(1.0, 0.5, layerDepth)
	// ~30% of cells stay empty; nothing reaches beyond two radii.
	if skip < 0.30 || dist > radius*2.0 {
		return vec2(0)
	}

	// Fold into a 60 degree sector around the nearest arm.
	rotation := hash(cellID+layerSeed+500.0) * 6.28
	angle := atan2(diff.y, diff.x) + rotation
	sector := abs(mod(angle+0.5236, 1.0472) - 0.5236)
	ax := dist * cos(sector)
	ay := dist * sin(sector)

	hubR := radius * 0.14
	hubDist := max(dist-hubR, 0.0)
	armDist := length(vec2(ax-clamp(ax, hubR, radius*0.97), ay))
	bVar := hash(cellID + layerSeed + 600.0)
	d1 := branchDist(ax, ay, (0.28+bVar*0.08)*radius, (0.42+bVar*0.08)*radius)
	d2 := branchDist(ax, ay, (0.50+bVar*0.10)*radius, (0.30+bVar*0.06)*radius)
	d3 := branchDist(ax, ay, (0.72+bVar*0.08)*radius, (0.16+bVar*0.04)*radius)
	featureDist := min(hubDist, min(armDist, min(d1, min(d2, d3))))

	lineW := radius * 0.08
	core := 1.0 - smoothstep(lineW*0.15, lineW, featureDist)
	core *= core
	halo := 1.0 - smoothstep(lineW*0.5, lineW*3.5, featureDist)

	phase := hash(cellID+layerSeed+400.0) * 6.28
	twinkle := 0.8 + 0.2*sin(t*2.0+phase)
	dim := mix(1.0, 0.5, layerDepth)
	return vec2(core, halo) * twinkle * dim
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	if Resolution.x < 1.0 || Resolution.y < 1.0 {
		return vec4(0)
	}
	frag := dstPos.xy - imageDstOrigin()
	uv := (frag*2.0 - Resolution) / min(Resolution.x, Resolution.y)
	// Dense at the top, thinning toward the bottom.
	vertFade := 1.0 - smoothstep(0.0, 1.5, uv.y)

	core := 0.0
	halo := 0.0
	for i := 0; i < 7; i++ {
		if i < Density+2 {
			layer := snowLayer(uv, float(i)*17.3, float(i)/6.0)
			core += layer.x
			halo += layer.y
		}
	}
	core = clamp(core*vertFade, 0.0, 1.0)
	halo = clamp(halo*vertFade, 0.0, 1.0)

	// Bright core over the dark halo.
	coreA := clamp(SnowColor.a*core, 0.0, 1.0)
	haloA := clamp(HaloColor.a*halo, 0.0, 1.0)
	col := SnowColor.rgb*coreA + HaloColor.rgb*haloA*(1.0-coreA)
	alpha := coreA + haloA*(1.0-coreA)
	if alpha < 0.001 {
		return vec4(0)
	}
	return vec4(col, alpha)
}
`

const cloudsShaderSrc = `//kage:unit pixels

package main

var Resolution vec2
var Time float
var Coverage float
var Speed float
var CloudColor vec4

func hash(p vec2) float {
	p3 := fract(vec3(p.xyx) * vec3(0.1031, 0.1030, 0.0973))
	p3 += dot(p3, p3.yzx+33.33)
	p3 = fract((p3.xxy + p3.yzz) * p3.zyx)
	return p3.x
}

func gradHash(p vec2) vec2 {
	angle := hash(p) * 6.28318530718
	return vec2(cos(angle), sin(angle))
}

// noise is Perlin-like gradient noise with quintic interpolation.
func noise(p vec2) float {
	i := floor(p)
	f := fract(p)
	u := f * f * f * (f*(f*6.0-15.0) + 10.0)
	a := dot(gradHash(i), f)
	b := dot(gradHash(i+vec2(1.0, 0.0)), f-vec2(1.0, 0.0))
	c := dot(gradHash(i+vec2(0.0, 1.0)), f-vec2(0.0, 1.0))
	d := dot(gradHash(i+vec2(1.0, 1.0)), f-vec2(1.0, 1.0))
	return mix(mix(a, b, u.x), mix(c, d, u.x), u.y)
}

func fbm(p vec2) float {
	value := 0.0
	amplitude := 0.5
	q := p
	for i := 0; i < 5; i++ {
		value += amplitude * noise(q)
		q *= 2.0
		amplitude *= 0.5
	}
	return value*0.5 + 0.5
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	if Resolution.x < 1.0 || Resolution.y < 1.0 {
		return vec4(0)
	}
	uv := (dstPos.xy - imageDstOrigin()) / Resolution
	t := mod(Time, 1800.0) * Speed * 0.05
	wind := vec2(1.0, 0.3)

	// Coverage moves the threshold: more coverage, more cloud area.
	threshold := mix(0.65, 0.15, Coverage)
	gustT := t + sin(t*0.12)*2.5
	drift := vec2(-wind.y, wind.x) * sin(t*0.7) * 0.08

	// Near layer, domain-warped.
	n1 := fbm(uv*5.0 + wind*gustT + drift)
	warp := vec2(n1, n1*0.8) * 0.45
	n2 := fbm(uv*3.5 + warp + wind*gustT*0.6 - drift*0.5 + 50.0)
	nearRaw := (n1 + n2) * 0.5
	edgeSoft := 0.12
	nearCloud := smoothstep(threshold, threshold+edgeSoft, nearRaw)

	// Far layer: finer and slower.
	n3 := fbm(uv*8.0 + wind*gustT*0.35 + drift*1.5 + 100.0)
	farThreshold := threshold + 0.05
	farCloud := smoothstep(farThreshold, farThreshold+edgeSoft, n3)

	cloud := nearCloud*0.7 + farCloud*0.3
	interior := smoothstep(threshold, threshold+0.30, nearRaw) * 0.4

	// Denser toward the top of the target.
	verticalFade := 1.0 - smoothstep(0.5, 1.0, uv.y)
	verticalFade = mix(verticalFade, 1.0, (1.0-smoothstep(0.0, 0.3, uv.y))*0.3)
	cloud = clamp(cloud*verticalFade, 0.0, 1.0)

	edgeTint := CloudColor.rgb * vec3(0.82, 0.85, 0.92)
	coreTint := CloudColor.rgb * vec3(1.02, 1.01, 0.98)
	col := mix(edgeTint, coreTint, clamp(cloud+interior, 0.0, 1.0))
	alpha := CloudColor.a * clamp(cloud*(1.0+cloud*0.3), 0.0, 1.0)
	return vec4(col*alpha, alpha)
}
`

const lightningShaderSrc = `//kage:unit pixels

package main

var Resolution vec2
var Progress float
var Brightness float
var BoltCount int
var ForkIntensity float
var FlashColor vec4

func hash(p vec2) float {
	p3 := fract(vec3(p.xyx) * vec3(0.1031, 0.1030, 0.0973))
	p3 += dot(p3, p3.yzx+33.33)
	p3 = fract((p3.xxy + p3.yzz) * p3.zyx)
	return p3.x
}

// zigzag is piecewise linear so bolts get sharp kinks.
func zigzag(y float, freq float, seed float) float {
	sy := y * freq
	i := floor(sy)
	return mix(hash(vec2(i, seed)), hash(vec2(i+1.0, seed)), fract(sy)) - 0.5
}

func boltPath(y float, seed float) float {
	return zigzag(y, 3.5, seed)*0.16 + zigzag(y, 9.0, seed+10.0)*0.06 + zigzag(y, 22.0, seed+20.0)*0.02
}

// boltGlow returns (hairline core, inner glow, atmospheric glow).
func boltGlow(dist float, intensity float, pw float) vec3 {
	core := (1.0 - smoothstep(0.0, pw*1.5, dist)) * 2.0
	innerW := pw * 8.0
	inner := clamp(innerW/(dist+innerW*0.5), 0.0, 1.0) * 0.6
	sigma := pw * 55.0
	outer := exp(-dist*dist/(2.0*sigma*sigma)) * 0.15
	return vec3(core, inner, outer) * intensity
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	if Progress <= 0.001 || Resolution.x < 1.0 || Resolution.y < 1.0 {
		return vec4(0)
	}
	uv := (dstPos.xy - imageDstOrigin()) / Resolution
	pw := 1.0 / Resolution.x
	glow := vec3(0)
	minBoltDist := 1.0
	nBolts := float(BoltCount)

	for b := 0; b < 5; b++ {
		if b < BoltCount {
			fb := float(b)
			seed := fb * 1000.0
			baseX := 0.5 + (fb-(nBolts-1.0)*0.5)*0.2 + (hash(vec2(fb, 700.0))-0.5)*0.08
			tilt := (hash(vec2(fb, 42.0)) - 0.5) * 0.25
			intensity := 1.0 - fb*0.15
			startY := hash(vec2(fb, 800.0)) * 0.08
			endY := 0.55 + hash(vec2(fb, 900.0))*0.40

			boltDist := abs(uv.x - (baseX + tilt*uv.y + boltPath(uv.y, seed)))
			minBoltDist = min(minBoltDist, boltDist)
			taper := smoothstep(startY, startY+0.10, uv.y) * (1.0 - smoothstep(endY-0.15, endY, uv.y))
			glow += boltGlow(boltDist, intensity, pw) * taper

			// Three tiers of four branches per bolt.
			for i := 0; i < 12; i++ {
				fi := float(i)
				tier := floor(fi / 4.0)
				tierScale := 1.0 / (tier + 1.5)
				spawnY := startY + 0.05 + hash(vec2(fi+seed, 100.0))*(endY-startY-0.15)
				angle := hash(vec2(fi+seed, 200.0)) - 0.5
				angle = sign(angle) * (0.4 + abs(angle)*0.5)
				branchLen := (0.1 + hash(vec2(fi+seed, 300.0))*0.18) * tierScale
				if ForkIntensity > 0.0 && uv.y >= spawnY && uv.y <= spawnY+branchLen {
					t := (uv.y - spawnY) / branchLen
					parentX := baseX + tilt*spawnY + boltPath(spawnY, seed)
					if tier >= 0.5 {
						pi := mod(fi, 4.0)
						pSpawnY := 0.12 + hash(vec2(pi+seed, 100.0))*0.6
						pAngle := hash(vec2(pi+seed, 200.0)) - 0.5
						pAngle = sign(pAngle) * (0.4 + abs(pAngle)*0.5)
						pMainX := baseX + tilt*pSpawnY + boltPath(pSpawnY, seed)
						parentX = pMainX + (spawnY-pSpawnY)*pAngle*0.25/1.5 + boltPath(spawnY, 50.0+pi*7.0+seed)*0.06/1.5
					}
					branchX := parentX + t*angle*0.25*tierScale + boltPath(uv.y, 50.0+fi*7.0+seed)*0.05*tierScale
					tierAlpha := intensity / (tier + 2.0)
					glow += boltGlow(abs(uv.x-branchX), tierAlpha, pw) * (1.0 - t*0.85) * ForkIntensity
				}
			}
		}
	}

	// At most ~3 flashes per second over a full fade.
	phase := fract(Progress * 2.5)
	flicker := 0.6 + smoothstep(0.0, 0.1, phase)*(1.0-smoothstep(0.1, 0.4, phase))*0.4
	glow *= Progress * flicker * Brightness

	innerColor := FlashColor.rgb
	outerColor := FlashColor.rgb * vec3(0.7, 0.6, 1.0)
	col := vec3(1.0)*glow.x + innerColor*glow.y + outerColor*glow.z

	atmSigma := pw * 200.0
	atm := exp(-minBoltDist*minBoltDist/(2.0*atmSigma*atmSigma)) * 0.08 * Progress * Brightness
	atm *= smoothstep(0.0, 0.3, uv.y) * (1.0 - smoothstep(0.2, 1.0, uv.y))
	col += outerColor * atm

	flashSigma := pw * 300.0
	falloff := exp(-minBoltDist * minBoltDist / (2.0 * flashSigma * flashSigma))
	flash := pow(Progress, 4.0) * 0.1 * Brightness * mix(0.2, 1.0, falloff)
	col += FlashColor.rgb * flash * flicker

	alpha := clamp(glow.x+glow.y+glow.z+atm+flash, 0.0, 1.0)
	return vec4(col*alpha, FlashColor.a*alpha)
}
`
