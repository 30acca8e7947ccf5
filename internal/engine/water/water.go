// Package water holds the water surface appearance and the named color
// presets offered in the UI.
package water

import "github.com/chewxy/math32"

// Appearance controls how the water layer is shaded.
type Appearance struct {
	ColorShallow [3]float32
	ColorDeep    [3]float32
	ColorDepth   float32 // depth at which the deep color is reached
	SpecStrength float32

	AddFoam   bool
	FoamColor [3]float32
	FoamDepth float32

	AddWaves         bool
	AngleSpreadRatio float32
	WavesAlpha       float32 // main direction, radians
	WavesKw          float32 // wavenumber
	WavesAmplitude   float32
	NormalAmplitude  float32
	Animate          bool
	WavesSpeed       float32

	// Elevation is kept in view-state documents for compatibility. Water
	// geometry is placed by its own samples and ignores it.
	Elevation float32
}

// DefaultAppearance returns the default water look.
func DefaultAppearance() Appearance {
	p, _ := DefaultPresets().Lookup("caribbean")
	return Appearance{
		ColorShallow:     p.Shallow,
		ColorDeep:        p.Deep,
		ColorDepth:       0.015,
		SpecStrength:     0.5,
		AddFoam:          true,
		FoamColor:        [3]float32{1, 1, 1},
		FoamDepth:        0.005,
		AddWaves:         true,
		AngleSpreadRatio: 0,
		WavesAlpha:       30 * math32.Pi / 180,
		WavesKw:          256,
		WavesAmplitude:   0.005,
		NormalAmplitude:  0.02,
		WavesSpeed:       0.2,
		Elevation:        0.05,
	}
}

// EffectiveSpeed is the wave speed sent to the shader: zero unless animated.
func (a Appearance) EffectiveSpeed() float32 {
	if !a.Animate {
		return 0
	}
	return a.WavesSpeed
}

// ApplyPreset replaces both water colors.
func (a *Appearance) ApplyPreset(p Preset) {
	a.ColorShallow = p.Shallow
	a.ColorDeep = p.Deep
}
