package ribbon

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"ribbons/config"
	"ribbons/palette"
)

// Per axis ranges of Uniforms.Weights.
var weightRanges = [3][2]float64{
	{0.2, 0.5},
	{0.3, 0.6},
	{0.4, 0.7},
}

type Ribbon struct {
	Column int
	// Position of the column in [0, 1), used to sample the gradient.
	Fraction float64

	Points   []mgl32.Vec3
	Geometry *Geometry
	Uniforms Uniforms
}

// Scene owns every ribbon of the background and the program they share.
type Scene struct {
	Ribbons    []*Ribbon
	Program    *Program
	Background colorful.Color
}

// ColumnPoints lays out the points of column i in normalized device
// coordinates. Columns split [-1, 1] into equal cells and run from the
// top (y = 1) to the bottom (y = -1).
func ColumnPoints(columns, pointsPerRibbon, i int) []mgl32.Vec3 {
	dx := 2 / float64(columns)
	dy := -2 / float64(pointsPerRibbon-1)
	ox, oy := -1+dx/2, 1.0

	points := make([]mgl32.Vec3, pointsPerRibbon)
	for j := range points {
		x := ox + float64(i)*dx
		y := oy + float64(j)*dy
		points[j] = mgl32.Vec3{float32(x), float32(y), 0}
	}
	return points
}

// Build creates one ribbon per column of cfg.
//
// Point positions depend only on cfg. rng is only used for the
// oscillation parameters.
func Build(cfg config.Config, rng Sampler) (*Scene, error) {
	if cfg.Columns <= 0 {
		return nil, fmt.Errorf("%w: columns must be positive, got %d", config.ErrInvalid, cfg.Columns)
	}
	if cfg.PointsPerRibbon < 2 {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewPoints, cfg.PointsPerRibbon)
	}

	gradient, err := cfg.Gradient()
	if err != nil {
		return nil, fmt.Errorf("build gradient: %w", err)
	}

	scene := &Scene{
		Ribbons:    make([]*Ribbon, 0, cfg.Columns),
		Program:    NewProgram(cfg.Rotation, cfg.TimeScale),
		Background: colorful.Color{R: 1, G: 1, B: 1},
	}
	if cfg.Background != "" {
		bg, err := palette.ParseColor(cfg.Background)
		if err != nil {
			return nil, fmt.Errorf("parse background: %w", err)
		}
		scene.Background = bg
	}

	size := float32(Thickness / float64(cfg.Columns))

	for i := range cfg.Columns {
		points := ColumnPoints(cfg.Columns, cfg.PointsPerRibbon, i)

		geometry, err := NewGeometry(points)
		if err != nil {
			return nil, fmt.Errorf("ribbon %d: %w", i, err)
		}

		fraction := float64(i) / float64(cfg.Columns)
		colorA := gradient.At(fraction)
		colorB := palette.Darken(colorA, cfg.Darken)

		scene.Ribbons = append(scene.Ribbons, &Ribbon{
			Column:   i,
			Fraction: fraction,
			Points:   points,
			Geometry: geometry,
			Uniforms: Uniforms{
				Size:    size,
				Freq1:   randVec3(rng, -1, 1),
				Freq2:   randVec3(rng, -1, 1),
				Phase1:  randVec3(rng, -1, 1),
				Phase2:  randVec3(rng, -1, 1),
				Weights: randWeights(rng),
				ColorA:  colorA,
				ColorB:  colorB,
			},
		})
	}

	return scene, nil
}

func randVec3(rng Sampler, lo, hi float64) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(RandFloat(rng, lo, hi)),
		float32(RandFloat(rng, lo, hi)),
		float32(RandFloat(rng, lo, hi)),
	}
}

func randWeights(rng Sampler) mgl32.Vec3 {
	var v mgl32.Vec3
	for k, r := range weightRanges {
		v[k] = float32(RandFloat(rng, r[0], r[1]))
	}
	return v
}
