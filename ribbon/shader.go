package ribbon

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	// Scale applied to positions after rotation so rotated ribbons still
	// reach the corners of the screen.
	Spread float32 = 1.5
	// Total width shared by all ribbons. Each ribbon gets Thickness/columns.
	Thickness = 1.5
	// Spatial frequency of the width undulation along a ribbon.
	WaveFrequency float32 = 20
)

// Uniforms are the per ribbon shader inputs, fixed for the ribbon's lifetime.
type Uniforms struct {
	Size float32

	Freq1, Freq2   mgl32.Vec3
	Phase1, Phase2 mgl32.Vec3
	// Contribution of each of the three width terms.
	Weights mgl32.Vec3

	ColorA, ColorB colorful.Color
}

// Program is the state shared by every ribbon's draw: the rotation and the
// conversion from clock seconds to animation time.
//
// Program keeps no per draw state. Everything that changes between frames
// comes in through the now argument.
type Program struct {
	Rotation  mgl32.Mat2
	TimeScale float32
}

func NewProgram(rotation, timeScale float64) *Program {
	return &Program{
		Rotation:  mgl32.Rotate2D(float32(rotation)),
		TimeScale: float32(timeScale),
	}
}

// Wave is the time dependent part of the vertex stage.
// It is the same for every vertex of one ribbon in one draw.
type Wave struct {
	A, B mgl32.Vec3
}

func (p *Program) Wave(u *Uniforms, now float64) Wave {
	time := float32(now) * p.TimeScale

	var w Wave
	for k := range 3 {
		w.A[k] = math32.Cos(time*u.Freq1[k] + u.Phase1[k])
		w.B[k] = math32.Cos(time*u.Freq2[k] + u.Phase2[k])
	}
	return w
}

func (p *Program) transform(v mgl32.Vec2) mgl32.Vec2 {
	return p.Rotation.Mul2x1(v).Mul(Spread)
}

// Vertex returns the clip space position of one strip vertex.
func (p *Program) Vertex(u *Uniforms, w Wave, position mgl32.Vec3, side float32) mgl32.Vec2 {
	pos := p.transform(position.Vec2())

	normal := p.transform(mgl32.Vec2{1, 0}).Mul(u.Size)

	y := position.Y()
	normal = normal.Mul(1 +
		u.Weights[0]*(math32.Cos((y+w.A[0])*WaveFrequency*w.A[1])+1) +
		u.Weights[1]*(math32.Sin((y+w.B[0])*WaveFrequency*w.B[1])+1) +
		u.Weights[2]*(math32.Cos((y+w.A[2])*WaveFrequency*w.B[2])+1))

	return pos.Sub(normal.Mul(side))
}

// Project runs the vertex stage over every vertex of r at time now.
// Results go to dst, which is grown if needed. r's geometry is only read.
func (p *Program) Project(r *Ribbon, now float64, dst []mgl32.Vec2) []mgl32.Vec2 {
	g := r.Geometry
	n := g.VertexCount()
	if cap(dst) < n {
		dst = make([]mgl32.Vec2, n)
	}
	dst = dst[:n]

	w := p.Wave(&r.Uniforms, now)
	for i := range n {
		dst[i] = p.Vertex(&r.Uniforms, w, g.Position[i], g.Side[i])
	}
	return dst
}

// Fragment is the reference the Kage source in assets/ribbon_shader.go
// must match: colorA at uv.x == 0, colorB at uv.x == 1, linear in between.
// Alpha is always 1. Nothing calls it while rendering.
func (p *Program) Fragment(u *Uniforms, uv mgl32.Vec2) colorful.Color {
	t := Clamp(float64(uv.X()), 0, 1)
	return colorful.Color{
		R: Mix(u.ColorA.R, u.ColorB.R, t),
		G: Mix(u.ColorA.G, u.ColorB.G, t),
		B: Mix(u.ColorA.B, u.ColorB.B, t),
	}
}
