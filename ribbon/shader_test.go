package ribbon

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

func nearVec2(a, b mgl32.Vec2, tol float32) bool {
	return mgl32.Abs(a[0]-b[0]) <= tol && mgl32.Abs(a[1]-b[1]) <= tol
}

func nearVec3(a, b mgl32.Vec3, tol float32) bool {
	return nearVec2(a.Vec2(), b.Vec2(), tol) && mgl32.Abs(a[2]-b[2]) <= tol
}

func TestMix(t *testing.T) {
	a, b := 0.1, 0.7
	if Mix(a, b, 0) != a {
		t.Fatalf("Mix at 0: got %v want %v", Mix(a, b, 0), a)
	}
	if Mix(a, b, 1) != b {
		t.Fatalf("Mix at 1: got %v want %v", Mix(a, b, 1), b)
	}
	if Clamp(5, 0, 3) != 3 || Clamp(-1.5, 0, 1) != 0 {
		t.Fatal("Clamp did not clamp")
	}
}

func TestFragmentInterpolatesColors(t *testing.T) {
	p := NewProgram(0, 1)
	u := &Uniforms{
		ColorA: colorful.Color{R: 0.9, G: 0.3, B: 0.55},
		ColorB: colorful.Color{R: 0.2, G: 0.8, B: 0.1},
	}

	if got := p.Fragment(u, mgl32.Vec2{0, 0.4}); got != u.ColorA {
		t.Fatalf("uv.x=0: got %v want %v", got, u.ColorA)
	}
	if got := p.Fragment(u, mgl32.Vec2{1, 0.4}); got != u.ColorB {
		t.Fatalf("uv.x=1: got %v want %v", got, u.ColorB)
	}

	mid := p.Fragment(u, mgl32.Vec2{0.5, 0})
	want := colorful.Color{
		R: (u.ColorA.R + u.ColorB.R) / 2,
		G: (u.ColorA.G + u.ColorB.G) / 2,
		B: (u.ColorA.B + u.ColorB.B) / 2,
	}
	if math.Abs(mid.R-want.R) > 1e-12 || math.Abs(mid.G-want.G) > 1e-12 || math.Abs(mid.B-want.B) > 1e-12 {
		t.Fatalf("uv.x=0.5: got %v want %v", mid, want)
	}
}

func TestWaveAtTimeZeroIsPhase(t *testing.T) {
	p := NewProgram(0, 0.1)
	u := &Uniforms{
		Freq1:  mgl32.Vec3{0.3, -0.2, 0.9},
		Phase1: mgl32.Vec3{0, math.Pi, 0.5},
		Phase2: mgl32.Vec3{0.25, 0, -1},
	}

	w := p.Wave(u, 0)
	want := Wave{
		A: mgl32.Vec3{1, -1, float32(math.Cos(0.5))},
		B: mgl32.Vec3{float32(math.Cos(0.25)), 1, float32(math.Cos(-1))},
	}
	if !nearVec3(w.A, want.A, 1e-6) || !nearVec3(w.B, want.B, 1e-6) {
		t.Fatalf("unexpected wave: got %v want %v", w, want)
	}
}

func TestVertexWithoutWeightsIsRotatedOffset(t *testing.T) {
	p := NewProgram(0, 1)
	u := &Uniforms{Size: 0.1}
	w := p.Wave(u, 3)

	pos := mgl32.Vec3{0.2, -0.4, 0}

	left := p.Vertex(u, w, pos, -1)
	right := p.Vertex(u, w, pos, 1)

	wantLeft := mgl32.Vec2{0.3 + 0.15, -0.6}
	wantRight := mgl32.Vec2{0.3 - 0.15, -0.6}
	if !nearVec2(left, wantLeft, 1e-6) {
		t.Fatalf("left edge: got %v want %v", left, wantLeft)
	}
	if !nearVec2(right, wantRight, 1e-6) {
		t.Fatalf("right edge: got %v want %v", right, wantRight)
	}
}

func TestVertexAppliesRotation(t *testing.T) {
	p := NewProgram(math.Pi/2, 1)
	u := &Uniforms{}
	w := p.Wave(u, 0)

	got := p.Vertex(u, w, mgl32.Vec3{1, 0, 0}, 1)
	want := mgl32.Vec2{0, 1.5}
	if !nearVec2(got, want, 1e-6) {
		t.Fatalf("unexpected rotated vertex: got %v want %v", got, want)
	}
}

func TestVertexWidthStaysInBounds(t *testing.T) {
	p := NewProgram(math.Pi/3, 0.1)
	u := &Uniforms{
		Size:    0.05,
		Freq1:   mgl32.Vec3{0.4, -0.8, 0.1},
		Freq2:   mgl32.Vec3{-0.3, 0.6, 0.9},
		Phase1:  mgl32.Vec3{0.2, 0.1, -0.7},
		Phase2:  mgl32.Vec3{-0.5, 0.3, 0.8},
		Weights: mgl32.Vec3{0.3, 0.4, 0.5},
	}

	maxFactor := 1 + 2*(u.Weights[0]+u.Weights[1]+u.Weights[2])
	base := Spread * u.Size

	for step := range 50 {
		now := float64(step) * 0.37
		w := p.Wave(u, now)
		for j := range 20 {
			pos := mgl32.Vec3{0.1, 1 - float32(j)*0.1, 0}
			left := p.Vertex(u, w, pos, -1)
			right := p.Vertex(u, w, pos, 1)

			half := left.Sub(right).Len() / 2
			if half < base*(1-1e-4) || half > base*maxFactor*(1+1e-4) {
				t.Fatalf("t=%v y=%v: half width %v outside [%v, %v]", now, pos.Y(), half, base, base*maxFactor)
			}
		}
	}
}

func TestProjectLeavesGeometryUntouched(t *testing.T) {
	g, err := NewGeometry(ColumnPoints(4, 16, 1))
	if err != nil {
		t.Fatalf("NewGeometry returned error: %v", err)
	}
	r := &Ribbon{
		Geometry: g,
		Uniforms: Uniforms{
			Size:    0.3,
			Freq1:   mgl32.Vec3{0.9, 0.8, 0.7},
			Freq2:   mgl32.Vec3{-0.6, 0.5, -0.4},
			Weights: mgl32.Vec3{0.3, 0.4, 0.5},
		},
	}
	before := append([]mgl32.Vec3(nil), g.Position...)

	p := NewProgram(math.Pi/3, 1)
	first := p.Project(r, 0, nil)
	firstCopy := append([]mgl32.Vec2(nil), first...)
	second := p.Project(r, 4, first)

	if len(second) != g.VertexCount() {
		t.Fatalf("unexpected projected length: %d", len(second))
	}
	if &second[0] != &first[0] {
		t.Fatal("expected Project to reuse dst storage")
	}

	moved := false
	for i := range second {
		if second[i] != firstCopy[i] {
			moved = true
			break
		}
	}
	if !moved {
		t.Fatal("expected vertices to move between times")
	}

	for i := range before {
		if g.Position[i] != before[i] {
			t.Fatalf("position %d changed: %v -> %v", i, before[i], g.Position[i])
		}
	}
}

func TestFragmentClampsLikeKage(t *testing.T) {
	p := NewProgram(0, 1)
	u := &Uniforms{
		ColorA: colorful.Color{R: 0.1, G: 0.2, B: 0.3},
		ColorB: colorful.Color{R: 0.7, G: 0.6, B: 0.5},
	}

	if got := p.Fragment(u, mgl32.Vec2{-0.25, 0}); got != u.ColorA {
		t.Fatalf("uv.x<0: got %v want %v", got, u.ColorA)
	}
	if got := p.Fragment(u, mgl32.Vec2{1.25, 0}); got != u.ColorB {
		t.Fatalf("uv.x>1: got %v want %v", got, u.ColorB)
	}
}
