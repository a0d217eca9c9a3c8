package ribbon

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"ribbons/config"
)

var (
	ErrTooFewPoints  = errors.New("ribbon: a ribbon needs at least 2 points")
	ErrTooManyPoints = fmt.Errorf("ribbon: a ribbon can have at most %d points", MaxPoints)
)

// MaxPoints keeps every vertex addressable by a uint16 index.
const MaxPoints = config.MaxPointsPerRibbon

// Geometry is a thick line strip built from an ordered point sequence.
//
// Every point is stored twice, once per edge of the strip:
//
//	0 --- 1        side -1 --- side +1
//	| \   |        uv.x 0      uv.x 1
//	|   \ |
//	2 --- 3
//
// Buffers are filled once and never written again.
type Geometry struct {
	Position []mgl32.Vec3
	Prev     []mgl32.Vec3
	Next     []mgl32.Vec3
	Side     []float32
	UV       []mgl32.Vec2
	Index    []uint16
}

func NewGeometry(points []mgl32.Vec3) (*Geometry, error) {
	count := len(points)
	if count < 2 {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewPoints, count)
	}
	if count > MaxPoints {
		return nil, fmt.Errorf("%w, got %d", ErrTooManyPoints, count)
	}

	g := &Geometry{
		Position: make([]mgl32.Vec3, count*2),
		Prev:     make([]mgl32.Vec3, count*2),
		Next:     make([]mgl32.Vec3, count*2),
		Side:     make([]float32, count*2),
		UV:       make([]mgl32.Vec2, count*2),
		Index:    make([]uint16, (count-1)*6),
	}

	last := count - 1

	for i, p := range points {
		i2 := i * 2

		g.Position[i2] = p
		g.Position[i2+1] = p

		g.Side[i2] = -1
		g.Side[i2+1] = 1

		v := float32(i) / float32(last)
		g.UV[i2] = mgl32.Vec2{0, v}
		g.UV[i2+1] = mgl32.Vec2{1, v}

		// open ends extrapolate the neighbour through the end point
		var prev, next mgl32.Vec3
		if i == 0 {
			prev = p.Sub(points[1]).Add(p)
		} else {
			prev = points[i-1]
		}
		if i == last {
			next = p.Sub(points[last-1]).Add(p)
		} else {
			next = points[i+1]
		}

		g.Prev[i2], g.Prev[i2+1] = prev, prev
		g.Next[i2], g.Next[i2+1] = next, next

		if i == last {
			continue
		}

		a := uint16(i2)
		tri := g.Index[i*6 : i*6+6]
		tri[0], tri[1], tri[2] = a, a+1, a+2
		tri[3], tri[4], tri[5] = a+2, a+1, a+3
	}

	return g, nil
}

func (g *Geometry) VertexCount() int {
	return len(g.Position)
}

func (g *Geometry) Segments() int {
	return len(g.Index) / 6
}

func (g *Geometry) Triangles() int {
	return len(g.Index) / 3
}
