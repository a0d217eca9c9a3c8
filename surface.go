package main

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	eb "github.com/hajimehoshi/ebiten/v2"

	"ribbons/frameloop"
	"ribbons/palette"
	"ribbons/ribbon"
)

var ErrNoShader = errors.New("ribbon shader is not loaded")

// EbitenSurface is the offscreen image ribbons are drawn into.
// It is blitted to the screen by App.Draw.
type EbitenSurface struct {
	Image *eb.Image

	width, height int

	// scratch buffers, the stored geometry is never written
	projected []mgl32.Vec2
	vertices  []eb.Vertex
	uniforms  map[string]any
}

func NewEbitenSurface() *EbitenSurface {
	return &EbitenSurface{
		uniforms: make(map[string]any),
	}
}

func (s *EbitenSurface) SetSize(width, height int) {
	if s.Image != nil {
		s.Image.Deallocate()
	}
	s.Image = eb.NewImage(width, height)
	s.width, s.height = width, height
}

func (s *EbitenSurface) Size() (int, int) {
	return s.width, s.height
}

func (s *EbitenSurface) Render(scene *ribbon.Scene, clock *frameloop.Clock) error {
	shader := TheShaderManager.Shader
	if shader == nil {
		return ErrNoShader
	}

	s.Image.Fill(palette.ToNRGBA(scene.Background))

	now := clock.Seconds()

	for _, r := range scene.Ribbons {
		s.projected = scene.Program.Project(r, now, s.projected)
		s.vertices = s.toVertices(r.Geometry, s.projected, s.vertices)

		s.uniforms["ColorA"] = palette.Uniform(r.Uniforms.ColorA)
		s.uniforms["ColorB"] = palette.Uniform(r.Uniforms.ColorB)

		DrawTrianglesShader(
			s.Image,
			s.vertices, r.Geometry.Index,
			shader,
			&DrawTrianglesShaderOptions{Uniforms: s.uniforms},
		)
	}

	return nil
}

// toVertices maps clip space positions to surface pixels and
// passes the ribbon uv to the fragment shader as the source position.
func (s *EbitenSurface) toVertices(
	g *ribbon.Geometry,
	clip []mgl32.Vec2,
	dst []eb.Vertex,
) []eb.Vertex {
	dst = dst[:0]

	for i, p := range clip {
		x, y := frameloop.ClipToPixel(p, s.width, s.height)
		dst = append(dst, eb.Vertex{
			DstX: x,
			DstY: y,
			SrcX: g.UV[i].X(),
			SrcY: g.UV[i].Y(),

			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		})
	}

	return dst
}
