package desktop

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/object"
)

// glowStrength is the opacity of a glow halo relative to its shape.
const glowStrength = 0.35

// shape is one recorded fill.
type shape struct {
	points    []draw.Point
	fill      colorful.Color
	alpha     float64
	glow      float64
	glowColor colorful.Color
}

// Surface records fills during a game frame and replays them onto an ebiten image in Draw.
// Game frames run in Update, so the recording decouples them from ebiten's draw pass.
type Surface struct {
	shapes []shape

	fill      colorful.Color
	alpha     float64
	glow      float64
	glowColor colorful.Color

	// Reusable triangulation buffers
	vertices []ebiten.Vertex
	indices  []uint16
}

var _ object.Surface = (*Surface)(nil)

// NewSurface creates an empty surface.
func NewSurface() *Surface {
	return &Surface{alpha: 1}
}

// Reset drops the recorded shapes and restores the default fill state.
func (s *Surface) Reset() {
	clear(s.shapes)
	s.shapes = s.shapes[:0]
	s.alpha = 1
	s.glow = 0
}

// Len returns the number of recorded shapes.
func (s *Surface) Len() int {
	return len(s.shapes)
}

func (s *Surface) SetFill(c colorful.Color) {
	s.fill = c
}

func (s *Surface) SetAlpha(a float64) {
	s.alpha = min(1, max(0, a))
}

func (s *Surface) SetGlow(blur float64, c colorful.Color) {
	s.glow = max(0, blur)
	s.glowColor = c
}

func (s *Surface) FillRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	s.add([]draw.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}})
}

func (s *Surface) FillPath(points []draw.Point) {
	if len(points) < 3 {
		return
	}
	s.add(slices.Clone(points))
}

func (s *Surface) add(points []draw.Point) {
	s.shapes = append(s.shapes, shape{
		points:    points,
		fill:      s.fill,
		alpha:     s.alpha,
		glow:      s.glow,
		glowColor: s.glowColor,
	})
}

// Draw replays the recorded shapes onto dst. white must be a 1x1 white image.
// A glowing shape is preceded by a faint enlarged copy in its glow colour.
func (s *Surface) Draw(dst, white *ebiten.Image) {
	for _, sh := range s.shapes {
		if sh.glow > 0 {
			halo := slices.Clone(sh.points)
			draw.Inflate(halo, sh.glow/2)
			s.fillPolygon(dst, white, halo, sh.glowColor, sh.alpha*glowStrength)
		}
		s.fillPolygon(dst, white, sh.points, sh.fill, sh.alpha)
	}
}

func (s *Surface) fillPolygon(dst, white *ebiten.Image, points []draw.Point, c colorful.Color, alpha float64) {
	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	s.vertices, s.indices = path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	c = c.Clamped()
	for i := range s.vertices {
		v := &s.vertices[i]
		v.SrcX, v.SrcY = 0, 0
		v.ColorR = float32(c.R)
		v.ColorG = float32(c.G)
		v.ColorB = float32(c.B)
		v.ColorA = float32(alpha)
	}
	dst.DrawTriangles(s.vertices, s.indices, white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
