package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// epsilon absorbs floating point noise when snapping logical edges to pixels.
const epsilon = 1e-9

// glowStrength is the opacity of the halo painted around glowing fills.
const glowStrength = 0.35

// Canvas is a colour drawing buffer with 2x vertical resolution using half-block characters.
// Game objects draw in logical coordinates; the canvas keeps the logical aspect ratio,
// scales it to the largest area that fits the terminal and centres it.
type Canvas struct {
	termWidth      int // Terminal columns available
	termHeight     int // Terminal rows available
	cols           int // Columns used by the scaled playfield
	rows           int // Rows used by the scaled playfield
	subPixelHeight int // rows * 2
	pixels         []colorful.Color

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scale         float64 // pixels per logical unit (same on both axes)

	// Offset for centering the render area. 0-based terminal columns/rows to skip.
	offsetCol int
	offsetRow int

	// Fill state, set through the Surface methods
	fill      colorful.Color
	alpha     float64
	glow      float64
	glowColor colorful.Color

	background colorful.Color
	profile    termenv.Profile
	fgSeq      map[uint32]string
	bgSeq      map[uint32]string
	rendered   []uint64 // Cell signatures of the last Render, for diffing

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	scaledBuf       []Point
	intersectionBuf []float64
	numBuf          [20]byte
}

// NewCanvas creates a canvas for the given terminal dimensions that maps
// logicalWidth x logicalHeight units onto it, emitting colours for profile.
func NewCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64, profile termenv.Profile) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		alpha:         1,
		profile:       profile,
		fgSeq:         make(map[uint32]string),
		bgSeq:         make(map[uint32]string),
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// Resizing forces a full redraw on the next Render.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth == c.termWidth && termHeight == c.termHeight && c.pixels != nil {
		return
	}
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)

	// Half-block sub-pixels are roughly square, so one scale serves both axes.
	c.scale = math.Min(float64(termWidth)/c.logicalWidth, float64(termHeight*2)/c.logicalHeight)
	c.cols = max(1, int(math.Round(c.logicalWidth*c.scale)))
	c.rows = max(1, int(math.Ceil(c.logicalHeight*c.scale/2-epsilon)))
	c.cols = min(c.cols, termWidth)
	c.rows = min(c.rows, termHeight)

	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = c.rows * 2
	c.pixels = make([]colorful.Color, c.subPixelHeight*c.cols)
	c.rendered = make([]uint64, c.rows*c.cols)
	c.offsetCol = (termWidth - c.cols) / 2
	c.offsetRow = (termHeight - c.rows) / 2
	c.ForceRedraw()
}

// ForceRedraw makes the next Render emit every cell, e.g. after the terminal was cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.rendered {
		c.rendered[i] = math.MaxUint64
	}
}

// SetBackground sets the colour the terminal itself shows behind the canvas.
// Cells matching it are left blank instead of being painted.
func (c *Canvas) SetBackground(col colorful.Color) {
	c.background = col
}

// Clear resets all pixels to the background colour.
func (c *Canvas) Clear() {
	for i := range c.pixels {
		c.pixels[i] = c.background
	}
}

// SetFill sets the colour used by subsequent fills.
func (c *Canvas) SetFill(col colorful.Color) {
	c.fill = col
}

// SetAlpha sets the opacity applied to subsequent fills.
func (c *Canvas) SetAlpha(a float64) {
	c.alpha = clamp01(a)
}

// SetGlow enables a halo around subsequent fills. A blur of 0 disables it.
func (c *Canvas) SetGlow(blur float64, col colorful.Color) {
	c.glow = blur
	c.glowColor = col
}

// FillRect fills a rectangle given in logical coordinates.
// Every rectangle covers at least one pixel so thin objects stay visible.
func (c *Canvas) FillRect(x, y, w, h float64) {
	x0, x1 := c.span(x, w)
	y0, y1 := c.span(y, h)

	if spread := c.glowSpread(); spread > 0 {
		c.fillPixelRect(x0-spread, y0-spread, x1+spread, y1+spread, c.glowColor, c.alpha*glowStrength)
	}
	c.fillPixelRect(x0, y0, x1, y1, c.fill, c.alpha)
}

// FillPath fills the closed polygon through points (logical coordinates).
func (c *Canvas) FillPath(points []Point) {
	if len(points) < 3 {
		return
	}

	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scale, Y: p.Y * c.scale}
	}

	if spread := c.glowSpread(); spread > 0 {
		halo := make([]Point, len(scaled))
		copy(halo, scaled)
		Inflate(halo, float64(spread))
		c.fillPolygon(halo, c.glowColor, c.alpha*glowStrength)
	}
	c.fillPolygon(scaled, c.fill, c.alpha)
}

// span converts a logical start/length into a half-open pixel range of at least one pixel.
func (c *Canvas) span(start, length float64) (int, int) {
	p0 := int(math.Floor(start*c.scale + epsilon))
	p1 := int(math.Ceil((start+length)*c.scale - epsilon))
	if p1 <= p0 {
		p1 = p0 + 1
	}
	return p0, p1
}

// glowSpread returns the halo width in pixels for the current glow.
func (c *Canvas) glowSpread() int {
	if c.glow <= 0 {
		return 0
	}
	return max(1, int(math.Round(c.glow*c.scale*0.5)))
}

// blend mixes col into the pixel at (x, y) with opacity a.
func (c *Canvas) blend(x, y int, col colorful.Color, a float64) {
	if x < 0 || x >= c.cols || y < 0 || y >= c.subPixelHeight {
		return
	}
	i := y*c.cols + x
	if a >= 1 {
		c.pixels[i] = col
		return
	}
	c.pixels[i] = c.pixels[i].BlendRgb(col, a)
}

// fillPixelRect fills the half-open pixel rectangle [x0,x1) x [y0,y1).
func (c *Canvas) fillPixelRect(x0, y0, x1, y1 int, col colorful.Color, a float64) {
	x0, x1 = max(x0, 0), min(x1, c.cols)
	y0, y1 = max(y0, 0), min(y1, c.subPixelHeight)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.blend(x, y, col, a)
		}
	}
}

// Inflate pushes every vertex away from the centroid by d units, in place.
func Inflate(points []Point, d float64) {
	var cx, cy float64
	for _, p := range points {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(points))
	cy /= float64(len(points))

	for i, p := range points {
		dx, dy := p.X-cx, p.Y-cy
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			continue
		}
		points[i] = Point{X: p.X + dx/dist*d, Y: p.Y + dy/dist*d}
	}
}

// fillPolygon fills a polygon given in pixel space using a scanline algorithm.
// Polygons narrower than a pixel still light the pixel under their centre.
func (c *Canvas) fillPolygon(points []Point, col colorful.Color, a float64) {
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))
	filled := false

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		n := len(points)
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i] - 0.5))
			xEnd := int(math.Floor(intersections[i+1] - 0.5))
			for x := xStart; x <= xEnd; x++ {
				c.blend(x, y, col, a)
				filled = true
			}
		}
	}

	if !filled {
		c.blend(int((minX+maxX)/2), int((minY+maxY)/2), col, a)
	}
}

// Render writes every cell that changed since the previous Render using half-block
// characters: the upper sub-pixel is the foreground, the lower one the background.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	lastRow, lastCol := -1, -1
	for row := 0; row < c.rows; row++ {
		topOffset := row * 2 * c.cols
		bottomOffset := topOffset + c.cols

		for col := 0; col < c.cols; col++ {
			top := packRGB(c.pixels[topOffset+col])
			bottom := packRGB(c.pixels[bottomOffset+col])
			sig := uint64(top)<<32 | uint64(bottom)

			cell := row*c.cols + col
			if c.rendered[cell] == sig {
				continue
			}
			c.rendered[cell] = sig

			if row != lastRow || col != lastCol+1 {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			lastRow, lastCol = row, col
			c.writeCell(top, bottom)
		}
	}

	if c.renderBuf.Len() == 0 {
		return nil
	}
	c.renderBuf.WriteString(termenv.CSI + termenv.ResetSeq + "m")

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// writeCell appends the glyph and colours for one terminal cell.
func (c *Canvas) writeCell(top, bottom uint32) {
	bg := packRGB(c.background)
	reset := termenv.CSI + termenv.ResetSeq + "m"

	if c.profile == termenv.Ascii {
		intensity := math.Max(luminance(top), luminance(bottom))
		if top == bg && bottom == bg {
			intensity = 0
		}
		c.renderBuf.WriteRune(ShadeLevel(intensity))
		return
	}

	switch {
	case top == bg && bottom == bg:
		c.renderBuf.WriteString(reset)
		c.renderBuf.WriteByte(' ')
	case bottom == bg:
		c.renderBuf.WriteString(reset)
		c.writeSGR(c.sequence(top, false))
		c.renderBuf.WriteRune(BlockUpperHalf)
	case top == bg:
		c.renderBuf.WriteString(reset)
		c.writeSGR(c.sequence(bottom, false))
		c.renderBuf.WriteRune(BlockLowerHalf)
	case top == bottom:
		c.renderBuf.WriteString(reset)
		c.writeSGR(c.sequence(top, false))
		c.renderBuf.WriteRune(BlockFull)
	default:
		c.writeSGR(c.sequence(top, false) + ";" + c.sequence(bottom, true))
		c.renderBuf.WriteRune(BlockUpperHalf)
	}
}

// sequence returns the SGR parameters selecting rgb as foreground or background,
// downgraded to the canvas colour profile.
func (c *Canvas) sequence(rgb uint32, background bool) string {
	cache := c.fgSeq
	if background {
		cache = c.bgSeq
	}
	if seq, ok := cache[rgb]; ok {
		return seq
	}
	hex := "#" + leftPad(strconv.FormatUint(uint64(rgb), 16), 6)
	seq := c.profile.Color(hex).Sequence(background)
	cache[rgb] = seq
	return seq
}

func (c *Canvas) writeSGR(params string) {
	if params == "" || params == ";" {
		return
	}
	c.renderBuf.WriteString(termenv.CSI)
	c.renderBuf.WriteString(params)
	c.renderBuf.WriteByte('m')
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString(termenv.CSI)
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// Pixel returns the colour of the sub-pixel at (x, y), for inspection and tests.
func (c *Canvas) Pixel(x, y int) colorful.Color {
	return c.pixels[y*c.cols+x]
}

// PixelSize returns the canvas size in sub-pixels.
func (c *Canvas) PixelSize() (int, int) {
	return c.cols, c.subPixelHeight
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// Bounds returns the 1-based terminal column/row of the canvas' top-left cell and its size in cells.
func (c *Canvas) Bounds() (col, row, cols, rows int) {
	return c.offsetCol + 1, c.offsetRow + 1, c.cols, c.rows
}

// packRGB quantises a colour to 0xRRGGBB.
func packRGB(col colorful.Color) uint32 {
	r, g, b := col.Clamped().RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// luminance returns the relative brightness (0..1) of a packed colour.
func luminance(rgb uint32) float64 {
	r := float64(rgb>>16&0xff) / 255
	g := float64(rgb>>8&0xff) / 255
	b := float64(rgb&0xff) / 255
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func leftPad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}
