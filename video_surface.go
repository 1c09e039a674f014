// video_surface.go - Software drawing surface backing the script canvas

package main

// Color is an opaque RGB draw color; the surface always writes full alpha.
type Color struct {
	R, G, B uint8
}

// Surface is the CPU-side canvas the bridged drawing operations paint
// into. Present hands its raw RGBA buffer to the video backend.
type Surface struct {
	width     int
	height    int
	pix       []byte
	drawColor Color
}

func NewSurface(width, height int) *Surface {
	return &Surface{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*4),
	}
}

func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Pixels returns the backing RGBA buffer, row-major, 4 bytes per pixel.
func (s *Surface) Pixels() []byte {
	return s.pix
}

func (s *Surface) SetDrawColor(c Color) {
	s.drawColor = c
}

func (s *Surface) DrawColor() Color {
	return s.drawColor
}

// Clear fills the whole surface with the current draw color.
func (s *Surface) Clear() {
	for i := 0; i < len(s.pix); i += 4 {
		s.pix[i] = s.drawColor.R
		s.pix[i+1] = s.drawColor.G
		s.pix[i+2] = s.drawColor.B
		s.pix[i+3] = 0xFF
	}
}

// setPixel clips silently; geometry partially off the surface is legal.
func (s *Surface) setPixel(x, y int) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	i := (y*s.width + x) * 4
	s.pix[i] = s.drawColor.R
	s.pix[i+1] = s.drawColor.G
	s.pix[i+2] = s.drawColor.B
	s.pix[i+3] = 0xFF
}

func (s *Surface) DrawPoint(x, y int) {
	s.setPixel(x, y)
}

func checkRect(op string, w, h int) error {
	if w < 0 {
		return validationError(op, "negative rectangle width: %d", w)
	}
	if h < 0 {
		return validationError(op, "negative rectangle height: %d", h)
	}
	return nil
}

// FillRect paints a solid axis-aligned rectangle. Zero width or height
// paints nothing; negative magnitudes are a validation error.
func (s *Surface) FillRect(x, y, w, h int) error {
	if err := checkRect("fill_rect", w, h); err != nil {
		return err
	}
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			s.setPixel(px, py)
		}
	}
	return nil
}

// DrawRect paints the one-pixel outline of an axis-aligned rectangle.
func (s *Surface) DrawRect(x, y, w, h int) error {
	if err := checkRect("draw_rect", w, h); err != nil {
		return err
	}
	if w == 0 || h == 0 {
		return nil
	}
	for px := x; px < x+w; px++ {
		s.setPixel(px, y)
		s.setPixel(px, y+h-1)
	}
	for py := y; py < y+h; py++ {
		s.setPixel(x, py)
		s.setPixel(x+w-1, py)
	}
	return nil
}

// DrawLine rasterizes with Bresenham's algorithm, endpoints inclusive.
func (s *Surface) DrawLine(x1, y1, x2, y2 int) {
	dx := x2 - x1
	if dx < 0 {
		dx = -dx
	}
	dy := y2 - y1
	if dy < 0 {
		dy = -dy
	}
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	x, y := x1, y1
	for {
		s.setPixel(x, y)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// At reports the stored color of one pixel; out-of-range reads are black.
func (s *Surface) At(x, y int) Color {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return Color{}
	}
	i := (y*s.width + x) * 4
	return Color{R: s.pix[i], G: s.pix[i+1], B: s.pix[i+2]}
}
