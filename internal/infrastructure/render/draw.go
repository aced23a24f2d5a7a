package render

// Low-level ink drawing primitives used by the canvas element
// renderer. All of them clip silently at the raster edges.

func fillRect(r *Raster, x, y, width, height int) {
	for yy := y; yy < y+height; yy++ {
		for xx := x; xx < x+width; xx++ {
			r.SetInk(xx, yy)
		}
	}
}

// clearRect paints the rectangle with the opposite of the ink color
func clearRect(r *Raster, x, y, width, height int) {
	white := r.ink.Y < 128
	for yy := y; yy < y+height; yy++ {
		for xx := x; xx < x+width; xx++ {
			if xx < 0 || yy < 0 || xx >= r.width || yy >= r.height {
				continue
			}
			r.setBit(xx, yy, white)
		}
	}
}

func rectOutline(r *Raster, x, y, width, height int) {
	if width < 1 || height < 1 {
		return
	}
	for xx := x; xx < x+width; xx++ {
		r.SetInk(xx, y)
		r.SetInk(xx, y+height-1)
	}
	for yy := y; yy < y+height; yy++ {
		r.SetInk(x, yy)
		r.SetInk(x+width-1, yy)
	}
}

func horizontalLine(r *Raster, x, y, length int) {
	for xx := x; xx < x+length; xx++ {
		r.SetInk(xx, y)
	}
}

func verticalLine(r *Raster, x, y, length int) {
	for yy := y; yy < y+length; yy++ {
		r.SetInk(x, yy)
	}
}

// drawLine draws a straight segment using Bresenham's algorithm
func drawLine(r *Raster, x1, y1, x2, y2 int) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy
	for {
		r.SetInk(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

// circleOutline draws a circle inscribed in the square at (x, y) with
// the given side length, using the midpoint algorithm.
func circleOutline(r *Raster, x, y, side int) {
	radius := side / 2
	if radius < 1 {
		r.SetInk(x, y)
		return
	}
	cx, cy := x+radius, y+radius

	px, py := radius, 0
	err := 1 - radius
	for px >= py {
		r.SetInk(cx+px, cy+py)
		r.SetInk(cx+py, cy+px)
		r.SetInk(cx-py, cy+px)
		r.SetInk(cx-px, cy+py)
		r.SetInk(cx-px, cy-py)
		r.SetInk(cx-py, cy-px)
		r.SetInk(cx+py, cy-px)
		r.SetInk(cx+px, cy-py)
		py++
		if err < 0 {
			err += 2*py + 1
		} else {
			px--
			err += 2*(py-px) + 1
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
