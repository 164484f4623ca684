// Package camera provides a 2D viewport into a bounded grid: pan and
// zoom with the camera center clamped so the view never travels past
// the grid's edges.
package camera

// Camera controls the viewport into the simulation grid.
type Camera struct {
	// X, Y is the camera center in grid coordinates.
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification).
	Zoom float32

	// ViewportW, ViewportH are the screen dimensions.
	ViewportW, ViewportH float32

	// GridW, GridH are the simulation grid dimensions, in cells.
	GridW, GridH float32

	// MinZoom, MaxZoom bound the zoom level.
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the grid at 1:1 zoom.
func New(viewportW, viewportH, gridW, gridH float32) *Camera {
	minZoomX := viewportW / gridW
	minZoomY := viewportH / gridH
	minZoom := minZoomX
	if minZoomY > minZoom {
		minZoom = minZoomY
	}

	c := &Camera{
		X:         gridW / 2,
		Y:         gridH / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		GridW:     gridW,
		GridH:     gridH,
		MinZoom:   minZoom,
		MaxZoom:   8.0,
	}
	c.clampPosition()
	return c
}

// WorldToScreen converts grid coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to grid coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	minZoomX := viewportW / c.GridW
	minZoomY := viewportH / c.GridH
	c.MinZoom = minZoomX
	if minZoomY > c.MinZoom {
		c.MinZoom = minZoomY
	}
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	c.clampPosition()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampPosition()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampPosition()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.GridW / 2
	c.Y = c.GridH / 2
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the grid-coordinate bounds of the visible
// area, clamped to the grid's own extent.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = clamp(c.X-halfW, 0, c.GridW)
	maxX = clamp(c.X+halfW, 0, c.GridW)
	minY = clamp(c.Y-halfH, 0, c.GridH)
	maxY = clamp(c.Y+halfH, 0, c.GridH)
	return
}

// clampPosition keeps the camera center from panning the viewport
// past the grid's edges while the view is smaller than the grid; when
// the view spans the whole grid on an axis, it centers on that axis.
func (c *Camera) clampPosition() {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	if halfW*2 >= c.GridW {
		c.X = c.GridW / 2
	} else {
		c.X = clamp(c.X, halfW, c.GridW-halfW)
	}
	if halfH*2 >= c.GridH {
		c.Y = c.GridH / 2
	} else {
		c.Y = clamp(c.Y, halfH, c.GridH-halfH)
	}
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
