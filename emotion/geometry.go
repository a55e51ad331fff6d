package emotion

import "sync"

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Geometry maps face bounds from the reference frame the inference service sees
// to the live display size of the video. The display size starts equal to the
// reference size and is updated once the stream reports its real dimensions.
type Geometry struct {
	reference Size

	mu      sync.RWMutex
	display Size
}

func NewGeometry(reference Size) *Geometry {
	return &Geometry{reference: reference, display: reference}
}

func (g *Geometry) Reference() Size { return g.reference }

func (g *Geometry) Display() Size {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.display
}

// SetDisplay records the intrinsic size of the displayed video.
func (g *Geometry) SetDisplay(s Size) {
	g.mu.Lock()
	g.display = s
	g.mu.Unlock()
}

// Scale returns displayWidth/referenceWidth and displayHeight/referenceHeight.
// A zero reference dimension scales by 1.
func (g *Geometry) Scale() (sx, sy float64) {
	d := g.Display()
	sx, sy = 1, 1
	if g.reference.Width != 0 {
		sx = d.Width / g.reference.Width
	}
	if g.reference.Height != 0 {
		sy = d.Height / g.reference.Height
	}
	return sx, sy
}

// Rescale converts reference-space bounds into display space.
func (g *Geometry) Rescale(b FaceBounds) FaceBounds {
	sx, sy := g.Scale()
	return FaceBounds{b.X() * sx, b.Y() * sy, b.Width() * sx, b.Height() * sy}
}
