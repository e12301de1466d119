package mapview

import (
	"math"
	"slices"
	"sync"
)

// View is a snapshot of the canvas, rendered by the browser.
type View struct {
	Ready    bool      `json:"ready"`
	Center   LatLng    `json:"center"`
	Zoom     int       `json:"zoom"`
	Layer    LayerSet  `json:"layer"`
	Controls []Control `json:"controls"`
	Labels   []Label   `json:"labels"`
}

// Canvas is an in-memory Widget. It is safe for concurrent use.
//
// Positions that are not finite are dropped: the zoom and layer of such a
// DrawMap still apply, the center does not, and such labels are not stored.
type Canvas struct {
	mu   sync.RWMutex
	view View
}

// NewCanvas returns an empty, not yet drawn canvas.
func NewCanvas() *Canvas {
	return &Canvas{view: View{Controls: []Control{}, Labels: []Label{}}}
}

// DrawMap implements Widget.
func (c *Canvas) DrawMap(center LatLng, zoom int, layer LayerSet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if isFinite(center) {
		c.view.Center = center
	}
	c.view.Zoom = zoom
	c.view.Layer = layer
	c.view.Ready = true
}

// AddControl implements Widget. Adding the same control twice is a no-op.
func (c *Canvas) AddControl(control Control) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !slices.Contains(c.view.Controls, control) {
		c.view.Controls = append(c.view.Controls, control)
	}
}

// AddFeature implements Widget.
func (c *Canvas) AddFeature(label Label) {
	if !isFinite(label.Position) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.view.Labels = append(c.view.Labels, label)
}

// View returns a copy of the current state.
func (c *Canvas) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	view := c.view
	view.Controls = slices.Clone(c.view.Controls)
	view.Labels = slices.Clone(c.view.Labels)

	return view
}

// Ready reports whether the map has been drawn at least once.
func (c *Canvas) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.view.Ready
}

func isFinite(pos LatLng) bool {
	return !math.IsNaN(pos.Lat) && !math.IsNaN(pos.Lng) && !math.IsInf(pos.Lat, 0) && !math.IsInf(pos.Lng, 0)
}
