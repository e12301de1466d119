package mapview

import "github.com/UnknownOlympus/compass/internal/models"

// ZoomLevel is the zoom used whenever the map is centered.
const ZoomLevel = 17

// Home is where the map is centered before the first search.
var Home = models.Coordinates{Latitude: 35.68227528, Longitude: 139.73310240}

// Controller issues imperative commands to a map widget.
type Controller struct {
	widget Widget
}

// NewController wraps the given widget.
func NewController(widget Widget) *Controller {
	return &Controller{widget: widget}
}

// Init draws the map at home and adds the zoom slider.
func (c *Controller) Init(home models.Coordinates) {
	c.Recenter(home)
	c.widget.AddControl(ControlSliderZoomVertical)
}

// Recenter centers the map on coords with the fixed zoom level and base layer.
func (c *Controller) Recenter(coords models.Coordinates) {
	c.widget.DrawMap(toLatLng(coords), ZoomLevel, LayerNormal)
}

// PlaceLabel adds a text marker at coords.
func (c *Controller) PlaceLabel(coords models.Coordinates, text string) {
	c.widget.AddFeature(Label{Position: toLatLng(coords), Text: text})
}

func toLatLng(coords models.Coordinates) LatLng {
	return LatLng{Lat: coords.Latitude, Lng: coords.Longitude}
}
