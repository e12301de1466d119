// Package mapview drives the map widget shown next to the search form.
package mapview

// LatLng is a position on the map widget.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LayerSet names a base tile layer.
type LayerSet string

// LayerNormal is the default street map layer.
const LayerNormal LayerSet = "normal"

// Control names an on-map UI control.
type Control string

// ControlSliderZoomVertical is the vertical zoom slider.
const ControlSliderZoomVertical Control = "slider_zoom_vertical"

// Label is a text marker placed on the feature layer.
type Label struct {
	Position LatLng `json:"position"`
	Text     string `json:"text"`
}

// Widget is the command set of the map widget. Its state is owned by the implementation.
type Widget interface {
	DrawMap(center LatLng, zoom int, layer LayerSet)
	AddControl(control Control)
	AddFeature(label Label)
}
