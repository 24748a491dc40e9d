package document

import (
	"fmt"
	"strings"
)

// PlacementMode selects how the stamp position is derived.
type PlacementMode string

const (
	// PlacementInteractive places the asset from a fractional position
	// captured on a scaled preview of a reference page.
	PlacementInteractive PlacementMode = "interactive"
	// PlacementCorner pins the asset to a page corner with a fixed margin,
	// recomputed from each target page's own size.
	PlacementCorner PlacementMode = "corner"
)

// Corner identifies a page corner for fixed placement.
type Corner string

const (
	TopLeft     Corner = "top-left"
	TopRight    Corner = "top-right"
	BottomLeft  Corner = "bottom-left"
	BottomRight Corner = "bottom-right"
)

// ParseCorner validates a wire-format corner name.
func ParseCorner(s string) (Corner, error) {
	switch Corner(strings.ToLower(strings.TrimSpace(s))) {
	case TopLeft:
		return TopLeft, nil
	case TopRight:
		return TopRight, nil
	case BottomLeft:
		return BottomLeft, nil
	case BottomRight:
		return BottomRight, nil
	}
	return "", fmt.Errorf("unknown corner %q", s)
}

// TargetRule selects which pages of a document receive the stamp.
type TargetRule string

const (
	TargetAll   TargetRule = "all"
	TargetFirst TargetRule = "first"
	TargetLast  TargetRule = "last"
)

// ParseTargetRule validates a wire-format page-selection rule.
func ParseTargetRule(s string) (TargetRule, error) {
	switch TargetRule(strings.ToLower(strings.TrimSpace(s))) {
	case TargetAll, "":
		return TargetAll, nil
	case TargetFirst:
		return TargetFirst, nil
	case TargetLast:
		return TargetLast, nil
	}
	return "", fmt.Errorf("unknown page rule %q", s)
}

// Pages resolves the rule against a document's page count, returning
// 0-based indices. First and Last are no-ops on empty documents. This
// selection is independent of the merge selection: a page deselected for
// merging can still receive a stamp.
func (r TargetRule) Pages(pageCount int) []int {
	if pageCount <= 0 {
		return nil
	}
	switch r {
	case TargetFirst:
		return []int{0}
	case TargetLast:
		return []int{pageCount - 1}
	default:
		out := make([]int, pageCount)
		for i := range out {
			out[i] = i
		}
		return out
	}
}

// Rect is a draw rectangle in page space: point units, origin bottom-left,
// y-axis up.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Placement is a committed stamp position. Interactive mode carries the
// fractional position of the asset's top-left corner in preview space
// (y-down); corner mode carries the corner and margin. Scale applies in
// both modes: it converts asset pixels to page points uniformly across all
// target pages, so the asset keeps its size relative to the reference
// preview, not relative to each target page.
type Placement struct {
	Mode PlacementMode `json:"mode"`

	FX    float64 `json:"fx"`    // interactive: x / previewWidth
	FY    float64 `json:"fy"`    // interactive: y / previewHeight
	Scale float64 `json:"scale"` // page points per asset pixel

	Corner Corner     `json:"corner,omitempty"`
	Margin float64    `json:"margin,omitempty"` // points
	Pages  TargetRule `json:"pages"`
}

// Footprint returns the asset's draw size in page points.
func (p Placement) Footprint(asset *SignatureAsset) (aw, ah float64) {
	s := p.Scale
	if s <= 0 {
		s = 1
	}
	return float64(asset.Width) * s, float64(asset.Height) * s
}

// PlaceOn maps the placement onto one target page of size (pageW, pageH),
// producing the draw rectangle in that page's own coordinate space.
//
// Interactive mode flips the y-down preview fraction into the y-up page
// axis: px = fx*W, py = H - fy*H - ah. The fraction locates the asset's
// top-left corner, so subtracting the footprint height lands the
// rectangle's bottom-left where the container encoder expects it. No
// clamping happens here; the capture step already kept the footprint
// inside the preview.
func (p Placement) PlaceOn(pageW, pageH float64, asset *SignatureAsset) Rect {
	aw, ah := p.Footprint(asset)
	if p.Mode == PlacementCorner {
		m := p.Margin
		var x, y float64
		switch p.Corner {
		case TopLeft:
			x, y = m, pageH-ah-m
		case TopRight:
			x, y = pageW-aw-m, pageH-ah-m
		case BottomRight:
			x, y = pageW-aw-m, m
		default: // BottomLeft
			x, y = m, m
		}
		return Rect{X: x, Y: y, W: aw, H: ah}
	}
	return Rect{
		X: p.FX * pageW,
		Y: pageH - p.FY*pageH - ah,
		W: aw,
		H: ah,
	}
}

// PreviewCapture is a drag position in preview space: pixels, origin
// top-left, y-axis down, for a preview render of Width x Height.
type PreviewCapture struct {
	X, Y          float64
	Width, Height float64
}

// Clamp constrains the capture so the full asset footprint (in preview
// pixels) stays inside the preview. Applied during capture only; the
// mapped page-space rectangle is never re-clamped.
func (c PreviewCapture) Clamp(footprintW, footprintH float64) PreviewCapture {
	out := c
	maxX := c.Width - footprintW
	maxY := c.Height - footprintH
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	if out.X < 0 {
		out.X = 0
	}
	if out.Y < 0 {
		out.Y = 0
	}
	if out.X > maxX {
		out.X = maxX
	}
	if out.Y > maxY {
		out.Y = maxY
	}
	return out
}

// Fractions converts the capture into the preview-relative fractions an
// interactive Placement carries.
func (c PreviewCapture) Fractions() (fx, fy float64) {
	if c.Width <= 0 || c.Height <= 0 {
		return 0, 0
	}
	return c.X / c.Width, c.Y / c.Height
}
