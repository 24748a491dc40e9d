package document

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPlaceOnInteractive(t *testing.T) {
	asset := &SignatureAsset{Width: 100, Height: 50}
	p := Placement{Mode: PlacementInteractive, FX: 0.25, FY: 0.5, Scale: 0.5}

	r := p.PlaceOn(600, 800, asset)
	if !approx(r.W, 50) || !approx(r.H, 25) {
		t.Fatalf("footprint: got %vx%v, want 50x25", r.W, r.H)
	}
	// fx picks the x directly; fy flips from the y-down preview axis and
	// lands the rectangle's bottom edge.
	if !approx(r.X, 150) {
		t.Errorf("X: got %v, want 150", r.X)
	}
	if !approx(r.Y, 800-400-25) {
		t.Errorf("Y: got %v, want 375", r.Y)
	}
}

func TestPlaceOnInteractiveEdges(t *testing.T) {
	asset := &SignatureAsset{Width: 100, Height: 50}

	// Top-left of the preview puts the asset's top edge at the page top.
	top := Placement{Mode: PlacementInteractive, FX: 0, FY: 0, Scale: 1}.PlaceOn(600, 800, asset)
	if !approx(top.X, 0) || !approx(top.Y, 750) {
		t.Errorf("top-left: got (%v, %v), want (0, 750)", top.X, top.Y)
	}

	// A capture clamped to the preview's bottom maps the asset's bottom
	// edge to y=0.
	fy := (800.0 - 50.0) / 800.0
	bottom := Placement{Mode: PlacementInteractive, FX: 0, FY: fy, Scale: 1}.PlaceOn(600, 800, asset)
	if !approx(bottom.Y, 0) {
		t.Errorf("bottom: got Y=%v, want 0", bottom.Y)
	}
}

func TestPlaceOnCentering(t *testing.T) {
	asset := &SignatureAsset{Width: 120, Height: 40}
	pages := []struct{ w, h float64 }{
		{600, 800},
		{300, 1200},
		{841.89, 595.28},
	}
	for _, pg := range pages {
		aw, ah := float64(asset.Width), float64(asset.Height)
		// A capture centered on the preview is taken pre-offset by half the
		// footprint, so the committed fraction locates the top-left corner.
		fx := (pg.w/2 - aw/2) / pg.w
		fy := (pg.h/2 - ah/2) / pg.h

		r := Placement{Mode: PlacementInteractive, FX: fx, FY: fy, Scale: 1}.PlaceOn(pg.w, pg.h, asset)
		if !approx(r.X+r.W/2, pg.w/2) {
			t.Errorf("page %vx%v: x center %v, want %v", pg.w, pg.h, r.X+r.W/2, pg.w/2)
		}
		if !approx(r.Y+r.H/2, pg.h/2) {
			t.Errorf("page %vx%v: y center %v, want %v", pg.w, pg.h, r.Y+r.H/2, pg.h/2)
		}
	}
}

func TestPlaceOnCorners(t *testing.T) {
	asset := &SignatureAsset{Width: 100, Height: 50}
	cases := []struct {
		corner Corner
		x, y   float64
	}{
		{TopLeft, 10, 740},
		{TopRight, 490, 740},
		{BottomLeft, 10, 10},
		{BottomRight, 490, 10},
	}
	for _, tc := range cases {
		p := Placement{Mode: PlacementCorner, Corner: tc.corner, Margin: 10, Scale: 1}
		r := p.PlaceOn(600, 800, asset)
		if !approx(r.X, tc.x) || !approx(r.Y, tc.y) {
			t.Errorf("%s: got (%v, %v), want (%v, %v)", tc.corner, r.X, r.Y, tc.x, tc.y)
		}
	}
}

func TestPlaceOnCornerPerPage(t *testing.T) {
	asset := &SignatureAsset{Width: 100, Height: 50}
	p := Placement{Mode: PlacementCorner, Corner: BottomRight, Margin: 20, Scale: 1}

	small := p.PlaceOn(400, 600, asset)
	large := p.PlaceOn(1000, 600, asset)
	if !approx(small.X, 280) || !approx(large.X, 880) {
		t.Errorf("corner must be recomputed per page: got %v and %v", small.X, large.X)
	}
}

func TestFootprintDefaultScale(t *testing.T) {
	asset := &SignatureAsset{Width: 80, Height: 30}
	for _, scale := range []float64{0, -1} {
		aw, ah := Placement{Scale: scale}.Footprint(asset)
		if !approx(aw, 80) || !approx(ah, 30) {
			t.Errorf("scale %v: got %vx%v, want natural size", scale, aw, ah)
		}
	}
}

func TestTargetRulePages(t *testing.T) {
	if got := TargetAll.Pages(3); len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("all: got %v", got)
	}
	if got := TargetFirst.Pages(3); len(got) != 1 || got[0] != 0 {
		t.Errorf("first: got %v", got)
	}
	if got := TargetLast.Pages(3); len(got) != 1 || got[0] != 2 {
		t.Errorf("last: got %v", got)
	}
	for _, rule := range []TargetRule{TargetAll, TargetFirst, TargetLast} {
		if got := rule.Pages(0); got != nil {
			t.Errorf("%s on empty document: got %v, want nil", rule, got)
		}
	}
}

func TestParseTargetRule(t *testing.T) {
	for in, want := range map[string]TargetRule{
		"all": TargetAll, "First": TargetFirst, " LAST ": TargetLast, "": TargetAll,
	} {
		got, err := ParseTargetRule(in)
		if err != nil || got != want {
			t.Errorf("ParseTargetRule(%q): got %v, %v", in, got, err)
		}
	}
	if _, err := ParseTargetRule("middle"); err == nil {
		t.Error("expected error for unknown rule")
	}
}

func TestParseCorner(t *testing.T) {
	for in, want := range map[string]Corner{
		"top-left": TopLeft, "Top-Right": TopRight, " bottom-left ": BottomLeft, "BOTTOM-RIGHT": BottomRight,
	} {
		got, err := ParseCorner(in)
		if err != nil || got != want {
			t.Errorf("ParseCorner(%q): got %v, %v", in, got, err)
		}
	}
	if _, err := ParseCorner("center"); err == nil {
		t.Error("expected error for unknown corner")
	}
}

func TestPreviewCaptureClamp(t *testing.T) {
	c := PreviewCapture{X: 580, Y: -5, Width: 600, Height: 800}
	clamped := c.Clamp(100, 50)
	if !approx(clamped.X, 500) {
		t.Errorf("X: got %v, want 500", clamped.X)
	}
	if !approx(clamped.Y, 0) {
		t.Errorf("Y: got %v, want 0", clamped.Y)
	}

	inside := PreviewCapture{X: 10, Y: 20, Width: 600, Height: 800}.Clamp(100, 50)
	if !approx(inside.X, 10) || !approx(inside.Y, 20) {
		t.Errorf("in-bounds capture moved: %+v", inside)
	}

	// A footprint larger than the preview pins the capture to the origin.
	huge := PreviewCapture{X: 300, Y: 400, Width: 600, Height: 800}.Clamp(700, 900)
	if !approx(huge.X, 0) || !approx(huge.Y, 0) {
		t.Errorf("oversized footprint: got %+v, want origin", huge)
	}
}

func TestPreviewCaptureFractions(t *testing.T) {
	fx, fy := PreviewCapture{X: 150, Y: 200, Width: 600, Height: 800}.Fractions()
	if !approx(fx, 0.25) || !approx(fy, 0.25) {
		t.Errorf("got (%v, %v), want (0.25, 0.25)", fx, fy)
	}

	fx, fy = PreviewCapture{X: 10, Y: 10}.Fractions()
	if fx != 0 || fy != 0 {
		t.Errorf("degenerate preview: got (%v, %v), want zeros", fx, fy)
	}
}
