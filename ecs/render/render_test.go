package render

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name                  string
		sceneW, sceneH        float64
		screenW, screenH, max float64
		want                   Viewport
	}{
		{name: "height bound", sceneW: 400, sceneH: 300, screenW: 1280, screenH: 720, max: 4, want: Viewport{OffsetX: 160, OffsetY: 0, Scale: 2.4}},
		{name: "capped", sceneW: 400, sceneH: 300, screenW: 1280, screenH: 720, max: 2, want: Viewport{OffsetX: 240, OffsetY: 60, Scale: 2}},
		{name: "exact", sceneW: 400, sceneH: 300, screenW: 400, screenH: 300, max: 1, want: Viewport{Scale: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(tt.sceneW, tt.sceneH, tt.screenW, tt.screenH, tt.max)
			if got != tt.want {
				t.Fatalf("Fit = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestViewportToScreen(t *testing.T) {
	vp := Viewport{OffsetX: 10, OffsetY: 20, Scale: 2}
	if x, y := vp.ToScreen(5, 7); x != 20 || y != 34 {
		t.Fatalf("ToScreen = (%v, %v), want (20, 34)", x, y)
	}
	var zero Viewport
	if x, y := zero.ToScreen(5, 7); x != 5 || y != 7 {
		t.Fatalf("zero viewport ToScreen = (%v, %v), want identity", x, y)
	}
}

func TestDebugShapeColor(t *testing.T) {
	space := cp.NewSpace()
	player := cp.NewBody(1, cp.INFINITY)

	tests := []struct {
		name  string
		shape *cp.Shape
		want  cp.FColor
	}{
		{name: "player", shape: cp.NewBox(player, 10, 10, 0), want: debugPlayerColor},
		{name: "solid", shape: cp.NewBox2(space.StaticBody, cp.BB{L: 0, B: 80, R: 200, T: 100}, 0), want: debugSolidColor},
		{name: "bounds", shape: cp.NewSegment(space.StaticBody, cp.Vector{}, cp.Vector{X: 200}, 0), want: debugBoundsColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := debugShapeColor(tt.shape); got != tt.want {
				t.Fatalf("color = %+v, want %+v", got, tt.want)
			}
		})
	}
}
