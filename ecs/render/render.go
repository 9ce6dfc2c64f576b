package render

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/jumplab/ecs"
	"github.com/milk9111/jumplab/ecs/component"
	"github.com/milk9111/jumplab/jump"
)

// Viewport maps scene pixels to screen pixels.
type Viewport struct {
	OffsetX float64
	OffsetY float64
	Scale   float64
}

// Fit returns the viewport that centres a sceneW x sceneH scene on a
// screenW x screenH target at the largest scale not above maxScale.
func Fit(sceneW, sceneH, screenW, screenH, maxScale float64) Viewport {
	scale := maxScale
	if sceneW > 0 && screenW/sceneW < scale {
		scale = screenW / sceneW
	}
	if sceneH > 0 && screenH/sceneH < scale {
		scale = screenH / sceneH
	}
	if scale <= 0 {
		scale = 1
	}
	return Viewport{
		OffsetX: (screenW - sceneW*scale) / 2,
		OffsetY: (screenH - sceneH*scale) / 2,
		Scale:   scale,
	}
}

func (v Viewport) ToScreen(x, y float64) (float64, float64) {
	scale := v.Scale
	if scale == 0 {
		scale = 1
	}
	return v.OffsetX + x*scale, v.OffsetY + y*scale
}

func (v Viewport) scale() float64 {
	if v.Scale == 0 {
		return 1
	}
	return v.Scale
}

type RenderSystem struct {
	Background color.NRGBA
}

func NewRenderSystem(background color.NRGBA) *RenderSystem {
	return &RenderSystem{Background: background}
}

// Draw fills the scene area and draws every RectSprite, lowest layer first.
func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image, vp Viewport) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if _, bounds, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		fillRect(screen, vp, 0, 0, bounds.Width, bounds.Height, r.Background)
	}

	entities := ecs.Query(w,
		component.TransformComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		component.RectSpriteComponent.Kind(),
	)
	sort.SliceStable(entities, func(i, j int) bool {
		si, _ := ecs.Get(w, entities[i], component.RectSpriteComponent.Kind())
		sj, _ := ecs.Get(w, entities[j], component.RectSpriteComponent.Kind())
		if si.Layer != sj.Layer {
			return si.Layer < sj.Layer
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		sprite, _ := ecs.Get(w, e, component.RectSpriteComponent.Kind())
		fillRect(screen, vp, t.X, t.Y, body.Width, body.Height, sprite.Color)
	}
}

func fillRect(screen *ebiten.Image, vp Viewport, x, y, width, height float64, clr color.Color) {
	sx, sy := vp.ToScreen(x, y)
	s := vp.scale()
	vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(width*s), float32(height*s), clr, false)
}

// DrawReadout prints the controller readout with its top-left corner at
// (x, y) in screen pixels.
func DrawReadout(screen *ebiten.Image, r jump.Readout, x, y int) {
	if screen == nil {
		return
	}
	ebitenutil.DebugPrintAt(screen, r.String(), x, y)
}
