package main

import (
	"image/color"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/jumplab/ecs/render"
	"github.com/milk9111/jumplab/jump"
	"github.com/milk9111/jumplab/prefabs"
	"github.com/milk9111/jumplab/session"
	"golang.design/x/clipboard"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

var canvasColor = color.NRGBA{R: 0x02, G: 0x06, B: 0x17, A: 0xff}

var policyKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

type Game struct {
	sess     *session.Session
	renderer *render.RenderSystem
	viewport render.Viewport
	ui       *policyUI
	watcher  *prefabs.Watcher

	debug   bool
	canCopy bool
}

func NewGame(scene *prefabs.SceneSpec, tuning jump.Config, policy jump.Policy, debug bool) (*Game, error) {
	sess, err := session.New(session.Options{
		Scene:  scene,
		Tuning: tuning,
		Policy: policy,
		Input:  keyboardSource{},
	})
	if err != nil {
		return nil, err
	}

	g := &Game{
		sess:     sess,
		renderer: render.NewRenderSystem(scene.Background.ColorOr(color.NRGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff})),
		viewport: render.Fit(scene.Width, scene.Height, baseWidth-panelWidth, baseHeight, 4),
		debug:    debug,
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.canCopy = true
	}

	g.ui = newPolicyUI(policyActions{
		Select: g.selectPolicy,
		Reset:  g.sess.Reset,
		Copy:   g.copyCode,
	}, g.canCopy)
	g.ui.show(sess.Policy())

	if dir := prefabs.OverrideDir(); dir != "" {
		w, err := prefabs.NewWatcher(dir)
		if err != nil {
			log.Printf("prefab hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func (g *Game) Update() error {
	g.reloadChangedPrefabs()
	g.handleHotkeys()
	g.ui.Update()

	g.sess.Step(1000 / float64(ebiten.TPS()))

	g.ui.show(g.sess.Policy())
	return nil
}

func (g *Game) handleHotkeys() {
	for i, key := range policyKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.selectPolicy(jump.Policies()[i])
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sess.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) && g.canCopy {
		g.copyCode()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
}

func (g *Game) selectPolicy(p jump.Policy) {
	if err := g.sess.SelectPolicy(p); err != nil {
		log.Printf("select policy: %v", err)
	}
}

func (g *Game) copyCode() {
	if !g.canCopy {
		return
	}
	info := jump.Describe(g.sess.Policy())
	clipboard.Write(clipboard.FmtText, []byte(info.Code))
	log.Printf("copied %s snippet to clipboard", g.sess.Policy())
}

// reloadChangedPrefabs applies edits to the tuning file without restarting.
func (g *Game) reloadChangedPrefabs() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			switch filepath.Base(name) {
			case prefabs.JumpFile:
				cfg, err := prefabs.LoadJumpConfig()
				if err != nil {
					log.Printf("reload %s: %v", prefabs.JumpFile, err)
					continue
				}
				if err := g.sess.SetTuning(cfg); err != nil {
					log.Printf("reload %s: %v", prefabs.JumpFile, err)
					continue
				}
				log.Printf("reloaded %s: %+v", prefabs.JumpFile, cfg)
			default:
				log.Printf("%s changed; restart to apply", name)
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("prefab watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(canvasColor)

	g.renderer.Draw(g.sess.World(), screen, g.viewport)
	if g.debug {
		render.DrawPhysicsDebug(g.sess.Space(), screen, g.viewport)
		render.DrawPlayerDebug(g.sess.World(), screen, int(g.viewport.OffsetX)+8, int(g.viewport.OffsetY)+80)
	}
	render.DrawReadout(screen, g.sess.Readout(), int(g.viewport.OffsetX)+8, int(g.viewport.OffsetY)+8)

	g.ui.ui.Draw(screen)
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
