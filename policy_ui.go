package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/jumplab/jump"
	"golang.org/x/image/font/basicfont"
)

const panelWidth = 320

var (
	textColor     = color.NRGBA{R: 0xe2, G: 0xe8, B: 0xf0, A: 0xff}
	mutedColor    = color.NRGBA{R: 0x94, G: 0xa3, B: 0xb8, A: 0xff}
	panelColor    = color.NRGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}
	buttonColor   = color.NRGBA{R: 0x33, G: 0x41, B: 0x55, A: 0xff}
	hoverColor    = color.NRGBA{R: 0x47, G: 0x55, B: 0x69, A: 0xff}
	selectedColor = color.NRGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
)

// policyUI is the side panel: one button per policy, reset and copy actions,
// and a description of the active policy.
type policyUI struct {
	ui      *ebitenui.UI
	buttons map[jump.Policy]*widget.Button
	title   *widget.Text
	details *widget.Text
	shown   jump.Policy
}

type policyActions struct {
	Select func(jump.Policy)
	Reset  func()
	Copy   func()
}

func newPolicyUI(actions policyActions, canCopy bool) *policyUI {
	panelImg := imageui.NewNineSliceColor(panelColor)
	btnImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(buttonColor),
		Hover:   imageui.NewNineSliceColor(hoverColor),
		Pressed: imageui.NewNineSliceColor(selectedColor),
	}

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	btnTextColor := &widget.ButtonTextColor{Idle: textColor}
	rowData := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})

	p := &policyUI{buttons: make(map[jump.Policy]*widget.Button), shown: -1}

	p.title = widget.NewText(
		widget.TextOpts.Text("", &face, textColor),
		widget.TextOpts.WidgetOpts(rowData),
	)
	p.details = widget.NewText(
		widget.TextOpts.Text("", &face, mutedColor),
		widget.TextOpts.MaxWidth(panelWidth-40),
		widget.TextOpts.WidgetOpts(rowData),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 20, Right: 20}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(panelWidth, baseHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Jump assist", &face, textColor),
		widget.TextOpts.WidgetOpts(rowData),
	))

	for i, policy := range jump.Policies() {
		label := fmt.Sprintf("%d  %s", i+1, jump.Describe(policy).Name)
		btn := widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(rowData),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				actions.Select(policy)
			}),
		)
		p.buttons[policy] = btn
		panel.AddChild(btn)
	}

	panel.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(btnImg),
		widget.ButtonOpts.Text("R  Reset", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(rowData),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			actions.Reset()
		}),
	))
	if canCopy {
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text("C  Copy code", &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(rowData),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				actions.Copy()
			}),
		))
	}

	panel.AddChild(p.title)
	panel.AddChild(p.details)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	p.ui = &ebitenui.UI{Container: root}
	return p
}

// show refreshes the labels when the active policy changed.
func (p *policyUI) show(active jump.Policy) {
	if active == p.shown {
		return
	}
	p.shown = active

	for i, policy := range jump.Policies() {
		marker := " "
		if policy == active {
			marker = ">"
		}
		p.buttons[policy].Text().Label = fmt.Sprintf("%s %d  %s", marker, i+1, jump.Describe(policy).Name)
	}

	info := jump.Describe(active)
	p.title.Label = info.Name
	p.details.Label = fmt.Sprintf("%s\n\ntrait: %s\nused by: %s", info.Description, info.Trait, info.UsedBy)
}

func (p *policyUI) Update() { p.ui.Update() }
