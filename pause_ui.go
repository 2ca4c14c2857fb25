package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var (
	overlayPanelColor = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	overlayButtonIdle = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	overlayButtonDown = color.NRGBA{R: 0x55, G: 0x22, B: 0x11, A: 255}
	overlayTextColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

type overlayButton struct {
	label   string
	onClick func()
}

// newOverlayUI builds a centered panel with a title, some lines of text and
// a column of buttons.
func newOverlayUI(title string, lines []string, buttons []overlayButton, w, h int) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(overlayPanelColor)
	btnImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(overlayButtonIdle),
		Hover:   imageui.NewNineSliceColor(overlayButtonDown),
		Pressed: imageui.NewNineSliceColor(overlayButtonDown),
	}

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnTextColor := &widget.ButtonTextColor{Idle: overlayTextColor}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(w/2, h/4),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(title, &face, overlayTextColor),
		widget.TextOpts.WidgetOpts(center),
	))
	for _, line := range lines {
		panel.AddChild(widget.NewText(
			widget.TextOpts.Text(line, &face, overlayTextColor),
			widget.TextOpts.WidgetOpts(center),
		))
	}
	for _, b := range buttons {
		onClick := b.onClick
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(b.label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		))
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

// NewPauseUI is shown while the game is paused.
func NewPauseUI(g *Game) *ebitenui.UI {
	return newOverlayUI("Paused", []string{"Esc / P to resume"}, []overlayButton{
		{label: "Resume", onClick: func() { g.paused = false }},
		{label: "Restart", onClick: g.restart},
		{label: "Quit", onClick: func() { g.quit = true }},
	}, g.screenW(), g.screenH())
}

// NewGameOverUI is shown once the lava catches the player.
func NewGameOverUI(g *Game) *ebitenui.UI {
	lines := []string{
		fmt.Sprintf("Score %d", g.score),
		fmt.Sprintf("Best  %d", g.best),
		fmt.Sprintf("Climbed %.0fm, %d coins", g.engine.Altitude()/10, g.coins.Collected),
	}
	return newOverlayUI("The lava got you", lines, []overlayButton{
		{label: "Try again", onClick: g.restart},
		{label: "Quit", onClick: func() { g.quit = true }},
	}, g.screenW(), g.screenH())
}
