package hud

import (
	"fmt"
	"image/color"
	"time"

	"github.com/ebitenui/ebitenui"
	eimage "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font"
)

const helpText = "WASD/arrows move, Q/E strafe, shift sprint, M map, P pause, R respawn, F1 HUD, ESC exit"

var (
	textColor  = color.RGBA{255, 255, 255, 255}
	panelColor = color.RGBA{0, 0, 0, 160}
)

// Status is the game state shown in the status panel.
type Status struct {
	Paused  bool
	Running bool
	CellX   int
	CellY   int
	Heading float64
	Sprites int
}

// FormatStatus renders the panel lines.
func FormatStatus(st Status) string {
	mode := "walking"
	switch {
	case st.Paused:
		mode = "paused"
	case st.Running:
		mode = "running"
	}
	return fmt.Sprintf("%s\ncell %d,%d  heading %.0f°\nsprites in view %d", mode, st.CellX, st.CellY, st.Heading, st.Sprites)
}

// HUD draws the FPS counter, help text and an ebitenui status panel.
type HUD struct {
	face   text.Face
	fps    *FPSCounter
	ui     *ebitenui.UI
	status *widget.Text
	lineH  float64
	origin float64
	height int

	Visible bool
}

// New builds the HUD for a screen whose 3D view starts at viewX.
func New(face font.Face, viewX, screenHeight int) *HUD {
	status := widget.NewText(
		widget.TextOpts.Text(FormatStatus(Status{}), face, textColor),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(eimage.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(6)),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionEnd,
			VerticalPosition:   widget.AnchorLayoutPositionStart,
		})),
	)
	panel.AddChild(status)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(widget.NewInsetsSimple(8)),
		)),
	)
	root.AddChild(panel)

	return &HUD{
		face:    text.NewGoXFace(face),
		fps:     NewFPSCounter(),
		ui:      &ebitenui.UI{Container: root},
		status:  status,
		lineH:   float64(face.Metrics().Height.Ceil()),
		origin:  float64(viewX),
		height:  screenHeight,
		Visible: true,
	}
}

// Update ticks the FPS counter and refreshes the panel. It returns the FPS and
// whether it was recomputed this frame.
func (h *HUD) Update(now time.Time, st Status) (float64, bool) {
	fps, changed := h.fps.Tick(now)
	h.status.Label = FormatStatus(st)
	h.ui.Update()
	return fps, changed
}

func (h *HUD) Draw(screen *ebiten.Image) {
	if !h.Visible {
		return
	}
	h.drawText(screen, fmt.Sprintf("FPS: %.0f", h.fps.FPS()), h.origin+10, 10)
	h.drawText(screen, helpText, 10, float64(h.height)-h.lineH-6)
	h.ui.Draw(screen)
}

func (h *HUD) drawText(screen *ebiten.Image, s string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, s, h.face, op)
}
