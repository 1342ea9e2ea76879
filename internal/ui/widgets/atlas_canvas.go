package widgets

import (
	"fmt"
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/SpritePack/internal/model"
)

// Frame outline colors, cycled for visual distinction.
var frameColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 255},  // green
	{R: 33, G: 150, B: 243, A: 255}, // blue
	{R: 255, G: 152, B: 0, A: 255},  // orange
	{R: 156, G: 39, B: 176, A: 255}, // purple
	{R: 0, G: 188, B: 212, A: 255},  // cyan
	{R: 244, G: 67, B: 54, A: 255},  // red
	{R: 255, G: 235, B: 59, A: 255}, // yellow
	{R: 121, G: 85, B: 72, A: 255},  // brown
}

var (
	colorCanvasBorder = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colorPadding      = color.NRGBA{R: 160, G: 160, B: 160, A: 160}
	colorSelected     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// AtlasCanvas shows the composited atlas at a zoom factor, with optional
// frame and padding outlines drawn on top.
type AtlasCanvas struct {
	widget.BaseWidget

	atlas      image.Image
	result     model.PackResult
	cfg        model.AtlasConfig
	names      map[string]string
	zoom       float32
	ShowFrames bool
	Selected   string

	// OnTapped receives the identifier of the frame under the pointer, or ""
	// when the tap hits empty canvas.
	OnTapped func(id string)
}

func NewAtlasCanvas(cfg model.AtlasConfig, zoom float32) *AtlasCanvas {
	ac := &AtlasCanvas{cfg: cfg, zoom: zoom, ShowFrames: true, names: map[string]string{}}
	ac.ExtendBaseWidget(ac)
	return ac
}

// SetAtlas replaces the displayed atlas and its layout.
func (ac *AtlasCanvas) SetAtlas(atlas image.Image, result model.PackResult, cfg model.AtlasConfig, entries []model.ImageEntry) {
	ac.atlas = atlas
	ac.result = result
	ac.cfg = cfg
	ac.names = make(map[string]string, len(entries))
	for _, e := range entries {
		ac.names[e.ID] = e.Name
	}
	ac.Refresh()
}

func (ac *AtlasCanvas) SetZoom(zoom float32) {
	ac.zoom = zoom
	ac.Refresh()
}

func (ac *AtlasCanvas) Zoom() float32 { return ac.zoom }

// FrameAt returns the identifier of the placed frame containing the widget
// position pos.
func (ac *AtlasCanvas) FrameAt(pos fyne.Position) (string, bool) {
	if ac.zoom <= 0 {
		return "", false
	}
	x := int(pos.X / ac.zoom)
	y := int(pos.Y / ac.zoom)
	for _, p := range ac.result.Placed {
		if x >= p.X && x < p.X+p.Width && y >= p.Y && y < p.Y+p.Height {
			return p.SourceID, true
		}
	}
	return "", false
}

func (ac *AtlasCanvas) Tapped(ev *fyne.PointEvent) {
	id, _ := ac.FrameAt(ev.Position)
	ac.Selected = id
	ac.Refresh()
	if ac.OnTapped != nil {
		ac.OnTapped(id)
	}
}

func (ac *AtlasCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newAtlasCanvasRenderer(ac)
}

type atlasCanvasRenderer struct {
	ac      *AtlasCanvas
	objects []fyne.CanvasObject
}

func newAtlasCanvasRenderer(ac *AtlasCanvas) *atlasCanvasRenderer {
	r := &atlasCanvasRenderer{ac: ac}
	r.rebuild()
	return r
}

func (r *atlasCanvasRenderer) rebuild() {
	r.objects = nil
	ac := r.ac
	scale := ac.zoom
	canvasW := float32(ac.cfg.Width) * scale
	canvasH := float32(ac.cfg.Height) * scale

	if ac.atlas != nil {
		img := canvas.NewImageFromImage(ac.atlas)
		img.FillMode = canvas.ImageFillStretch
		img.ScaleMode = canvas.ImageScalePixels
		img.Resize(fyne.NewSize(canvasW, canvasH))
		r.objects = append(r.objects, img)
	}

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = colorCanvasBorder
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, border)

	if !ac.ShowFrames {
		return
	}

	pad := ac.cfg.Padding
	for i, p := range ac.result.Placed {
		if pad > 0 {
			pb := p.PaddedBounds(pad)
			padRect := canvas.NewRectangle(color.Transparent)
			padRect.StrokeColor = colorPadding
			padRect.StrokeWidth = 1
			padRect.Resize(fyne.NewSize(float32(pb.Width)*scale, float32(pb.Height)*scale))
			padRect.Move(fyne.NewPos(float32(pb.X)*scale, float32(pb.Y)*scale))
			r.objects = append(r.objects, padRect)
		}

		pw := float32(p.Width) * scale
		ph := float32(p.Height) * scale
		px := float32(p.X) * scale
		py := float32(p.Y) * scale

		frame := canvas.NewRectangle(color.Transparent)
		frame.StrokeColor = frameColors[i%len(frameColors)]
		frame.StrokeWidth = 1
		if p.SourceID == ac.Selected {
			frame.StrokeColor = colorSelected
			frame.StrokeWidth = 3
		}
		frame.Resize(fyne.NewSize(pw, ph))
		frame.Move(fyne.NewPos(px, py))
		r.objects = append(r.objects, frame)

		// Label only if big enough
		if pw > 40 && ph > 24 {
			label := canvas.NewText(fmt.Sprintf("%s %dx%d", ac.names[p.SourceID], p.Width, p.Height), frameColors[i%len(frameColors)])
			label.TextSize = 9
			label.Move(fyne.NewPos(px+2, py+1))
			r.objects = append(r.objects, label)
		}
	}
}

func (r *atlasCanvasRenderer) Layout(size fyne.Size)        {}
func (r *atlasCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *atlasCanvasRenderer) Destroy()                     {}
func (r *atlasCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *atlasCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(r.ac.cfg.Width)*r.ac.zoom, float32(r.ac.cfg.Height)*r.ac.zoom)
}
