package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/SpritePack/internal/model"
)

// frameColor represents an RGB color for a placed frame.
type frameColor struct {
	R, G, B int
}

// frameColors mirrors the color scheme used by the UI atlas canvas widget.
var frameColors = []frameColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes a layout report: one page with the scaled atlas layout,
// followed by a summary page with statistics and the rejected images.
func ExportPDF(path string, result model.PackResult, cfg model.AtlasConfig, entries []model.ImageEntry) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(result.Placed) == 0 && len(result.Rejected) == 0 {
		return fmt.Errorf("no frames to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	frames := Frames(result, entries)

	pdf.AddPage()
	renderLayoutPage(pdf, result, cfg, frames)

	pdf.AddPage()
	renderSummaryPage(pdf, result, cfg, frames, rejectedEntries(result, entries))

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws the atlas canvas with every frame on the current page.
func renderLayoutPage(pdf *fpdf.Fpdf, result model.PackResult, cfg model.AtlasConfig, frames []Frame) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Atlas %s px, padding %d, sort %s", cfg.SizeLabel(), cfg.Padding, cfg.Sort.Label())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Frames: %d | Rejected: %d | Used area: %d px | Efficiency: %.1f%%",
		len(result.Placed), len(result.Rejected), result.UsedArea(), result.Efficiency(cfg))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scale := math.Min(drawWidth/float64(cfg.Width), drawHeight/float64(cfg.Height))
	canvasW := float64(cfg.Width) * scale
	canvasH := float64(cfg.Height) * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Transparent canvas, drawn light grey
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, f := range frames {
		col := frameColors[i%len(frameColors)]
		fx := offsetX + float64(f.X)*scale
		fy := offsetY + float64(f.Y)*scale
		fw := float64(f.Width) * scale
		fh := float64(f.Height) * scale

		if cfg.Padding > 0 {
			pad := float64(cfg.Padding) * scale
			pdf.SetDrawColor(170, 170, 170)
			pdf.SetLineWidth(0.1)
			pdf.SetDashPattern([]float64{0.8, 0.8}, 0)
			pdf.Rect(fx-pad, fy-pad, fw+2*pad, fh+2*pad, "D")
			pdf.SetDashPattern([]float64{}, 0)
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(fx, fy, fw, fh, "FD")

		if fw > 15 && fh > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(fw, fh))
			pdf.SetTextColor(0, 0, 0)

			dims := fmt.Sprintf("%dx%d", f.Width, f.Height)
			nameW := pdf.GetStringWidth(f.Name)
			dimsW := pdf.GetStringWidth(dims)

			if nameW < fw-2 {
				pdf.SetXY(fx+(fw-nameW)/2, fy+fh/2-4)
				pdf.CellFormat(nameW, 4, f.Name, "", 0, "C", false, 0, "")
			}
			if fh > 14 && dimsW < fw-2 {
				pdf.SetXY(fx+(fw-dimsW)/2, fy+fh/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, cfg, offsetX, offsetY, canvasW, canvasH)
	drawFrameLegend(pdf, frames, offsetY+canvasH+5)
}

// drawDimensionAnnotations adds width and height labels outside the canvas rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, cfg model.AtlasConfig, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d px", cfg.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d px", cfg.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawFrameLegend renders a compact legend of frames below the canvas.
func drawFrameLegend(pdf *fpdf.Fpdf, frames []Frame, startY float64) {
	if len(frames) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Frames:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight
	maxY := pageHeight - marginBottom

	for i, f := range frames {
		col := frameColors[i%len(frameColors)]
		label := fmt.Sprintf("%s (%dx%d)", f.Name, f.Width, f.Height)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}
		if startY+4 > maxY {
			pdf.SetXY(xPos, startY-5)
			pdf.CellFormat(20, 4, fmt.Sprintf("+%d more", len(frames)-i), "", 0, "L", false, 0, "")
			return
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the summary page with statistics and rejected images.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.PackResult, cfg model.AtlasConfig, frames []Frame, rejected []rejectedEntry) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Texture Atlas Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	extentW, extentH := result.Extent(cfg.Padding)
	summaryItems := []struct {
		label string
		value string
	}{
		{"Atlas Size", cfg.SizeLabel() + " px"},
		{"Padding", fmt.Sprintf("%d px", cfg.Padding)},
		{"Sort Method", cfg.Sort.Label()},
		{"Images Placed", fmt.Sprintf("%d", len(result.Placed))},
		{"Images Rejected", fmt.Sprintf("%d", len(result.Rejected))},
		{"Efficiency", fmt.Sprintf("%.1f%%", result.Efficiency(cfg))},
		{"Used Extent", model.FormatSize(extentW, extentH) + " px"},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if len(rejected) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Images that did not fit", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for i, r := range rejected {
			if y+5 > pageHeight-marginBottom-6 {
				pdf.SetXY(marginLeft+5, y)
				pdf.CellFormat(200, 5, fmt.Sprintf("... and %d more", len(rejected)-i), "", 0, "L", false, 0, "")
				break
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("- %s: %d x %d px", r.Name, r.Width, r.Height), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by SpritePack - Texture Atlas Packer", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
