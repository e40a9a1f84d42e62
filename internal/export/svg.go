package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/attractors/internal/sim"
	"github.com/san-kum/attractors/internal/viz"
)

const svgHeader = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`

// SegmentsToSVG draws one controller frame as coloured lines.
func SegmentsToSVG(segs []sim.Segment, width, height int, bg viz.RGBA) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, svgHeader, width, height, width, height, bg.Hex(viz.RGBA{A: 255}))

	sb.WriteString(`<g stroke-width="1" stroke-linecap="round">` + "\n")
	for _, s := range segs {
		c := s.Color.Clamp()
		fmt.Fprintf(&sb, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="rgb(%d,%d,%d)" stroke-opacity="%.3f"/>`+"\n",
			s.X0, s.Y0, s.X1, s.Y1, c.R, c.G, c.B, float64(c.A)/255)
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG format, one dot per set
// sub-pixel in the cell's colour.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := int(float64(canvas.Width) * scale * 2)   // 2 sub-pixels per char
	height := int(float64(canvas.Height) * scale * 4) // 4 sub-pixels per char

	var sb strings.Builder
	fmt.Fprintf(&sb, svgHeader, width, height, width, height, "#0a0a0a")

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			fill := canvas.Colors[row][col].Hex(viz.RGBA{A: 255})
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !canvas.IsSet(col*2+dx, row*4+dy) {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", cx, cy, dotRadius, fill)
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoryToSVG creates an SVG from trajectory data
func TrajectoryToSVG(points []struct{ X, Y float64 }, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	fmt.Fprintf(&sb, svgHeader, width, height, width, height, "#0a0a0a")
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
