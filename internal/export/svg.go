package export

import (
	"fmt"
	"strings"

	"github.com/ofey404/gas-properties/internal/gas"
	"github.com/ofey404/gas-properties/internal/model"
	"github.com/ofey404/gas-properties/internal/viz"
)

// SnapshotToSVG renders the container and particles as an SVG snapshot.
// scale is pixels per picometer; 0.05 gives a ~750px tall image.
func SnapshotToSVG(c *model.Container, particles []*model.Particle, scale float64) string {
	world := c.MaxBounds()
	width := world.Width() * scale
	height := world.Height() * scale

	// World y grows upward, SVG y grows downward.
	toX := func(x float64) float64 { return (x - world.MinX) * scale }
	toY := func(y float64) float64 { return (world.MaxY - y) * scale }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	inner := c.Bounds()
	wallRect := func(b gas.Bounds2) {
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#555555"/>
`, toX(b.MinX), toY(b.MaxY), b.Width()*scale, b.Height()*scale))
	}

	// Walls as filled strips around the interior.
	left := gas.Bounds2{MinX: inner.MinX - c.WallThickness, MinY: inner.MinY, MaxX: inner.MinX, MaxY: inner.MaxY}
	right := gas.Bounds2{MinX: inner.MaxX, MinY: inner.MinY, MaxX: inner.MaxX + c.WallThickness, MaxY: inner.MaxY}
	bottom := gas.Bounds2{MinX: inner.MinX - c.WallThickness, MinY: inner.MinY - c.WallThickness, MaxX: inner.MaxX + c.WallThickness, MaxY: inner.MinY}
	wallRect(left)
	wallRect(right)
	wallRect(bottom)

	if c.IsLidOpen() {
		opening := c.OpeningBounds()
		lid := gas.Bounds2{MinX: inner.MinX - c.WallThickness, MinY: inner.MaxY, MaxX: opening.MinX, MaxY: inner.MaxY + c.WallThickness}
		wallRect(lid)
	} else {
		lid := gas.Bounds2{MinX: inner.MinX - c.WallThickness, MinY: inner.MaxY, MaxX: inner.MaxX + c.WallThickness, MaxY: inner.MaxY + c.WallThickness}
		wallRect(lid)
	}

	if c.HasDivider() {
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#888888" stroke-width="2"/>
`, toX(c.DividerX()), toY(inner.MaxY), toX(c.DividerX()), toY(inner.MinY)))
	}

	for _, obstacle := range c.Obstacles() {
		wallRect(obstacle)
	}

	sb.WriteString(`<g fill="#00ff88">
`)
	for _, p := range particles {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, toX(p.Position.X), toY(p.Position.Y), p.Radius*scale))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG, one dot per sub-pixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
