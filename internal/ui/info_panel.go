// internal/ui/info_panel.go
package ui

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"herbicide/internal/config"
	"herbicide/pkg/tilegrid"
)

const (
	panelHeight    = 150
	panelMargin    = 5
	animationSpeed = 10.0
	lineHeight     = 18
	columnSpacing  = 260
	linesPerColumn = 6
)

// Describer produces the text shown for a cell.
type Describer interface {
	Describe(c tilegrid.Coord) []string
}

// InfoPanel slides up from the bottom edge and shows details of the selected cell.
type InfoPanel struct {
	IsVisible bool
	Target    tilegrid.Coord
	fontFace  font.Face
	currentY  float64
	targetY   float64
}

// NewInfoPanel creates a hidden panel.
func NewInfoPanel(face font.Face) *InfoPanel {
	return &InfoPanel{
		fontFace: face,
		currentY: config.ScreenHeight,
		targetY:  config.ScreenHeight,
	}
}

func (p *InfoPanel) SetTarget(c tilegrid.Coord) {
	p.Target = c
	p.IsVisible = true
	p.targetY = config.ScreenHeight - panelHeight
}

func (p *InfoPanel) Hide() {
	p.targetY = config.ScreenHeight
}

// Contains reports whether the screen point lies on the visible panel.
func (p *InfoPanel) Contains(x, y int) bool {
	return p.IsVisible && float64(y) >= p.currentY
}

func (p *InfoPanel) Update() {
	// Анимация панели
	if p.currentY == p.targetY {
		return
	}
	diff := p.targetY - p.currentY
	if math.Abs(diff) < animationSpeed {
		p.currentY = p.targetY
	} else if diff > 0 {
		p.currentY += animationSpeed
	} else {
		p.currentY -= animationSpeed
	}
	if p.currentY >= config.ScreenHeight {
		p.IsVisible = false
	}
}

func (p *InfoPanel) Draw(screen *ebiten.Image, d Describer) {
	if !p.IsVisible && p.currentY >= config.ScreenHeight {
		return
	}

	panelRect := image.Rect(
		panelMargin,
		int(p.currentY)+panelMargin,
		config.ScreenWidth-panelMargin,
		int(p.currentY)+panelHeight-panelMargin,
	)

	bgColor := color.RGBA{R: 25, G: 35, B: 45, A: 230}
	vector.DrawFilledRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), bgColor, true)
	borderColor := color.RGBA{R: 70, G: 130, B: 180, A: 255}
	vector.StrokeRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), 2, borderColor, true)

	x, y := panelRect.Min.X+15, panelRect.Min.Y+15+lineHeight
	for i, line := range d.Describe(p.Target) {
		col, row := i/linesPerColumn, i%linesPerColumn
		text.Draw(screen, line, p.fontFace, x+col*columnSpacing, y+row*lineHeight, config.TextLightColor)
	}
}
