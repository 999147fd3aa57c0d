// internal/ui/model_book.go
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// FlooringEntry is the pseudo model id the picker uses for laying soil.
const FlooringEntry = "soil (flooring)"

// ModelBook lists the placeable model ids and tracks which one the left click uses.
type ModelBook struct {
	IsVisible bool
	X, Y      float32
	Width     float32
	Height    float32
	fontFace  font.Face
	entries   []string
	selected  int
}

// NewModelBook creates a visible book over ids plus the flooring entry.
func NewModelBook(x, y, width float32, fontFace font.Face, ids []string) *ModelBook {
	entries := append(append([]string(nil), ids...), FlooringEntry)
	lineHeight := float32(fontFace.Metrics().Height.Ceil())
	return &ModelBook{
		IsVisible: true,
		X:         x,
		Y:         y,
		Width:     width,
		Height:    40 + lineHeight*1.5*float32(len(entries)),
		fontFace:  fontFace,
		entries:   entries,
	}
}

// Toggle переключает видимость списка.
func (b *ModelBook) Toggle() {
	b.IsVisible = !b.IsVisible
}

// Select picks entry i (0-based); out of range is ignored.
func (b *ModelBook) Select(i int) {
	if i >= 0 && i < len(b.entries) {
		b.selected = i
	}
}

// Next cycles the selection by delta.
func (b *ModelBook) Next(delta int) {
	n := len(b.entries)
	b.selected = ((b.selected+delta)%n + n) % n
}

// Selected returns the chosen entry and whether it is the flooring one.
func (b *ModelBook) Selected() (id string, flooring bool) {
	id = b.entries[b.selected]
	return id, id == FlooringEntry
}

// Draw отрисовывает список, если он видим.
func (b *ModelBook) Draw(screen *ebiten.Image) {
	if !b.IsVisible {
		return
	}

	whiteColor := color.RGBA{255, 255, 255, 255}
	grayColor := color.RGBA{150, 150, 150, 255}

	bgColor := color.RGBA{R: 20, G: 20, B: 30, A: 230}
	vector.DrawFilledRect(screen, b.X, b.Y, b.Width, b.Height, bgColor, false)
	borderColor := color.RGBA{R: 70, G: 100, B: 120, A: 255}
	vector.StrokeRect(screen, b.X, b.Y, b.Width, b.Height, 2, borderColor, false)

	title := "Models"
	titleBounds := text.BoundString(b.fontFace, title)
	titleX := b.X + (b.Width-float32(titleBounds.Dx()))/2
	titleY := b.Y + 20
	text.Draw(screen, title, b.fontFace, int(titleX), int(titleY), whiteColor)

	lineHeight := float32(b.fontFace.Metrics().Height.Ceil())
	startY := titleY + lineHeight*1.5
	for i, entry := range b.entries {
		clr := grayColor
		prefix := "  "
		if i == b.selected {
			clr = whiteColor
			prefix = "> "
		}
		label := fmt.Sprintf("%s%d %s", prefix, i+1, entry)
		text.Draw(screen, label, b.fontFace, int(b.X+10), int(startY+float32(i)*lineHeight*1.5), clr)
	}
}
