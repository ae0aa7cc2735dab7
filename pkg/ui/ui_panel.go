package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// UIWidget is an interface for all UI widgets
type UIWidget interface {
	Update()
	Draw(screen *ebiten.Image)
	GetHeight() float64
	SetY(y float64)
}

// UIPanel stacks widgets vertically in a translucent box.
type UIPanel struct {
	Title         string
	X, Y          float64
	Width, Height float64
	Widgets       []UIWidget

	// Styling
	BGColor     color.RGBA
	BorderColor color.RGBA
}

// NewUIPanel creates a new UI panel; its height grows with the widgets added.
func NewUIPanel(title string, x, y, width float64) *UIPanel {
	return &UIPanel{
		Title:       title,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      30,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 200},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddButton appends a button spanning the panel width.
func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+10, p.Y+p.Height, p.Width-20, 22, label, onClick)
	p.add(b)
	return b
}

// AddCheckbox appends a labelled checkbox.
func (p *UIPanel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+10, p.Y+p.Height, label, value)
	p.add(c)
	return c
}

func (p *UIPanel) add(w UIWidget) {
	p.Widgets = append(p.Widgets, w)
	p.Height += w.GetHeight()
}

// Update handles input for all widgets
func (p *UIPanel) Update() {
	for _, widget := range p.Widgets {
		widget.Update()
	}
}

// Draw renders the panel and all widgets
func (p *UIPanel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height+5),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height+5),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+5))

	currentY := p.Y + 30
	for _, widget := range p.Widgets {
		widget.SetY(currentY)
		widget.Draw(screen)
		currentY += widget.GetHeight()
	}
}
