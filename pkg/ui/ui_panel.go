package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 30.0
	sectionHeight = 25.0
	labelHeight   = 15.0
)

// UIWidget is an interface for all UI widgets
type UIWidget interface {
	Handle(in Input)
	Draw(screen *ebiten.Image)
	GetHeight() float64
	moveTo(y float64)
}

// SliderWrapper wraps Slider to implement UIWidget
type SliderWrapper struct {
	*Slider
}

func (s *SliderWrapper) GetHeight() float64 {
	return s.H + 25 // Slider height + label space
}

func (s *SliderWrapper) moveTo(y float64) { s.Y = y }

// CheckboxWrapper wraps Checkbox to implement UIWidget
type CheckboxWrapper struct {
	*Checkbox
}

func (c *CheckboxWrapper) GetHeight() float64 {
	return c.Size + 20 // Checkbox size + label space
}

func (c *CheckboxWrapper) moveTo(y float64) { c.Y = y }

// ButtonWrapper wraps Button to implement UIWidget
type ButtonWrapper struct {
	*Button
}

func (b *ButtonWrapper) GetHeight() float64 {
	return b.Height + 20
}

func (b *ButtonWrapper) moveTo(y float64) { b.Y = y }

// UIPanel manages a collection of UI widgets in a scrollable panel
type UIPanel struct {
	X, Y          float64 // Panel position
	Width, Height float64 // Panel dimensions
	Title         string
	Visible       bool
	Widgets       []UIWidget
	Labels        []string // Labels for widgets
	ScrollOffset  float64  // Current scroll position

	// Styling
	BGColor     color.RGBA
	BorderColor color.RGBA
	TextColor   color.RGBA

	// Section headers
	sections []PanelSection
}

// PanelSection groups the widgets added between AddSection and EndSection
type PanelSection struct {
	Title      string
	StartIndex int // Widget index where this section starts
	EndIndex   int // Widget index where this section ends (exclusive)
}

// NewUIPanel creates a new, visible UI panel
func NewUIPanel(x, y, width, height float64, title string) *UIPanel {
	return &UIPanel{
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Title:       title,
		Visible:     true,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
		TextColor:   color.RGBA{R: 220, G: 220, B: 220, A: 255},
	}
}

// AddSection adds a section header
func (p *UIPanel) AddSection(title string) {
	p.sections = append(p.sections, PanelSection{
		Title:      title,
		StartIndex: len(p.Widgets),
		EndIndex:   len(p.Widgets),
	})
}

// EndSection closes the current section
func (p *UIPanel) EndSection() {
	if len(p.sections) > 0 {
		p.sections[len(p.sections)-1].EndIndex = len(p.Widgets)
	}
}

// AddSlider adds a slider widget to the panel
func (p *UIPanel) AddSlider(label string, min, max, value float64) *Slider {
	slider := NewSlider(p.X+10, 0, p.Width-20, label, min, max, value)
	p.add(&SliderWrapper{slider}, label)
	return slider
}

// AddCheckbox adds a checkbox widget to the panel
func (p *UIPanel) AddCheckbox(label string, value bool) *Checkbox {
	checkbox := NewCheckbox(p.X+10, 0, label, value)
	p.add(&CheckboxWrapper{checkbox}, label)
	return checkbox
}

// AddButton adds a full width button to the panel
func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	button := NewButton(p.X+10, 0, p.Width-20, 24, label, onClick)
	p.add(&ButtonWrapper{button}, "")
	return button
}

func (p *UIPanel) add(w UIWidget, label string) {
	p.Widgets = append(p.Widgets, w)
	p.Labels = append(p.Labels, label)
	p.layout()
}

// Toggle shows or hides the panel. Hiding it drops any drag in progress.
func (p *UIPanel) Toggle() {
	p.Visible = !p.Visible
	if !p.Visible {
		for _, widget := range p.Widgets {
			widget.Handle(Input{X: -1, Y: -1})
		}
	}
}

// Contains reports whether the point (x, y) is covered by the visible panel
func (p *UIPanel) Contains(x, y float64) bool {
	return p.Visible && x >= p.X && x <= p.X+p.Width && y >= p.Y && y <= p.Y+p.Height
}

// Update handles input for all widgets
func (p *UIPanel) Update() {
	p.Handle(CurrentInput())
}

// Handle scrolls the panel and dispatches in to its widgets. A hidden panel
// ignores input.
func (p *UIPanel) Handle(in Input) {
	if !p.Visible {
		return
	}

	// Handle scroll
	if in.WheelY != 0 && p.Contains(in.X, in.Y) {
		p.ScrollOffset -= in.WheelY * 20

		// Clamp scroll
		maxScroll := p.calculateTotalHeight() - p.Height + 40
		if maxScroll < 0 {
			maxScroll = 0
		}
		if p.ScrollOffset < 0 {
			p.ScrollOffset = 0
		}
		if p.ScrollOffset > maxScroll {
			p.ScrollOffset = maxScroll
		}
	}
	p.layout()

	// Widgets scrolled out of the panel do not react
	if !p.Contains(in.X, in.Y) {
		in = in.released()
	}
	for _, widget := range p.Widgets {
		widget.Handle(in)
	}
}

// layout places every widget below its section header, shifted by the scroll offset.
func (p *UIPanel) layout() {
	p.walk(func(_ PanelSection, _ float64) {}, func(w UIWidget, _ string, y float64) {
		w.moveTo(y + labelHeight)
	})
}

// walk visits the sections and widgets in drawing order with their current Y.
func (p *UIPanel) walk(section func(s PanelSection, y float64), widget func(w UIWidget, label string, y float64)) {
	currentY := p.Y + titleHeight - p.ScrollOffset
	next := 0
	for _, s := range p.sections {
		// Widgets added outside of any section come first
		for ; next < s.StartIndex && next < len(p.Widgets); next++ {
			widget(p.Widgets[next], p.Labels[next], currentY)
			currentY += p.Widgets[next].GetHeight()
		}
		section(s, currentY)
		currentY += sectionHeight
		for ; next < s.EndIndex && next < len(p.Widgets); next++ {
			widget(p.Widgets[next], p.Labels[next], currentY)
			currentY += p.Widgets[next].GetHeight()
		}
	}
	for ; next < len(p.Widgets); next++ {
		widget(p.Widgets[next], p.Labels[next], currentY)
		currentY += p.Widgets[next].GetHeight()
	}
}

// Draw renders the panel and all widgets
func (p *UIPanel) Draw(screen *ebiten.Image) {
	if !p.Visible {
		return
	}

	// Draw panel background
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)

	// Draw border
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)

	// Draw title
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+5))

	p.layout()
	visible := func(y float64) bool {
		return y >= p.Y+titleHeight-labelHeight && y <= p.Y+p.Height-labelHeight
	}
	p.walk(func(s PanelSection, y float64) {
		if !visible(y) {
			return
		}
		sectionBG := color.RGBA{R: 60, G: 60, B: 70, A: 255}
		vector.FillRect(screen,
			float32(p.X+5), float32(y),
			float32(p.Width-10), 20,
			sectionBG, true)
		ebitenutil.DebugPrintAt(screen, s.Title, int(p.X+10), int(y+3))
	}, func(w UIWidget, label string, y float64) {
		// Only draw if visible
		if !visible(y) {
			return
		}
		if label != "" {
			ebitenutil.DebugPrintAt(screen, label, int(p.X+10), int(y))
		}
		w.Draw(screen)
	})
}

// calculateTotalHeight calculates the total content height
func (p *UIPanel) calculateTotalHeight() float64 {
	height := titleHeight

	// Add section headers
	height += float64(len(p.sections)) * sectionHeight

	// Add all widgets
	for _, widget := range p.Widgets {
		height += widget.GetHeight()
	}

	return height
}
