package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/soundboard/internal/model"
)

// swatch is a tappable palette color
type swatch struct {
	widget.BaseWidget

	color string
	onTap func(color string)
}

func newSwatch(color string, onTap func(string)) *swatch {
	s := &swatch{color: color, onTap: onTap}
	s.ExtendBaseWidget(s)
	return s
}

func (s *swatch) Tapped(*fyne.PointEvent) {
	if s.onTap != nil {
		s.onTap(s.color)
	}
}

func (s *swatch) MinSize() fyne.Size {
	return fyne.NewSize(SwatchSize, SwatchSize)
}

func (s *swatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(padColor(s.color))
	rect.CornerRadius = SwatchSize / 4
	rect.StrokeColor = borderColor("", s.color)
	rect.StrokeWidth = 1
	return widget.NewSimpleRenderer(rect)
}

// ShowColorPicker shows the pad palette and reports the chosen color
func ShowColorPicker(window fyne.Window, title, current string, onPick func(color string)) {
	var d dialog.Dialog
	grid := container.NewGridWithColumns(PaletteColumn)
	for _, c := range model.Palette {
		grid.Add(newSwatch(c, func(color string) {
			d.Hide()
			if color != current {
				onPick(color)
			}
		}))
	}

	d = dialog.NewCustom(title, IconClose, grid, window)
	d.Show()
}
