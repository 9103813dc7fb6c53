package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/soundboard/internal/model"
)

// Tile drawing constants
const (
	TileNameMaxRunes       = 28
	TileProgressHeight     = 6
	TilePlayingBorderWidth = 5
	TileTrackAlpha         = 0x40
	TileOptionCell         = 18
	TileOptionOffAlpha     = 0x55
)

// tileOption is one tappable icon of the options row. An empty key opens
// the colour picker.
type tileOption struct {
	key  model.OptionKey
	icon string
}

var tileOptions = []tileOption{
	{model.OptionDucking, IconDucking},
	{model.OptionLoop, IconLoop},
	{model.OptionRestart, IconRestart},
	{"", IconColor},
	{model.OptionFadeIn, IconFadeIn},
	{model.OptionFadeOut, IconFadeOut},
}

// PadTile renders one pad of the grid
type PadTile struct {
	widget.BaseWidget

	pad          model.Pad
	fraction     float64
	localization *Localization

	// UI components
	background    *canvas.Rectangle
	nameText      *canvas.Text
	totalText     *canvas.Text
	remainingText *canvas.Text
	optionTexts   []*canvas.Text
	warningText   *canvas.Text
	track         *canvas.Rectangle
	fill          *canvas.Rectangle

	gestures *GestureHandler

	// Callbacks
	onTap    func(padID string)
	onMenu   func(padID string, pos fyne.Position)
	onSwipe  func(step int)
	onOption func(padID string, key model.OptionKey)
	onColor  func(padID string)
}

// NewPadTile creates a tile for the pad
func NewPadTile(pad model.Pad, localization *Localization) *PadTile {
	t := &PadTile{localization: localization}
	t.gestures = NewGestureHandler(t.handleGesture)
	t.ExtendBaseWidget(t)
	t.createUI()
	t.UpdatePad(pad)
	return t
}

// SetCallbacks sets the tap and context menu callbacks
func (t *PadTile) SetCallbacks(onTap func(padID string), onMenu func(padID string, pos fyne.Position)) {
	t.onTap = onTap
	t.onMenu = onMenu
}

// SetOptionCallbacks sets the callbacks of the option icons
func (t *PadTile) SetOptionCallbacks(onOption func(padID string, key model.OptionKey), onColor func(padID string)) {
	t.onOption = onOption
	t.onColor = onColor
}

// SetSwipeCallback sets the callback for horizontal swipes on touch screens
func (t *PadTile) SetSwipeCallback(onSwipe func(step int)) {
	t.onSwipe = onSwipe
}

// PadID returns the ID of the rendered pad
func (t *PadTile) PadID() string {
	return t.pad.ID
}

// UpdatePad re-renders the tile from pad data
func (t *PadTile) UpdatePad(pad model.Pad) {
	t.pad = pad
	t.fraction = progressFraction(pad.Playback.Remaining, pad.Playback.Duration, pad.Playback.Playing)
	t.updateFromPad()
	t.Refresh()
}

// SetRemaining refreshes only the countdown of a playing pad
func (t *PadTile) SetRemaining(remaining, duration float64) {
	t.pad.Playback.Remaining = remaining
	if duration > 0 {
		t.pad.Playback.Duration = duration
	}
	t.fraction = progressFraction(remaining, t.pad.Playback.Duration, true)
	t.remainingText.Text = remainingLabel(t.pad)
	t.Refresh()
}

// Tapped toggles the option under the pointer, or plays or stops the pad
func (t *PadTile) Tapped(ev *fyne.PointEvent) {
	if i := optionAt(t.Size(), ev.Position); i >= 0 {
		opt := tileOptions[i]
		if opt.key == "" {
			if t.onColor != nil {
				t.onColor(t.pad.ID)
			}
		} else if t.onOption != nil {
			t.onOption(t.pad.ID, opt.key)
		}
		return
	}
	if t.onTap != nil {
		t.onTap(t.pad.ID)
	}
}

// TappedSecondary opens the quick settings menu
func (t *PadTile) TappedSecondary(ev *fyne.PointEvent) {
	if t.onMenu != nil {
		t.onMenu(t.pad.ID, ev.AbsolutePosition)
	}
}

// TouchDown starts gesture tracking
func (t *PadTile) TouchDown(ev *mobile.TouchEvent) {
	t.gestures.TouchDown(ev)
}

// TouchUp finishes gesture tracking
func (t *PadTile) TouchUp(ev *mobile.TouchEvent) {
	t.gestures.TouchUp(ev)
}

// TouchCancel drops the tracked touch
func (t *PadTile) TouchCancel(ev *mobile.TouchEvent) {
	t.gestures.TouchCancel(ev)
}

// handleGesture switches tabs on horizontal swipes. Taps and long presses
// arrive through Tapped and TappedSecondary.
func (t *PadTile) handleGesture(gesture GestureType) {
	if step := tabStep(gesture); step != 0 && t.onSwipe != nil {
		t.onSwipe(step)
	}
}

func (t *PadTile) createUI() {
	t.background = canvas.NewRectangle(color.Transparent)
	t.background.CornerRadius = TileCornerRadius
	t.background.StrokeWidth = TileBorderWidth

	t.nameText = canvas.NewText("", LightText)
	t.nameText.TextSize = TileNameSize
	t.nameText.TextStyle = fyne.TextStyle{Bold: true}

	t.totalText = canvas.NewText("", LightText)
	t.totalText.TextSize = TileInfoSize
	t.totalText.TextStyle = fyne.TextStyle{Monospace: true}

	t.remainingText = canvas.NewText("", LightText)
	t.remainingText.TextSize = TileInfoSize
	t.remainingText.TextStyle = fyne.TextStyle{Monospace: true}
	t.remainingText.Alignment = fyne.TextAlignTrailing

	t.optionTexts = make([]*canvas.Text, len(tileOptions))
	for i, opt := range tileOptions {
		text := canvas.NewText(opt.icon, LightText)
		text.TextSize = TileInfoSize
		text.Alignment = fyne.TextAlignCenter
		t.optionTexts[i] = text
	}

	t.warningText = canvas.NewText("", WarningText)
	t.warningText.TextSize = TileInfoSize
	t.warningText.TextStyle = fyne.TextStyle{Bold: true}

	t.track = canvas.NewRectangle(color.Transparent)
	t.track.CornerRadius = TileProgressHeight / 2
	t.fill = canvas.NewRectangle(color.Transparent)
	t.fill.CornerRadius = TileProgressHeight / 2
}

// updateFromPad applies pad data to the canvas objects
func (t *PadTile) updateFromPad() {
	textColor := textColorFor(t.pad.Color)

	t.background.FillColor = padColor(t.pad.Color)
	t.background.StrokeColor = borderColor(t.pad.Border, t.pad.Color)
	t.background.StrokeWidth = TileBorderWidth
	if t.pad.Playback.Playing {
		t.background.StrokeWidth = TilePlayingBorderWidth
	}

	t.nameText.Text = truncateRunes(t.pad.Name, TileNameMaxRunes)
	t.nameText.Color = textColor
	t.totalText.Color = textColor
	t.remainingText.Color = textColor
	for i, opt := range tileOptions {
		c := textColor
		if opt.key != "" && !t.pad.Options.Enabled(opt.key) {
			c.A = TileOptionOffAlpha
		}
		t.optionTexts[i].Color = c
	}

	t.totalText.Text = ""
	if t.pad.File != nil && t.pad.Playback.Duration > 0 {
		t.totalText.Text = model.FormatTime(t.pad.Playback.Duration)
	}
	t.remainingText.Text = remainingLabel(t.pad)

	t.warningText.Text = ""
	if t.pad.NeedsReload {
		t.warningText.Text = IconWarning + " " + t.localization.GetText(KeyNeedsReload)
	}

	track := textColor
	track.A = TileTrackAlpha
	t.track.FillColor = track
	t.fill.FillColor = textColor
}

// CreateRenderer creates the widget renderer
func (t *PadTile) CreateRenderer() fyne.WidgetRenderer {
	objects := []fyne.CanvasObject{
		t.background, t.nameText, t.totalText, t.remainingText,
		t.warningText, t.track, t.fill,
	}
	for _, text := range t.optionTexts {
		objects = append(objects, text)
	}
	return &padTileRenderer{tile: t, objects: objects}
}

// padTileRenderer lays the tile out by hand so the progress fill can track
// the countdown without rebuilding containers
type padTileRenderer struct {
	tile    *PadTile
	objects []fyne.CanvasObject
}

// Layout arranges the components
func (r *padTileRenderer) Layout(size fyne.Size) {
	t := r.tile
	pad := theme.Padding() * 2
	inner := size.Width - 2*pad

	t.background.Move(fyne.NewPos(0, 0))
	t.background.Resize(size)

	y := pad
	nameHeight := t.nameText.MinSize().Height
	t.nameText.Move(fyne.NewPos(pad, y))
	t.nameText.Resize(fyne.NewSize(inner, nameHeight))
	y += nameHeight + theme.Padding()

	infoHeight := t.totalText.MinSize().Height
	t.totalText.Move(fyne.NewPos(pad, y))
	t.totalText.Resize(fyne.NewSize(inner, infoHeight))
	t.remainingText.Move(fyne.NewPos(pad, y))
	t.remainingText.Resize(fyne.NewSize(inner, infoHeight))

	barY := size.Height - pad - TileProgressHeight
	t.track.Move(fyne.NewPos(pad, barY))
	t.track.Resize(fyne.NewSize(inner, TileProgressHeight))
	t.fill.Move(fyne.NewPos(pad, barY))
	t.fill.Resize(fyne.NewSize(inner*float32(t.fraction), TileProgressHeight))

	for i, text := range t.optionTexts {
		pos, cell := optionCell(size, i)
		text.Move(pos)
		text.Resize(cell)
	}

	iconsY, _ := optionCell(size, 0)
	lineY := iconsY.Y - theme.Padding() - infoHeight
	t.warningText.Move(fyne.NewPos(pad, lineY))
	t.warningText.Resize(fyne.NewSize(inner, infoHeight))
}

// MinSize returns the minimum size
func (r *padTileRenderer) MinSize() fyne.Size {
	return fyne.NewSize(TileMinWidth, TileMinHeight)
}

// Refresh refreshes the renderer
func (r *padTileRenderer) Refresh() {
	r.Layout(r.tile.Size())
	for _, obj := range r.objects {
		canvas.Refresh(obj)
	}
}

// Objects returns the canvas objects
func (r *padTileRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up the renderer
func (r *padTileRenderer) Destroy() {}

// PlaceholderTile is the "add pad" cell that closes every grid
type PlaceholderTile struct {
	widget.BaseWidget

	label *canvas.Text
	onTap func()
}

// NewPlaceholderTile creates the "add pad" tile
func NewPlaceholderTile(text string, onTap func()) *PlaceholderTile {
	p := &PlaceholderTile{onTap: onTap}
	p.label = canvas.NewText(text, LightText)
	p.label.TextSize = TileNameSize
	p.ExtendBaseWidget(p)
	return p
}

// SetText updates the label
func (p *PlaceholderTile) SetText(text string) {
	p.label.Text = text
	p.label.Refresh()
}

// Tapped adds a pad
func (p *PlaceholderTile) Tapped(*fyne.PointEvent) {
	if p.onTap != nil {
		p.onTap()
	}
}

// MinSize keeps the placeholder as large as a pad
func (p *PlaceholderTile) MinSize() fyne.Size {
	return fyne.NewSize(TileMinWidth, TileMinHeight)
}

// CreateRenderer creates the widget renderer
func (p *PlaceholderTile) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(PlaceholderFill)
	bg.CornerRadius = TileCornerRadius
	bg.StrokeColor = PlaceholderBorder
	bg.StrokeWidth = TileBorderWidth
	return widget.NewSimpleRenderer(container.NewStack(bg, container.NewCenter(p.label)))
}

// progressFraction is the share of the track still to play
func progressFraction(remaining, duration float64, playing bool) float64 {
	if !playing || duration <= 0 {
		return 0
	}
	f := remaining / duration
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// remainingLabel formats the countdown of a pad with a file
func remainingLabel(pad model.Pad) string {
	if pad.File == nil || pad.Playback.Duration <= 0 {
		return ""
	}
	return RemainingPrefix + model.FormatTime(pad.Playback.Remaining)
}

// optionCell is the area of the i-th option icon: a right-aligned row just
// above the progress bar
func optionCell(size fyne.Size, i int) (fyne.Position, fyne.Size) {
	pad := theme.Padding() * 2
	y := size.Height - pad - TileProgressHeight - theme.Padding() - TileOptionCell
	x := size.Width - pad - float32(len(tileOptions)-i)*TileOptionCell
	return fyne.NewPos(x, y), fyne.NewSize(TileOptionCell, TileOptionCell)
}

// optionAt returns the index of the option icon under pos, or -1
func optionAt(size fyne.Size, pos fyne.Position) int {
	if size.Width < TileMinWidth || size.Height < TileMinHeight {
		return -1
	}
	for i := range tileOptions {
		p, cell := optionCell(size, i)
		if pos.X >= p.X && pos.X < p.X+cell.Width && pos.Y >= p.Y && pos.Y < p.Y+cell.Height {
			return i
		}
	}
	return -1
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
