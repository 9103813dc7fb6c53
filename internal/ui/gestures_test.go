package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/ytget/soundboard/internal/model"
)

func touchAt(x, y float32) *mobile.TouchEvent {
	return &mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func TestGestureHandler_Classify(t *testing.T) {
	gh := NewGestureHandler(nil)

	tests := []struct {
		name     string
		duration time.Duration
		dx, dy   float32
		want     GestureType
	}{
		{"quick tap", 100 * time.Millisecond, 3, 2, GestureTap},
		{"long press", time.Second, 4, -4, GestureLongPress},
		{"swipe left", 150 * time.Millisecond, -120, 10, GestureSwipeLeft},
		{"swipe right", 150 * time.Millisecond, 80, -30, GestureSwipeRight},
		{"swipe down", 150 * time.Millisecond, 5, 90, GestureSwipeDown},
		{"swipe up", 150 * time.Millisecond, 5, -90, GestureSwipeUp},
		{"slow swipe is still a swipe", 2 * time.Second, -60, 0, GestureSwipeLeft},
		{"diagonal under threshold", 100 * time.Millisecond, 30, 30, GestureTap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gh.classify(tt.duration, tt.dx, tt.dy))
		})
	}
}

func TestGestureHandler_TouchSequence(t *testing.T) {
	var got []GestureType
	gh := NewGestureHandler(func(g GestureType) { got = append(got, g) })
	clock := time.Unix(0, 0)
	gh.now = func() time.Time { return clock }

	gh.TouchDown(touchAt(200, 50))
	clock = clock.Add(100 * time.Millisecond)
	gh.TouchUp(touchAt(100, 55))

	gh.TouchDown(touchAt(10, 10))
	gh.TouchCancel(touchAt(10, 10))
	gh.TouchUp(touchAt(300, 10))

	assert.Equal(t, []GestureType{GestureSwipeLeft}, got, "cancelled touch is ignored")
}

func TestTabStep(t *testing.T) {
	assert.Equal(t, 1, tabStep(GestureSwipeLeft))
	assert.Equal(t, -1, tabStep(GestureSwipeRight))
	assert.Equal(t, 0, tabStep(GestureSwipeUp))
	assert.Equal(t, 0, tabStep(GestureTap))
}

func TestPadTile_SwipeSwitchesTabs(t *testing.T) {
	test.NewApp()
	tile := NewPadTile(model.NewPad(0), NewLocalization())
	var steps []int
	tile.SetSwipeCallback(func(step int) { steps = append(steps, step) })

	tile.TouchDown(touchAt(10, 10))
	tile.TouchUp(touchAt(200, 10))
	tile.TouchDown(touchAt(10, 10))
	tile.TouchUp(touchAt(12, 11))

	assert.Equal(t, []int{-1}, steps)
}

func TestAdjacentTabID(t *testing.T) {
	p := model.Project{
		Tabs:        []model.Tab{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		ActiveTabID: "b",
	}

	id, ok := adjacentTabID(p, 1)
	assert.True(t, ok)
	assert.Equal(t, "c", id)

	id, ok = adjacentTabID(p, -1)
	assert.True(t, ok)
	assert.Equal(t, "a", id)

	p.ActiveTabID = "c"
	_, ok = adjacentTabID(p, 1)
	assert.False(t, ok, "no wrap past the last tab")

	p.ActiveTabID = "missing"
	_, ok = adjacentTabID(p, 1)
	assert.False(t, ok)
}
