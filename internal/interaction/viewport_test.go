package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeScrollToCenter(t *testing.T) {
	scroll := ScrollSize{ScrollWidth: 2000, ScrollHeight: 1500, ClientWidth: 800, ClientHeight: 600}
	container := Size{Width: 800, Height: 600}

	cases := []struct {
		name string
		node Rect
		want Point
	}{
		{"centered", Rect{X: 1000, Y: 700, Width: 200, Height: 100}, Point{X: 700, Y: 450}},
		{"clamped at origin", Rect{X: 10, Y: 10, Width: 100, Height: 50}, Point{X: 0, Y: 0}},
		{"clamped at far edge", Rect{X: 1950, Y: 1480, Width: 50, Height: 20}, Point{X: 1200, Y: 900}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ComputeScrollToCenter(tc.node, container, scroll), tc.name)
	}
}

func TestComputeScrollToCenter_ContentSmallerThanClient(t *testing.T) {
	scroll := ScrollSize{ScrollWidth: 300, ScrollHeight: 200, ClientWidth: 800, ClientHeight: 600}
	got := ComputeScrollToCenter(Rect{X: 250, Y: 150, Width: 40, Height: 40}, Size{Width: 800, Height: 600}, scroll)
	assert.Equal(t, Point{}, got)
}

func TestZoomBounds(t *testing.T) {
	s := New(DefaultOptions())
	for i := 0; i < 10; i++ {
		s.ZoomIn()
	}
	assert.Equal(t, MaxZoom, s.Zoom())
	for i := 0; i < 10; i++ {
		s.ZoomOut()
	}
	assert.Equal(t, MinZoom, s.Zoom())
	s.ResetZoom()
	assert.Equal(t, DefaultZoom, s.Zoom())
}

func TestHandleWheel(t *testing.T) {
	s := New(DefaultOptions())
	assert.False(t, s.HandleWheel(WheelEvent{DeltaY: 100}), "plain wheel scrolls, not zooms")
	assert.Equal(t, DefaultZoom, s.Zoom())

	assert.True(t, s.HandleWheel(WheelEvent{DeltaY: 100, Ctrl: true}))
	assert.InDelta(t, 0.9, s.Zoom(), 1e-9)

	assert.True(t, s.HandleWheel(WheelEvent{DeltaY: -100, Meta: true}))
	assert.InDelta(t, 1.0, s.Zoom(), 1e-9)

	s.SetZoom(MinZoom)
	s.HandleWheel(WheelEvent{DeltaY: 1, Ctrl: true})
	assert.Equal(t, MinZoom, s.Zoom())
}

func TestHandleKey_Pan(t *testing.T) {
	s := New(DefaultOptions())
	scroll := ScrollSize{ScrollWidth: 1000, ScrollHeight: 1000, ClientWidth: 850, ClientHeight: 500}

	res := s.HandleKey(KeyEvent{Key: "ArrowRight"}, Point{}, scroll)
	assert.True(t, res.Handled)
	assert.True(t, res.Scrolled)
	assert.Equal(t, Point{X: 100}, res.Target)
	assert.Equal(t, Point{X: 100}, s.Scroll())

	res = s.HandleKey(KeyEvent{Key: "d"}, Point{X: 100}, scroll)
	assert.Equal(t, Point{X: 150}, res.Target, "clamped to scrollWidth-clientWidth")

	res = s.HandleKey(KeyEvent{Key: "W"}, Point{X: 150, Y: 30}, scroll)
	assert.Equal(t, Point{X: 150, Y: 0}, res.Target)

	res = s.HandleKey(KeyEvent{Key: "a"}, Point{}, scroll)
	assert.True(t, res.Handled)
	assert.False(t, res.Scrolled, "already at the left edge")
}

func TestHandleKey_Zoom(t *testing.T) {
	s := New(DefaultOptions())
	scroll := ScrollSize{}

	assert.True(t, s.HandleKey(KeyEvent{Key: "="}, Point{}, scroll).Handled)
	assert.Equal(t, 1.25, s.Zoom())

	s.SetZoom(MaxZoom)
	assert.False(t, s.HandleKey(KeyEvent{Key: "+"}, Point{}, scroll).Handled)

	s.SetZoom(MinZoom)
	assert.False(t, s.HandleKey(KeyEvent{Key: "_"}, Point{}, scroll).Handled)

	s.ResetZoom()
	assert.True(t, s.HandleKey(KeyEvent{Key: "-"}, Point{}, scroll).Handled)
	assert.Equal(t, 0.75, s.Zoom())
}

func TestHandleKey_IgnoredWhileTyping(t *testing.T) {
	s := New(DefaultOptions())
	res := s.HandleKey(KeyEvent{Key: "s", InInput: true}, Point{}, ScrollSize{ScrollHeight: 1000})
	assert.False(t, res.Handled)
	assert.Equal(t, Point{}, s.Scroll())
}

func TestResetView(t *testing.T) {
	s := New(DefaultOptions())
	s.HandleScroll(120, 40)
	s.ZoomIn()
	s.UpdateContainerSize(800, 600)

	s.ResetView()
	assert.Equal(t, Point{}, s.Scroll())
	assert.Equal(t, DefaultZoom, s.Zoom())
	assert.Equal(t, Size{Width: 800, Height: 600}, s.ContainerSize())
}
