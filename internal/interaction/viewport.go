package interaction

import (
	"math"
	"strings"
)

// Point is a scroll offset.
type Point struct {
	X, Y float64
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Rect is a node's position in chart coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// ScrollSize describes the scrollable container: the full content size
// and the visible client area.
type ScrollSize struct {
	ScrollWidth, ScrollHeight float64
	ClientWidth, ClientHeight float64
}

// MaxScroll returns the largest valid scroll offset on each axis.
func (s ScrollSize) MaxScroll() Point {
	return Point{
		X: math.Max(0, s.ScrollWidth-s.ClientWidth),
		Y: math.Max(0, s.ScrollHeight-s.ClientHeight),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// ComputeScrollToCenter returns the scroll offset that centers node within
// a container of the given size, clamped to [0, scroll-client] per axis.
func ComputeScrollToCenter(node Rect, container Size, scroll ScrollSize) Point {
	targetX := node.X - container.Width/2 + node.Width/2
	targetY := node.Y - container.Height/2 + node.Height/2
	bound := scroll.MaxScroll()
	return Point{
		X: clamp(targetX, 0, bound.X),
		Y: clamp(targetY, 0, bound.Y),
	}
}

// ── Zoom ─────────────────────────────────────────────────────────────────────

// Zoom returns the current zoom factor.
func (s *State) Zoom() float64 { return s.zoom }

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom].
func (s *State) SetZoom(z float64) { s.zoom = clamp(z, MinZoom, MaxZoom) }

// ZoomIn steps the zoom up by ZoomStep.
func (s *State) ZoomIn() { s.SetZoom(s.zoom + ZoomStep) }

// ZoomOut steps the zoom down by ZoomStep.
func (s *State) ZoomOut() { s.SetZoom(s.zoom - ZoomStep) }

// ResetZoom restores DefaultZoom.
func (s *State) ResetZoom() { s.zoom = DefaultZoom }

// WheelEvent carries the fields of a wheel gesture the chart cares about.
type WheelEvent struct {
	DeltaY float64
	Ctrl   bool
	Meta   bool
}

// HandleWheel zooms by WheelZoomStep when a ctrl or meta modifier is held.
// It reports whether the event was consumed.
func (s *State) HandleWheel(ev WheelEvent) bool {
	if !ev.Ctrl && !ev.Meta {
		return false
	}
	delta := WheelZoomStep
	if ev.DeltaY > 0 {
		delta = -WheelZoomStep
	}
	s.SetZoom(s.zoom + delta)
	return true
}

// ── Scroll ───────────────────────────────────────────────────────────────────

// Scroll returns the last known scroll offset.
func (s *State) Scroll() Point { return Point{X: s.scrollLeft, Y: s.scrollTop} }

// HandleScroll records the container's scroll offset.
func (s *State) HandleScroll(top, left float64) {
	s.scrollTop = top
	s.scrollLeft = left
}

// UpdateContainerSize records the container's client size.
func (s *State) UpdateContainerSize(width, height float64) {
	s.containerWidth = width
	s.containerHeight = height
}

// ContainerSize returns the last recorded client size.
func (s *State) ContainerSize() Size {
	return Size{Width: s.containerWidth, Height: s.containerHeight}
}

// ResetView scrolls back to the origin and resets zoom.
func (s *State) ResetView() {
	s.scrollTop = 0
	s.scrollLeft = 0
	s.zoom = DefaultZoom
}

// KeyEvent is a key press. InInput is set while focus is in a text field,
// in which case the chart ignores the key.
type KeyEvent struct {
	Key     string
	InInput bool
}

// KeyResult reports what HandleKey did.
type KeyResult struct {
	// Handled means the caller should suppress the key's default action.
	Handled bool
	// Scrolled means Target differs from the scroll offset passed in.
	Scrolled bool
	Target   Point
}

// HandleKey applies the pan and zoom shortcuts: arrows or WASD pan by
// PanDistance within the scroll bounds, + or = zoom in, - or _ zoom out.
// The new scroll offset is recorded when the key pans.
func (s *State) HandleKey(ev KeyEvent, current Point, scroll ScrollSize) KeyResult {
	res := KeyResult{Target: current}
	if ev.InInput {
		return res
	}

	bound := scroll.MaxScroll()
	pan := s.opts.PanDistance

	switch strings.ToLower(ev.Key) {
	case "arrowleft", "left", "a":
		res.Target.X = clamp(current.X-pan, 0, bound.X)
		res.Handled = true
	case "arrowright", "right", "d":
		res.Target.X = clamp(current.X+pan, 0, bound.X)
		res.Handled = true
	case "arrowup", "up", "w":
		res.Target.Y = clamp(current.Y-pan, 0, bound.Y)
		res.Handled = true
	case "arrowdown", "down", "s":
		res.Target.Y = clamp(current.Y+pan, 0, bound.Y)
		res.Handled = true
	case "+", "=":
		if s.zoom < MaxZoom {
			s.ZoomIn()
			res.Handled = true
		}
	case "-", "_":
		if s.zoom > MinZoom {
			s.ZoomOut()
			res.Handled = true
		}
	}

	if res.Handled && res.Target != current {
		res.Scrolled = true
		s.HandleScroll(res.Target.Y, res.Target.X)
	}
	return res
}
