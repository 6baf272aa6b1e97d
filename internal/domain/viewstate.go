package domain

import "time"

// DefaultViewStateID names the view state the browser saves and restores.
const DefaultViewStateID = "default"

// ViewState is the persisted part of the chart browser's interaction state.
type ViewState struct {
	ID            string
	ExpandedIDs   []string
	VisibleLayers []int
	Zoom          float64
	HighlightedID string
	UpdatedAt     time.Time
}
