package types

import (
	"fmt"
	"image"
)

// BoundingBox is a pixel rectangle in image coordinates. Right and Bottom are exclusive.
type BoundingBox struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Width returns the horizontal extent of the box
func (b BoundingBox) Width() int {
	return b.Right - b.Left
}

// Height returns the vertical extent of the box
func (b BoundingBox) Height() int {
	return b.Bottom - b.Top
}

// Empty reports whether the box contains no pixels
func (b BoundingBox) Empty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Rect converts the box to an image.Rectangle
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Right, b.Bottom)
}

// BoxFromRect converts an image.Rectangle to a BoundingBox
func BoxFromRect(r image.Rectangle) BoundingBox {
	return BoundingBox{Left: r.Min.X, Top: r.Min.Y, Right: r.Max.X, Bottom: r.Max.Y}
}

// Placement describes where normalized content lands on the canvas
type Placement struct {
	ContentWidth  int     `json:"content_width"`
	ContentHeight int     `json:"content_height"`
	CanvasSize    int     `json:"canvas_size"`
	Margin        int     `json:"margin"`
	Scale         float64 `json:"scale"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	OffsetX       int     `json:"offset_x"`
	OffsetY       int     `json:"offset_y"`
}

// Rect returns the canvas region covered by the resized content
func (p Placement) Rect() image.Rectangle {
	return image.Rect(p.OffsetX, p.OffsetY, p.OffsetX+p.Width, p.OffsetY+p.Height)
}

// Status is the outcome of processing a single file
type Status string

const (
	StatusOK   Status = "ok"
	StatusSkip Status = "skip"
)

// FileResult is the outcome of normalizing one file
type FileResult struct {
	Name      string      `json:"name"`
	Path      string      `json:"path"`
	Status    Status      `json:"status"`
	Reason    string      `json:"reason,omitempty"`
	Content   BoundingBox `json:"content"`
	Placement *Placement  `json:"placement,omitempty"`
	Bytes     int64       `json:"bytes,omitempty"`
}

// String renders the result the way it is reported on the console
func (r FileResult) String() string {
	if r.Status == StatusOK && r.Placement != nil {
		return fmt.Sprintf("[ok] %s -> %dx%d centered (autocropped)", r.Name, r.Placement.CanvasSize, r.Placement.CanvasSize)
	}
	return fmt.Sprintf("[skip] %s: %s", r.Name, r.Reason)
}

// Summary aggregates the results of one directory run
type Summary struct {
	Dir     string       `json:"dir"`
	Results []FileResult `json:"results"`
}

// Count returns the number of results with the given status
func (s *Summary) Count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}
