package export

import "image"

// Rect is a source sub-rectangle to sample. Coordinates may be fractional;
// they are rounded only when handed to the drawing primitive.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Bounds converts the rectangle to integer pixel bounds for imaging.Crop.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(round(r.X), round(r.Y), round(r.X+r.Width), round(r.Y+r.Height))
}

// CenterCropRect computes the largest source sub-rectangle with the target
// aspect ratio, centered within the source. Margins discarded on opposing
// edges are always symmetric.
func CenterCropRect(srcW, srcH, dstW, dstH float64) Rect {
	sourceAR := srcW / srcH
	targetAR := dstW / dstH

	switch {
	case sourceAR > targetAR:
		// Source is relatively wider: trim left/right, keep full height.
		w := srcH * targetAR
		return Rect{X: (srcW - w) / 2, Y: 0, Width: w, Height: srcH}
	case sourceAR < targetAR:
		// Source is relatively taller: trim top/bottom, keep full width.
		h := srcW / targetAR
		return Rect{X: 0, Y: (srcH - h) / 2, Width: srcW, Height: h}
	default:
		return Rect{Width: srcW, Height: srcH}
	}
}
