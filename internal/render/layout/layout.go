// Package layout splits and positions screen rectangles. Every function
// normalizes its input and clamps sizes so results stay inside rect.
package layout

import "image"

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// Inset shrinks rect by px on every side. It never turns rect inside out.
func Inset(rect image.Rectangle, px int) image.Rectangle {
	rect = Normalize(rect)
	if px <= 0 {
		return rect
	}
	dx := clamp(px, 0, rect.Dx()/2)
	dy := clamp(px, 0, rect.Dy()/2)
	return image.Rect(rect.Min.X+dx, rect.Min.Y+dy, rect.Max.X-dx, rect.Max.Y-dy)
}

// SplitVertical cuts rect into a left part leftPx wide and the rest.
func SplitVertical(rect image.Rectangle, leftPx int) (left, right image.Rectangle) {
	rect = Normalize(rect)
	x := rect.Min.X + clamp(leftPx, 0, rect.Dx())
	return image.Rect(rect.Min.X, rect.Min.Y, x, rect.Max.Y), image.Rect(x, rect.Min.Y, rect.Max.X, rect.Max.Y)
}

// SplitHorizontal cuts rect into a top part topPx high and the rest.
func SplitHorizontal(rect image.Rectangle, topPx int) (top, bottom image.Rectangle) {
	rect = Normalize(rect)
	y := rect.Min.Y + clamp(topPx, 0, rect.Dy())
	return image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, y), image.Rect(rect.Min.X, y, rect.Max.X, rect.Max.Y)
}

// AnchorTopLeft returns a w×h rectangle in the top-left corner of rect.
func AnchorTopLeft(rect image.Rectangle, w, h int) image.Rectangle {
	rect = Normalize(rect)
	w = clamp(w, 0, rect.Dx())
	h = clamp(h, 0, rect.Dy())
	return image.Rectangle{Min: rect.Min, Max: rect.Min.Add(image.Pt(w, h))}
}

// FitSquare returns the largest square in the top-left corner of rect.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = Normalize(rect)
	side := min(rect.Dx(), rect.Dy())
	return AnchorTopLeft(rect, side, side)
}

// FitAspect returns the largest w:h rectangle centred in rect.
func FitAspect(rect image.Rectangle, w, h int) image.Rectangle {
	rect = Normalize(rect)
	if w <= 0 || h <= 0 || rect.Empty() {
		return image.Rectangle{Min: rect.Min, Max: rect.Min}
	}
	fitW, fitH := rect.Dx(), rect.Dx()*h/w
	if fitH > rect.Dy() {
		fitW, fitH = rect.Dy()*w/h, rect.Dy()
	}
	return Center(rect, fitW, fitH)
}

// Center returns a w×h rectangle centred in rect, clamped to it.
func Center(rect image.Rectangle, w, h int) image.Rectangle {
	inner := AnchorTopLeft(rect, w, h)
	rect = Normalize(rect)
	return inner.Add(image.Pt((rect.Dx()-inner.Dx())/2, (rect.Dy()-inner.Dy())/2))
}
