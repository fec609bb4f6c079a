package verify

import "github.com/SAP-F-2025/widget-service/internal/models"

// DefaultStage is the square drawing surface of the drag widget, in pixels.
var DefaultStage = models.Size{Width: 600, Height: 600}

// Center returns the midpoint of a box placed with its top-left corner at pos.
func Center(pos models.Point, size models.Size) models.Point {
	return models.Point{X: pos.X + size.Width/2, Y: pos.Y + size.Height/2}
}

// Contains reports whether p lies inside r. Edges count as inside.
func Contains(r models.Rect, p models.Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// FindDropzone returns the first dropzone, in content order, containing center.
func FindDropzone(center models.Point, zones []models.Dropzone) (models.Dropzone, bool) {
	for _, dz := range zones {
		if Contains(dz.Rect(), center) {
			return dz, true
		}
	}
	return models.Dropzone{}, false
}

// SnapPosition centers an item of the given size inside zone. jitter is
// added so a re-snap to the same zone still registers as a move; both
// components must stay well below a pixel.
func SnapPosition(zone models.Dropzone, size models.Size, jitter models.Point) models.Point {
	return models.Point{
		X: zone.X + zone.Width/2 - size.Width/2 + jitter.X,
		Y: zone.Y + zone.Height/2 - size.Height/2 + jitter.Y,
	}
}

// ClampToStage keeps a box of the given size fully on the stage.
func ClampToStage(pos models.Point, size models.Size, stage models.Size) models.Point {
	return models.Point{
		X: clamp(pos.X, 0, stage.Width-size.Width),
		Y: clamp(pos.Y, 0, stage.Height-size.Height),
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ScorePlacements checks every draggable against its designated dropzone.
// positions maps item id to its current top-left corner; a missing entry
// means the item is still at its initial position. Items without a
// correctDropzoneId, or referencing an unknown zone, are never correct.
func ScorePlacements(content *models.DragContent, positions map[string]models.Point) models.DragResult {
	results := make(map[string]bool, len(content.Draggables))
	correct := 0

	for _, item := range content.Draggables {
		pos, ok := positions[item.ID]
		if !ok {
			pos = item.InitialPosition()
		}

		placed := false
		if item.CorrectDropzoneID != "" {
			if zone, found := content.DropzoneByID(item.CorrectDropzoneID); found {
				placed = Contains(zone.Rect(), Center(pos, item.Size()))
			}
		}

		results[item.ID] = placed
		if placed {
			correct++
		}
	}

	return models.DragResult{
		Results: results,
		Score:   models.Score{Correct: correct, Total: len(content.Draggables)},
	}
}
