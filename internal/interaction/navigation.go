package interaction

import (
	"math"

	"github.com/cynageos/calibrate/internal/canvas"
)

// nearestInDirection picks the placement whose center is closest (Manhattan
// distance) to the center of from, among those lying in the direction of k.
func nearestInDirection(placements []canvas.Placement, from string, k Key) (string, bool) {
	var cur *canvas.Placement
	for i := range placements {
		if placements[i].Name == from {
			cur = &placements[i]
			break
		}
	}
	if cur == nil {
		return "", false
	}
	cx, cy := center(*cur)

	best := ""
	bestDist := math.Inf(1)
	for _, p := range placements {
		if p.Name == from {
			continue
		}
		px, py := center(p)

		inDirection := false
		switch k {
		case KeyUp:
			inDirection = py < cy
		case KeyDown:
			inDirection = py > cy
		case KeyLeft:
			inDirection = px < cx
		case KeyRight:
			inDirection = px > cx
		}
		if !inDirection {
			continue
		}

		dist := math.Abs(px-cx) + math.Abs(py-cy)
		if dist < bestDist {
			bestDist = dist
			best = p.Name
		}
	}
	return best, best != ""
}

func center(p canvas.Placement) (float64, float64) {
	return p.Pos.X + p.Extent.X/2, p.Pos.Y + p.Extent.Y/2
}
