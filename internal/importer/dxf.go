package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/YardCut/internal/model"
)

// minPieceSide drops slivers left by stray geometry.
const minPieceSide = 0.01

type point struct {
	X, Y float64
}

// outline is a closed polygon traced from pattern geometry.
type outline []point

func (o outline) boundingBox() (min, max point) {
	if len(o) == 0 {
		return point{}, point{}
	}
	min, max = o[0], o[0]
	for _, p := range o[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// area is the absolute shoelace area.
func (o outline) area() float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var a float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += o[i].X*o[j].Y - o[j].X*o[i].Y
	}
	return math.Abs(a) / 2
}

type segment struct {
	start point
	end   point
}

// ImportDXF reads a flat pattern drawing. Every closed shape (LWPOLYLINE,
// CIRCLE, or a closed chain of LINEs and ARCs) becomes one piece sized by
// its bounding box: horizontal is the X extent, vertical the Y extent.
// Open chains such as selvage lines are skipped with a warning.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var shapes []outline
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			o := lwPolylineToOutline(e)
			if len(o) >= 3 {
				shapes = append(shapes, o)
			} else {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			shapes = append(shapes, circleToOutline(e, 64))

		case *entity.Arc:
			if pts := arcToPoints(e, 32); len(pts) >= 2 {
				segments = append(segments, pointsToSegments(pts)...)
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: point{X: e.Start[0], Y: e.Start[1]},
				end:   point{X: e.End[0], Y: e.End[1]},
			})
		}
	}

	closed, open := chainSegments(segments, 0.01)
	shapes = append(shapes, closed...)
	if open > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d open line chain(s)", open))
	}

	if len(shapes) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for _, s := range shapes {
		min, max := s.boundingBox()
		w, h := max.X-min.X, max.Y-min.Y
		if w < minPieceSide || h < minPieceSide {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", w, h))
			continue
		}
		label := fmt.Sprintf("Pattern %d", len(result.Pieces)+1)
		result.Pieces = append(result.Pieces, model.NewPieceSpec(label, model.RoundTo(w, 3), model.RoundTo(h, 3), 1))
	}

	return result
}

// lwPolylineToOutline flattens a polyline, interpolating bulged edges.
func lwPolylineToOutline(lw *entity.LwPolyline) outline {
	var o outline
	for i, v := range lw.Vertices {
		current := point{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) <= 1e-9 {
			o = append(o, current)
			continue
		}

		nv := lw.Vertices[(i+1)%len(lw.Vertices)]
		arc := bulgeArcPoints(current, point{X: nv[0], Y: nv[1]}, bulge, 32)
		// The next vertex is appended on its own iteration
		o = append(o, arc[:len(arc)-1]...)
	}
	return o
}

// bulgeArcPoints samples the arc between p1 and p2. The bulge is the
// tangent of a quarter of the included angle; positive sweeps counter-clockwise.
func bulgeArcPoints(p1, p2 point, bulge float64, n int) outline {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return outline{p1, p2}
	}

	sagitta := math.Abs(bulge) * chord / 2
	radius := (chord*chord/(4*sagitta) + sagitta) / 2

	perpX, perpY := -dy/chord, dx/chord
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	dist := radius - sagitta
	cx := (p1.X+p2.X)/2 + perpX*dist
	cy := (p1.Y+p2.Y)/2 + perpY*dist

	start := math.Atan2(p1.Y-cy, p1.X-cx)
	end := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 && end > start {
		end -= 2 * math.Pi
	}
	if bulge > 0 && end < start {
		end += 2 * math.Pi
	}

	pts := make(outline, 0, n+1)
	for i := 0; i <= n; i++ {
		a := start + float64(i)/float64(n)*(end-start)
		pts = append(pts, point{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)})
	}
	return pts
}

func circleToOutline(c *entity.Circle, n int) outline {
	o := make(outline, n)
	cx, cy, r := c.Center[0], c.Center[1], c.Radius
	for i := range o {
		a := 2 * math.Pi * float64(i) / float64(n)
		o[i] = point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return o
}

func arcToPoints(a *entity.Arc, n int) []point {
	cx, cy, r := a.Circle.Center[0], a.Circle.Center[1], a.Circle.Radius
	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}

	pts := make([]point, n+1)
	for i := range pts {
		t := start + float64(i)/float64(n)*(end-start)
		pts[i] = point{X: cx + r*math.Cos(t), Y: cy + r*math.Sin(t)}
	}
	return pts
}

func pointsToSegments(pts []point) []segment {
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// chainSegments joins segments end to end. It returns the closed chains,
// largest first, and the number of chains that never closed.
func chainSegments(segs []segment, tolerance float64) ([]outline, int) {
	used := make([]bool, len(segs))
	var closed []outline
	open := 0

	for startIdx := range segs {
		if used[startIdx] {
			continue
		}
		used[startIdx] = true
		chain := outline{segs[startIdx].start, segs[startIdx].end}

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, seg := range segs {
				if used[i] {
					continue
				}
				switch {
				case pointsClose(tail, seg.start, tolerance):
					chain = append(chain, seg.end)
				case pointsClose(tail, seg.end, tolerance):
					chain = append(chain, seg.start)
				default:
					continue
				}
				used[i] = true
				extended = true
				break
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			closed = append(closed, chain[:len(chain)-1])
		} else {
			open++
		}
	}

	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].area() > closed[j].area()
	})
	return closed, open
}

func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}
