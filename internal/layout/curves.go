package layout

import (
	"math"
	"sort"

	"ideatlas/internal/model"
	"ideatlas/pkg/geometry"
)

const (
	// ConnectionOffsetStep separates the rendered midpoints of parallel
	// connections (same unordered pair) so none of them overlap.
	ConnectionOffsetStep = 25.0

	// curveDip is how far below the lower endpoint a lone curve sags.
	curveDip = 40.0

	// selfLoopSpread shapes the degenerate self-reference loop.
	selfLoopSpread = 30.0
)

// PlacedConnection pairs a connection with its frame geometry.
type PlacedConnection struct {
	Conn  model.Connection
	Curve geometry.CubicBezier
}

// ConnectionCurves builds the cubic Bézier for every connection whose
// endpoints are present in the table. Connections sharing an unordered pair
// fan out symmetrically around the unoffset baseline: the n curves' t=0.5
// midpoints land exactly ConnectionOffsetStep apart. Connections with a
// filtered-out endpoint are skipped; a self-reference renders as a small
// loop rather than failing.
func ConnectionCurves(conns []model.Connection, t *Table) []PlacedConnection {
	groups := make(map[string][]model.Connection)
	var keys []string
	for _, c := range conns {
		if _, ok := t.Thinkers[c.FromID]; !ok {
			continue
		}
		if _, ok := t.Thinkers[c.ToID]; !ok {
			continue
		}
		k := pairKey(c.FromID, c.ToID)
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], c)
	}
	sort.Strings(keys)

	var out []PlacedConnection
	for _, k := range keys {
		group := groups[k]
		n := len(group)
		for i, c := range group {
			offset := (float64(i) - float64(n-1)/2) * ConnectionOffsetStep
			out = append(out, PlacedConnection{
				Conn:  c,
				Curve: connectionCurve(c, t, offset),
			})
		}
	}
	return out
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "\x00" + b
}

// connectionCurve builds one curve dipping below the lower endpoint.
// A midpoint of a cubic is (P0 + 3P1 + 3P2 + P3)/8, so shifting both
// control points by 4/3 of the desired offset moves the midpoint by
// exactly that offset.
func connectionCurve(c model.Connection, t *Table, offset float64) geometry.CubicBezier {
	from := t.Thinkers[c.FromID].Center()
	to := t.Thinkers[c.ToID].Center()

	if c.FromID == c.ToID {
		return geometry.CubicBezier{
			P0: from,
			P1: geometry.Point2D{X: from.X - selfLoopSpread, Y: from.Y + curveDip + offset},
			P2: geometry.Point2D{X: from.X + selfLoopSpread, Y: from.Y + curveDip + offset},
			P3: to,
		}
	}

	ctrlY := math.Max(from.Y, to.Y) + curveDip + offset*4/3
	dx := to.X - from.X
	return geometry.CubicBezier{
		P0: from,
		P1: geometry.Point2D{X: from.X + dx/3, Y: ctrlY},
		P2: geometry.Point2D{X: from.X + 2*dx/3, Y: ctrlY},
		P3: to,
	}
}
