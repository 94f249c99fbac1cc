package datastructure

import (
	"math/rand"

	"github.com/lintang-b-s/navigatorx-leaps/pkg"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/geo"
)

type GridGraphParams struct {
	Rows, Cols       int
	MwmId            pkg.NumMwmId
	Origin           geo.Coordinate
	CellSizeKm       float64
	SpeedKmh         float64
	SpeedJitter      float64 // eta of a segment is scaled by a factor in [1, 1+SpeedJitter)
	TrafficLightProb float64
	Seed             int64
}

func DefaultGridGraphParams(rows, cols int) GridGraphParams {
	return GridGraphParams{
		Rows:             rows,
		Cols:             cols,
		Origin:           geo.NewCoordinate(-7.7956, 110.3695),
		CellSizeKm:       0.2,
		SpeedKmh:         40,
		SpeedJitter:      1.0,
		TrafficLightProb: 0.1,
		Seed:             42,
	}
}

// BuildGridGraph builds a two-way grid road network. every road between neighbouring junctions is one feature with one
// segment, travelled forward from the lower junction id to the higher one. a segment entering a junction connects to
// every segment leaving it except its own reverse.
func BuildGridGraph(p GridGraphParams) *SegmentGraph {
	rng := rand.New(rand.NewSource(p.Seed))
	builder := NewSegmentGraphBuilder()

	junction := func(r, c int) int { return r*p.Cols + c }
	coords := make([]geo.Coordinate, p.Rows*p.Cols)
	for r := 0; r < p.Rows; r++ {
		lat, lon := geo.GetDestinationPoint(p.Origin.Lat, p.Origin.Lon, 180, float64(r)*p.CellSizeKm)
		for c := 0; c < p.Cols; c++ {
			cLat, cLon := geo.GetDestinationPoint(lat, lon, 90, float64(c)*p.CellSizeKm)
			coords[junction(r, c)] = geo.NewCoordinate(cLat, cLon)
		}
	}
	trafficLights := make([]bool, len(coords))
	for j := range trafficLights {
		trafficLights[j] = rng.Float64() < p.TrafficLightProb
	}

	// entering[j] / leaving[j]: segments ending / starting at junction j
	entering := make([][]Segment, len(coords))
	leaving := make([][]Segment, len(coords))

	featureId := uint32(0)
	addRoad := func(a, b int) {
		length := geo.S2Distance(coords[a], coords[b])
		for _, forward := range []bool{true, false} {
			from, to := a, b
			if !forward {
				from, to = b, a
			}
			eta := length / (p.SpeedKmh / 3.6) * (1 + rng.Float64()*p.SpeedJitter)
			s := NewSegment(p.MwmId, featureId, 0, forward)
			_, _ = builder.AddSegment(s, NewSegmentInfo(eta, length, coords[from], coords[to], trafficLights[to]))
			leaving[from] = append(leaving[from], s)
			entering[to] = append(entering[to], s)
		}
		featureId++
	}

	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			if c+1 < p.Cols {
				addRoad(junction(r, c), junction(r, c+1))
			}
			if r+1 < p.Rows {
				addRoad(junction(r, c), junction(r+1, c))
			}
		}
	}

	for j := range coords {
		for _, in := range entering[j] {
			for _, out := range leaving[j] {
				if out == in.Reversed() {
					continue
				}
				_ = builder.AddEdge(in, out)
			}
		}
	}

	return builder.Build()
}
