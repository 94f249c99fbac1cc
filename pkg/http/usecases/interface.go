package usecases

import (
	"github.com/lintang-b-s/navigatorx-leaps/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/engine/leaps"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/geo"
)

type LeapsEngine interface {
	ValidatePath(path []datastructure.Segment) error
	Process(path []datastructure.Segment) ([]datastructure.Segment, leaps.Stats)
	JointsToPath(joints []datastructure.JointSegment) []datastructure.Segment
	RouteETA(path []datastructure.Segment) float64
	RouteLength(path []datastructure.Segment) float64
	RouteGeometry(path []datastructure.Segment) []geo.Coordinate
}

type Metrics interface {
	ObserveProcessed(etaSaved float64, accepted int)
	ObserveRejected()
	ObserveCacheHit()
}
