package datastructure

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-leaps/pkg"
)

type Index uint32

const (
	INVALID_SEGMENT_ID Index = ^Index(0)
)

// Segment is one directed piece of a road feature inside a single mwm.
// two segments are equal iff mwm, feature, segment index & direction are equal.
type Segment struct {
	mwmId      pkg.NumMwmId
	featureId  uint32
	segmentIdx uint32
	forward    bool
}

func NewSegment(mwmId pkg.NumMwmId, featureId, segmentIdx uint32, forward bool) Segment {
	return Segment{
		mwmId:      mwmId,
		featureId:  featureId,
		segmentIdx: segmentIdx,
		forward:    forward,
	}
}

func (s Segment) GetMwmId() pkg.NumMwmId {
	return s.mwmId
}

func (s Segment) GetFeatureId() uint32 {
	return s.featureId
}

func (s Segment) GetSegmentIdx() uint32 {
	return s.segmentIdx
}

func (s Segment) IsForward() bool {
	return s.forward
}

// GetPointId returns the index of the front (front=true) or back junction of the segment on its feature.
func (s Segment) GetPointId(front bool) uint32 {
	if s.forward == front {
		return s.segmentIdx + 1
	}
	return s.segmentIdx
}

func (s Segment) Reversed() Segment {
	return NewSegment(s.mwmId, s.featureId, s.segmentIdx, !s.forward)
}

func (s Segment) IsRealSegment() bool {
	return s.mwmId != pkg.FAKE_NUM_MWM_ID
}

func (s Segment) String() string {
	return fmt.Sprintf("Segment(%d, %d, %d, %t)", s.mwmId, s.featureId, s.segmentIdx, s.forward)
}

// JointSegment is a run of consecutive segments of one feature, [startSegmentId, endSegmentId] in travel order.
// equality has the same meaning as for Segment.
type JointSegment struct {
	mwmId          pkg.NumMwmId
	featureId      uint32
	startSegmentId uint32
	endSegmentId   uint32
	forward        bool
}

func NewJointSegment(from, to Segment) JointSegment {
	if from.GetMwmId() != to.GetMwmId() || from.GetFeatureId() != to.GetFeatureId() ||
		from.IsForward() != to.IsForward() {
		panic(fmt.Sprintf("joint segment from %v to %v spans different features", from, to))
	}
	if from.IsForward() {
		if from.GetSegmentIdx() > to.GetSegmentIdx() {
			panic(fmt.Sprintf("forward joint segment from %v to %v is reversed", from, to))
		}
	} else if from.GetSegmentIdx() < to.GetSegmentIdx() {
		panic(fmt.Sprintf("backward joint segment from %v to %v is reversed", from, to))
	}

	return JointSegment{
		mwmId:          from.GetMwmId(),
		featureId:      from.GetFeatureId(),
		startSegmentId: from.GetSegmentIdx(),
		endSegmentId:   to.GetSegmentIdx(),
		forward:        from.IsForward(),
	}
}

func (js JointSegment) GetMwmId() pkg.NumMwmId {
	return js.mwmId
}

func (js JointSegment) GetFeatureId() uint32 {
	return js.featureId
}

func (js JointSegment) GetStartSegmentId() uint32 {
	return js.startSegmentId
}

func (js JointSegment) GetEndSegmentId() uint32 {
	return js.endSegmentId
}

func (js JointSegment) IsForward() bool {
	return js.forward
}

func (js JointSegment) IsRealSegment() bool {
	return js.mwmId != pkg.FAKE_NUM_MWM_ID
}

// GetSegment returns the first (start=true) or the last segment of the run.
func (js JointSegment) GetSegment(start bool) Segment {
	if start {
		return NewSegment(js.mwmId, js.featureId, js.startSegmentId, js.forward)
	}
	return NewSegment(js.mwmId, js.featureId, js.endSegmentId, js.forward)
}

// Segments expands the run into its segments in travel order.
func (js JointSegment) Segments() []Segment {
	var segs []Segment
	if js.forward {
		segs = make([]Segment, 0, int64(js.endSegmentId)-int64(js.startSegmentId)+1)
		for i := int64(js.startSegmentId); i <= int64(js.endSegmentId); i++ {
			segs = append(segs, NewSegment(js.mwmId, js.featureId, uint32(i), true))
		}
		return segs
	}

	segs = make([]Segment, 0, int64(js.startSegmentId)-int64(js.endSegmentId)+1)
	for i := int64(js.startSegmentId); i >= int64(js.endSegmentId); i-- {
		segs = append(segs, NewSegment(js.mwmId, js.featureId, uint32(i), false))
	}
	return segs
}

func (js JointSegment) String() string {
	return fmt.Sprintf("JointSegment(%d, %d, [%d - %d], %t)", js.mwmId, js.featureId,
		js.startSegmentId, js.endSegmentId, js.forward)
}

// ExpandJointSegments flattens a joint path into its segment path.
func ExpandJointSegments(joints []JointSegment) []Segment {
	path := make([]Segment, 0, len(joints))
	for _, js := range joints {
		path = append(path, js.Segments()...)
	}
	return path
}
