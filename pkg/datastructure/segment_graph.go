package datastructure

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-leaps/pkg"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/geo"
)

type SegmentInfo struct {
	eta          float64 // second, without penalty
	length       float64 // meter
	start, end   geo.Coordinate
	trafficLight bool // traffic light at the end junction
}

func NewSegmentInfo(eta, length float64, start, end geo.Coordinate, trafficLight bool) SegmentInfo {
	return SegmentInfo{
		eta:          eta,
		length:       length,
		start:        start,
		end:          end,
		trafficLight: trafficLight,
	}
}

func (si SegmentInfo) GetETA() float64 {
	return si.eta
}

func (si SegmentInfo) GetLength() float64 {
	return si.length
}

func (si SegmentInfo) GetStart() geo.Coordinate {
	return si.start
}

func (si SegmentInfo) GetEnd() geo.Coordinate {
	return si.end
}

func (si SegmentInfo) HasTrafficLight() bool {
	return si.trafficLight
}

// SegmentGraph is a road graph whose vertices are segments.
// an edge (u, v) means v can be entered right after leaving u.
// adjacency is stored as compressed rows: heads of u are outHeads[firstOut[u]:firstOut[u+1]].
type SegmentGraph struct {
	segments   []Segment
	infos      []SegmentInfo
	segmentIds map[Segment]Index

	firstOut []Index
	outHeads []Index
	firstIn  []Index
	inTails  []Index
}

func (g *SegmentGraph) NumberOfSegments() int {
	return len(g.segments)
}

func (g *SegmentGraph) NumberOfEdges() int {
	return len(g.outHeads)
}

func (g *SegmentGraph) GetSegment(id Index) Segment {
	return g.segments[id]
}

func (g *SegmentGraph) GetSegmentId(s Segment) (Index, bool) {
	id, ok := g.segmentIds[s]
	return id, ok
}

func (g *SegmentGraph) HasSegment(s Segment) bool {
	_, ok := g.segmentIds[s]
	return ok
}

func (g *SegmentGraph) GetSegmentInfo(id Index) SegmentInfo {
	return g.infos[id]
}

func (g *SegmentGraph) GetOutDegree(u Index) Index {
	return g.firstOut[u+1] - g.firstOut[u]
}

func (g *SegmentGraph) GetInDegree(u Index) Index {
	return g.firstIn[u+1] - g.firstIn[u]
}

func (g *SegmentGraph) ForOutEdgesOf(u Index, handle func(head Index)) {
	for e := g.firstOut[u]; e < g.firstOut[u+1]; e++ {
		handle(g.outHeads[e])
	}
}

func (g *SegmentGraph) ForInEdgesOf(v Index, handle func(tail Index)) {
	for e := g.firstIn[v]; e < g.firstIn[v+1]; e++ {
		handle(g.inTails[e])
	}
}

// ForEdgesOf visits the segments reachable from s in one step (isOutgoing) or the segments s is reachable from.
func (g *SegmentGraph) ForEdgesOf(s Segment, isOutgoing bool, handle func(to Segment)) {
	id, ok := g.segmentIds[s]
	if !ok {
		return
	}

	if isOutgoing {
		g.ForOutEdgesOf(id, func(head Index) {
			handle(g.segments[head])
		})
		return
	}
	g.ForInEdgesOf(id, func(tail Index) {
		handle(g.segments[tail])
	})
}

// CalculateETAWithoutPenalty returns the traversal time of s in seconds. unknown segments cost nothing.
func (g *SegmentGraph) CalculateETAWithoutPenalty(s Segment) float64 {
	id, ok := g.segmentIds[s]
	if !ok {
		return 0
	}
	return g.infos[id].eta
}

// CalculateETA returns the time to move from the end of from through to, including the traffic light penalty at the
// junction between them.
func (g *SegmentGraph) CalculateETA(from, to Segment) float64 {
	eta := g.CalculateETAWithoutPenalty(to)
	fromId, ok := g.segmentIds[from]
	if ok && g.infos[fromId].trafficLight {
		eta += pkg.TRAFFIC_LIGHT_ADDITIONAL_WEIGHT_SECOND
	}
	return eta
}

func (g *SegmentGraph) GetJunction(s Segment, front bool) (geo.Coordinate, bool) {
	id, ok := g.segmentIds[s]
	if !ok {
		return geo.Coordinate{}, false
	}
	if front {
		return g.infos[id].end, true
	}
	return g.infos[id].start, true
}

// IsConnected reports whether to can be entered right after from.
func (g *SegmentGraph) IsConnected(from, to Segment) bool {
	fromId, ok := g.segmentIds[from]
	if !ok {
		return false
	}
	toId, ok := g.segmentIds[to]
	if !ok {
		return false
	}

	for e := g.firstOut[fromId]; e < g.firstOut[fromId+1]; e++ {
		if g.outHeads[e] == toId {
			return true
		}
	}
	return false
}

type SegmentGraphBuilder struct {
	segments   []Segment
	infos      []SegmentInfo
	segmentIds map[Segment]Index
	edges      [][2]Index
}

func NewSegmentGraphBuilder() *SegmentGraphBuilder {
	return &SegmentGraphBuilder{
		segments:   make([]Segment, 0),
		infos:      make([]SegmentInfo, 0),
		segmentIds: make(map[Segment]Index),
		edges:      make([][2]Index, 0),
	}
}

func (b *SegmentGraphBuilder) AddSegment(s Segment, info SegmentInfo) (Index, error) {
	if _, ok := b.segmentIds[s]; ok {
		return INVALID_SEGMENT_ID, fmt.Errorf("segment %v already added", s)
	}
	if info.eta < 0 {
		return INVALID_SEGMENT_ID, fmt.Errorf("segment %v has negative eta %f", s, info.eta)
	}

	id := Index(len(b.segments))
	b.segments = append(b.segments, s)
	b.infos = append(b.infos, info)
	b.segmentIds[s] = id
	return id, nil
}

func (b *SegmentGraphBuilder) AddEdge(from, to Segment) error {
	fromId, ok := b.segmentIds[from]
	if !ok {
		return fmt.Errorf("unknown tail segment %v", from)
	}
	toId, ok := b.segmentIds[to]
	if !ok {
		return fmt.Errorf("unknown head segment %v", to)
	}
	b.edges = append(b.edges, [2]Index{fromId, toId})
	return nil
}

func (b *SegmentGraphBuilder) addEdgeById(fromId, toId Index) error {
	n := Index(len(b.segments))
	if fromId >= n || toId >= n {
		return fmt.Errorf("edge (%d, %d) out of range, number of segments: %d", fromId, toId, n)
	}
	b.edges = append(b.edges, [2]Index{fromId, toId})
	return nil
}

// Build packs the added edges into compressed rows. edges of one segment keep their insertion order.
func (b *SegmentGraphBuilder) Build() *SegmentGraph {
	n := len(b.segments)
	m := len(b.edges)

	firstOut := make([]Index, n+1)
	firstIn := make([]Index, n+1)
	for _, e := range b.edges {
		firstOut[e[0]+1]++
		firstIn[e[1]+1]++
	}
	for i := 1; i <= n; i++ {
		firstOut[i] += firstOut[i-1]
		firstIn[i] += firstIn[i-1]
	}

	outHeads := make([]Index, m)
	inTails := make([]Index, m)
	outPos := make([]Index, n)
	inPos := make([]Index, n)
	copy(outPos, firstOut[:n])
	copy(inPos, firstIn[:n])
	for _, e := range b.edges {
		u, v := e[0], e[1]
		outHeads[outPos[u]] = v
		outPos[u]++
		inTails[inPos[v]] = u
		inPos[v]++
	}

	segmentIds := make(map[Segment]Index, n)
	for s, id := range b.segmentIds {
		segmentIds[s] = id
	}

	return &SegmentGraph{
		segments:   append([]Segment(nil), b.segments...),
		infos:      append([]SegmentInfo(nil), b.infos...),
		segmentIds: segmentIds,
		firstOut:   firstOut,
		outHeads:   outHeads,
		firstIn:    firstIn,
		inTails:    inTails,
	}
}
