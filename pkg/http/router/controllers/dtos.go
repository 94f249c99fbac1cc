package controllers

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-leaps/pkg"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/http/usecases"
)

type segmentDTO struct {
	MwmId      *uint16 `json:"mwm_id" validate:"required"`
	FeatureId  uint32  `json:"feature_id"`
	SegmentIdx uint32  `json:"segment_idx"`
	Forward    bool    `json:"forward"`
}

func (s segmentDTO) toSegment() datastructure.Segment {
	return datastructure.NewSegment(pkg.NumMwmId(*s.MwmId), s.FeatureId, s.SegmentIdx, s.Forward)
}

func newSegmentDTO(s datastructure.Segment) segmentDTO {
	mwmId := uint16(s.GetMwmId())
	return segmentDTO{
		MwmId:      &mwmId,
		FeatureId:  s.GetFeatureId(),
		SegmentIdx: s.GetSegmentIdx(),
		Forward:    s.IsForward(),
	}
}

func toSegments(dtos []segmentDTO) []datastructure.Segment {
	path := make([]datastructure.Segment, len(dtos))
	for i, s := range dtos {
		path[i] = s.toSegment()
	}
	return path
}

type jointDTO struct {
	MwmId           *uint16 `json:"mwm_id" validate:"required"`
	FeatureId       uint32  `json:"feature_id"`
	StartSegmentIdx uint32  `json:"start_segment_idx"`
	EndSegmentIdx   uint32  `json:"end_segment_idx"`
	Forward         bool    `json:"forward"`
}

func toJointSegments(dtos []jointDTO) ([]datastructure.JointSegment, error) {
	joints := make([]datastructure.JointSegment, len(dtos))
	for i, js := range dtos {
		if js.Forward && js.StartSegmentIdx > js.EndSegmentIdx {
			return nil, fmt.Errorf("joint %d: forward joint must have start_segment_idx <= end_segment_idx", i)
		}
		if !js.Forward && js.StartSegmentIdx < js.EndSegmentIdx {
			return nil, fmt.Errorf("joint %d: backward joint must have start_segment_idx >= end_segment_idx", i)
		}
		mwmId := pkg.NumMwmId(*js.MwmId)
		joints[i] = datastructure.NewJointSegment(
			datastructure.NewSegment(mwmId, js.FeatureId, js.StartSegmentIdx, js.Forward),
			datastructure.NewSegment(mwmId, js.FeatureId, js.EndSegmentIdx, js.Forward))
	}
	return joints, nil
}

// processPathRequest carries either a segment path or a joint route.
type processPathRequest struct {
	Path   []segmentDTO `json:"path" validate:"omitempty,max=100000,dive"`
	Joints []jointDTO   `json:"joints" validate:"omitempty,max=100000,dive"`
}

type batchRequest struct {
	Paths [][]segmentDTO `json:"paths" validate:"required,min=1,max=1000,dive,min=1,dive"`
}

type statsResponse struct {
	InputLength     int     `json:"input_length"`
	CycleFreeLength int     `json:"cycle_free_length"`
	OutputLength    int     `json:"output_length"`
	Candidates      int     `json:"candidates"`
	Accepted        int     `json:"accepted"`
	EtaSaved        float64 `json:"eta_saved"`
}

type processPathResponse struct {
	Path           []segmentDTO  `json:"path"`
	EtaBefore      float64       `json:"eta_before"`
	EtaAfter       float64       `json:"eta_after"`
	TotalEta       float64       `json:"total_eta"`
	Distance       float64       `json:"distance"`
	GeometryLength float64       `json:"geometry_length"`
	Polyline       string        `json:"polyline"`
	Stats          statsResponse `json:"stats"`
}

func NewProcessPathResponse(res usecases.RouteResult) processPathResponse {
	path := make([]segmentDTO, len(res.Path))
	for i, s := range res.Path {
		path[i] = newSegmentDTO(s)
	}
	return processPathResponse{
		Path:           path,
		EtaBefore:      res.ETABefore,
		EtaAfter:       res.ETAAfter,
		TotalEta:       res.TotalETA,
		Distance:       res.LengthMeters,
		GeometryLength: res.GeometryMeters,
		Polyline:       res.Polyline,
		Stats: statsResponse{
			InputLength:     res.Stats.InputLength,
			CycleFreeLength: res.Stats.CycleFreeLength,
			OutputLength:    res.Stats.OutputLength,
			Candidates:      res.Stats.Candidates,
			Accepted:        res.Stats.Accepted,
			EtaSaved:        res.Stats.WeightSaved(),
		},
	}
}

type batchItemResponse struct {
	Route *processPathResponse `json:"route,omitempty"`
	Error string               `json:"error,omitempty"`
}

func NewBatchResponse(results []usecases.BatchResult) []batchItemResponse {
	items := make([]batchItemResponse, len(results))
	for i, res := range results {
		if res.Err != nil {
			items[i] = batchItemResponse{Error: res.Err.Error()}
			continue
		}
		route := NewProcessPathResponse(res.Route)
		items[i] = batchItemResponse{Route: &route}
	}
	return items
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
