package controllers

import (
	"context"

	"github.com/lintang-b-s/navigatorx-leaps/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/http/usecases"
)

type LeapsService interface {
	ProcessPath(ctx context.Context, path []datastructure.Segment) (usecases.RouteResult, error)
	ProcessJoints(ctx context.Context, joints []datastructure.JointSegment) (usecases.RouteResult, error)
	ProcessBatch(ctx context.Context, paths [][]datastructure.Segment) ([]usecases.BatchResult, error)
}
