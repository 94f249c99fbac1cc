package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lintang-b-s/navigatorx-leaps/pkg"
	da "github.com/lintang-b-s/navigatorx-leaps/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/engine"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/engine/leaps"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/geo"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, rateLimit RateLimit) http.Handler {
	t.Helper()
	e, err := engine.NewEngineDirect(buildTestGraph(t), zap.NewNop(), pkg.LEAPS_MAX_STEP, pkg.LEAPS_WEIGHT_EPS)
	require.NoError(t, err)
	return newHandlerWithEngine(t, rateLimit, e)
}

func newHandlerWithEngine(t *testing.T, rateLimit RateLimit, e usecases.LeapsEngine) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	svc, err := usecases.NewLeapsService(zap.NewNop(), e, metrics.NewLeapsMetrics(reg), 16, 2)
	require.NoError(t, err)

	return NewAPI(zap.NewNop()).Handler(zap.NewNop(), rateLimit, svc, reg)
}

// s0 -> ... -> s6 on feature i of mwm 3, 10s each, with a 5s shortcut s1 -> x -> s5 on feature 100
func buildTestGraph(t *testing.T) *da.SegmentGraph {
	t.Helper()
	b := da.NewSegmentGraphBuilder()
	path := make([]da.Segment, 7)
	for i := range path {
		path[i] = da.NewSegment(3, uint32(i), 0, true)
		_, err := b.AddSegment(path[i], da.NewSegmentInfo(10, 100, geo.NewCoordinate(-7.78, 110.37+float64(i)*0.001),
			geo.NewCoordinate(-7.78, 110.37+float64(i+1)*0.001), false))
		require.NoError(t, err)
		if i > 0 {
			require.NoError(t, b.AddEdge(path[i-1], path[i]))
		}
	}
	x := da.NewSegment(3, 100, 0, true)
	_, err := b.AddSegment(x, da.NewSegmentInfo(5, 300, geo.NewCoordinate(-7.78, 110.372),
		geo.NewCoordinate(-7.78, 110.375), false))
	require.NoError(t, err)
	require.NoError(t, b.AddEdge(path[1], x))
	require.NoError(t, b.AddEdge(x, path[5]))
	return b.Build()
}

func chainJSON(features ...uint32) string {
	parts := make([]string, len(features))
	for i, f := range features {
		parts[i] = `{"mwm_id":3,"feature_id":` + itoa(f) + `,"segment_idx":0,"forward":true}`
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func itoa(v uint32) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func postJSON(h http.Handler, url, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type processResponse struct {
	Data struct {
		Path []struct {
			MwmId     uint16 `json:"mwm_id"`
			FeatureId uint32 `json:"feature_id"`
		} `json:"path"`
		EtaBefore float64 `json:"eta_before"`
		EtaAfter  float64 `json:"eta_after"`
		Polyline  string  `json:"polyline"`
		Stats     struct {
			Accepted int     `json:"accepted"`
			EtaSaved float64 `json:"eta_saved"`
		} `json:"stats"`
	} `json:"data"`
}

func TestProcessEndpoint(t *testing.T) {
	h := newTestHandler(t, RateLimit{})

	rec := postJSON(h, "/api/leaps/process", `{"path":`+chainJSON(0, 1, 2, 3, 4, 5, 6)+`}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp processResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	features := make([]uint32, len(resp.Data.Path))
	for i, s := range resp.Data.Path {
		features[i] = s.FeatureId
		assert.Equal(t, uint16(3), s.MwmId)
	}
	assert.Equal(t, []uint32{0, 1, 100, 5, 6}, features)
	assert.InDelta(t, 60.0, resp.Data.EtaBefore, 1e-9)
	assert.InDelta(t, 35.0, resp.Data.EtaAfter, 1e-9)
	assert.InDelta(t, 25.0, resp.Data.Stats.EtaSaved, 1e-9)
	assert.Equal(t, 1, resp.Data.Stats.Accepted)
	assert.NotEmpty(t, resp.Data.Polyline)
}

func TestProcessEndpointErrors(t *testing.T) {
	h := newTestHandler(t, RateLimit{})

	testCases := []struct {
		name       string
		body       string
		wantStatus int
		wantInBody string
	}{
		{name: "malformed json", body: `{"path":[`, wantStatus: http.StatusBadRequest, wantInBody: "badly-formed"},
		{name: "empty body", body: ``, wantStatus: http.StatusBadRequest, wantInBody: "must not be empty"},
		{name: "unknown field", body: `{"route":[]}`, wantStatus: http.StatusBadRequest, wantInBody: "unknown key"},
		{name: "empty path", body: `{"path":[]}`, wantStatus: http.StatusBadRequest, wantInBody: "validation error"},
		{name: "missing mwm id", body: `{"path":[{"feature_id":1}]}`, wantStatus: http.StatusBadRequest,
			wantInBody: "validation error"},
		{name: "unknown segment", body: `{"path":` + chainJSON(0, 77) + `}`, wantStatus: http.StatusBadRequest,
			wantInBody: "not in the road graph"},
		{name: "disconnected", body: `{"path":` + chainJSON(0, 2) + `}`, wantStatus: http.StatusBadRequest,
			wantInBody: "not connected"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(h, "/api/leaps/process", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantInBody)
		})
	}
}

func TestProcessEndpointJoints(t *testing.T) {
	h := newTestHandler(t, RateLimit{})

	joints := make([]string, 0, 9)
	joints = append(joints, `{"mwm_id":65535,"feature_id":0,"start_segment_idx":0,"end_segment_idx":0,"forward":true}`)
	for f := 0; f < 7; f++ {
		joints = append(joints, `{"mwm_id":3,"feature_id":`+itoa(uint32(f))+`,"start_segment_idx":0,"end_segment_idx":0,"forward":true}`)
	}
	joints = append(joints, `{"mwm_id":65535,"feature_id":0,"start_segment_idx":0,"end_segment_idx":0,"forward":true}`)

	rec := postJSON(h, "/api/leaps/process", `{"joints":[`+strings.Join(joints, ",")+`]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp processResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	features := make([]uint32, len(resp.Data.Path))
	for i, s := range resp.Data.Path {
		features[i] = s.FeatureId
	}
	assert.Equal(t, []uint32{0, 1, 100, 5, 6}, features)

	testCases := []struct {
		name string
		body string
	}{
		{name: "path and joints", body: `{"path":` + chainJSON(0, 1) + `,"joints":[` + joints[1] + `]}`},
		{name: "reversed forward joint",
			body: `{"joints":[{"mwm_id":3,"feature_id":1,"start_segment_idx":2,"end_segment_idx":0,"forward":true}]}`},
		{name: "only fake joints", body: `{"joints":[` + joints[0] + `]}`},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(h, "/api/leaps/process", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

// misconfiguredEngine runs the post-processor with a max step of zero, which breaks its contract.
type misconfiguredEngine struct {
	*engine.Engine
}

func (e misconfiguredEngine) Process(path []da.Segment) ([]da.Segment, leaps.Stats) {
	lp := leaps.NewLeapsPostProcessorWithParams(path, e.GetGraph(), 0, pkg.LEAPS_WEIGHT_EPS)
	return lp.GetProcessedPath(), lp.GetStats()
}

func TestBatchEndpointMisconfiguredEngine(t *testing.T) {
	graph := buildTestGraph(t)
	_, err := engine.NewEngineDirect(graph, zap.NewNop(), 0, pkg.LEAPS_WEIGHT_EPS)
	require.ErrorIs(t, err, engine.ErrInvalidParams)

	e, err := engine.NewEngineDirect(graph, zap.NewNop(), pkg.LEAPS_MAX_STEP, pkg.LEAPS_WEIGHT_EPS)
	require.NoError(t, err)
	h := newHandlerWithEngine(t, RateLimit{}, misconfiguredEngine{e})

	rec := postJSON(h, "/api/leaps/process", `{"path":`+chainJSON(0, 1, 2)+`}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := `{"paths":[` + chainJSON(0, 1, 2, 3, 4, 5, 6) + `,` + chainJSON(0, 3) + `]}`
	rec = postJSON(h, "/api/leaps/batch", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data []struct {
			Route *json.RawMessage `json:"route"`
			Error string           `json:"error"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Nil(t, resp.Data[0].Route)
	assert.Contains(t, resp.Data[0].Error, "max step must be positive")
	assert.Contains(t, resp.Data[1].Error, "not connected")
}

func TestBatchEndpoint(t *testing.T) {
	h := newTestHandler(t, RateLimit{})

	body := `{"paths":[` + chainJSON(0, 1, 2, 3, 4, 5, 6) + `,` + chainJSON(0, 3) + `]}`
	rec := postJSON(h, "/api/leaps/batch", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data []struct {
			Route *struct {
				EtaAfter float64 `json:"eta_after"`
			} `json:"route"`
			Error string `json:"error"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.NotNil(t, resp.Data[0].Route)
	assert.InDelta(t, 35.0, resp.Data[0].Route.EtaAfter, 1e-9)
	assert.Nil(t, resp.Data[1].Route)
	assert.Contains(t, resp.Data[1].Error, "not connected")

	rec = postJSON(h, "/api/leaps/batch", `{"paths":[[]]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMiddlewares(t *testing.T) {
	h := newTestHandler(t, RateLimit{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ".", rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/api/leaps/process", strings.NewReader(`{"path":[]}`))
	req.Header.Set("Content-Type", "text/plain")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	postJSON(h, "/api/leaps/process", `{"path":`+chainJSON(0, 1, 2)+`}`)
	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "navigatorx_leaps_processed_paths_total")
}

func TestRateLimit(t *testing.T) {
	h := newTestHandler(t, RateLimit{Enabled: true, RPS: 0.001, Burst: 1})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(h, "/api/leaps/process", `{"path":`+chainJSON(0, 1)+`}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = postJSON(h, "/api/leaps/process", `{"path":`+chainJSON(0, 1)+`}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

type panickingService struct{}

func (panickingService) ProcessPath(ctx context.Context, path []da.Segment) (usecases.RouteResult, error) {
	panic("max step must be positive")
}

func (panickingService) ProcessJoints(ctx context.Context, joints []da.JointSegment) (usecases.RouteResult, error) {
	panic("max step must be positive")
}

func (panickingService) ProcessBatch(ctx context.Context, paths [][]da.Segment) ([]usecases.BatchResult, error) {
	panic("max step must be positive")
}

func TestRecoverPanic(t *testing.T) {
	h := NewAPI(zap.NewNop()).Handler(zap.NewNop(), RateLimit{}, panickingService{}, prometheus.NewRegistry())

	rec := postJSON(h, "/api/leaps/process", `{"path":`+chainJSON(0)+`}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_SERVER_ERROR")
}

func TestRealIP(t *testing.T) {
	testCases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "x-forwarded-for", headers: map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, want: "10.0.0.1"},
		{name: "x-real-ip", headers: map[string]string{"X-Real-IP": "10.0.0.3"}, want: "10.0.0.3"},
		{name: "true-client-ip wins", headers: map[string]string{"True-Client-IP": "10.0.0.4", "X-Real-IP": "10.0.0.3"},
			want: "10.0.0.4"},
		{name: "invalid", headers: map[string]string{"X-Real-IP": "not-an-ip"}, want: ""},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, realIP(req))
		})
	}
}
