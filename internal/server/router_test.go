package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/bidboard/internal/bid"
	"github.com/joshu-sajeev/bidboard/internal/dto"
	"github.com/joshu-sajeev/bidboard/internal/job"
	"github.com/joshu-sajeev/bidboard/internal/metrics"
	"github.com/joshu-sajeev/bidboard/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const bidID = "0b7c1d4e-3f0a-4c55-9f1e-8a2d6b9c7e11"

func newTestServer(t *testing.T, health func(context.Context) error) (*gin.Engine, *mocks.JobServiceMock, *mocks.BidServiceMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jobs := new(mocks.JobServiceMock)
	bids := new(mocks.BidServiceMock)
	r := NewRouter(Deps{
		Jobs:    job.NewJobHandler(jobs),
		Bids:    bid.NewBidHandler(bids),
		Metrics: metrics.New(),
		Health:  health,
	})
	t.Cleanup(func() {
		jobs.AssertExpectations(t)
		bids.AssertExpectations(t)
	})
	return r, jobs, bids
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Banner(t *testing.T) {
	r, _, _ := newTestServer(t, nil)

	w := do(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, banner, w.Body.String())
}

func TestRouter_Healthz(t *testing.T) {
	tests := []struct {
		name           string
		health         func(context.Context) error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "no check configured",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"ok"}`,
		},
		{
			name:           "store reachable",
			health:         func(context.Context) error { return nil },
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"ok"}`,
		},
		{
			name:           "store down",
			health:         func(context.Context) error { return errors.New("dial tcp: refused") },
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"error":"store unavailable","kind":"store_unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestServer(t, tt.health)

			w := do(r, http.MethodGet, "/healthz", "")
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestRouter_Metrics(t *testing.T) {
	r, _, _ := newTestServer(t, nil)

	do(r, http.MethodGet, "/", "")
	w := do(r, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `bidboard_http_requests_total{method="GET",route="/",status="200"} 1`)
}

func TestRouter_Preflight(t *testing.T) {
	r, _, _ := newTestServer(t, nil)

	w := do(r, http.MethodOptions, "/add-bid", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Routes(t *testing.T) {
	r, jobs, bids := newTestServer(t, nil)

	jobs.On("ListJobs", mock.Anything).Return([]dto.JobResponseDTO{}, nil).Once()
	jobs.On("ListJobsByBuyer", mock.Anything, "owner@example.com").Return([]dto.JobResponseDTO{}, nil).Once()
	jobs.On("SearchJobs", mock.Anything, mock.AnythingOfType("*dto.JobListQuery")).Return([]dto.JobResponseDTO{}, nil).Once()
	bids.On("ListBids", mock.Anything, "owner@example.com", true).Return([]dto.BidResponseDTO{}, nil).Once()
	bids.On("UpdateStatus", mock.Anything, bidID, "Rejected").Return(&dto.BidResponseDTO{ID: bidID, Status: "Rejected"}, nil).Once()

	tests := []struct {
		method, path, body string
		expectedStatus     int
	}{
		{http.MethodGet, "/jobs", "", http.StatusOK},
		{http.MethodGet, "/jobs/owner@example.com", "", http.StatusOK},
		{http.MethodGet, "/all-jobs?sort=asc", "", http.StatusOK},
		{http.MethodGet, "/categories", "", http.StatusOK},
		{http.MethodGet, "/bids/owner@example.com?buyer=true", "", http.StatusOK},
		{http.MethodPatch, "/bid-status-update/" + bidID, `{"status":"Rejected"}`, http.StatusOK},
		{http.MethodGet, "/job/not-a-uuid", "", http.StatusBadRequest},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := do(r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}
