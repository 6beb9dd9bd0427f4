package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAssignmentHandler(&Dependencies{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})

	r := gin.New()
	r.POST("/api/v1/assignments", h.Assign)
	r.PATCH("/api/v1/assignments/:assignment_id", h.Reassign)
	r.DELETE("/api/v1/assignments/:assignment_id", h.Unassign)
	return r
}

func TestAssignRequestValidation(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing required fields",
			body: `{"job_id": "0b84aa4c-9c15-4f2e-9d2a-6a2fb4a1d001"}`,
		},
		{
			name: "malformed job_id",
			body: `{"job_id": "job-1", "vehicle_id": "0b84aa4c-9c15-4f2e-9d2a-6a2fb4a1d001", "assigned_by": "usr-ops"}`,
		},
		{
			name: "malformed vehicle_id",
			body: `{"job_id": "0b84aa4c-9c15-4f2e-9d2a-6a2fb4a1d001", "vehicle_id": "veh-1", "assigned_by": "usr-ops"}`,
		},
		{
			name: "malformed optional driver_id",
			body: `{"job_id": "0b84aa4c-9c15-4f2e-9d2a-6a2fb4a1d001", "vehicle_id": "1c95bb5d-0d26-4a3f-8e3b-7b3fc5b2e002", "driver_id": "drv-1", "assigned_by": "usr-ops"}`,
		},
		{
			name: "malformed optional rep_id",
			body: `{"job_id": "0b84aa4c-9c15-4f2e-9d2a-6a2fb4a1d001", "vehicle_id": "1c95bb5d-0d26-4a3f-8e3b-7b3fc5b2e002", "rep_id": "rep-1", "assigned_by": "usr-ops"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/assignments", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestReassignRequestValidation(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{
			name:   "non-UUID assignment_id",
			target: "/api/v1/assignments/as-1",
			body:   `{"vehicle_id": "0b84aa4c-9c15-4f2e-9d2a-6a2fb4a1d001", "assigned_by": "usr-ops"}`,
		},
		{
			name:   "malformed vehicle_id",
			target: "/api/v1/assignments/2da6cc6e-1e37-4b40-9f4c-8c40d6c3f003",
			body:   `{"vehicle_id": "veh-1", "assigned_by": "usr-ops"}`,
		},
		{
			name:   "malformed driver_id",
			target: "/api/v1/assignments/2da6cc6e-1e37-4b40-9f4c-8c40d6c3f003",
			body:   `{"driver_id": "drv-1", "assigned_by": "usr-ops"}`,
		},
		{
			name:   "malformed rep_id",
			target: "/api/v1/assignments/2da6cc6e-1e37-4b40-9f4c-8c40d6c3f003",
			body:   `{"rep_id": "rep-1", "assigned_by": "usr-ops"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, tt.target, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestUnassignRequestValidation(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/assignments/as-1", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
