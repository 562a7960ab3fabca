package cancel_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

type fakeService struct {
	req *models.CancelRequest
	err error
}

func (f *fakeService) Cancel(_ context.Context, id int64, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, Status: "cancelled"}, nil
}

func serve(svc BookingService, path, body string) *httptest.ResponseRecorder {
	h := NewHandler(svc, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{id}/cancel", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 42))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_WithReason(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/bookings/9/cancel", `{"cancellationReason":"заболел"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "заболел", svc.req.CancellationReason)
	assert.Equal(t, int64(42), svc.req.UserID)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/bookings/9/cancel", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.req.CancellationReason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		err    error
		status int
	}{
		{"invalid id", "/bookings/x/cancel", "", nil, http.StatusBadRequest},
		{"malformed body", "/bookings/9/cancel", `{"cancellationReason":`, nil, http.StatusBadRequest},
		{"not found", "/bookings/9/cancel", "", appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"reason too long", "/bookings/9/cancel", "", appointments.ErrInvalidInput, http.StatusBadRequest},
		{"already completed", "/bookings/9/cancel", "", fmt.Errorf("%w: completed -> cancelled", appointments.ErrInvalidTransition), http.StatusConflict},
		{"internal", "/bookings/9/cancel", "", appointments.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
