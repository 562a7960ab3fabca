package update_booking_status

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

	"github.com/m04kA/SMC-SalonBookingService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

type fakeService struct {
	confirmReq *models.ConfirmRequest
	err        error
}

func (f *fakeService) Confirm(_ context.Context, id int64, req *models.ConfirmRequest) (*models.AppointmentResponse, error) {
	f.confirmReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, Status: "confirmed", DepositPaid: req.DepositPaid}, nil
}

func (f *fakeService) Complete(_ context.Context, id int64, _ int64) (*models.AppointmentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, Status: "completed"}, nil
}

func newRouter(svc BookingService) *mux.Router {
	h := NewHandler(svc, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{id}/confirm", h.HandleConfirm).Methods(http.MethodPatch)
	r.HandleFunc("/bookings/{id}/complete", h.HandleComplete).Methods(http.MethodPatch)
	return r
}

func TestHandleConfirm(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()

	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/bookings/5/confirm",
		strings.NewReader(`{"depositPaid": true}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.confirmReq.DepositPaid)
	assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)
}

func TestHandleConfirm_EmptyBody(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()

	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/bookings/5/confirm", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, svc.confirmReq.DepositPaid)
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"invalid id", "/bookings/abc/complete", nil, http.StatusBadRequest},
		{"not found", "/bookings/5/complete", appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"invalid transition", "/bookings/5/complete", fmt.Errorf("%w: pending -> completed", appointments.ErrInvalidTransition), http.StatusConflict},
		{"confirm twice", "/bookings/5/confirm", appointments.ErrInvalidTransition, http.StatusConflict},
		{"internal", "/bookings/5/confirm", appointments.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(&fakeService{err: tt.err}).ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
