package catalogservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

func TestClient_GetActiveServices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/catalog/services", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "Haircut", "price": 10, "duration_minutes": 30, "is_active": true},
			{"id": 2, "name": "Coloring", "price": 15.5, "duration_minutes": 20, "is_active": false}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, logger.NewNop())

	services, err := c.GetActiveServices(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "Haircut", services[0].Name)
	assert.Equal(t, 30, services[0].DurationMinutes)
	assert.False(t, services[1].IsActive)
}

func TestClient_GetActiveCombos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/catalog/combos", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id": 3, "name": "Cut & Color", "price": 20, "service_ids": [1, 2], "is_active": true}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, logger.NewNop())

	combos, err := c.GetActiveCombos(context.Background())
	require.NoError(t, err)
	require.Len(t, combos, 1)
	assert.Equal(t, []int64{1, 2}, combos[0].ServiceIDs)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusBadGateway, body: "oops", wantErr: ErrUnavailable},
		{name: "bad request", status: http.StatusBadRequest, body: "bad", wantErr: ErrInvalidResponse},
		{name: "broken json", status: http.StatusOK, body: "[{", wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, time.Second, logger.NewNop())
			_, err := c.GetActiveServices(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
