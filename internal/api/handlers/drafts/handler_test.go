package drafts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	draftsService "github.com/m04kA/SMC-SalonBookingService/internal/service/drafts"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

type fakeService struct {
	saved   *domain.BookingDraft
	stored  map[string]*domain.BookingDraft
	saveErr error
}

func newFakeService() *fakeService {
	return &fakeService{stored: map[string]*domain.BookingDraft{}}
}

func (f *fakeService) Save(_ context.Context, d *domain.BookingDraft) (*domain.BookingDraft, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if d.SessionKey == "" {
		d.SessionKey = "generated-key"
	}
	f.saved = d
	f.stored[d.SessionKey] = d
	return d, nil
}

func (f *fakeService) Load(_ context.Context, key string) (*domain.BookingDraft, error) {
	d, ok := f.stored[key]
	if !ok {
		return nil, draftsService.ErrDraftNotFound
	}
	return d, nil
}

func (f *fakeService) Clear(_ context.Context, key string) error {
	delete(f.stored, key)
	return nil
}

func (f *fakeService) TTL() time.Duration { return time.Hour }

func newRouter(svc DraftService) *mux.Router {
	h := NewHandler(svc, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/drafts", h.HandleCreate).Methods(http.MethodPost)
	r.HandleFunc("/drafts/{sessionKey}", h.HandleGet).Methods(http.MethodGet)
	r.HandleFunc("/drafts/{sessionKey}", h.HandleUpdate).Methods(http.MethodPut)
	r.HandleFunc("/drafts/{sessionKey}", h.HandleDelete).Methods(http.MethodDelete)
	return r
}

func TestHandleCreate(t *testing.T) {
	svc := newFakeService()
	rec := httptest.NewRecorder()

	body := `{"customerPhone":"+79001234567","items":[{"offeringId":3,"kind":"combo"}]}`
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/drafts", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.saved)
	assert.Equal(t, []domain.CartItem{{OfferingID: 3, Kind: domain.OfferingCombo}}, svc.saved.Items)
	assert.Contains(t, rec.Body.String(), `"sessionKey":"generated-key"`)
	assert.Contains(t, rec.Body.String(), `"expiresInSeconds":3600`)
}

func TestHandleUpdate_UsesPathKey(t *testing.T) {
	svc := newFakeService()
	rec := httptest.NewRecorder()

	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/drafts/abc-123",
		strings.NewReader(`{"items":[]}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", svc.saved.SessionKey)
}

func TestHandleGetAndDelete(t *testing.T) {
	svc := newFakeService()
	svc.stored["abc"] = &domain.BookingDraft{SessionKey: "abc", Items: []domain.CartItem{}}
	router := newRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/drafts/abc", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sessionKey":"abc"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/drafts/abc", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/drafts/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSave_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"malformed body", `{"items":`, nil, http.StatusBadRequest},
		{"unknown field", `{"items":[],"foo":1}`, nil, http.StatusBadRequest},
		{"invalid draft", `{"items":[]}`, draftsService.ErrInvalidInput, http.StatusBadRequest},
		{"store failure", `{"items":[]}`, draftsService.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFakeService()
			svc.saveErr = tt.err
			rec := httptest.NewRecorder()

			newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/drafts", strings.NewReader(tt.body)))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
