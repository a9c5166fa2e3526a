package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/adapters/http/mapper"
	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/adapters/memory"
	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/application"
	vactypes "github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/application/types"
	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/domain"
	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubBackend struct {
	mu        sync.Mutex
	record    *domain.Appointment
	updateErr error
}

func (s *stubBackend) FetchAppointment(_ context.Context, id int64) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record == nil || s.record.ID != id {
		return nil, ports.ErrAppointmentNotFound
	}
	rec := *s.record
	return &rec, nil
}

func (s *stubBackend) UpdateStatus(_ context.Context, req vactypes.TransitionRequest) (*vactypes.TransitionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	rec := *s.record
	rec.Status = req.Status
	if req.DiseaseID != nil {
		rec.Disease = &domain.Disease{ID: *req.DiseaseID}
	}
	s.record = &rec
	out := rec
	return &vactypes.TransitionResult{Message: "status updated", Appointment: &out}, nil
}

func (s *stubBackend) Reject(ctx context.Context, id int64, notes string) (*vactypes.TransitionResult, error) {
	n := notes
	return s.UpdateStatus(ctx, vactypes.TransitionRequest{AppointmentID: id, Status: int(domain.StageRejected), Notes: &n})
}

func newTestRouter(backend *stubBackend) *gin.Engine {
	svc := application.NewService(backend, memory.NewSessionStore())
	return NewRouter(NewWorkflowAPI(svc))
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func openTestSession(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/v1/workflow/sessions", gin.H{"appointmentId": 42})
	require.Equal(t, http.StatusCreated, rec.Code)
	var state mapper.SessionStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	require.NotEmpty(t, state.SessionID)
	return state.SessionID
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&stubBackend{record: &domain.Appointment{ID: 42, Status: int(domain.StageProcessing)}})
	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOpenSession(t *testing.T) {
	backend := &stubBackend{record: &domain.Appointment{
		ID:     42,
		Code:   "APT-042",
		Status: int(domain.StageProcessing),
		Pet:    &domain.Pet{ID: 5, Name: "Milo"},
	}}
	router := newTestRouter(backend)

	rec := doJSON(t, router, http.MethodPost, "/v1/workflow/sessions", gin.H{"appointmentId": 42})
	require.Equal(t, http.StatusCreated, rec.Code)

	var state mapper.SessionStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	require.Equal(t, int64(42), state.AppointmentID)
	require.Equal(t, int(domain.StageProcessing), state.PersistedStage)
	require.Equal(t, "processing", state.EffectiveView)
	require.Equal(t, "Milo", state.Appointment.PetName)
	require.Len(t, state.Stages, 6)
}

func TestOpenSession_MissingAppointmentID(t *testing.T) {
	router := newTestRouter(&stubBackend{})
	rec := doJSON(t, router, http.MethodPost, "/v1/workflow/sessions", gin.H{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOpenSession_UnknownAppointment(t *testing.T) {
	router := newTestRouter(&stubBackend{record: &domain.Appointment{ID: 1, Status: int(domain.StageProcessing)}})
	rec := doJSON(t, router, http.MethodPost, "/v1/workflow/sessions", gin.H{"appointmentId": 42})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSession_NotFound(t *testing.T) {
	router := newTestRouter(&stubBackend{record: &domain.Appointment{ID: 42, Status: int(domain.StageProcessing)}})
	rec := doJSON(t, router, http.MethodGet, "/v1/workflow/sessions/no-such-id", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var problem map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.NotEmpty(t, problem["title"])
}

func TestDraftAndTransitionFlow(t *testing.T) {
	backend := &stubBackend{record: &domain.Appointment{ID: 42, Status: int(domain.StageProcessing)}}
	router := newTestRouter(backend)
	id := openTestSession(t, router)

	// Transition is refused while the required draft slot is empty.
	rec := doJSON(t, router, http.MethodPost, "/v1/workflow/sessions/"+id+"/transitions", gin.H{"targetStatus": int(domain.StageConfirmed)})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/v1/workflow/sessions/"+id+"/draft/disease", gin.H{"diseaseId": 7})
	require.Equal(t, http.StatusOK, rec.Code)
	var state mapper.SessionStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	require.Equal(t, int64(7), *state.Draft.DiseaseID)
	require.True(t, state.Stages[0].CanAdvance)

	rec = doJSON(t, router, http.MethodPost, "/v1/workflow/sessions/"+id+"/transitions", gin.H{"targetStatus": int(domain.StageConfirmed)})
	require.Equal(t, http.StatusOK, rec.Code)
	var outcome mapper.TransitionOutcomeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	require.Equal(t, "status updated", outcome.Message)
	require.Equal(t, int(domain.StageConfirmed), outcome.State.PersistedStage)
}

func TestDraftEdit_WrongStage(t *testing.T) {
	backend := &stubBackend{record: &domain.Appointment{ID: 42, Status: int(domain.StageConfirmed)}}
	router := newTestRouter(backend)
	id := openTestSession(t, router)

	rec := doJSON(t, router, http.MethodPut, "/v1/workflow/sessions/"+id+"/draft/disease", gin.H{"diseaseId": 7})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestViewStage(t *testing.T) {
	backend := &stubBackend{record: &domain.Appointment{ID: 42, Status: int(domain.StageCheckedIn)}}
	router := newTestRouter(backend)
	id := openTestSession(t, router)

	rec := doJSON(t, router, http.MethodPut, "/v1/workflow/sessions/"+id+"/view", gin.H{"stage": int(domain.StageConfirmed)})
	require.Equal(t, http.StatusOK, rec.Code)
	var state mapper.SessionStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	require.Equal(t, int(domain.StageConfirmed), *state.ViewStage)
	require.Equal(t, int(domain.StageConfirmed), state.EffectiveStage)

	// Ahead of the persisted stage is a bad request.
	rec = doJSON(t, router, http.MethodPut, "/v1/workflow/sessions/"+id+"/view", gin.H{"stage": int(domain.StagePaid)})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Null stage clears the cursor.
	rec = doJSON(t, router, http.MethodPut, "/v1/workflow/sessions/"+id+"/view", gin.H{"stage": nil})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	require.Nil(t, state.ViewStage)
}

func TestRejectAppointment(t *testing.T) {
	backend := &stubBackend{record: &domain.Appointment{ID: 42, Status: int(domain.StageProcessing)}}
	router := newTestRouter(backend)
	id := openTestSession(t, router)

	rec := doJSON(t, router, http.MethodPost, "/v1/workflow/sessions/"+id+"/rejection", gin.H{"notes": "duplicate booking"})
	require.Equal(t, http.StatusOK, rec.Code)
	var outcome mapper.TransitionOutcomeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	require.Equal(t, int(domain.StageRejected), outcome.State.PersistedStage)
	require.True(t, outcome.State.Terminal)
}

func TestRejectAppointment_AfterCheckIn(t *testing.T) {
	backend := &stubBackend{record: &domain.Appointment{ID: 42, Status: int(domain.StageCheckedIn)}}
	router := newTestRouter(backend)
	id := openTestSession(t, router)

	rec := doJSON(t, router, http.MethodPost, "/v1/workflow/sessions/"+id+"/rejection", gin.H{"notes": "too late"})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitTransition_UpstreamFailure(t *testing.T) {
	backend := &stubBackend{record: &domain.Appointment{ID: 42, Status: int(domain.StageProcessing)}}
	router := newTestRouter(backend)
	id := openTestSession(t, router)

	rec := doJSON(t, router, http.MethodPut, "/v1/workflow/sessions/"+id+"/draft/disease", gin.H{"diseaseId": 7})
	require.Equal(t, http.StatusOK, rec.Code)

	backend.mu.Lock()
	backend.updateErr = errors.New("clinic API error: maintenance window")
	backend.mu.Unlock()

	rec = doJSON(t, router, http.MethodPost, "/v1/workflow/sessions/"+id+"/transitions", gin.H{"targetStatus": int(domain.StageConfirmed)})
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var problem map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Contains(t, problem["detail"], "maintenance window")
}

func TestCloseSession(t *testing.T) {
	backend := &stubBackend{record: &domain.Appointment{ID: 42, Status: int(domain.StageProcessing)}}
	router := newTestRouter(backend)
	id := openTestSession(t, router)

	rec := doJSON(t, router, http.MethodDelete, "/v1/workflow/sessions/"+id, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/v1/workflow/sessions/"+id, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRefreshSession(t *testing.T) {
	backend := &stubBackend{record: &domain.Appointment{ID: 42, Status: int(domain.StageProcessing)}}
	router := newTestRouter(backend)
	id := openTestSession(t, router)

	backend.mu.Lock()
	cp := *backend.record
	cp.Status = int(domain.StageConfirmed)
	backend.record = &cp
	backend.mu.Unlock()

	rec := doJSON(t, router, http.MethodPost, "/v1/workflow/sessions/"+id+"/refresh", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var state mapper.SessionStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	require.Equal(t, int(domain.StageConfirmed), state.PersistedStage)
}
