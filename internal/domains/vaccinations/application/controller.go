package application

import (
	"context"
	"sync"
	"sync/atomic"

	vactypes "github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/application/types"
	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/domain"
	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/ports"
)

// Controller carries a single appointment through the vaccination workflow:
// intake, confirmation, check-in, injection, payment, completion. It owns the
// draft store for one open view and reconciles three sources of truth: the
// server-held status, the locally accumulated draft, and the user-navigable
// review cursor.
type Controller struct {
	sessionID     string
	appointmentID int64
	backend       ports.ClinicBackend
	store         *DraftStore

	// fetchSeq numbers every fetch so reconciliation is last-fetch-wins when
	// responses arrive out of order.
	fetchSeq atomic.Uint64

	mu      sync.Mutex
	record  *domain.Appointment
	pending bool
}

// NewController opens a workflow view over the given appointment. The record
// is not fetched yet; call Load before reading state.
func NewController(sessionID string, appointmentID int64, backend ports.ClinicBackend) *Controller {
	return &Controller{
		sessionID:     sessionID,
		appointmentID: appointmentID,
		backend:       backend,
		store:         NewDraftStore(),
	}
}

// SessionID returns the view session identifier.
func (c *Controller) SessionID() string { return c.sessionID }

// Store exposes the draft store for the stage forms.
func (c *Controller) Store() *DraftStore { return c.store }

// Load fetches the appointment record and reconciles the draft against it.
// A response superseded by a later fetch is discarded.
func (c *Controller) Load(ctx context.Context) error {
	if c.appointmentID == 0 {
		return ErrNoAppointment
	}
	seq := c.fetchSeq.Add(1)
	rec, err := c.backend.FetchAppointment(ctx, c.appointmentID)
	if err != nil {
		return err
	}
	if c.store.Reconcile(rec, seq) {
		c.mu.Lock()
		c.record = rec
		c.mu.Unlock()
	}
	return nil
}

// Submit builds the minimal payload for the stage being left and asks the
// backend to advance the appointment to target. On success the draft is
// reconciled against the refreshed record and the review cursor snaps back to
// following the persisted stage. On failure nothing local changes, so the
// user can retry without re-entering data.
func (c *Controller) Submit(ctx context.Context, target domain.Stage) (string, error) {
	leaving, err := c.beginTransition()
	if err != nil {
		return "", err
	}
	defer c.endTransition()

	next, ok := leaving.Next()
	if !ok || next != target {
		return "", ErrInvalidTarget
	}
	draft := c.store.Snapshot()
	if !domain.CanAdvance(leaving, draft) {
		return "", ErrValidatorFailed
	}

	result, err := c.backend.UpdateStatus(ctx, buildTransition(c.appointmentID, leaving, target, draft))
	if err != nil {
		return "", err
	}
	c.adoptResult(ctx, result, target)
	c.store.ClearViewStage()
	return result.Message, nil
}

// Reject submits the distinguished transition to the rejected terminal state
// carrying free-text notes. Allowed only before check-in; on success the
// whole draft is discarded.
func (c *Controller) Reject(ctx context.Context, notes string) (string, error) {
	leaving, err := c.beginTransition()
	if err != nil {
		return "", err
	}
	defer c.endTransition()

	if !leaving.Rejectable() {
		return "", ErrNotRejectable
	}
	result, err := c.backend.Reject(ctx, c.appointmentID, notes)
	if err != nil {
		return "", err
	}
	c.store.Reset()
	seq := c.fetchSeq.Add(1)
	c.store.AdoptPersisted(domain.StageRejected, seq)
	c.mu.Lock()
	if result.Appointment != nil {
		c.record = result.Appointment
	}
	c.mu.Unlock()
	return result.Message, nil
}

// State projects the session for rendering: cursors, draft, and per-stage
// edit-gate and validator verdicts, recomputed from current data on every
// call.
func (c *Controller) State() *vactypes.SessionState {
	persisted := c.store.PersistedStage()
	view := c.store.ViewStage()
	draft := c.store.Snapshot()
	effective := c.store.EffectiveStage()

	stages := make([]vactypes.StageState, 0, len(domain.ForwardStages()))
	for _, stage := range domain.ForwardStages() {
		stages = append(stages, vactypes.StageState{
			Stage:      stage,
			Name:       stage.String(),
			Editable:   c.store.CanEdit(stage),
			CanAdvance: domain.CanAdvance(stage, draft),
		})
	}

	c.mu.Lock()
	rec := c.record
	pending := c.pending
	c.mu.Unlock()

	return &vactypes.SessionState{
		SessionID:      c.sessionID,
		AppointmentID:  c.appointmentID,
		Appointment:    rec,
		PersistedStage: persisted,
		ViewStage:      view,
		EffectiveStage: effective,
		EffectiveView:  effective.String(),
		Draft:          draft,
		Stages:         stages,
		Pending:        pending,
		Terminal:       persisted.Terminal(),
	}
}

// beginTransition runs the shared guards and flips the single in-flight flag
// that keeps a second transition from being issued concurrently.
func (c *Controller) beginTransition() (domain.Stage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.appointmentID == 0 || c.record == nil {
		return 0, ErrNoAppointment
	}
	if c.pending {
		return 0, ErrTransitionPending
	}
	leaving := c.store.PersistedStage()
	if leaving.Terminal() {
		return 0, ErrSessionTerminal
	}
	c.pending = true
	return leaving, nil
}

func (c *Controller) endTransition() {
	c.mu.Lock()
	c.pending = false
	c.mu.Unlock()
}

// adoptResult reconciles against the record returned with the transition
// response, refetching when the backend sent none. If even the refetch fails
// the persisted cursor still advances; the next refresh will converge the
// rest.
func (c *Controller) adoptResult(ctx context.Context, result *vactypes.TransitionResult, target domain.Stage) {
	seq := c.fetchSeq.Add(1)
	rec := result.Appointment
	if rec == nil {
		fetched, err := c.backend.FetchAppointment(ctx, c.appointmentID)
		if err != nil {
			c.store.AdoptPersisted(target, seq)
			return
		}
		rec = fetched
	}
	if c.store.Reconcile(rec, seq) {
		c.mu.Lock()
		c.record = rec
		c.mu.Unlock()
	}
}

// buildTransition assembles the partial update for the stage being left.
// Finalization summarizes the whole record, so everything goes along.
func buildTransition(appointmentID int64, leaving, target domain.Stage, d domain.Draft) vactypes.TransitionRequest {
	req := vactypes.TransitionRequest{
		AppointmentID: appointmentID,
		Status:        int(target),
	}
	switch leaving {
	case domain.StageProcessing:
		req.DiseaseID = d.DiseaseID
	case domain.StageConfirmed:
		req.VetID = d.Vet.VetID
		req.Temperature = optString(d.Health.Temperature)
		req.HeartRate = optString(d.Health.HeartRate)
		req.GeneralCondition = optString(d.Health.GeneralCondition)
		req.Others = optString(d.Health.Others)
	case domain.StageCheckedIn:
		req.VaccineBatchID = d.VaccineBatchID
		req.Reaction = optString(d.Result.Reaction)
		req.Notes = optString(d.Result.Notes)
		req.AppointmentDate = optString(d.Result.AppointmentDate)
	case domain.StagePaid:
		req.VetID = d.Vet.VetID
		req.DiseaseID = d.DiseaseID
		req.VaccineBatchID = d.VaccineBatchID
		req.Temperature = optString(d.Health.Temperature)
		req.HeartRate = optString(d.Health.HeartRate)
		req.GeneralCondition = optString(d.Health.GeneralCondition)
		req.Others = optString(d.Health.Others)
		req.Reaction = optString(d.Result.Reaction)
		req.Notes = optString(d.Result.Notes)
		req.AppointmentDate = optString(d.Result.AppointmentDate)
	}
	return req
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
