package application

import (
	"context"

	"github.com/google/uuid"

	vactypes "github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/application/types"
	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/domain"
	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/ports"
)

// SessionStore keeps the open workflow controllers, one per appointment
// detail view. Declared on the consumer side; the memory adapter implements
// it.
type SessionStore interface {
	Save(ctx context.Context, id string, ctrl *Controller) error
	Get(ctx context.Context, id string) (*Controller, bool)
	Delete(ctx context.Context, id string) error
}

// Service orchestrates the vaccination workflow use cases across view
// sessions. Each session owns its draft store and cursors; the service only
// routes operations to the right controller and applies the edit gate before
// any draft mutation.
type Service struct {
	backend  ports.ClinicBackend
	sessions SessionStore
	newID    func() string
}

// Option configures optional Service dependencies.
type Option func(*Service)

// WithIDGenerator overrides session id generation, mainly for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewService wires the workflow service with its dependencies.
func NewService(backend ports.ClinicBackend, sessions SessionStore, opts ...Option) *Service {
	s := &Service{
		backend:  backend,
		sessions: sessions,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// OpenSession fetches the appointment, reconciles a fresh draft against it,
// and registers the view session.
func (s *Service) OpenSession(ctx context.Context, input vactypes.OpenSessionInput) (*vactypes.SessionState, error) {
	if input.AppointmentID <= 0 {
		return nil, ErrNoAppointment
	}
	ctrl := NewController(s.newID(), input.AppointmentID, s.backend)
	if err := ctrl.Load(ctx); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, ctrl.SessionID(), ctrl); err != nil {
		return nil, err
	}
	return ctrl.State(), nil
}

// GetSession returns the current projection of an open session.
func (s *Service) GetSession(ctx context.Context, sessionID string) (*vactypes.SessionState, error) {
	ctrl, err := s.controller(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return ctrl.State(), nil
}

// CloseSession discards the view and all its draft state.
func (s *Service) CloseSession(ctx context.Context, sessionID string) error {
	ctrl, err := s.controller(ctx, sessionID)
	if err != nil {
		return err
	}
	ctrl.Store().Reset()
	return s.sessions.Delete(ctx, sessionID)
}

// RefreshSession refetches the record and reconciles the draft. Also the
// entry point for payment status updates: the payment collaborator writes the
// record server-side, the session just picks it up.
func (s *Service) RefreshSession(ctx context.Context, sessionID string) (*vactypes.SessionState, error) {
	ctrl, err := s.controller(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := ctrl.Load(ctx); err != nil {
		return nil, err
	}
	return ctrl.State(), nil
}

// SetDisease records the disease choice on the intake stage.
func (s *Service) SetDisease(ctx context.Context, sessionID string, input vactypes.DiseaseInput) (*vactypes.SessionState, error) {
	ctrl, err := s.editable(ctx, sessionID, domain.StageProcessing)
	if err != nil {
		return nil, err
	}
	ctrl.Store().SetDisease(input.DiseaseID)
	return ctrl.State(), nil
}

// SetVetSelection records the practitioner-and-slot choice on the confirmed
// stage.
func (s *Service) SetVetSelection(ctx context.Context, sessionID string, input vactypes.VetSelectionInput) (*vactypes.SessionState, error) {
	ctrl, err := s.editable(ctx, sessionID, domain.StageConfirmed)
	if err != nil {
		return nil, err
	}
	ctrl.Store().SetVetSelection(input)
	return ctrl.State(), nil
}

// SetHealth records the check-in vitals, captured while the appointment is
// being confirmed for check-in.
func (s *Service) SetHealth(ctx context.Context, sessionID string, input vactypes.HealthInput) (*vactypes.SessionState, error) {
	ctrl, err := s.editable(ctx, sessionID, domain.StageConfirmed)
	if err != nil {
		return nil, err
	}
	ctrl.Store().SetHealth(input)
	return ctrl.State(), nil
}

// SetResult records the injection outcome on the checked-in stage.
func (s *Service) SetResult(ctx context.Context, sessionID string, input vactypes.ResultInput) (*vactypes.SessionState, error) {
	ctrl, err := s.editable(ctx, sessionID, domain.StageCheckedIn)
	if err != nil {
		return nil, err
	}
	ctrl.Store().SetResult(input)
	return ctrl.State(), nil
}

// SetVaccineBatch records the inventory batch on the checked-in stage.
func (s *Service) SetVaccineBatch(ctx context.Context, sessionID string, input vactypes.VaccineBatchInput) (*vactypes.SessionState, error) {
	ctrl, err := s.editable(ctx, sessionID, domain.StageCheckedIn)
	if err != nil {
		return nil, err
	}
	ctrl.Store().SetVaccineBatch(input.VaccineBatchID)
	return ctrl.State(), nil
}

// SetViewStage moves the review cursor, or clears it when the input stage is
// nil.
func (s *Service) SetViewStage(ctx context.Context, sessionID string, input vactypes.ViewStageInput) (*vactypes.SessionState, error) {
	ctrl, err := s.controller(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	var stage *domain.Stage
	if input.Stage != nil {
		st := domain.Stage(*input.Stage)
		stage = &st
	}
	if err := ctrl.Store().SetViewStage(stage); err != nil {
		return nil, err
	}
	return ctrl.State(), nil
}

// SubmitTransition advances the appointment to the target status.
func (s *Service) SubmitTransition(ctx context.Context, sessionID string, input vactypes.SubmitTransitionInput) (*vactypes.TransitionOutcome, error) {
	ctrl, err := s.controller(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	msg, err := ctrl.Submit(ctx, domain.Stage(input.TargetStatus))
	if err != nil {
		return nil, err
	}
	return &vactypes.TransitionOutcome{Message: msg, State: ctrl.State()}, nil
}

// RejectAppointment moves the appointment to the rejected terminal state.
func (s *Service) RejectAppointment(ctx context.Context, sessionID string, input vactypes.RejectInput) (*vactypes.TransitionOutcome, error) {
	ctrl, err := s.controller(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	msg, err := ctrl.Reject(ctx, input.Notes)
	if err != nil {
		return nil, err
	}
	return &vactypes.TransitionOutcome{Message: msg, State: ctrl.State()}, nil
}

func (s *Service) controller(ctx context.Context, sessionID string) (*Controller, error) {
	ctrl, ok := s.sessions.Get(ctx, sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return ctrl, nil
}

// editable resolves the session and applies the edit gate for the stage that
// owns the slot about to be mutated.
func (s *Service) editable(ctx context.Context, sessionID string, stage domain.Stage) (*Controller, error) {
	ctrl, err := s.controller(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ctrl.Store().CanEdit(stage) {
		return nil, ErrStageNotEditable
	}
	return ctrl, nil
}

var _ ports.Service = (*Service)(nil)
