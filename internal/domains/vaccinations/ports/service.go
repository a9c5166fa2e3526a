package ports

import (
	"context"

	vactypes "github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/application/types"
)

// Service defines the workflow use cases exposed to inbound adapters. Every
// operation is scoped to a view session: one open appointment-detail view with
// its own draft and cursors.
type Service interface {
	OpenSession(ctx context.Context, input vactypes.OpenSessionInput) (*vactypes.SessionState, error)
	GetSession(ctx context.Context, sessionID string) (*vactypes.SessionState, error)
	CloseSession(ctx context.Context, sessionID string) error
	RefreshSession(ctx context.Context, sessionID string) (*vactypes.SessionState, error)

	SetDisease(ctx context.Context, sessionID string, input vactypes.DiseaseInput) (*vactypes.SessionState, error)
	SetVetSelection(ctx context.Context, sessionID string, input vactypes.VetSelectionInput) (*vactypes.SessionState, error)
	SetHealth(ctx context.Context, sessionID string, input vactypes.HealthInput) (*vactypes.SessionState, error)
	SetResult(ctx context.Context, sessionID string, input vactypes.ResultInput) (*vactypes.SessionState, error)
	SetVaccineBatch(ctx context.Context, sessionID string, input vactypes.VaccineBatchInput) (*vactypes.SessionState, error)
	SetViewStage(ctx context.Context, sessionID string, input vactypes.ViewStageInput) (*vactypes.SessionState, error)

	SubmitTransition(ctx context.Context, sessionID string, input vactypes.SubmitTransitionInput) (*vactypes.TransitionOutcome, error)
	RejectAppointment(ctx context.Context, sessionID string, input vactypes.RejectInput) (*vactypes.TransitionOutcome, error)
}
