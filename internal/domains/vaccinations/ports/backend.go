package ports

import (
	"context"
	"errors"

	vactypes "github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/application/types"
	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/domain"
)

// ErrAppointmentNotFound signals the clinic backend has no such appointment.
var ErrAppointmentNotFound = errors.New("appointment not found")

// ClinicBackend is the outbound port to the clinic REST API that owns the
// appointment record. The workflow never mutates the record directly; it only
// fetches it and requests status transitions.
type ClinicBackend interface {
	FetchAppointment(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, req vactypes.TransitionRequest) (*vactypes.TransitionResult, error)
	Reject(ctx context.Context, id int64, notes string) (*vactypes.TransitionResult, error)
}
