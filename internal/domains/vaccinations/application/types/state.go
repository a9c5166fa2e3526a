package types

import "github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/domain"

// StageState describes one stage as the dashboard should render it: whether
// the gate allows editing it right now and whether its validator would allow
// leaving it.
type StageState struct {
	Stage      domain.Stage
	Name       string
	Editable   bool
	CanAdvance bool
}

// SessionState is the full projection of one workflow view session, recomputed
// from current draft data on every read rather than cached.
type SessionState struct {
	SessionID      string
	AppointmentID  int64
	Appointment    *domain.Appointment
	PersistedStage domain.Stage
	ViewStage      *domain.Stage
	EffectiveStage domain.Stage
	EffectiveView  string
	Draft          domain.Draft
	Stages         []StageState
	Pending        bool
	Terminal       bool
}
