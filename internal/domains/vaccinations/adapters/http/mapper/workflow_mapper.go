package mapper

import (
	vactypes "github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/application/types"
	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/domain"
)

// OpenSessionRequest starts a workflow view over one appointment.
type OpenSessionRequest struct {
	AppointmentID int64 `json:"appointmentId" binding:"required"`
}

// DiseaseRequest selects the disease on the intake stage.
type DiseaseRequest struct {
	DiseaseID int64 `json:"diseaseId" binding:"required"`
}

// VetSelectionRequest carries a partial practitioner-and-slot choice.
type VetSelectionRequest struct {
	Date      *string `json:"date"`
	SlotIndex *int    `json:"slotIndex"`
	VetID     *int64  `json:"vetId"`
}

// HealthRequest carries partial check-in vitals.
type HealthRequest struct {
	Temperature      *string `json:"temperature"`
	HeartRate        *string `json:"heartRate"`
	GeneralCondition *string `json:"generalCondition"`
	Others           *string `json:"others"`
}

// ResultRequest carries partial injection outcome fields.
type ResultRequest struct {
	Reaction        *string `json:"reaction"`
	AppointmentDate *string `json:"appointmentDate"`
	Notes           *string `json:"notes"`
}

// VaccineBatchRequest selects the inventory batch.
type VaccineBatchRequest struct {
	VaccineBatchID int64 `json:"vaccineBatchId" binding:"required"`
}

// ViewStageRequest moves the review cursor; a null stage follows the
// persisted stage again.
type ViewStageRequest struct {
	Stage *int `json:"stage"`
}

// TransitionRequest asks for a status transition.
type TransitionRequest struct {
	TargetStatus int `json:"targetStatus" binding:"required"`
}

// RejectRequest carries the rejection reason.
type RejectRequest struct {
	Notes string `json:"notes" binding:"required"`
}

// StageStateResponse renders one step indicator.
type StageStateResponse struct {
	Status     int    `json:"status"`
	Name       string `json:"name"`
	Editable   bool   `json:"editable"`
	CanAdvance bool   `json:"canAdvance"`
}

// DraftResponse renders the accumulated draft slots.
type DraftResponse struct {
	DiseaseID        *int64 `json:"diseaseId"`
	VetID            *int64 `json:"vetId"`
	VetDate          string `json:"vetDate,omitempty"`
	VetSlotIndex     *int   `json:"vetSlotIndex"`
	Temperature      string `json:"temperature,omitempty"`
	HeartRate        string `json:"heartRate,omitempty"`
	GeneralCondition string `json:"generalCondition,omitempty"`
	Others           string `json:"others,omitempty"`
	Reaction         string `json:"reaction,omitempty"`
	AppointmentDate  string `json:"appointmentDate,omitempty"`
	Notes            string `json:"notes,omitempty"`
	VaccineBatchID   *int64 `json:"vaccineBatchId"`
	PaymentID        string `json:"paymentId,omitempty"`
	PaymentMethod    string `json:"paymentMethod,omitempty"`
}

// AppointmentResponse is the read-only record summary shown on the view.
type AppointmentResponse struct {
	AppointmentID int64  `json:"appointmentId"`
	Code          string `json:"appointmentCode,omitempty"`
	Status        int    `json:"appointmentStatus"`
	PetName       string `json:"petName,omitempty"`
	DiseaseName   string `json:"diseaseName,omitempty"`
	VetName       string `json:"vetName,omitempty"`
	VaccineName   string `json:"vaccineName,omitempty"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
}

// SessionStateResponse is the full projection of one workflow view.
type SessionStateResponse struct {
	SessionID      string               `json:"sessionId"`
	AppointmentID  int64                `json:"appointmentId"`
	Appointment    *AppointmentResponse `json:"appointment,omitempty"`
	PersistedStage int                  `json:"persistedStage"`
	ViewStage      *int                 `json:"viewStage"`
	EffectiveStage int                  `json:"effectiveStage"`
	EffectiveView  string               `json:"effectiveView"`
	Draft          DraftResponse        `json:"draft"`
	Stages         []StageStateResponse `json:"stages"`
	Pending        bool                 `json:"pending"`
	Terminal       bool                 `json:"terminal"`
}

// TransitionOutcomeResponse reports a completed transition.
type TransitionOutcomeResponse struct {
	Message string                `json:"message"`
	State   *SessionStateResponse `json:"state,omitempty"`
}

// ToVetSelectionInput converts the transport payload preserving presence.
func ToVetSelectionInput(req VetSelectionRequest) vactypes.VetSelectionInput {
	return vactypes.VetSelectionInput{Date: req.Date, SlotIndex: req.SlotIndex, VetID: req.VetID}
}

// ToHealthInput converts the transport payload preserving presence.
func ToHealthInput(req HealthRequest) vactypes.HealthInput {
	return vactypes.HealthInput{
		Temperature:      req.Temperature,
		HeartRate:        req.HeartRate,
		GeneralCondition: req.GeneralCondition,
		Others:           req.Others,
	}
}

// ToResultInput converts the transport payload preserving presence.
func ToResultInput(req ResultRequest) vactypes.ResultInput {
	return vactypes.ResultInput{
		Reaction:        req.Reaction,
		AppointmentDate: req.AppointmentDate,
		Notes:           req.Notes,
	}
}

// FromSessionState maps the application projection to transport.
func FromSessionState(state *vactypes.SessionState) *SessionStateResponse {
	if state == nil {
		return nil
	}
	resp := &SessionStateResponse{
		SessionID:      state.SessionID,
		AppointmentID:  state.AppointmentID,
		Appointment:    fromAppointment(state.Appointment),
		PersistedStage: int(state.PersistedStage),
		EffectiveStage: int(state.EffectiveStage),
		EffectiveView:  state.EffectiveView,
		Draft:          fromDraft(state.Draft),
		Pending:        state.Pending,
		Terminal:       state.Terminal,
	}
	if state.ViewStage != nil {
		v := int(*state.ViewStage)
		resp.ViewStage = &v
	}
	for _, stage := range state.Stages {
		resp.Stages = append(resp.Stages, StageStateResponse{
			Status:     int(stage.Stage),
			Name:       stage.Name,
			Editable:   stage.Editable,
			CanAdvance: stage.CanAdvance,
		})
	}
	return resp
}

// FromTransitionOutcome maps a transition result to transport.
func FromTransitionOutcome(outcome *vactypes.TransitionOutcome) *TransitionOutcomeResponse {
	if outcome == nil {
		return nil
	}
	return &TransitionOutcomeResponse{
		Message: outcome.Message,
		State:   FromSessionState(outcome.State),
	}
}

func fromDraft(d domain.Draft) DraftResponse {
	return DraftResponse{
		DiseaseID:        d.DiseaseID,
		VetID:            d.Vet.VetID,
		VetDate:          d.Vet.Date,
		VetSlotIndex:     d.Vet.SlotIndex,
		Temperature:      d.Health.Temperature,
		HeartRate:        d.Health.HeartRate,
		GeneralCondition: d.Health.GeneralCondition,
		Others:           d.Health.Others,
		Reaction:         d.Result.Reaction,
		AppointmentDate:  d.Result.AppointmentDate,
		Notes:            d.Result.Notes,
		VaccineBatchID:   d.VaccineBatchID,
		PaymentID:        d.PaymentID,
		PaymentMethod:    d.PaymentMethod,
	}
}

func fromAppointment(rec *domain.Appointment) *AppointmentResponse {
	if rec == nil {
		return nil
	}
	resp := &AppointmentResponse{
		AppointmentID: rec.ID,
		Code:          rec.Code,
		Status:        rec.Status,
	}
	if rec.Pet != nil {
		resp.PetName = rec.Pet.Name
	}
	if rec.Disease != nil {
		resp.DiseaseName = rec.Disease.Name
	}
	if rec.Vet != nil {
		resp.VetName = rec.Vet.Name
	}
	if rec.VaccineBatch != nil {
		resp.VaccineName = rec.VaccineBatch.VaccineName
	}
	if rec.Payment != nil {
		resp.PaymentStatus = rec.Payment.Status
	}
	return resp
}
