package types

import "github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/domain"

// TransitionRequest is the partial update payload sent to the clinic backend
// to move an appointment between statuses. AppointmentID and Status are always
// present; everything else is included only when relevant to the stage being
// left.
type TransitionRequest struct {
	AppointmentID    int64   `json:"appointmentId"`
	Status           int     `json:"appointmentStatus"`
	VetID            *int64  `json:"vetId,omitempty"`
	DiseaseID        *int64  `json:"diseaseId,omitempty"`
	VaccineBatchID   *int64  `json:"vaccineBatchId,omitempty"`
	Reaction         *string `json:"reaction,omitempty"`
	Temperature      *string `json:"temperature,omitempty"`
	HeartRate        *string `json:"heartRate,omitempty"`
	GeneralCondition *string `json:"generalCondition,omitempty"`
	Others           *string `json:"others,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	AppointmentDate  *string `json:"appointmentDate,omitempty"`
}

// TransitionResult is what the backend answers a transition or rejection with.
// Message is surfaced to the user; Appointment, when present, is the refreshed
// record.
type TransitionResult struct {
	Message     string
	Appointment *domain.Appointment
}

// TransitionOutcome reports a completed transition back to the caller.
type TransitionOutcome struct {
	Message string
	State   *SessionState
}
