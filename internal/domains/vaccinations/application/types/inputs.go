package types

// OpenSessionInput starts a workflow view for one appointment.
type OpenSessionInput struct {
	AppointmentID int64
}

// DiseaseInput selects the disease the vaccination targets.
type DiseaseInput struct {
	DiseaseID int64
}

// VetSelectionInput carries the practitioner-and-slot choice. Pointer fields
// preserve presence so partial updates merge instead of overwriting the slot.
type VetSelectionInput struct {
	Date      *string
	SlotIndex *int
	VetID     *int64
}

// HealthInput carries the check-in vitals. All fields optional; only present
// ones are merged into the draft.
type HealthInput struct {
	Temperature      *string
	HeartRate        *string
	GeneralCondition *string
	Others           *string
}

// ResultInput carries the injection outcome fields.
type ResultInput struct {
	Reaction        *string
	AppointmentDate *string
	Notes           *string
}

// VaccineBatchInput selects the inventory batch used for the injection.
type VaccineBatchInput struct {
	VaccineBatchID int64
}

// ViewStageInput moves the review cursor. A nil Stage means "follow the
// persisted stage again".
type ViewStageInput struct {
	Stage *int
}

// SubmitTransitionInput asks the workflow to advance the appointment to the
// named status.
type SubmitTransitionInput struct {
	TargetStatus int
}

// RejectInput carries the free-text reason for rejecting an appointment.
type RejectInput struct {
	Notes string
}
