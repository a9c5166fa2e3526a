package domain

// VetSelection is the practitioner-and-slot choice made while confirming an
// appointment. Fields stay nil/empty until the staff member picks them.
type VetSelection struct {
	Date      string
	SlotIndex *int
	VetID     *int64
}

// Draft accumulates not-yet-committed input for every stage of a single
// appointment. It is a superset accumulator: advancing to a later stage never
// clears data collected at an earlier one; only an explicit reset does.
type Draft struct {
	DiseaseID      *int64
	Vet            VetSelection
	Health         Vitals
	Result         InjectionOutcome
	VaccineBatchID *int64

	// Payment sub-state mirrored off the appointment record. Cleared once the
	// appointment completes, since payment concerns do not outlive completion.
	PaymentID     string
	PaymentMethod string
}

// CanConfirm gates the Processing -> Confirmed transition.
func (d Draft) CanConfirm() bool {
	return d.DiseaseID != nil
}

// CanCheckIn gates the Confirmed -> CheckedIn transition.
func (d Draft) CanCheckIn() bool {
	return d.Vet.VetID != nil
}

// CanRecordInjection gates the CheckedIn -> Processed transition.
func (d Draft) CanRecordInjection() bool {
	return d.VaccineBatchID != nil && d.Result.Reaction != "" && d.Result.AppointmentDate != ""
}

// CanCollectPayment gates the Processed -> Paid transition. Both payment
// fields come from the external payment collaborator via the record.
func (d Draft) CanCollectPayment() bool {
	return d.PaymentID != "" && d.PaymentMethod != ""
}

// CanAdvance reports whether the draft holds enough data to leave the given
// stage. The rules are fixed and small in number; completion needs nothing
// beyond having reached Paid. Unknown stages never advance.
func CanAdvance(from Stage, d Draft) bool {
	switch from {
	case StageProcessing:
		return d.CanConfirm()
	case StageConfirmed:
		return d.CanCheckIn()
	case StageCheckedIn:
		return d.CanRecordInjection()
	case StageProcessed:
		return d.CanCollectPayment()
	case StagePaid:
		return true
	default:
		return false
	}
}
