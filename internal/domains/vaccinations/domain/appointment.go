package domain

// Disease identifies the disease the vaccination targets.
type Disease struct {
	ID   int64
	Name string
}

// VetSchedule is one bookable slot on a veterinarian's calendar. SlotIndex is
// the position within the working day, not a time of day.
type VetSchedule struct {
	Date      string
	SlotIndex int
}

// Vet is the assigned veterinarian together with the schedule entries the
// backend returned for them.
type Vet struct {
	ID        int64
	Name      string
	Schedules []VetSchedule
}

// Vitals captures the free-text health measurements taken at check-in.
type Vitals struct {
	Temperature      string
	HeartRate        string
	GeneralCondition string
	Others           string
}

// InjectionOutcome records what happened when the vaccine was administered.
type InjectionOutcome struct {
	Reaction        string
	AppointmentDate string
	Notes           string
}

// VaccineBatch identifies the inventory batch drawn for the injection.
type VaccineBatch struct {
	ID          int64
	VaccineName string
	LotNumber   string
}

// Payment is the external payment reference attached to the appointment. The
// workflow reads these fields, it never computes them.
type Payment struct {
	ID     string
	Method string
	Status string
}

// Pet identifies the animal being vaccinated. Display-only for the workflow.
type Pet struct {
	ID      int64
	Name    string
	Species string
}

// Appointment is the server-owned record. It is mutated only by the clinic
// backend in response to transition requests; the workflow reads it and copies
// field values into its draft. Nested sub-objects may be nil depending on how
// far the appointment has progressed.
type Appointment struct {
	ID           int64
	Code         string
	Status       int
	Pet          *Pet
	Disease      *Disease
	Vet          *Vet
	Vitals       *Vitals
	Result       *InjectionOutcome
	VaccineBatch *VaccineBatch
	Payment      *Payment
}

// Stage interprets the raw status as a lifecycle stage.
func (a *Appointment) Stage() Stage {
	if a == nil {
		return 0
	}
	return Stage(a.Status)
}
