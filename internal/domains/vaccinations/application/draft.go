package application

import (
	"sync"

	vactypes "github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/application/types"
	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/domain"
)

// DraftStore is the single mutable holder for one appointment view: the
// accumulated draft plus the two cursors. All mutation goes through the narrow
// per-stage setters so one stage's form cannot overwrite another stage's slot.
//
// persisted is what the backend last acknowledged; view is the optional review
// cursor staff set by clicking an earlier step indicator. When view is nil the
// UI follows persisted.
type DraftStore struct {
	mu        sync.Mutex
	draft     domain.Draft
	persisted domain.Stage
	view      *domain.Stage

	// lastSeq orders reconciliations: a response from a superseded fetch must
	// not clobber a later one (last-fetch-wins).
	lastSeq uint64
}

// NewDraftStore returns an empty store for a freshly opened view.
func NewDraftStore() *DraftStore {
	return &DraftStore{}
}

// SetDisease merges the disease choice into the draft.
func (s *DraftStore) SetDisease(diseaseID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := diseaseID
	s.draft.DiseaseID = &id
}

// SetVetSelection merges the present fields of the practitioner-and-slot
// choice. Absent fields keep their current draft values.
func (s *DraftStore) SetVetSelection(input vactypes.VetSelectionInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if input.Date != nil {
		s.draft.Vet.Date = *input.Date
	}
	if input.SlotIndex != nil {
		slot := *input.SlotIndex
		s.draft.Vet.SlotIndex = &slot
	}
	if input.VetID != nil {
		id := *input.VetID
		s.draft.Vet.VetID = &id
	}
}

// SetHealth merges the present vitals fields into the draft.
func (s *DraftStore) SetHealth(input vactypes.HealthInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if input.Temperature != nil {
		s.draft.Health.Temperature = *input.Temperature
	}
	if input.HeartRate != nil {
		s.draft.Health.HeartRate = *input.HeartRate
	}
	if input.GeneralCondition != nil {
		s.draft.Health.GeneralCondition = *input.GeneralCondition
	}
	if input.Others != nil {
		s.draft.Health.Others = *input.Others
	}
}

// SetResult merges the present injection-outcome fields into the draft.
func (s *DraftStore) SetResult(input vactypes.ResultInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if input.Reaction != nil {
		s.draft.Result.Reaction = *input.Reaction
	}
	if input.AppointmentDate != nil {
		s.draft.Result.AppointmentDate = *input.AppointmentDate
	}
	if input.Notes != nil {
		s.draft.Result.Notes = *input.Notes
	}
}

// SetVaccineBatch merges the selected inventory batch into the draft.
func (s *DraftStore) SetVaccineBatch(batchID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := batchID
	s.draft.VaccineBatchID = &id
}

// SetViewStage moves the review cursor. Nil means "follow the persisted
// stage". Staff may look back at completed stages, never forward into
// incomplete ones.
func (s *DraftStore) SetViewStage(stage *domain.Stage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stage == nil {
		s.view = nil
		return nil
	}
	if s.persisted.Before(*stage) {
		return ErrViewAheadOfPersisted
	}
	v := *stage
	s.view = &v
	return nil
}

// ClearViewStage resets the cursor so the UI follows the persisted stage.
func (s *DraftStore) ClearViewStage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = nil
}

// PersistedStage returns the stage the backend last acknowledged.
func (s *DraftStore) PersistedStage() domain.Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persisted
}

// ViewStage returns a copy of the review cursor, nil when unset.
func (s *DraftStore) ViewStage() *domain.Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == nil {
		return nil
	}
	v := *s.view
	return &v
}

// EffectiveStage is the stage whose view is on screen: the review cursor when
// set, the persisted stage otherwise.
func (s *DraftStore) EffectiveStage() domain.Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effectiveLocked()
}

func (s *DraftStore) effectiveLocked() domain.Stage {
	if s.view != nil {
		return *s.view
	}
	return s.persisted
}

// CanEdit reports whether the candidate stage accepts input right now. A stage
// is editable only when it is simultaneously the one on screen and the one the
// backend considers in progress.
func (s *DraftStore) CanEdit(candidate domain.Stage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effectiveLocked() == candidate && s.persisted == candidate
}

// Snapshot returns a copy of the accumulated draft.
func (s *DraftStore) Snapshot() domain.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Reset clears all slots and both cursors back to initial empty values. Used
// on rejection and when the view is discarded.
func (s *DraftStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = domain.Draft{}
	s.persisted = 0
	s.view = nil
}

// AdoptPersisted advances the persisted cursor without touching the draft,
// for the cases where a transition succeeded but no refreshed record is
// available yet. Subject to the same sequencing as Reconcile.
func (s *DraftStore) AdoptPersisted(stage domain.Stage, seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.lastSeq {
		return
	}
	s.lastSeq = seq
	s.persisted = stage
	if s.view != nil && s.persisted.Before(*s.view) {
		s.view = nil
	}
}

// Reconcile copies every server-held field of the record into the
// corresponding draft slot, substituting zero values for absent nested
// objects, and adopts the record's status as the persisted stage. It is
// idempotent. seq orders competing fetches: a reconcile carrying a lower
// sequence than one already applied is discarded and reports false.
func (s *DraftStore) Reconcile(rec *domain.Appointment, seq uint64) bool {
	if rec == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.lastSeq {
		return false
	}
	s.lastSeq = seq

	if rec.Disease != nil {
		id := rec.Disease.ID
		s.draft.DiseaseID = &id
	} else {
		s.draft.DiseaseID = nil
	}

	s.draft.Vet = domain.VetSelection{}
	if rec.Vet != nil {
		id := rec.Vet.ID
		s.draft.Vet.VetID = &id
		if len(rec.Vet.Schedules) > 0 {
			first := rec.Vet.Schedules[0]
			s.draft.Vet.Date = first.Date
			slot := first.SlotIndex
			s.draft.Vet.SlotIndex = &slot
		}
	}

	s.draft.Health = domain.Vitals{}
	if rec.Vitals != nil {
		s.draft.Health = *rec.Vitals
	}

	s.draft.Result = domain.InjectionOutcome{}
	if rec.Result != nil {
		s.draft.Result = *rec.Result
	}

	if rec.VaccineBatch != nil {
		id := rec.VaccineBatch.ID
		s.draft.VaccineBatchID = &id
	} else {
		s.draft.VaccineBatchID = nil
	}

	s.draft.PaymentID = ""
	s.draft.PaymentMethod = ""
	if rec.Payment != nil {
		s.draft.PaymentID = rec.Payment.ID
		s.draft.PaymentMethod = rec.Payment.Method
	}

	s.persisted = rec.Stage()

	// Payment concerns do not persist past completion.
	if s.persisted == domain.StageCompleted {
		s.draft.PaymentID = ""
		s.draft.PaymentMethod = ""
	}

	// A review cursor ahead of the persisted stage would violate the
	// look-back-only rule; snap it back to following the server.
	if s.view != nil && s.persisted.Before(*s.view) {
		s.view = nil
	}
	return true
}
