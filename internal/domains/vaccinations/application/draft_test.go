package application

import (
	"testing"

	"github.com/stretchr/testify/require"

	vactypes "github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/application/types"
	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }
func i64Ptr(v int64) *int64   { return &v }

func stagePtr(s domain.Stage) *domain.Stage { return &s }

func recordAt(stage domain.Stage) *domain.Appointment {
	return &domain.Appointment{ID: 42, Status: int(stage)}
}

func TestDraftStore_NarrowSettersDoNotTouchOtherSlots(t *testing.T) {
	store := NewDraftStore()
	store.SetDisease(7)
	store.SetVetSelection(vactypes.VetSelectionInput{VetID: i64Ptr(3), Date: strPtr("2026-09-01"), SlotIndex: intPtr(2)})
	store.SetHealth(vactypes.HealthInput{Temperature: strPtr("38.5")})
	store.SetResult(vactypes.ResultInput{Reaction: strPtr("none")})
	store.SetVaccineBatch(11)

	draft := store.Snapshot()
	require.Equal(t, int64(7), *draft.DiseaseID)
	require.Equal(t, int64(3), *draft.Vet.VetID)
	require.Equal(t, "2026-09-01", draft.Vet.Date)
	require.Equal(t, 2, *draft.Vet.SlotIndex)
	require.Equal(t, "38.5", draft.Health.Temperature)
	require.Equal(t, "none", draft.Result.Reaction)
	require.Equal(t, int64(11), *draft.VaccineBatchID)

	// Merging a partial vet update keeps the untouched fields.
	store.SetVetSelection(vactypes.VetSelectionInput{Date: strPtr("2026-09-02")})
	draft = store.Snapshot()
	require.Equal(t, "2026-09-02", draft.Vet.Date)
	require.Equal(t, int64(3), *draft.Vet.VetID)
	require.Equal(t, 2, *draft.Vet.SlotIndex)
}

func TestDraftStore_ViewCursorBound(t *testing.T) {
	store := NewDraftStore()
	store.Reconcile(recordAt(domain.StageCheckedIn), 1)

	// Looking back is fine.
	require.NoError(t, store.SetViewStage(stagePtr(domain.StageConfirmed)))
	require.Equal(t, domain.StageConfirmed, store.EffectiveStage())

	// Looking forward is not.
	require.ErrorIs(t, store.SetViewStage(stagePtr(domain.StageProcessed)), ErrViewAheadOfPersisted)

	// Nil means follow the persisted stage again.
	require.NoError(t, store.SetViewStage(nil))
	require.Nil(t, store.ViewStage())
	require.Equal(t, domain.StageCheckedIn, store.EffectiveStage())
}

func TestDraftStore_EditGate(t *testing.T) {
	store := NewDraftStore()
	store.Reconcile(recordAt(domain.StageCheckedIn), 1)

	// Only the in-progress stage is editable while it is on screen.
	require.True(t, store.CanEdit(domain.StageCheckedIn))
	require.False(t, store.CanEdit(domain.StageConfirmed))
	require.False(t, store.CanEdit(domain.StageProcessed))

	// Reviewing an earlier stage renders it read-only.
	require.NoError(t, store.SetViewStage(stagePtr(domain.StageConfirmed)))
	require.False(t, store.CanEdit(domain.StageConfirmed))
	require.False(t, store.CanEdit(domain.StageCheckedIn))
}

func TestDraftStore_ReconcileCopiesRecordFields(t *testing.T) {
	store := NewDraftStore()
	rec := &domain.Appointment{
		ID:     42,
		Status: int(domain.StageProcessed),
		Disease: &domain.Disease{ID: 7, Name: "rabies"},
		Vet: &domain.Vet{ID: 3, Name: "Dr. Chi", Schedules: []domain.VetSchedule{
			{Date: "2026-09-01", SlotIndex: 2},
			{Date: "2026-09-02", SlotIndex: 4},
		}},
		Vitals:       &domain.Vitals{Temperature: "38.5", HeartRate: "90"},
		Result:       &domain.InjectionOutcome{Reaction: "none", AppointmentDate: "2026-09-01", Notes: "ok"},
		VaccineBatch: &domain.VaccineBatch{ID: 11, VaccineName: "Rabivax"},
		Payment:      &domain.Payment{ID: "pay-1", Method: "cash", Status: "paid"},
	}
	require.True(t, store.Reconcile(rec, 1))

	draft := store.Snapshot()
	require.Equal(t, int64(7), *draft.DiseaseID)
	require.Equal(t, int64(3), *draft.Vet.VetID)
	// Only the first schedule entry feeds the slot choice.
	require.Equal(t, "2026-09-01", draft.Vet.Date)
	require.Equal(t, 2, *draft.Vet.SlotIndex)
	require.Equal(t, "38.5", draft.Health.Temperature)
	require.Equal(t, "none", draft.Result.Reaction)
	require.Equal(t, int64(11), *draft.VaccineBatchID)
	require.Equal(t, "pay-1", draft.PaymentID)
	require.Equal(t, "cash", draft.PaymentMethod)
	require.Equal(t, domain.StageProcessed, store.PersistedStage())
}

func TestDraftStore_ReconcileIsIdempotent(t *testing.T) {
	store := NewDraftStore()
	rec := &domain.Appointment{
		ID:      42,
		Status:  int(domain.StageConfirmed),
		Disease: &domain.Disease{ID: 7},
		Vet:     &domain.Vet{ID: 3, Schedules: []domain.VetSchedule{{Date: "2026-09-01", SlotIndex: 2}}},
	}
	require.True(t, store.Reconcile(rec, 1))
	first := store.Snapshot()
	require.True(t, store.Reconcile(rec, 2))
	second := store.Snapshot()
	require.Equal(t, first, second)
}

func TestDraftStore_ReconcileSubstitutesDefaultsForAbsentObjects(t *testing.T) {
	store := NewDraftStore()
	store.SetHealth(vactypes.HealthInput{Temperature: strPtr("39.1")})
	store.SetVaccineBatch(11)

	// A sparse record wins over locally drafted values on reconcile.
	require.True(t, store.Reconcile(recordAt(domain.StageProcessing), 1))
	draft := store.Snapshot()
	require.Nil(t, draft.DiseaseID)
	require.Nil(t, draft.VaccineBatchID)
	require.Empty(t, draft.Health.Temperature)
}

func TestDraftStore_StaleReconcileIsDiscarded(t *testing.T) {
	store := NewDraftStore()
	fresh := recordAt(domain.StageConfirmed)
	stale := recordAt(domain.StageProcessing)

	require.True(t, store.Reconcile(fresh, 2))
	// The response of a superseded fetch arrives late and is ignored.
	require.False(t, store.Reconcile(stale, 1))
	require.Equal(t, domain.StageConfirmed, store.PersistedStage())
}

func TestDraftStore_ReconcileClearsPaymentOnCompletion(t *testing.T) {
	store := NewDraftStore()
	rec := &domain.Appointment{
		ID:      42,
		Status:  int(domain.StageCompleted),
		Disease: &domain.Disease{ID: 7},
		Payment: &domain.Payment{ID: "pay-1", Method: "cash"},
	}
	require.True(t, store.Reconcile(rec, 1))
	draft := store.Snapshot()
	require.Empty(t, draft.PaymentID)
	require.Empty(t, draft.PaymentMethod)
	// Other accumulated data persists for display.
	require.Equal(t, int64(7), *draft.DiseaseID)
}

func TestDraftStore_ReconcileSnapsViewBackWhenAhead(t *testing.T) {
	store := NewDraftStore()
	store.Reconcile(recordAt(domain.StageCheckedIn), 1)
	require.NoError(t, store.SetViewStage(stagePtr(domain.StageConfirmed)))

	// A rejected record leaves the cursor valid (rejected is numerically last).
	store.Reconcile(recordAt(domain.StageRejected), 2)
	require.NotNil(t, store.ViewStage())

	// But a record that regressed below the cursor clears it.
	fresh := NewDraftStore()
	fresh.Reconcile(recordAt(domain.StagePaid), 1)
	require.NoError(t, fresh.SetViewStage(stagePtr(domain.StagePaid)))
	fresh.Reconcile(recordAt(domain.StageConfirmed), 2)
	require.Nil(t, fresh.ViewStage())
}

func TestDraftStore_Reset(t *testing.T) {
	store := NewDraftStore()
	store.Reconcile(recordAt(domain.StageConfirmed), 1)
	store.SetDisease(7)
	require.NoError(t, store.SetViewStage(stagePtr(domain.StageProcessing)))

	store.Reset()
	require.Equal(t, domain.Draft{}, store.Snapshot())
	require.Nil(t, store.ViewStage())
	require.Equal(t, domain.Stage(0), store.PersistedStage())
}

func TestDraftStore_AdoptPersisted(t *testing.T) {
	store := NewDraftStore()
	store.SetDisease(7)
	store.AdoptPersisted(domain.StageConfirmed, 1)
	require.Equal(t, domain.StageConfirmed, store.PersistedStage())
	// Draft untouched.
	require.Equal(t, int64(7), *store.Snapshot().DiseaseID)

	// Stale adoption is ignored.
	store.AdoptPersisted(domain.StageProcessing, 0)
	require.Equal(t, domain.StageConfirmed, store.PersistedStage())
}
