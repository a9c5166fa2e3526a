package application

import "errors"

var (
	// ErrSessionNotFound signals no workflow view is open under that id.
	ErrSessionNotFound = errors.New("workflow session not found")

	// ErrNoAppointment signals an operation ran before a record was loaded.
	// Stage gating should make this unreachable from the UI; it is a guard,
	// not a user-facing failure.
	ErrNoAppointment = errors.New("no appointment loaded")

	// ErrStageNotEditable signals the edit gate denied a draft mutation:
	// the stage on screen is not the one the server considers in progress.
	ErrStageNotEditable = errors.New("stage is not editable")

	// ErrViewAheadOfPersisted signals an attempt to move the review cursor
	// forward of the persisted stage.
	ErrViewAheadOfPersisted = errors.New("view stage cannot be ahead of persisted stage")

	// ErrTransitionPending signals a transition request is already in flight
	// for this appointment.
	ErrTransitionPending = errors.New("a transition is already pending")

	// ErrValidatorFailed signals the draft lacks the fields required to leave
	// the current stage.
	ErrValidatorFailed = errors.New("draft data is not sufficient for this transition")

	// ErrInvalidTarget signals the requested target status is not the next
	// stage on the forward chain.
	ErrInvalidTarget = errors.New("target status is not reachable from the current stage")

	// ErrNotRejectable signals a rejection was requested past the point where
	// the lifecycle still allows it.
	ErrNotRejectable = errors.New("appointment can no longer be rejected")

	// ErrSessionTerminal signals the workflow already reached a terminal
	// stage and accepts no further mutations.
	ErrSessionTerminal = errors.New("workflow has reached a terminal stage")
)
