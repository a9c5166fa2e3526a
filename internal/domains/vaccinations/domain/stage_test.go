package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStage_ForwardChainOrder(t *testing.T) {
	stages := ForwardStages()
	require.Equal(t, []Stage{StageProcessing, StageConfirmed, StageCheckedIn, StageProcessed, StagePaid, StageCompleted}, stages)
	for i := 1; i < len(stages); i++ {
		require.True(t, stages[i-1].Before(stages[i]))
	}
}

func TestStage_Next(t *testing.T) {
	next, ok := StageProcessing.Next()
	require.True(t, ok)
	require.Equal(t, StageConfirmed, next)

	// The numeric gap between Paid(5) and Completed(9) does not break the chain.
	next, ok = StagePaid.Next()
	require.True(t, ok)
	require.Equal(t, StageCompleted, next)

	_, ok = StageCompleted.Next()
	require.False(t, ok)
	_, ok = StageRejected.Next()
	require.False(t, ok)
	_, ok = Stage(7).Next()
	require.False(t, ok)
}

func TestStage_Terminal(t *testing.T) {
	require.True(t, StageCompleted.Terminal())
	require.True(t, StageRejected.Terminal())
	require.False(t, StagePaid.Terminal())
}

func TestStage_Rejectable(t *testing.T) {
	require.True(t, StageProcessing.Rejectable())
	require.True(t, StageConfirmed.Rejectable())
	require.False(t, StageCheckedIn.Rejectable())
	require.False(t, StageCompleted.Rejectable())
}

func TestViewFor_UnknownStatusRendersFinalized(t *testing.T) {
	require.Equal(t, "processing", ViewFor(1))
	require.Equal(t, "completed", ViewFor(9))
	require.Equal(t, "rejected", ViewFor(10))
	// Possibly reserved values render the read-only finalized view.
	for _, status := range []int{0, 6, 7, 8, 42, -3} {
		require.Equal(t, "finalized", ViewFor(status))
	}
}

func TestStage_Known(t *testing.T) {
	require.True(t, StageProcessing.Known())
	require.True(t, StageRejected.Known())
	require.False(t, Stage(6).Known())
}
