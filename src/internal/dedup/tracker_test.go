package dedup

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_ShouldProcess(t *testing.T) {
	t.Run("FirstSightingProcesses", func(t *testing.T) {
		tracker := NewTracker(0)
		assert.True(t, tracker.ShouldProcess("Error:boom:T1"))
	})

	t.Run("RepeatSightingSkips", func(t *testing.T) {
		tracker := NewTracker(0)
		assert.True(t, tracker.ShouldProcess("Error:boom:T1"))
		assert.False(t, tracker.ShouldProcess("Error:boom:T1"))
		assert.False(t, tracker.ShouldProcess("Error:boom:T1"))
		assert.Equal(t, 1, tracker.Len())
	})

	t.Run("DistinctIdsProcessIndependently", func(t *testing.T) {
		tracker := NewTracker(0)
		assert.True(t, tracker.ShouldProcess("Error:boom:T1"))
		assert.True(t, tracker.ShouldProcess("Error:boom:T2"))
		assert.True(t, tracker.ShouldProcess("Warning:boom:T1"))
		assert.Equal(t, 3, tracker.Len())
	})
}

func TestTracker_Capacity(t *testing.T) {
	t.Run("OldestEvictedFirst", func(t *testing.T) {
		tracker := NewTracker(2)
		assert.True(t, tracker.ShouldProcess("a"))
		assert.True(t, tracker.ShouldProcess("b"))
		assert.True(t, tracker.ShouldProcess("c")) // evicts "a"

		assert.Equal(t, 2, tracker.Len())
		assert.True(t, tracker.ShouldProcess("a")) // forgotten, processes again
		assert.False(t, tracker.ShouldProcess("c"))
	})

	t.Run("ZeroCapacityUnbounded", func(t *testing.T) {
		tracker := NewTracker(0)
		for i := 0; i < 10000; i++ {
			assert.True(t, tracker.ShouldProcess(fmt.Sprintf("id-%d", i)))
		}
		assert.Equal(t, 10000, tracker.Len())
		assert.False(t, tracker.ShouldProcess("id-0"))
	})

	t.Run("StatsTrackEvictions", func(t *testing.T) {
		tracker := NewTracker(1)
		tracker.ShouldProcess("a")
		tracker.ShouldProcess("b")

		stats := tracker.GetStats()
		assert.Equal(t, 1, stats["tracked"])
		assert.Equal(t, uint64(1), stats["total_evicted"])
		assert.Equal(t, uint64(2), stats["total_checked"])
	})
}
