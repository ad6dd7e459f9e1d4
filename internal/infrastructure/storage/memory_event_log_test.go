package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"driveguard/internal/domain/entity"
)

func event(label string, drowsy bool) entity.DetectionEvent {
	return entity.DetectionEvent{
		Sample:    entity.DetectionSample{Label: label, Confidence: 0.9},
		Drowsy:    drowsy,
		Timestamp: time.Now(),
	}
}

func TestMemoryEventLog_RecentNewestFirst(t *testing.T) {
	l := NewMemoryEventLog(10)
	l.Append(event("alert", false))
	l.Append(event("drowsy", true))
	l.Append(event("alert", false))

	recent := l.Recent(2, false)
	require.Len(t, recent, 2)
	require.Equal(t, "alert", recent[0].Sample.Label)
	require.Equal(t, "drowsy", recent[1].Sample.Label)
}

func TestMemoryEventLog_DrowsyOnlyFilter(t *testing.T) {
	l := NewMemoryEventLog(10)
	l.Append(event("alert", false))
	l.Append(event("drowsy", true))
	l.Append(event("alert", false))

	drowsy := l.Recent(0, true)
	require.Len(t, drowsy, 1)
	require.True(t, drowsy[0].Drowsy)
}

func TestMemoryEventLog_CapacityEvictsOldest(t *testing.T) {
	l := NewMemoryEventLog(2)
	l.Append(event("one", false))
	l.Append(event("two", false))
	l.Append(event("three", false))

	recent := l.Recent(0, false)
	require.Len(t, recent, 2)
	require.Equal(t, "three", recent[0].Sample.Label)
	require.Equal(t, "two", recent[1].Sample.Label)
}

func TestMemoryEventLog_Clear(t *testing.T) {
	l := NewMemoryEventLog(10)
	l.Append(event("alert", false))
	l.Clear()
	require.Empty(t, l.Recent(0, false))
}
