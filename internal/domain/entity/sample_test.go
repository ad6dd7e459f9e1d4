package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectionSample_ThresholdIsStrict(t *testing.T) {
	s := DetectionSample{Label: "drowsy", Confidence: 0.6}
	require.False(t, s.IsDrowsy(0.6))

	s = DetectionSample{Label: "Drowsy", Confidence: 0.61}
	require.True(t, s.IsDrowsy(0.6))
}

func TestDetectionSample_LabelSubstringMatch(t *testing.T) {
	s := DetectionSample{Label: "very DROWSY driver", Confidence: 0.9}
	require.True(t, s.IsDrowsy(0.6))

	s = DetectionSample{Label: "alert", Confidence: 0.99}
	require.False(t, s.IsDrowsy(0.6))
}

func TestDetectionSample_ConfidencePct(t *testing.T) {
	s := DetectionSample{Label: "drowsy", Confidence: 0.85}
	require.InDelta(t, 85.0, s.ConfidencePct(), 1e-9)
}
