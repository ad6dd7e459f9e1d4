package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlertPrompt_ResolveOnce(t *testing.T) {
	p := NewAlertPrompt(85)
	require.True(t, p.Pending())

	require.True(t, p.Resolve(ResolutionAcknowledge))
	require.False(t, p.Pending())

	// второе разрешение не проходит
	require.False(t, p.Resolve(ResolutionStopSession))
	require.Equal(t, ResolutionAcknowledge, p.Resolution)
}
