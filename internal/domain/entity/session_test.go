package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSession_EndIsFinal(t *testing.T) {
	s := NewSession("7")
	require.False(t, s.Ended())

	s.End()
	require.True(t, s.Ended())
	first := *s.EndedAt

	// повторное завершение не двигает время
	s.End()
	require.Equal(t, first, *s.EndedAt)
}

func TestSession_LocalMode(t *testing.T) {
	s := NewSession("")
	require.True(t, s.IsLocal())

	s = NewSession("42")
	require.False(t, s.IsLocal())
}
