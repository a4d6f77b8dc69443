package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- WipeByteArray ----------

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

// ---------- UsageError ----------

func TestUsageError_UnwrapsToValidation(t *testing.T) {
	err := Usage("copy <source> <destination>")

	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "usage: copy <source> <destination>", err.Error())

	var ue *UsageError
	require.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &ue))
	assert.Equal(t, "copy <source> <destination>", ue.Usage)
}

func TestSentinels_AreDistinct(t *testing.T) {
	all := []error{
		ErrValidation, ErrNotFound, ErrPermissionDenied, ErrAuthFailure,
		ErrIOFailure, ErrNotInstalled, ErrMissingEntryPoint, ErrRuntimeFailure,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Fatalf("%v unexpectedly matches %v", a, b)
			}
		}
	}
}

// ---------- Errorf ----------

func TestErrorf_MessageAndKind(t *testing.T) {
	err := Errorf(ErrNotInstalled, "package '%s' is not installed", "demo.pyhx")

	assert.Equal(t, "package 'demo.pyhx' is not installed", err.Error())
	require.ErrorIs(t, err, ErrNotInstalled)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestErrorf_KeepsWrappedCause(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("outer: %w", Errorf(ErrIOFailure, "cannot save users: %w", cause))

	require.ErrorIs(t, err, ErrIOFailure)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "outer: cannot save users: disk full", err.Error())

	var ce *Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrIOFailure, ce.Kind)
}
