package guard_test

import (
	"errors"
	"testing"

	"production/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("command not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	errNotConstructed := errors.New("PlanCommand must be created via NewPlanCommand")

	type planCommand struct {
		orderSeq string
		guard    guard.ConstructorGuard
	}

	newPlanCommand := func(seq string) (planCommand, error) {
		if seq == "" {
			return planCommand{}, errors.New("sequence is required")
		}
		return planCommand{orderSeq: seq, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_command_is_valid", func(t *testing.T) {
		cmd, err := newPlanCommand("MO00001")

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errNotConstructed))
		assert.Equal(t, "MO00001", cmd.orderSeq)
	})

	t.Run("literal_command_is_rejected", func(t *testing.T) {
		var cmd planCommand

		assert.Equal(t, errNotConstructed, cmd.guard.Validate(errNotConstructed))
	})

	t.Run("guard_survives_copy_by_value", func(t *testing.T) {
		cmd, err := newPlanCommand("MO00002")
		require.NoError(t, err)

		copied := cmd

		require.NoError(t, copied.guard.Validate(errNotConstructed))
	})
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(err)
	}
}
