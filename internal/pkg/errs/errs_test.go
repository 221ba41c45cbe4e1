//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"hotel-checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodedError(t *testing.T) {
	base := errs.NewCoded(errs.ErrConflict, "duplicate_payment_attempt", "payment already in progress")

	t.Run("category is reachable through the chain", func(t *testing.T) {
		err := errs.Wrap(base, "checkout")
		assert.True(t, errors.Is(err, errs.ErrConflict))
		assert.True(t, errs.Is(err, errs.ErrConflict))
		assert.False(t, errs.Is(err, errs.ErrValidation))
		assert.Equal(t, "duplicate_payment_attempt", errs.CodeOf(err))
	})

	t.Run("WithDetail does not mutate the shared value", func(t *testing.T) {
		withDetail := base.WithDetail(map[string]any{"attemptId": "a-1"})
		assert.Nil(t, base.Detail)
		require.NotNil(t, withDetail.Detail)
		assert.Equal(t, "a-1", withDetail.Detail["attemptId"])
	})

	t.Run("marks are visible to errs.Is", func(t *testing.T) {
		marked := errs.Mark(errors.New("boom"), errs.ErrUnavailable)
		assert.True(t, errs.Is(marked, errs.ErrUnavailable))
		assert.Empty(t, errs.CodeOf(marked))
	})
}
