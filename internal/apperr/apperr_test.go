package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	testCases := []struct {
		desc string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"validation", NewValidation("dni", "required"), KindValidation},
		{"unavailable", &UnavailableError{ProductIDs: []string{"a"}}, KindItemsUnavailable},
		{"wrapped rate", fmt.Errorf("order.CreateOrder: %w", ErrRateNotFound), KindRateNotFound},
		{"duplicate size", &DuplicateSizeError{Value: "M"}, KindConflict},
		{"not found", ErrDataNotFound, KindNotFound},
		{"transition", ErrInvalidTransition, KindInvalidTransition},
		{"persistence", Persistence("repo.Create", errors.New("conn reset")), KindPersistence},
		{"timeout wins over persistence", Persistence("repo.Create", context.DeadlineExceeded), KindTimeout},
		{"internal", errors.New("boom"), KindInternal},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(Persistence("op", errors.New("x"))))
	assert.True(t, Retryable(context.DeadlineExceeded))
	assert.False(t, Retryable(ErrRateNotFound))
	assert.False(t, Retryable(NewValidation("items", "empty")))
}

func TestPersistence_KeepsCause(t *testing.T) {
	cause := errors.New("broken pipe")
	err := Persistence("repo.Create", cause)

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, Persistence("op", nil))
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "dni", Message: "required"},
		{Field: "items", Message: "must contain at least 1 item"},
	}}
	assert.Equal(t, "invalid data: dni: required; items: must contain at least 1 item", err.Error())
}

func TestFromStore(t *testing.T) {
	assert.ErrorIs(t, FromStore("op", errors.New("conn reset")), ErrPersistence)
	assert.Equal(t, KindNotFound, KindOf(FromStore("op", ErrDataNotFound)))
	assert.Equal(t, KindTimeout, KindOf(FromStore("op", context.DeadlineExceeded)))
	assert.NoError(t, FromStore("op", nil))
}
