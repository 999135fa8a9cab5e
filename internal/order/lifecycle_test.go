package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLifecycle_Permissive(t *testing.T) {
	l := Lifecycle{}
	all := []Status{StatusPending, StatusShipped, StatusDelivered}
	for _, from := range all {
		for _, to := range all {
			assert.True(t, l.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestLifecycle_Strict(t *testing.T) {
	l := Lifecycle{Strict: true}

	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusPending, StatusPending, true},
		{StatusDelivered, StatusDelivered, true},
		{StatusPending, StatusDelivered, false},
		{StatusShipped, StatusPending, false},
		{StatusDelivered, StatusShipped, false},
		{StatusDelivered, StatusPending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, l.CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" shipped ")
	assert.NoError(t, err)
	assert.Equal(t, StatusShipped, st)

	_, err = ParseStatus("CANCELED")
	assert.Error(t, err)
}
