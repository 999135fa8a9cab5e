package inventory

import (
	"testing"

	"github.com/MikeMC777/ordenes-skincare/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pid = "5f0c8a4e-3f5b-4a7e-9d0b-2a6c1b7e9f10"

func TestPlan_MinimalDiff(t *testing.T) {
	current := []Size{
		{ProductID: pid, Value: "M", Inventory: 5},
		{ProductID: pid, Value: "L", Inventory: 3},
	}
	desired := []SizeSpec{{"M", 5}, {"L", 10}, {"XL", 2}}

	diff, err := Plan(pid, current, desired)
	require.NoError(t, err)

	assert.Equal(t, []Size{{ProductID: pid, Value: "XL", Inventory: 2}}, diff.Create)
	assert.Equal(t, []Size{{ProductID: pid, Value: "L", Inventory: 10}}, diff.Update)
	assert.Empty(t, diff.Delete)
	assert.Equal(t, 1, diff.Unchanged)
}

func TestPlan_EmptyDesiredDeletesEverything(t *testing.T) {
	current := []Size{
		{ProductID: pid, Value: "S", Inventory: 1},
		{ProductID: pid, Value: "M", Inventory: 0},
	}

	diff, err := Plan(pid, current, nil)
	require.NoError(t, err)

	assert.Empty(t, diff.Create)
	assert.Empty(t, diff.Update)
	require.Len(t, diff.Delete, 2)
	assert.Equal(t, "M", diff.Delete[0].Value)
	assert.Equal(t, "S", diff.Delete[1].Value)
}

func TestPlan_NoChanges(t *testing.T) {
	current := []Size{{ProductID: pid, Value: "42", Inventory: 7}}

	diff, err := Plan(pid, current, []SizeSpec{{" 42 ", 7}})
	require.NoError(t, err)
	assert.True(t, diff.Empty())
	assert.Equal(t, 1, diff.Unchanged)
}

func TestPlan_NormalizesValues(t *testing.T) {
	diff, err := Plan(pid, nil, []SizeSpec{{" xl ", 1}})
	require.NoError(t, err)
	require.Len(t, diff.Create, 1)
	assert.Equal(t, "XL", diff.Create[0].Value)
}

func TestValidate_RejectsDuplicates(t *testing.T) {
	_, err := Validate([]SizeSpec{{"M", 1}, {"L", 2}, {" m", 3}})

	require.ErrorIs(t, err, apperr.ErrDuplicateSize)
	var dup *apperr.DuplicateSizeError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "M", dup.Value)
}

func TestValidate_RejectsBadEntries(t *testing.T) {
	_, err := Validate([]SizeSpec{{"", 1}, {"L", -2}})

	require.ErrorIs(t, err, apperr.ErrInvalidData)
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []apperr.FieldError{
		{Field: "sizes[0].value", Message: "must not be empty"},
		{Field: "sizes[1].inventory", Message: "must be >= 0"},
	}, ve.Fields)
}
