// Package inventory reconciles a product's size rows against the set an
// administrator submits.
package inventory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MikeMC777/ordenes-skincare/internal/apperr"
)

// Size is one persisted (product, value) row.
type Size struct {
	ProductID string `json:"product_id"`
	Value     string `json:"value"     example:"M"`
	Inventory int    `json:"inventory" example:"5"`
}

// SizeSpec is one entry of the desired set.
type SizeSpec struct {
	Value     string `json:"value"     example:"M"`
	Inventory int    `json:"inventory" example:"5"`
}

// Diff is the minimal set of writes that turns current into desired.
// Rows that already match appear in none of the lists.
type Diff struct {
	Create    []Size
	Update    []Size
	Delete    []Size
	Unchanged int
}

func (d Diff) Empty() bool {
	return len(d.Create) == 0 && len(d.Update) == 0 && len(d.Delete) == 0
}

func NormalizeValue(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

// Validate normalizes desired and rejects empty values, negative counts and
// repeated values. It needs no store access, so callers run it before opening
// a transaction.
func Validate(desired []SizeSpec) ([]SizeSpec, error) {
	out := make([]SizeSpec, 0, len(desired))
	var fields []apperr.FieldError

	for i, d := range desired {
		v := NormalizeValue(d.Value)
		if v == "" {
			fields = append(fields, apperr.FieldError{
				Field:   fmt.Sprintf("sizes[%d].value", i),
				Message: "must not be empty",
			})
		}
		if d.Inventory < 0 {
			fields = append(fields, apperr.FieldError{
				Field:   fmt.Sprintf("sizes[%d].inventory", i),
				Message: "must be >= 0",
			})
		}
		out = append(out, SizeSpec{Value: v, Inventory: d.Inventory})
	}
	if len(fields) > 0 {
		return nil, &apperr.ValidationError{Fields: fields}
	}

	seen := make(map[string]struct{}, len(out))
	for _, d := range out {
		if _, dup := seen[d.Value]; dup {
			return nil, &apperr.DuplicateSizeError{Value: d.Value}
		}
		seen[d.Value] = struct{}{}
	}
	return out, nil
}

// Plan computes the diff for one product. Create and Update follow the order
// of desired; Delete is sorted by value.
func Plan(productID string, current []Size, desired []SizeSpec) (Diff, error) {
	specs, err := Validate(desired)
	if err != nil {
		return Diff{}, err
	}

	existing := make(map[string]Size, len(current))
	for _, s := range current {
		existing[s.Value] = s
	}

	var diff Diff
	wanted := make(map[string]struct{}, len(specs))
	for _, d := range specs {
		wanted[d.Value] = struct{}{}
		row := Size{ProductID: productID, Value: d.Value, Inventory: d.Inventory}

		cur, ok := existing[d.Value]
		switch {
		case !ok:
			diff.Create = append(diff.Create, row)
		case cur.Inventory != d.Inventory:
			diff.Update = append(diff.Update, row)
		default:
			diff.Unchanged++
		}
	}

	for _, s := range current {
		if _, ok := wanted[s.Value]; !ok {
			diff.Delete = append(diff.Delete, s)
		}
	}
	sort.Slice(diff.Delete, func(i, j int) bool {
		return diff.Delete[i].Value < diff.Delete[j].Value
	})

	return diff, nil
}
