package order

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/MikeMC777/ordenes-skincare/internal/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest trims the free-text fields and checks the request shape.
// Field names in the returned error follow the JSON names.
func validateRequest(req *CreateOrderRequest) error {
	req.FullName = strings.TrimSpace(req.FullName)
	req.DNI = strings.TrimSpace(req.DNI)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Address = strings.TrimSpace(req.Address)
	req.Department = strings.TrimSpace(req.Department)
	req.Province = strings.TrimSpace(req.Province)
	req.ShippingZone = strings.TrimSpace(req.ShippingZone)
	req.ShippingModality = strings.TrimSpace(req.ShippingModality)
	for i := range req.Items {
		req.Items[i].ProductID = strings.ToLower(strings.TrimSpace(req.Items[i].ProductID))
	}

	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("order.validateRequest: %w", err)
	}

	fields := make([]apperr.FieldError, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, apperr.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: describe(fe),
		})
	}
	return &apperr.ValidationError{Fields: fields}
}

// fieldPath drops the struct name: "CreateOrderRequest.items[0].productId"
// becomes "items[0].productId".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a UUID"
	case "alphanum":
		return "must contain only letters and digits"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "must contain at least " + fe.Param() + " item(s)"
		}
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be >= " + fe.Param()
	case "max":
		if fe.Kind() == reflect.Slice {
			return "must contain at most " + fe.Param() + " items"
		}
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be <= " + fe.Param()
	default:
		return "failed '" + fe.Tag() + "' validation"
	}
}
