package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signupRequest struct {
	Name  string `json:"name" validate:"required,max=8"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age" validate:"gt=0"`
}

func (r signupRequest) CrossValidate() []FieldError {
	if r.Name == "root" {
		return []FieldError{{Field: "name", Message: "name is reserved"}}
	}
	return nil
}

func TestValidateReportsTagFailures(t *testing.T) {
	v := New()

	errs := v.Validate(signupRequest{Name: "", Email: "not-an-email", Age: 0})

	assert.Len(t, errs, 3)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "name is required", errs[0].Message)
	assert.Equal(t, "Invalid email address format.", errs[1].Message)
	assert.Equal(t, "age must be greater than 0", errs[2].Message)
}

func TestValidateUsesJSONFieldNames(t *testing.T) {
	v := New()

	errs := v.Validate(signupRequest{Name: "averylongname", Email: "a@b.co", Age: 1})

	assert.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "name should not exceed 8 character length.", errs[0].Message)
}

func TestValidateRunsCrossFieldRules(t *testing.T) {
	v := New()

	errs := v.Validate(signupRequest{Name: "root", Email: "a@b.co", Age: 1})

	assert.Len(t, errs, 1)
	assert.Equal(t, "name is reserved", errs[0].Message)
}

func TestValidatePassesOnValidRequest(t *testing.T) {
	v := New()

	errs := v.Validate(signupRequest{Name: "ada", Email: "ada@b.co", Age: 30})

	assert.Empty(t, errs)
}

func TestJoinConcatenatesMessages(t *testing.T) {
	errs := []FieldError{
		{Field: "name", Message: "name is required"},
		{Field: "email", Message: "email is required"},
	}

	assert.Equal(t, "name is required,email is required", Join(errs))
	assert.Equal(t, "", Join(nil))
}

func TestDropFieldFiltersOnlyNamedField(t *testing.T) {
	errs := []FieldError{
		{Field: "customerId", Message: "Customer is required"},
		{Field: "products", Message: "products is required"},
	}

	filtered := DropField(errs, "customerId")

	assert.Len(t, filtered, 1)
	assert.Equal(t, "products", filtered[0].Field)

	assert.Empty(t, DropField(errs[:1], "customerId"))
	assert.Len(t, DropField(errs, "nope"), 2)
}
