package helpers

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupShape struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func TestBindingErrorMessageAggregatesFields(t *testing.T) {
	validate := validator.New()
	err := validate.Struct(signupShape{Name: "J", Email: "nope"})
	require.Error(t, err)

	msg := BindingErrorMessage(err)
	assert.Contains(t, msg, "name must be at least 2 characters")
	assert.Contains(t, msg, "email must be a valid email address")
	assert.Contains(t, msg, "password is required")
}

func TestBindingErrorMessageNonValidatorError(t *testing.T) {
	msg := BindingErrorMessage(errors.New("unexpected EOF"))
	assert.Equal(t, "Invalid request body.", msg)
}
