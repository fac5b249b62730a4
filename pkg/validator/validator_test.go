package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(loginForm{Email: "reader@example.com", Password: "secret1"}))
}

func TestValidate_FieldMessages(t *testing.T) {
	err := Validate(loginForm{Email: "not-an-email", Password: "ab"})
	require.Error(t, err)

	valErr, ok := err.(*ValidationError)
	require.True(t, ok)

	fields := valErr.Fields()
	assert.Equal(t, "must be a valid email address", fields["Email"])
	assert.Equal(t, "must be at least 6 characters", fields["Password"])
	assert.Contains(t, valErr.Error(), "field 'Email'")
}

func TestValidate_Required(t *testing.T) {
	err := Validate(loginForm{})
	require.Error(t, err)

	valErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "is required", valErr.Fields()["Email"])
}
