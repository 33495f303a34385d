package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signUpPayload struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestStruct(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	assert.Empty(t, v.Struct(&signUpPayload{Email: "alice@example.com", Password: "s3cretpass"}))

	assert.NotEmpty(t, v.Struct(&signUpPayload{Email: "not-an-email", Password: "s3cretpass"}))
	assert.NotEmpty(t, v.Struct(&signUpPayload{Email: "alice@example.com", Password: "short"}))
	assert.NotEmpty(t, v.Struct(&signUpPayload{}))
}
