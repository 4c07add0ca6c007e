package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	UserID          string `validate:"required"`
	InteractionType string `validate:"required,oneof=view click purchase"`
	Limit           int    `validate:"gte=0,lte=100"`
}

func TestValidate_Valid(t *testing.T) {
	err := Validate(sampleRequest{UserID: "u1", InteractionType: "view", Limit: 10})
	assert.NoError(t, err)
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	err := Validate(sampleRequest{InteractionType: "hover", Limit: 500})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["UserID"])
	assert.Equal(t, "must be one of: view click purchase", fields["InteractionType"])
	assert.Equal(t, "must be less than or equal to 100", fields["Limit"])
}

func TestValidationError_Error(t *testing.T) {
	err := Validate(sampleRequest{InteractionType: "view"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'UserID' is required")
}
