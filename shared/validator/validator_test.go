package validator_test

import (
	"patientflow/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type checkInPayload struct {
	PatientID  string `json:"patient_id" validate:"required"`
	Department string `json:"department" validate:"required,max=50"`
	Priority   int    `json:"priority"   validate:"omitempty,min=1,max=9"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name:    "valid payload",
			body:    `{"patient_id":"p-1","department":"General","priority":3}`,
			wantErr: false,
		},
		{
			name:    "missing patient id",
			body:    `{"department":"General"}`,
			wantErr: true,
		},
		{
			name:    "priority out of range",
			body:    `{"patient_id":"p-1","department":"General","priority":42}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `{"patient_id":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := checkInPayload{}
			err := validator.Validate(strings.NewReader(tt.body), &payload)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStruct(t *testing.T) {
	payload := checkInPayload{PatientID: "p-1", Department: "General"}
	assert.NoError(t, validator.ValidateStruct(&payload))

	empty := checkInPayload{}
	assert.Error(t, validator.ValidateStruct(&empty))
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("General", "required"))
	assert.Error(t, validator.ValidateVar("", "required"))
}
