package customvalidator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))
	return v
}

func TestRequestStatusValidation(t *testing.T) {
	v := newTestValidator(t)
	type payload struct {
		Status string `validate:"request_status"`
	}

	for _, status := range []string{"new", "in_progress", "repaired", "scrap"} {
		assert.NoError(t, v.Struct(payload{Status: status}), status)
	}
	for _, status := range []string{"", "closed", "NEW", "done"} {
		assert.Error(t, v.Struct(payload{Status: status}), status)
	}
}

func TestRequestTypeValidation(t *testing.T) {
	v := newTestValidator(t)
	type payload struct {
		RequestType string `validate:"request_type"`
	}

	assert.NoError(t, v.Struct(payload{RequestType: "corrective"}))
	assert.NoError(t, v.Struct(payload{RequestType: "preventive"}))
	assert.Error(t, v.Struct(payload{RequestType: "emergency"}))
}

func TestPriorityLevelValidation(t *testing.T) {
	v := newTestValidator(t)
	type payload struct {
		Priority string `validate:"priority_level"`
	}

	for _, priority := range []string{"low", "medium", "high", "critical"} {
		assert.NoError(t, v.Struct(payload{Priority: priority}), priority)
	}
	assert.Error(t, v.Struct(payload{Priority: "urgent"}))
}

// omitempty пропускает пустое значение, не дергая доменное правило.
func TestOptionalPriorityAllowsEmpty(t *testing.T) {
	v := newTestValidator(t)
	type payload struct {
		Priority string `validate:"omitempty,priority_level"`
	}

	assert.NoError(t, v.Struct(payload{}))
	assert.Error(t, v.Struct(payload{Priority: "urgent"}))
}
