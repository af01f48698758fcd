package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValidationErrors_LessonRequest(t *testing.T) {
	req := CreateLessonRequest{
		CourseID:      "course-1",
		Title:         "Flexbox basics",
		Sections:      []string{"theory", "karaoke"},
		PassThreshold: 1.5,
	}

	err := req.Validate()
	require.Error(t, err)

	errs := FormatValidationErrors(err)
	messages := map[string]string{}
	for _, e := range errs {
		messages[e.Field] = e.Message
	}

	assert.Contains(t, messages["Sections[1]"], "must be one of")
	assert.Equal(t, "PassThreshold must be 1 or less", messages["PassThreshold"])
}

func TestFormatValidationErrors_RegisterRequest(t *testing.T) {
	req := RegisterRequest{
		Username: "a!",
		Email:    "not-an-email",
		Password: "weak",
	}

	err := req.Validate()
	require.Error(t, err)

	resp := CreateValidationErrorResponse(err)
	assert.Equal(t, 400, resp.Code)

	fields := map[string]bool{}
	for _, e := range resp.Errors {
		fields[e.Field] = true
	}
	assert.True(t, fields["Username"])
	assert.True(t, fields["Email"])
	assert.True(t, fields["Password"])
}
