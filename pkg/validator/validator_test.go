package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateReport(t *testing.T) {
	errs := ValidateReport("spam", "fake profile")
	assert.False(t, errs.HasErrors())

	errs = ValidateReport("", "")
	assert.True(t, errs.HasErrors())
	assert.Contains(t, errs, "reason")

	errs = ValidateReport("rude", "")
	assert.Contains(t, errs, "reason")

	errs = ValidateReport("spam", strings.Repeat("x", maxDescriptionLength+1))
	assert.Contains(t, errs, "description")
}

func TestValidateMessageBody(t *testing.T) {
	assert.False(t, ValidateMessageBody("hi").HasErrors())

	errs := ValidateMessageBody("   ")
	assert.Contains(t, errs, "body")

	errs = ValidateMessageBody(strings.Repeat("x", maxMessageLength+1))
	assert.Contains(t, errs, "body")
}
