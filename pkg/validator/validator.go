package validator

import (
	"strings"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

var reportReasons = map[string]bool{
	"spam":          true,
	"inappropriate": true,
	"harassment":    true,
	"underage":      true,
	"scam":          true,
	"other":         true,
}

const maxDescriptionLength = 2000

func ValidateReport(reason, description string) ValidationErrors {
	errs := make(ValidationErrors)

	reason = strings.TrimSpace(reason)
	if reason == "" {
		errs.Add("reason", "Reason is required")
	} else if !reportReasons[reason] {
		errs.Add("reason", "Unknown report reason")
	}

	if len(description) > maxDescriptionLength {
		errs.Add("description", "Description is too long")
	}

	return errs
}

const maxMessageLength = 4000

func ValidateMessageBody(body string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(body) == "" {
		errs.Add("body", "Message body is required")
	} else if len(body) > maxMessageLength {
		errs.Add("body", "Message is too long")
	}

	return errs
}
