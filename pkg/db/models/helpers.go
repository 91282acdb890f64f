package models

import (
	"strings"

	"github.com/leaderturk/property-management/pkg/validation"
)

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func checkNotBlank(errs validation.Errors, field, value string) {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, "is required")
	}
}
