package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateSlug checks that s is lowercase alphanumeric with single hyphens
func ValidateSlug(s string) error {
	if s == "" {
		return goerr.New("ID cannot be empty")
	}
	if !idPattern.MatchString(s) {
		return goerr.New("ID must be lowercase alphanumeric with hyphens", goerr.V("id", s))
	}
	return nil
}
