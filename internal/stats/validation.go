// Package stats implements concurrent processing of GitHub repository
// statistics.
//
// This file (validation.go) validates the configured GitHub username
// against GitHub's account naming rules before any API call is made.
package stats

import (
	"fmt"
	"regexp"
)

// usernamePattern validates GitHub account names:
// alphanumeric and hyphens, no leading/trailing hyphen.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`)

// validateUsername checks the username against GitHub's rules:
// 1-39 characters, alphanumeric and hyphens, cannot start or end with a
// hyphen.
func validateUsername(name string) error {
	if name == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if len(name) > 39 {
		return fmt.Errorf("username too long (max 39 characters): %s", name)
	}
	if !usernamePattern.MatchString(name) {
		return fmt.Errorf("invalid username format: %s (alphanumeric and hyphens only, cannot start/end with hyphen)", name)
	}
	return nil
}
