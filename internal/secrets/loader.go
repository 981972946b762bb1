// Package secrets resolves credentials given inline or through files
// mounted next to the service.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrNotConfigured = errors.New("not configured")

// Source describes where a secret may come from.
type Source struct {
	// Name is used in error messages.
	Name string
	// Value is an inline secret, usually from an environment variable.
	Value string
	// File holds the secret. It takes precedence over Value.
	File string
	// Optional secrets resolve to "" instead of ErrNotConfigured.
	Optional bool
}

// Load returns the trimmed secret described by src.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}

		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" && !src.Optional {
		return "", fmt.Errorf("%s is %w", name, ErrNotConfigured)
	}
	return secret, nil
}
