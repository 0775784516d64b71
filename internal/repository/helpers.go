package repository

import (
	"path/filepath"
	"time"

	"github.com/alexanderramin/focustrack/internal/domain"
)

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// userFile returns dir/<prefix><username><ext>.
func userFile(dir, prefix string, id domain.Identity, ext string) string {
	return filepath.Join(dir, prefix+id.Username+ext)
}

// requireIdentity fails fast on an unresolved user.
func requireIdentity(id domain.Identity) error {
	if id.Username == "" {
		return ErrMissingIdentity
	}
	return nil
}
