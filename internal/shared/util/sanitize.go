package util

import (
	"errors"
	"strings"
)

// Storage keys and Content-Disposition headers both carry the name, so
// it is kept short.
const maxFileNameLen = 128

// SanitizeFileName strips path components from an uploaded file name
// and normalizes whitespace. Traversal patterns and empty names are
// rejected. Names longer than 128 runes keep their tail so the
// extension survives.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.ReplaceAll(name, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	if r := []rune(s); len(r) > maxFileNameLen {
		s = string(r[len(r)-maxFileNameLen:])
	}
	return s, nil
}
