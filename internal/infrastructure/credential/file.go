// Package credential loads the retailer session credential from local storage.
// The credential is a raw Cookie-header string (semicolon-separated key=value
// pairs) obtained out-of-band; it is read fresh on every authenticated call
// and never cached, so a replaced file takes effect immediately.
package credential

import (
	"os"
	"strings"
)

// FileSource reads the session credential from a single-line text file
type FileSource struct {
	path string
}

// NewFileSource creates a credential source backed by the given file path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load returns the credential string, or "" when the file is missing or
// unreadable. Absence is not an error; it means unauthenticated.
func (s *FileSource) Load() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// CSRFToken extracts the csrftoken value from a cookie-header string by
// scanning its semicolon-delimited segments. Returns "" when absent. This is
// the one place any structure is assumed inside the credential.
func CSRFToken(cookie string) string {
	for _, part := range strings.Split(cookie, ";") {
		part = strings.TrimSpace(part)
		if value, ok := strings.CutPrefix(part, "csrftoken="); ok {
			return value
		}
	}
	return ""
}
