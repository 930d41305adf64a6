package utils

import (
	"net/url"
)

// SanitizeURLForLog returns a string form of the URL safe for logging: the
// auth key query parameter is masked and user info removed.
func SanitizeURLForLog(u *url.URL) string {
	if u == nil {
		return ""
	}
	copied := *u
	copied.User = nil
	query := copied.Query()
	if query.Has("key") {
		query.Set("key", "***")
		copied.RawQuery = query.Encode()
	}
	return copied.String()
}
