package utils

import "github.com/microcosm-cc/bluemonday"

var (
	ugcPolicy   = bluemonday.UGCPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

// Sanitize cleans HTML content to prevent XSS attacks, keeping a safe subset.
func Sanitize(input string) string {
	return ugcPolicy.Sanitize(input)
}

// SanitizePlain strips all markup; used for display names and room names
// that are rendered as text.
func SanitizePlain(input string) string {
	return plainPolicy.Sanitize(input)
}
