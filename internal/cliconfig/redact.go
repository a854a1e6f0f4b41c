package cliconfig

// Redact hides a secret for display, keeping only whether it was set.
func Redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}
