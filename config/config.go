package config

import (
	"os"
	"strings"
)

// AdminEmails returns the set of privileged sign-up emails from the
// ADMIN_EMAILS env var (comma separated). Accounts registering with one of
// these addresses are promoted to ADMIN.
func AdminEmails() map[string]bool {
	raw := strings.TrimSpace(os.Getenv("ADMIN_EMAILS"))
	admins := make(map[string]bool)
	if raw == "" {
		return admins
	}
	for _, part := range strings.Split(raw, ",") {
		email := strings.ToLower(strings.TrimSpace(part))
		if email != "" {
			admins[email] = true
		}
	}
	return admins
}

// IsAdminEmail reports whether email is on the configured allowlist.
func IsAdminEmail(email string) bool {
	return AdminEmails()[strings.ToLower(strings.TrimSpace(email))]
}

// AllowedEmailDomain returns the campus domain sign-ups are restricted to,
// or "" when any domain is accepted.
func AllowedEmailDomain() string {
	return strings.TrimSpace(os.Getenv("ALLOWED_EMAIL_DOMAIN"))
}

// EmailDomainAllowed checks email against AllowedEmailDomain.
func EmailDomainAllowed(email string) bool {
	domain := AllowedEmailDomain()
	if domain == "" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(email)), "@"+strings.ToLower(domain))
}

// FrontendURL is the base URL embedded in emailed links.
func FrontendURL() string {
	v := strings.TrimSpace(os.Getenv("FRONTEND_URL"))
	if v == "" {
		return "http://localhost:3000"
	}
	return v
}
