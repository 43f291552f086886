package validator

import "strings"

// NormalizeEmail lowercases the address. Gmail addresses also lose dots and
// any +tag in the local part, and googlemail.com folds into gmail.com.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	at := strings.LastIndexByte(email, '@')
	if at <= 0 {
		return email
	}

	local, domain := email[:at], email[at+1:]
	if domain == "gmail.com" || domain == "googlemail.com" {
		if plus := strings.IndexByte(local, '+'); plus >= 0 {
			local = local[:plus]
		}
		local = strings.ReplaceAll(local, ".", "")
		domain = "gmail.com"
	}

	return local + "@" + domain
}

// TrimPtr trims the pointed-to string in place.
func TrimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
