package appointment

import "regexp"

var (
	nameRegex = regexp.MustCompile(`^[A-Za-z\s]+$`)
	// Optional leading + and country code, optional parenthesized 3-digit area
	// code, 3-digit exchange, 4-6 digit subscriber number, with optional
	// space/hyphen/dot separators between groups.
	phoneRegex = regexp.MustCompile(`^\+?([0-9]{1,2}[\s.-]?)?\(?[0-9]{3}\)?[\s.-]?[0-9]{3}[\s.-]?[0-9]{4,6}$`)
)

// validName accepts trimmed names of at least two characters consisting only
// of letters and whitespace.
func validName(name string) bool {
	return len(name) >= 2 && nameRegex.MatchString(name)
}

// validPhone accepts common formats such as "5551234567", "555-123-4567" and
// "+1 (555) 123-4567". The number is stored as typed, not normalized.
func validPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}
