package services

import "strings"

// maxContactDigits caps a Korean mobile number (010-XXXX-XXXX).
const maxContactDigits = 11

// minContactDigits is the minimum digit count for a contact to be accepted.
const minContactDigits = 10

// stripNonDigits returns only the digit characters of s, order preserved.
func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatContact normalizes raw contact input into the canonical display form.
// Digits are regrouped by count: up to 3 unseparated, up to 7 as NNN-NNNN,
// 8 or more as NNN-NNNN-NNNN truncated to 11 digits. Called on every
// keystroke client-side and again at the trust boundary, so it never errors;
// malformed input simply normalizes to its digit-only prefix.
func FormatContact(raw string) string {
	digits := stripNonDigits(raw)
	if len(digits) > maxContactDigits {
		digits = digits[:maxContactDigits]
	}

	switch {
	case len(digits) <= 3:
		return digits
	case len(digits) <= 7:
		return digits[:3] + "-" + digits[3:]
	default:
		return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	}
}

// IsValidContact reports whether raw contains enough digits to be a
// reachable phone number.
func IsValidContact(raw string) bool {
	return len(stripNonDigits(raw)) >= minContactDigits
}

// DialableContact strips separators for use in tel: links.
func DialableContact(contact string) string {
	return stripNonDigits(contact)
}
