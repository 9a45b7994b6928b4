package validation

import "strings"

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// Phone accepts digits with optional leading + and common separators,
// 7 to 15 digits total. Empty values are left to Required.
func Phone(field, value string, v Violations) {
	s := strings.TrimSpace(value)
	if s == "" {
		return
	}
	digits := 0
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			v[field] = "invalid_phone"
			return
		}
	}
	if digits < 7 || digits > 15 {
		v[field] = "invalid_phone"
	}
}

// OneOf restricts value to a fixed set (used for plan labels and statuses).
func OneOf(field, value string, allowed []string, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "invalid_value"
}
