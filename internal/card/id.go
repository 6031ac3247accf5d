package card

import (
	"fmt"
	"strings"
)

// FormatCardID builds a stable catalog id:
//
//	<author>-<setName>-v<version>-<name-kebab>-<level|empty>-<cardNumber>
//
// When the level is absent the two dashes around it collapse to a double
// dash, e.g. "wizards-base-set-v1-charmander--46".
func FormatCardID(author, setName, version, name, level, cardNumber string) string {
	return fmt.Sprintf("%s-%s-v%s-%s-%s-%s",
		kebab(author), kebab(setName), version, kebab(name), strings.ToLower(level), cardNumber)
}

// kebab lowercases and dash-joins a free-form name.
func kebab(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
