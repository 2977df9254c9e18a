package styling

import (
	"fmt"
	"strings"
)

// EscapeSelector escapes a class name for use in a CSS class selector,
// following the CSS.escape() algorithm.
func EscapeSelector(name string) string {
	if name == "-" {
		return `\-`
	}

	var b strings.Builder
	for i, r := range name {
		switch {
		case r == 0:
			b.WriteRune('�')
		case r >= '0' && r <= '9' && (i == 0 || (i == 1 && name[0] == '-')):
			fmt.Fprintf(&b, `\%x `, r)
		case r >= 0x80, r == '-', r == '_',
			r >= '0' && r <= '9',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\%x `, r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}
