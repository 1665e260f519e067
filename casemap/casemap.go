// Package casemap implements the nickname and channel name folding schemes
// servers advertise through the CASEMAPPING token.
package casemap

// A CaseMapping names a folding scheme.
type CaseMapping string

const (
	// ASCII folds A-Z onto a-z and nothing else.
	ASCII CaseMapping = "ascii"

	// RFC1459 folds like ASCII, but also treats []\^ as the uppercase
	// forms of {}|~.
	RFC1459 CaseMapping = "rfc1459"
)

// Parse returns the casemapping by name. Only the two known schemes are
// accepted.
func Parse(name string) (CaseMapping, bool) {
	switch CaseMapping(name) {
	case ASCII:
		return ASCII, true
	case RFC1459:
		return RFC1459, true
	}

	return "", false
}

// Fold canonicalizes s. It is byte-wise, so the length never changes and
// bytes outside of ASCII are left alone. Unknown mappings fold as RFC1459.
func (cm CaseMapping) Fold(s string) string {
	rfc := cm != ASCII

	// Most names are already folded, so avoid the allocation if possible.
	i := 0
	for ; i < len(s); i++ {
		if foldByte(s[i], rfc) != s[i] {
			break
		}
	}
	if i == len(s) {
		return s
	}

	b := []byte(s)
	for ; i < len(b); i++ {
		b[i] = foldByte(b[i], rfc)
	}

	return string(b)
}

// Equal returns true if a and b fold to the same string.
func (cm CaseMapping) Equal(a, b string) bool {
	return len(a) == len(b) && cm.Fold(a) == cm.Fold(b)
}

func (cm CaseMapping) String() string {
	return string(cm)
}

func foldByte(c byte, rfc bool) byte {
	switch {
	case c >= 'A' && c <= 'Z':
		return c + ('a' - 'A')
	case !rfc:
		return c
	case c == '[':
		return '{'
	case c == ']':
		return '}'
	case c == '\\':
		return '|'
	case c == '^':
		return '~'
	}

	return c
}
