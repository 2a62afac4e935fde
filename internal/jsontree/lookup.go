package jsontree

// Lookup returns the value of the first member of obj, in document order,
// whose key equals any of the aliases under ASCII case-insensitive
// comparison. It reports false when obj is not an object or nothing matches.
func Lookup(obj Value, aliases ...string) (Value, bool) {
	for _, m := range obj.Members() {
		if MatchesAny(m.Key, aliases) {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether obj has a member under any of the aliases
func Has(obj Value, aliases ...string) bool {
	_, ok := Lookup(obj, aliases...)
	return ok
}

// MatchesAny reports whether key equals one of the aliases, ignoring ASCII case
func MatchesAny(key string, aliases []string) bool {
	for _, alias := range aliases {
		if EqualFoldASCII(key, alias) {
			return true
		}
	}
	return false
}

// EqualFoldASCII compares two strings folding only A-Z to a-z. Unlike
// strings.EqualFold it applies no Unicode case folding.
func EqualFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
