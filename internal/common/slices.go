package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// FirstMatch returns the first element satisfying pred and true,
// or the zero value and false if none does.
func FirstMatch[S ~[]E, E any](s S, pred func(E) bool) (E, bool) {
	for _, v := range s {
		if pred(v) {
			return v, true
		}
	}

	var zero E

	return zero, false
}

// Unique returns the elements of s in their original order with duplicates removed.
func Unique[S ~[]E, E comparable](s S) S {
	seen := make(map[E]struct{}, len(s))
	out := make(S, 0, len(s))

	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out
}
