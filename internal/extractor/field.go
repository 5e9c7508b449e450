package extractor

// Source tells where an extracted value came from.
type Source int

const (
	// Default means no pattern matched and the configured fallback was used.
	Default Source = iota
	// Found means the value was read from the document (or supplied by the caller).
	Found
)

// String implements fmt.Stringer.
func (s Source) String() string {
	if s == Found {
		return "found"
	}
	return "default"
}

// Field is a tagged extraction result: Found(value) or Default(value).
type Field[T any] struct {
	Value  T      `json:"value"`
	Source Source `json:"-"`
}

// IsFound reports whether the value came from the document.
func (f Field[T]) IsFound() bool {
	return f.Source == Found
}

func found[T any](v T) Field[T] {
	return Field[T]{Value: v, Source: Found}
}

func fallback[T any](v T) Field[T] {
	return Field[T]{Value: v, Source: Default}
}
