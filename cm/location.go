package cm

// SourceLocation is a file/line/column triple attachable to a
// declaration, for front ends that want to remember where a field or
// method came from. Kept as a plain value rather than an entity: it has
// no identity and is never use-tracked.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// IsZero reports whether loc carries no location information.
func (loc SourceLocation) IsZero() bool {
	return loc.File == "" && loc.Line == 0 && loc.Column == 0
}
