package extract

// Kind classifies the shape a field's value must take. Keeping the set closed
// lets the reconciler do a finite case analysis instead of reflection.
type Kind int

const (
	KindScalar Kind = iota
	KindList
	KindNested
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindNested:
		return "nested"
	default:
		return "unknown"
	}
}

// Field describes one declared field of a response schema.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// Default fills the field when it is absent and not required. List
	// fields default to an empty list regardless.
	Default any
	// FallbackPrompt asks the model for just this field's value in
	// isolation. Empty means the field cannot be re-queried.
	FallbackPrompt string
}

// Schema describes the expected shape for one response kind. The set of
// schemas is small, fixed, and owned by the features that use them.
type Schema struct {
	Name   string
	Fields []Field
}

// FieldNamed returns the descriptor for a field, or nil when undeclared.
func (s Schema) FieldNamed(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}
