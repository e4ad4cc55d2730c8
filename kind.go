package transit

// Kind classifies a Go value for the purposes of Transit dispatch: whether
// it rides a scalar tilde-code, or must be wrapped in a composite envelope
// (array, object, or cmap). A map is only eligible for the plain JSON
// object envelope when every one of its keys has Kind Scalar and a
// key-position form; otherwise it is forced into the ~#cmap envelope.
type Kind int

const (
	// Scalar values encode to a single JSON string, number, bool, or null,
	// optionally carrying a tilde-code prefix.
	Scalar Kind = iota
	// Composite values require an array or object envelope.
	Composite
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Composite:
		return "composite"
	default:
		return "unknown"
	}
}
