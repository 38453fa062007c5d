package classify

// Kind names the body shape that produced an Error.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindResponseDocument
	KindODMDocument
	KindIISPage
)

func (k Kind) String() string {
	switch k {
	case KindResponseDocument:
		return "response_document"
	case KindODMDocument:
		return "odm_document"
	case KindIISPage:
		return "iis_page"
	default:
		return "unrecognized"
	}
}

// Error is a non-success service response normalised into one shape.
// Message is short and stable; RawDiagnostic always holds the complete body.
type Error struct {
	StatusCode    int
	Message       string
	RawDiagnostic string
	Kind          Kind

	// Set only when Kind is KindResponseDocument.
	ReasonCode          string
	ErrorOriginLocation string
	ReferenceNumber     string
}

func (e *Error) Error() string {
	return e.Message
}
