package shopify

import "fmt"

type FailureKind int

const (
	FailureRequest FailureKind = iota + 1
	FailureTransport
	FailureStatus
	FailureDecode
)

func (k FailureKind) String() string {
	switch k {
	case FailureRequest:
		return "request"
	case FailureTransport:
		return "transport"
	case FailureStatus:
		return "status"
	case FailureDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Failure describes why an upstream call produced no usable body.
type Failure struct {
	Kind        FailureKind
	URL         string
	StatusCode  int
	Status      string
	BodyPreview string
	Err         error
}

func (f *Failure) Error() string {
	if f == nil {
		return "upstream request failed"
	}
	switch f.Kind {
	case FailureStatus:
		return fmt.Sprintf("http request failed: %s (%s)", f.Status, f.URL)
	case FailureDecode:
		return fmt.Sprintf("invalid response from %s: %v", f.URL, f.Err)
	default:
		return fmt.Sprintf("%s error calling %s: %v", f.Kind, f.URL, f.Err)
	}
}

func (f *Failure) Unwrap() error {
	if f == nil {
		return nil
	}
	return f.Err
}
