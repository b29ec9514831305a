package domain

import "errors"

var (
	ErrTransport             = errors.New("upstream request failed")
	ErrProtocol              = errors.New("malformed upstream response")
	ErrProcessingFailed      = errors.New("document processing failed")
	ErrDuplicateUnresolvable = errors.New("duplicate reported without an extractable document id")
	ErrExtractionFailed      = errors.New("text extraction failed")
	ErrLocalIO               = errors.New("scratch file write failed")
)

// ClassifyFailure maps an error to its failure kind. Unrecognized errors are
// reported as transport failures, the broadest category.
func ClassifyFailure(err error) FailureKind {
	switch {
	case errors.Is(err, ErrProtocol):
		return FailureProtocol
	case errors.Is(err, ErrProcessingFailed):
		return FailureProcessing
	case errors.Is(err, ErrDuplicateUnresolvable):
		return FailureDuplicateUnresolvable
	case errors.Is(err, ErrExtractionFailed):
		return FailureExtraction
	case errors.Is(err, ErrLocalIO):
		return FailureLocalIO
	default:
		return FailureTransport
	}
}
