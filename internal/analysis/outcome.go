package analysis

import "github.com/julianstephens/intake/internal/models"

// ErrorKind classifies analysis failures.
type ErrorKind string

const (
	// ErrMissingCredential means no API key is configured; the call was
	// never attempted.
	ErrMissingCredential ErrorKind = "missing_credential"
	// ErrTimeout means the analysis deadline elapsed before the service
	// responded.
	ErrTimeout ErrorKind = "timeout"
	// ErrMalformedResponse means the service responded but no JSON object
	// could be recovered from the reply.
	ErrMalformedResponse ErrorKind = "malformed_response"
	// ErrNetwork means the request failed in transport or the service
	// returned an error status.
	ErrNetwork ErrorKind = "network_error"
	// ErrUnknown is the catch-all for anything else.
	ErrUnknown ErrorKind = "unknown"
)

// Outcome is the result of one analysis attempt: either an estimate or a
// classified failure, never both. The zero value is an unknown failure.
// Construct outcomes only through Success and Failure.
type Outcome struct {
	estimate *models.Estimate
	kind     ErrorKind
	message  string
}

// Success wraps a usable estimate.
func Success(e models.Estimate) Outcome {
	return Outcome{estimate: &e}
}

// Failure wraps a classified error.
func Failure(kind ErrorKind, message string) Outcome {
	if kind == "" {
		kind = ErrUnknown
	}
	return Outcome{kind: kind, message: message}
}

// IsSuccess reports whether the outcome carries an estimate.
func (o Outcome) IsSuccess() bool {
	return o.estimate != nil
}

// Estimate returns the estimate. The second return is false for failures.
func (o Outcome) Estimate() (models.Estimate, bool) {
	if o.estimate == nil {
		return models.Estimate{}, false
	}
	return *o.estimate, true
}

// Err returns the failure classification and message. For successes the
// kind is empty and ok is false.
func (o Outcome) Err() (kind ErrorKind, message string, ok bool) {
	if o.estimate != nil {
		return "", "", false
	}
	kind = o.kind
	if kind == "" {
		kind = ErrUnknown
	}
	return kind, o.message, true
}
