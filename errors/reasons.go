package errors

// ReasonCode identifies a violated booking constraint. Validation failures
// are user-correctable results, not errors that unwind control flow: the
// rules layer returns a list of FailureReason values so the caller can show
// every violation at once.
type ReasonCode string

const (
	ReasonPastDate         ReasonCode = "PAST_DATE"
	ReasonCapacityExceeded ReasonCode = "CAPACITY_EXCEEDED"
	ReasonDateConflict     ReasonCode = "DATE_CONFLICT"
	ReasonMinimumStay      ReasonCode = "MINIMUM_STAY"
	ReasonMaximumStay      ReasonCode = "MAXIMUM_STAY"
	ReasonVillaUnavailable ReasonCode = "VILLA_UNAVAILABLE"
	ReasonInvalidRange     ReasonCode = "INVALID_RANGE"
	ReasonInvalidState     ReasonCode = "INVALID_STATE"
	ReasonAlreadyCancelled ReasonCode = "ALREADY_CANCELLED"
)

// FailureReason is one violated constraint. Field names the part of the
// request the UI should attach the message to ("dates", "guests", "villa").
type FailureReason struct {
	Code    ReasonCode `json:"code"`
	Field   string     `json:"field"`
	Message string     `json:"message"`
}

func NewFailureReason(code ReasonCode, field, message string) FailureReason {
	return FailureReason{Code: code, Field: field, Message: message}
}

// HasReason reports whether code appears in reasons.
func HasReason(reasons []FailureReason, code ReasonCode) bool {
	for _, r := range reasons {
		if r.Code == code {
			return true
		}
	}
	return false
}
