package constants

// Villa status
const (
	VillaStatusActive   = 1
	VillaStatusInactive = 0
)

// Booking policy defaults. Villa rows with zero values fall back to these,
// so every component resolves stay bounds and the service fee the same way.
const (
	DefaultMinimumStay   = 1
	DefaultMaximumStay   = 30
	DefaultServiceFeeBps = 1000 // 10% of the subtotal, in basis points
)

// Reference number format: prefix + "-" + 8 random alphanumerics.
const (
	ReferencePrefix = "SU"
	ReferenceLength = 8
)
