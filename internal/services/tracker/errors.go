package tracker

// TrackerError is a custom error type for tracker errors
type TrackerError string

// Error implements the error interface
func (e TrackerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig     TrackerError = "config cannot be nil"
	ErrNilRepository TrackerError = "roll set repository cannot be nil"
	ErrNilClock      TrackerError = "clock cannot be nil"
	ErrNoActiveSet   TrackerError = "no dice configuration applied"
	ErrEmptyName     TrackerError = "set name cannot be empty"
)
