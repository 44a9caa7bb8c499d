package tabs

// TabError is a custom error type for tab construction errors
type TabError string

// Error implements the error interface
func (e TabError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig      TabError = "config cannot be nil"
	ErrNilTracker     TabError = "tracker service cannot be nil"
	ErrNilSimulator   TabError = "simulator service cannot be nil"
	ErrNilFairness    TabError = "fairness service cannot be nil"
	ErrNilMessaging   TabError = "messaging service cannot be nil"
	ErrNilPreferences TabError = "preferences service cannot be nil"
	ErrNilRepository  TabError = "roll set repository cannot be nil"
	ErrNilClock       TabError = "clock cannot be nil"
)
