package preferences

// PreferencesError is a custom error type for preference service errors
type PreferencesError string

// Error implements the error interface
func (e PreferencesError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig     PreferencesError = "config cannot be nil"
	ErrNilRepository PreferencesError = "preferences repository cannot be nil"
)
