package simulator

// SimulatorError is a custom error type for simulator construction errors
type SimulatorError string

// Error implements the error interface
func (e SimulatorError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig        SimulatorError = "config cannot be nil"
	ErrNilClock         SimulatorError = "clock cannot be nil"
	ErrNilUUIDGenerator SimulatorError = "UUID generator cannot be nil"
)
