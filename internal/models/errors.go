package models

// DiceError is the error type shared by every dicegraph component
type DiceError string

// Error implements the error interface
func (e DiceError) Error() string {
	return string(e)
}

// Error kinds surfaced to the UI layer
const (
	ErrInvalidValue     DiceError = "roll value outside configured range"
	ErrInvalidConfig    DiceError = "invalid dice configuration"
	ErrInsufficientData DiceError = "not enough data for a reliable fairness test"
	ErrNotFound         DiceError = "roll set not found"
	ErrCorruptData      DiceError = "stored data is corrupt"
	ErrConfigMismatch   DiceError = "roll stores have different configurations"
)
