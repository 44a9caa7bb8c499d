package messaging

import (
	"time"

	"github.com/KirkDiggler/dicegraph/internal/dice"
	"github.com/KirkDiggler/dicegraph/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral produces plain messages
	ToneNeutral MessageTone = models.ToneNeutral

	// ToneFunny adds a headline picked at random
	ToneFunny MessageTone = models.ToneFunny
)

// StatusKind identifies the action a status line is about
type StatusKind string

const (
	StatusConfigApplied StatusKind = "config_applied"
	StatusRollRecorded  StatusKind = "roll_recorded"
	StatusReset         StatusKind = "reset"
	StatusSaved         StatusKind = "saved"
	StatusLoaded        StatusKind = "loaded"
	StatusDeleted       StatusKind = "deleted"
	StatusSimulation    StatusKind = "simulation"
	StatusConfirmLarge  StatusKind = "confirm_large"
	StatusCleared       StatusKind = "cleared"
	StatusPreferences   StatusKind = "preferences"
)

// Config holds configuration for the messaging service
type Config struct {
	// Roller picks headlines for the funny tone; nil uses a time-seeded roller
	Roller dice.Roller
}

// GetFairnessMessageInput contains parameters for describing a fairness report
type GetFairnessMessageInput struct {
	Report *models.FairnessReport
	Tone   MessageTone
}

// GetFairnessMessageOutput contains the text of a fairness report
type GetFairnessMessageOutput struct {
	// Title is a short verdict
	Title string

	// Conclusion states the verdict with the p-value and significance level
	Conclusion string

	// Significance states the confidence level the verdict holds at
	Significance string

	// Details holds one line per statistic and warning
	Details []string
}

// GetStatusMessageInput contains parameters for a status line
type GetStatusMessageInput struct {
	Kind StatusKind

	// Name of the set or preference involved
	Name string

	// Config of the set involved
	Config models.DiceConfig

	// Total values in the set after the action
	Total int64

	// Count is the number of rolls, sets or keys the action touched
	Count int

	// Duration of a simulation
	Duration time.Duration

	Tone MessageTone
}

// GetStatusMessageOutput contains a status line
type GetStatusMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains the error to describe
type GetErrorMessageInput struct {
	Err error
}

// GetErrorMessageOutput contains a user-facing description of an error
type GetErrorMessageOutput struct {
	Title   string
	Message string
}
