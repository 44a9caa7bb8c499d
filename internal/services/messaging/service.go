package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/dicegraph/internal/dice"
	"github.com/KirkDiggler/dicegraph/internal/models"
)

// service implements the Service interface
type service struct {
	mu     sync.Mutex
	roller dice.Roller
}

// New creates a new messaging service
func New(cfg *Config) *service {
	var roller dice.Roller
	if cfg != nil && cfg.Roller != nil {
		roller = cfg.Roller
	} else {
		roller = dice.New(nil)
	}

	return &service{
		roller: roller,
	}
}

var (
	fairHeadlines = []string{
		"Nothing to see here.",
		"The dice gods are impartial today.",
		"Clean dice!",
		"No loaded dice detected.",
	}
	unfairHeadlines = []string{
		"Somebody check those dice!",
		"Loaded? Maybe.",
		"The numbers don't lie.",
		"Time for new dice?",
	}
)

// GetFairnessMessage describes a fairness report
func (s *service) GetFairnessMessage(ctx context.Context, input *GetFairnessMessageInput) (*GetFairnessMessageOutput, error) {
	if input == nil || input.Report == nil {
		return nil, errors.New("report cannot be nil")
	}

	r := input.Report
	confidence := (1 - r.SignificanceLevel) * 100

	out := &GetFairnessMessageOutput{}
	if r.IsFair {
		out.Title = "Fair"
		out.Conclusion = fmt.Sprintf("The dice appear to be fair (p=%.3f > α=%.3f)", r.PValue, r.SignificanceLevel)
		out.Significance = fmt.Sprintf("No significant deviation from fairness at %.1f%% confidence level", confidence)
	} else {
		out.Title = "Possibly unfair"
		out.Conclusion = fmt.Sprintf("The dice may not be fair (p=%.3f ≤ α=%.3f)", r.PValue, r.SignificanceLevel)
		out.Significance = fmt.Sprintf("Statistically significant deviation from fairness at %.1f%% confidence level", confidence)
	}

	if input.Tone == ToneFunny {
		if r.IsFair {
			out.Title = s.pick(fairHeadlines)
		} else {
			out.Title = s.pick(unfairHeadlines)
		}
	}

	out.Details = []string{
		fmt.Sprintf("Total rolls: %d", r.Total),
		fmt.Sprintf("Chi-square test statistic: %.4f", r.ChiSquare),
		fmt.Sprintf("Degrees of freedom: %d", r.DegreesOfFreedom),
		fmt.Sprintf("P-value: %.4f", r.PValue),
		fmt.Sprintf("Significance level (α): %.3f", r.SignificanceLevel),
		fmt.Sprintf("Mean: %.3f (expected %.3f)", r.Summary.Mean, r.Summary.ExpectedMean),
		fmt.Sprintf("Standard deviation: %.3f", r.Summary.StdDev),
		fmt.Sprintf("Median: %g", r.Summary.Median),
		fmt.Sprintf("Largest residual: %.3f", r.Summary.LargestResidual),
		fmt.Sprintf("Count spread (std dev of category counts): %.3f", r.Summary.CountSpread),
	}
	for _, w := range r.Warnings {
		out.Details = append(out.Details, "Warning: "+w)
	}

	return out, nil
}

// GetStatusMessage returns the status line for a completed action
func (s *service) GetStatusMessage(ctx context.Context, input *GetStatusMessageInput) (*GetStatusMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var message string
	switch input.Kind {
	case StatusConfigApplied:
		if input.Total > 0 {
			message = fmt.Sprintf("Loaded %s with %d recorded values", input.Config, input.Total)
		} else {
			message = fmt.Sprintf("Ready to record %s", input.Config)
		}
	case StatusRollRecorded:
		message = fmt.Sprintf("Recorded. %d values in %s", input.Total, input.Name)
	case StatusReset:
		message = fmt.Sprintf("All rolls in %s cleared", input.Name)
	case StatusSaved:
		message = fmt.Sprintf("Saved %s (%d values)", input.Name, input.Total)
	case StatusLoaded:
		message = fmt.Sprintf("Loaded %s: %s, %d values", input.Name, input.Config, input.Total)
	case StatusDeleted:
		message = fmt.Sprintf("Deleted %s", input.Name)
	case StatusSimulation:
		message = fmt.Sprintf("Simulated %d rolls of %s in %s", input.Count, input.Config, input.Duration.Round(time.Millisecond))
	case StatusConfirmLarge:
		message = fmt.Sprintf("Simulating %d rolls may take a while. Confirm to continue.", input.Count)
	case StatusCleared:
		message = fmt.Sprintf("Deleted %d saved sets", input.Count)
	case StatusPreferences:
		message = fmt.Sprintf("Updated %d preferences", input.Count)
	default:
		return nil, fmt.Errorf("unknown status kind %q", input.Kind)
	}

	if input.Tone == ToneFunny && input.Kind == StatusRollRecorded {
		message = s.pick([]string{"Clack!", "Rattle rattle.", "And the dice say...", "Noted."}) + " " + message
	}

	return &GetStatusMessageOutput{Message: message}, nil
}

// GetErrorMessage returns a user-friendly error message. The wrapped detail is
// kept so the user can see which value or file was the problem.
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil || input.Err == nil {
		return nil, errors.New("error cannot be nil")
	}

	err := input.Err
	detail := err.Error()

	var title, message string
	switch {
	case errors.Is(err, models.ErrInvalidValue):
		title = "Invalid roll"
		message = "That value can't come up on these dice."
	case errors.Is(err, models.ErrInvalidConfig):
		title = "Invalid settings"
		message = "Check the number of dice, the number of faces and the other settings."
	case errors.Is(err, models.ErrInsufficientData):
		title = "Not enough data"
		message = "Not enough data for reliable fairness test. Record more rolls and try again."
	case errors.Is(err, models.ErrNotFound):
		title = "Not found"
		message = "No saved roll set with that name."
	case errors.Is(err, models.ErrCorruptData):
		title = "Unreadable data"
		message = "The saved file could not be read. It may have been edited or damaged."
	case errors.Is(err, models.ErrConfigMismatch):
		title = "Different dice"
		message = "A saved set with that name uses different dice. Pick another name or delete the old set."
	case errors.Is(err, context.Canceled):
		title = "Cancelled"
		message = "The operation was cancelled."
	default:
		title = "Something went wrong"
		message = "An unexpected error occurred."
	}

	if detail != "" && !strings.Contains(message, detail) {
		message = message + " (" + detail + ")"
	}

	return &GetErrorMessageOutput{
		Title:   title,
		Message: message,
	}, nil
}

func (s *service) pick(options []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return options[s.roller.Roll(len(options))-1]
}
