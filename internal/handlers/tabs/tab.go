package tabs

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/KirkDiggler/dicegraph/internal/models"
	"github.com/KirkDiggler/dicegraph/internal/services/fairness"
	"github.com/KirkDiggler/dicegraph/internal/services/messaging"
	"github.com/KirkDiggler/dicegraph/internal/services/preferences"
)

// Form field names understood by the tabs
const (
	FieldName           = "name"
	FieldDice           = "dice"
	FieldFaces          = "faces"
	FieldMode           = "mode"
	FieldRolls          = "rolls"
	FieldSeed           = "seed"
	FieldAllowLowCounts = "allow_low_counts"
)

// Tab is the contract every tab of the application implements. A GUI calls
// these when the matching button is pressed and renders the returned View.
type Tab interface {
	Name() string
	OnApply(ctx context.Context, req *Request) (*View, error)
	OnLoad(ctx context.Context, req *Request) (*View, error)
	OnSave(ctx context.Context, req *Request) (*View, error)
}

// Request carries the form values of a tab
type Request struct {
	Values map[string]string
}

// NewRequest builds a request from alternating key, value pairs
func NewRequest(kv ...string) *Request {
	values := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		values[kv[i]] = kv[i+1]
	}
	return &Request{Values: values}
}

// Get returns the trimmed value of key or def when it is empty
func (r *Request) Get(key, def string) string {
	if r == nil {
		return def
	}
	if v := strings.TrimSpace(r.Values[key]); v != "" {
		return v
	}
	return def
}

// View is what a tab shows after an action
type View struct {
	Title   string
	Message string
	IsError bool

	// NeedsConfirmation asks the user to confirm before the action is repeated
	NeedsConfirmation bool

	// Store is the distribution to draw, if any
	Store *models.RollStore

	Report *models.FairnessReport

	// Lines holds detail text such as report statistics or list entries
	Lines []string

	// Fields holds key/value output such as preferences
	Fields map[string]string
}

// failure converts err to a message. Only a failure of the messaging service
// itself is returned as an error.
func failure(ctx context.Context, msgs messaging.Service, err error) (*View, error) {
	slog.WarnContext(ctx, "tab action failed", "error", err)

	out, msgErr := msgs.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
	if msgErr != nil {
		return nil, fmt.Errorf("failed to describe error %v: %w", err, msgErr)
	}

	return &View{
		Title:   out.Title,
		Message: out.Message,
		IsError: true,
	}, nil
}

func status(ctx context.Context, msgs messaging.Service, input *messaging.GetStatusMessageInput) (*View, error) {
	out, err := msgs.GetStatusMessage(ctx, input)
	if err != nil {
		return nil, err
	}
	return &View{Message: out.Message}, nil
}

// parseDiceConfig reads the dice fields of a request. Faces default to the
// default_faces preference and dice to one.
func parseDiceConfig(req *Request, prefs preferences.Service) (models.DiceConfig, error) {
	dice, err := intField(req, FieldDice, "1")
	if err != nil {
		return models.DiceConfig{}, err
	}

	faces, err := intField(req, FieldFaces, prefs.Get(models.PrefDefaultFaces, "6"))
	if err != nil {
		return models.DiceConfig{}, err
	}

	mode := models.TallyMode(strings.ToLower(req.Get(FieldMode, "")))

	return models.NewDiceConfig(req.Get(FieldName, ""), dice, faces, mode)
}

// tone reads the message_tone preference
func tone(prefs preferences.Service) messaging.MessageTone {
	return messaging.MessageTone(prefs.Get(models.PrefMessageTone, models.ToneNeutral))
}

func intField(req *Request, key, def string) (int, error) {
	raw := req.Get(key, def)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %q", models.ErrInvalidConfig, key, raw)
	}
	return n, nil
}

// evaluate runs the fairness test at the alpha stored in the preferences
func evaluate(ctx context.Context, svc fairness.Service, msgs messaging.Service, prefs preferences.Service, store *models.RollStore, req *Request) (*View, error) {
	if store == nil {
		return failure(ctx, msgs, fmt.Errorf("%w: nothing to test", models.ErrInsufficientData))
	}

	allowLow, _ := strconv.ParseBool(req.Get(FieldAllowLowCounts, "false"))
	alpha := prefs.Snapshot().Float(models.PrefStatisticalAlpha, fairness.DefaultSignificanceLevel)

	out, err := svc.Evaluate(ctx, &fairness.EvaluateInput{
		Store:             store,
		SignificanceLevel: alpha,
		AllowLowCounts:    allowLow,
	})
	if err != nil {
		return failure(ctx, msgs, err)
	}

	msg, err := msgs.GetFairnessMessage(ctx, &messaging.GetFairnessMessageInput{
		Report: out.Report,
		Tone:   tone(prefs),
	})
	if err != nil {
		return nil, err
	}

	return &View{
		Title:   msg.Title,
		Message: msg.Conclusion,
		Store:   store,
		Report:  out.Report,
		Lines:   append([]string{msg.Significance}, msg.Details...),
	}, nil
}
