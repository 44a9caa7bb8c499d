package tabs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/dicegraph/internal/models"
	"github.com/KirkDiggler/dicegraph/internal/services/fairness"
	"github.com/KirkDiggler/dicegraph/internal/services/messaging"
	"github.com/KirkDiggler/dicegraph/internal/services/preferences"
	"github.com/KirkDiggler/dicegraph/internal/services/tracker"
)

// RollerConfig holds the dependencies of the roller tab
type RollerConfig struct {
	Tracker     tracker.Service
	Fairness    fairness.Service
	Messaging   messaging.Service
	Preferences preferences.Service
}

// RollerTab records rolls of physical dice by hand
type RollerTab struct {
	tracker  tracker.Service
	fairness fairness.Service
	msgs     messaging.Service
	prefs    preferences.Service
}

// NewRollerTab creates the roller tab
func NewRollerTab(cfg *RollerConfig) (*RollerTab, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Tracker == nil {
		return nil, ErrNilTracker
	}
	if cfg.Fairness == nil {
		return nil, ErrNilFairness
	}
	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}
	if cfg.Preferences == nil {
		return nil, ErrNilPreferences
	}

	return &RollerTab{
		tracker:  cfg.Tracker,
		fairness: cfg.Fairness,
		msgs:     cfg.Messaging,
		prefs:    cfg.Preferences,
	}, nil
}

// Name implements Tab
func (t *RollerTab) Name() string {
	return "Roller"
}

// OnApply makes the configured dice active and remembers them as the last config
func (t *RollerTab) OnApply(ctx context.Context, req *Request) (*View, error) {
	cfg, err := parseDiceConfig(req, t.prefs)
	if err != nil {
		return failure(ctx, t.msgs, err)
	}

	out, err := t.tracker.ApplyConfig(ctx, &tracker.ApplyConfigInput{Config: cfg})
	if err != nil {
		return failure(ctx, t.msgs, err)
	}

	if err := t.prefs.Set(ctx, models.PrefLastConfig, out.Name); err != nil {
		slog.WarnContext(ctx, "failed to remember last config", "name", out.Name, "error", err)
	}

	view, err := status(ctx, t.msgs, &messaging.GetStatusMessageInput{
		Kind:   messaging.StatusConfigApplied,
		Name:   out.Name,
		Config: cfg,
		Total:  out.Total,
	})
	if err != nil {
		return nil, err
	}
	view.Title = out.Name
	view.Store = t.tracker.Current()
	return view, nil
}

// OnLoad makes a saved set active. Without a name the last config is loaded.
func (t *RollerTab) OnLoad(ctx context.Context, req *Request) (*View, error) {
	name := req.Get(FieldName, t.prefs.Get(models.PrefLastConfig, ""))

	out, err := t.tracker.LoadSet(ctx, &tracker.LoadSetInput{Name: name})
	if err != nil {
		return failure(ctx, t.msgs, err)
	}

	view, err := status(ctx, t.msgs, &messaging.GetStatusMessageInput{
		Kind:   messaging.StatusLoaded,
		Name:   out.Name,
		Config: out.Config,
		Total:  out.Total,
	})
	if err != nil {
		return nil, err
	}
	view.Title = out.Name
	view.Store = t.tracker.Current()
	return view, nil
}

// OnSave writes the active set, under the name field when one is given
func (t *RollerTab) OnSave(ctx context.Context, req *Request) (*View, error) {
	out, err := t.tracker.SaveSet(ctx, &tracker.SaveSetInput{Name: req.Get(FieldName, "")})
	if err != nil {
		return failure(ctx, t.msgs, err)
	}

	return status(ctx, t.msgs, &messaging.GetStatusMessageInput{
		Kind:  messaging.StatusSaved,
		Name:  out.Name,
		Total: t.tracker.Current().Total(),
	})
}

// Roll records one physical roll given the face of each die
func (t *RollerTab) Roll(ctx context.Context, faces ...int) (*View, error) {
	out, err := t.tracker.RecordDice(ctx, &tracker.RecordDiceInput{Faces: faces})
	if err != nil {
		return failure(ctx, t.msgs, err)
	}

	store := t.tracker.Current()
	view, err := status(ctx, t.msgs, &messaging.GetStatusMessageInput{
		Kind:  messaging.StatusRollRecorded,
		Name:  store.Config().Name,
		Total: out.Total,
		Tone:  tone(t.prefs),
	})
	if err != nil {
		return nil, err
	}
	view.Store = store
	return view, nil
}

// Reset clears every roll of the active set
func (t *RollerTab) Reset(ctx context.Context) (*View, error) {
	if err := t.tracker.Reset(ctx); err != nil {
		return failure(ctx, t.msgs, err)
	}

	store := t.tracker.Current()
	view, err := status(ctx, t.msgs, &messaging.GetStatusMessageInput{
		Kind: messaging.StatusReset,
		Name: store.Config().Name,
	})
	if err != nil {
		return nil, err
	}
	view.Store = store
	return view, nil
}

// Fairness tests the active set
func (t *RollerTab) Fairness(ctx context.Context, req *Request) (*View, error) {
	return evaluate(ctx, t.fairness, t.msgs, t.prefs, t.tracker.Current(), req)
}

// Sets lists the saved roll sets
func (t *RollerTab) Sets(ctx context.Context) (*View, error) {
	out, err := t.tracker.ListSets(ctx)
	if err != nil {
		return failure(ctx, t.msgs, err)
	}

	return &View{
		Title:   "Saved roll sets",
		Message: fmt.Sprintf("%d saved sets", len(out.Names)),
		Lines:   out.Names,
	}, nil
}

// Delete removes a saved roll set
func (t *RollerTab) Delete(ctx context.Context, name string) (*View, error) {
	if err := t.tracker.DeleteSet(ctx, &tracker.DeleteSetInput{Name: name}); err != nil {
		return failure(ctx, t.msgs, err)
	}

	return status(ctx, t.msgs, &messaging.GetStatusMessageInput{
		Kind: messaging.StatusDeleted,
		Name: name,
	})
}

// Current returns the active store
func (t *RollerTab) Current() *models.RollStore {
	return t.tracker.Current()
}
