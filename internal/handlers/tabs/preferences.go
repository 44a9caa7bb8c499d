package tabs

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/dicegraph/internal/repositories/rollset"
	"github.com/KirkDiggler/dicegraph/internal/services/messaging"
	"github.com/KirkDiggler/dicegraph/internal/services/preferences"
)

// PreferencesConfig holds the dependencies of the preferences tab
type PreferencesConfig struct {
	Preferences preferences.Service
	Messaging   messaging.Service

	// Repositories are emptied by ClearData
	Repositories []rollset.Repository
}

// PreferencesTab edits user settings and clears saved data
type PreferencesTab struct {
	prefs preferences.Service
	msgs  messaging.Service
	repos []rollset.Repository
}

// NewPreferencesTab creates the preferences tab
func NewPreferencesTab(cfg *PreferencesConfig) (*PreferencesTab, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Preferences == nil {
		return nil, ErrNilPreferences
	}
	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}
	for _, repo := range cfg.Repositories {
		if repo == nil {
			return nil, ErrNilRepository
		}
	}

	return &PreferencesTab{
		prefs: cfg.Preferences,
		msgs:  cfg.Messaging,
		repos: cfg.Repositories,
	}, nil
}

// Name implements Tab
func (t *PreferencesTab) Name() string {
	return "Preferences"
}

// OnApply stores every value of the request. Nothing is stored when one of
// them is invalid.
func (t *PreferencesTab) OnApply(ctx context.Context, req *Request) (*View, error) {
	if req == nil || len(req.Values) == 0 {
		return t.OnLoad(ctx, req)
	}

	if err := t.prefs.SetMany(ctx, req.Values); err != nil {
		return failure(ctx, t.msgs, err)
	}

	view, err := status(ctx, t.msgs, &messaging.GetStatusMessageInput{
		Kind:  messaging.StatusPreferences,
		Count: len(req.Values),
	})
	if err != nil {
		return nil, err
	}
	view.Fields = t.prefs.Snapshot().Values
	return view, nil
}

// OnLoad returns the current preferences
func (t *PreferencesTab) OnLoad(ctx context.Context, _ *Request) (*View, error) {
	snapshot := t.prefs.Snapshot()

	lines := make([]string, 0, len(snapshot.Values))
	for _, key := range snapshot.Keys() {
		lines = append(lines, fmt.Sprintf("%s=%s", key, snapshot.Values[key]))
	}

	return &View{
		Title:  "Preferences",
		Fields: snapshot.Values,
		Lines:  lines,
	}, nil
}

// OnSave writes the preferences file
func (t *PreferencesTab) OnSave(ctx context.Context, _ *Request) (*View, error) {
	if err := t.prefs.Flush(ctx); err != nil {
		return failure(ctx, t.msgs, err)
	}

	return status(ctx, t.msgs, &messaging.GetStatusMessageInput{
		Kind:  messaging.StatusPreferences,
		Count: len(t.prefs.Snapshot().Values),
	})
}

// ClearData deletes every saved roll set and simulation. Without confirmation
// nothing is deleted and the view asks for it.
func (t *PreferencesTab) ClearData(ctx context.Context, confirmed bool) (*View, error) {
	if !confirmed {
		return &View{
			Title:             "Clear data",
			Message:           "This deletes every saved roll set and simulation. Confirm to continue.",
			NeedsConfirmation: true,
		}, nil
	}

	deleted := 0
	for _, repo := range t.repos {
		out, err := repo.DeleteAll(ctx)
		if err != nil {
			return failure(ctx, t.msgs, err)
		}
		deleted += out.Deleted
	}

	return status(ctx, t.msgs, &messaging.GetStatusMessageInput{
		Kind:  messaging.StatusCleared,
		Count: deleted,
	})
}
