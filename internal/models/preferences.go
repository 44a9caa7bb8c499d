package models

import (
	"maps"
	"slices"
	"strconv"
)

// Preference keys understood by the application
const (
	PrefDarkMode         = "dark_mode"
	PrefDefaultFaces     = "default_faces"
	PrefWindowWidth      = "window_width"
	PrefWindowHeight     = "window_height"
	PrefStatisticalAlpha = "statistical_alpha"
	PrefLastConfig       = "last_config"
	PrefMessageTone      = "message_tone"
)

// Values of PrefMessageTone
const (
	ToneNeutral = "neutral"
	ToneFunny   = "funny"
)

// DefaultPreferences returns the values used when no preferences file exists
func DefaultPreferences() map[string]string {
	return map[string]string{
		PrefDarkMode:         "false",
		PrefDefaultFaces:     "6",
		PrefWindowWidth:      "800",
		PrefWindowHeight:     "600",
		PrefStatisticalAlpha: "0.05",
		PrefLastConfig:       "",
		PrefMessageTone:      ToneNeutral,
	}
}

// Preferences is a flat set of user settings
type Preferences struct {
	Values map[string]string `json:"values"`
}

// NewPreferences returns preferences holding the defaults overlaid with values
func NewPreferences(values map[string]string) *Preferences {
	merged := DefaultPreferences()
	maps.Copy(merged, values)
	return &Preferences{Values: merged}
}

// Get returns the value for key or def when it is unset
func (p *Preferences) Get(key, def string) string {
	if v, ok := p.Values[key]; ok {
		return v
	}
	return def
}

// Set stores value under key
func (p *Preferences) Set(key, value string) {
	if p.Values == nil {
		p.Values = map[string]string{}
	}
	p.Values[key] = value
}

// Bool returns the boolean value of key, or def if unset or unparsable
func (p *Preferences) Bool(key string, def bool) bool {
	b, err := strconv.ParseBool(p.Get(key, ""))
	if err != nil {
		return def
	}
	return b
}

// Int returns the integer value of key, or def if unset or unparsable
func (p *Preferences) Int(key string, def int) int {
	i, err := strconv.Atoi(p.Get(key, ""))
	if err != nil {
		return def
	}
	return i
}

// Float returns the float value of key, or def if unset or unparsable
func (p *Preferences) Float(key string, def float64) float64 {
	f, err := strconv.ParseFloat(p.Get(key, ""), 64)
	if err != nil {
		return def
	}
	return f
}

// Keys returns the preference keys in sorted order
func (p *Preferences) Keys() []string {
	return slices.Sorted(maps.Keys(p.Values))
}

// Clone returns an independent copy
func (p *Preferences) Clone() *Preferences {
	return &Preferences{Values: maps.Clone(p.Values)}
}
