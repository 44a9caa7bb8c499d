package models

import (
	"fmt"
	"iter"
	"time"
)

// RollStore tallies observed values for one dice configuration.
// A RollStore is not safe for concurrent use; each store has a single owner.
type RollStore struct {
	config DiceConfig
	counts []int64
	total  int64
}

// NewRollStore creates an empty store for cfg
func NewRollStore(cfg DiceConfig) (*RollStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &RollStore{
		config: cfg,
		counts: make([]int64, cfg.Categories()),
	}, nil
}

// Config returns the configuration the store was created with
func (s *RollStore) Config() DiceConfig {
	return s.config
}

// Total returns the number of values recorded
func (s *RollStore) Total() int64 {
	return s.total
}

// Count returns how many times value was recorded
func (s *RollStore) Count(value int) int64 {
	if !s.config.Contains(value) {
		return 0
	}
	return s.counts[value-s.config.Min()]
}

// RecordRoll records a single value
func (s *RollStore) RecordRoll(value int) error {
	if err := s.check(value); err != nil {
		return err
	}

	s.counts[value-s.config.Min()]++
	s.total++
	return nil
}

// RecordBatch records every value in values. Values are validated up front so
// a batch containing an invalid value leaves the store untouched.
func (s *RollStore) RecordBatch(values []int) error {
	for _, v := range values {
		if err := s.check(v); err != nil {
			return err
		}
	}

	base := s.config.Min()
	for _, v := range values {
		s.counts[v-base]++
	}
	s.total += int64(len(values))
	return nil
}

// RecordDice records one physical roll given the face shown by each die.
// In faces mode every face is tallied, in sum mode only their sum.
func (s *RollStore) RecordDice(faces []int) error {
	if len(faces) != s.config.DiceCount {
		return fmt.Errorf("%w: expected %d dice, got %d", ErrInvalidValue, s.config.DiceCount, len(faces))
	}

	for _, f := range faces {
		if f < 1 || f > s.config.FaceCount {
			return fmt.Errorf("%w: face %d not in 1..%d", ErrInvalidValue, f, s.config.FaceCount)
		}
	}

	if s.config.Mode == TallyModeSum {
		sum := 0
		for _, f := range faces {
			sum += f
		}
		return s.RecordRoll(sum)
	}

	return s.RecordBatch(faces)
}

// Reset clears every count while keeping the configuration
func (s *RollStore) Reset() {
	clear(s.counts)
	s.total = 0
}

// Merge adds the counts of other into s
func (s *RollStore) Merge(other *RollStore) error {
	if other == nil {
		return nil
	}
	if other.config.DiceCount != s.config.DiceCount ||
		other.config.FaceCount != s.config.FaceCount ||
		other.config.Mode != s.config.Mode {
		return fmt.Errorf("%w: %s and %s", ErrConfigMismatch, s.config, other.config)
	}

	for i, c := range other.counts {
		s.counts[i] += c
	}
	s.total += other.total
	return nil
}

// Distribution yields (value, count) pairs in ascending value order. The
// sequence reads the current state on every iteration.
func (s *RollStore) Distribution() iter.Seq2[int, int64] {
	return func(yield func(int, int64) bool) {
		base := s.config.Min()
		for i, c := range s.counts {
			if !yield(base+i, c) {
				return
			}
		}
	}
}

// Counts returns a copy of the dense count slice, index 0 holding Min()
func (s *RollStore) Counts() []int64 {
	out := make([]int64, len(s.counts))
	copy(out, s.counts)
	return out
}

// Percentages returns the share of each value in percent
func (s *RollStore) Percentages() map[int]float64 {
	out := make(map[int]float64, len(s.counts))
	for v, c := range s.Distribution() {
		if s.total == 0 {
			out[v] = 0
			continue
		}
		out[v] = float64(c) / float64(s.total) * 100
	}
	return out
}

// Snapshot captures the store in its serializable form
func (s *RollStore) Snapshot(savedAt time.Time) *RollSet {
	counts := make(map[int]int64, len(s.counts))
	for v, c := range s.Distribution() {
		if c > 0 {
			counts[v] = c
		}
	}

	return &RollSet{
		Config:  s.config,
		Counts:  counts,
		Total:   s.total,
		SavedAt: savedAt,
	}
}

func (s *RollStore) check(value int) error {
	if !s.config.Contains(value) {
		return fmt.Errorf("%w: %d not in %d..%d", ErrInvalidValue, value, s.config.Min(), s.config.Max())
	}
	return nil
}
