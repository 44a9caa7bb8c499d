package rollset

import (
	"bufio"
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/dicegraph/internal/models"
)

const (
	formatVersion = "1"
	countPrefix   = "count."
	fileHeader    = "# dicegraph roll set"
)

// encode writes a roll set as line-delimited key=value pairs
func encode(set *models.RollSet) []byte {
	var buf bytes.Buffer

	name := strings.NewReplacer("\r", " ", "\n", " ").Replace(set.Config.Name)

	fmt.Fprintln(&buf, fileHeader)
	fmt.Fprintf(&buf, "version=%s\n", formatVersion)
	fmt.Fprintf(&buf, "name=%s\n", name)
	fmt.Fprintf(&buf, "dice=%d\n", set.Config.DiceCount)
	fmt.Fprintf(&buf, "faces=%d\n", set.Config.FaceCount)
	fmt.Fprintf(&buf, "mode=%s\n", set.Config.Mode)
	fmt.Fprintf(&buf, "total=%d\n", set.Total)
	fmt.Fprintf(&buf, "saved_at=%s\n", set.SavedAt.UTC().Format(time.RFC3339Nano))

	values := make([]int, 0, len(set.Counts))
	for v := range set.Counts {
		values = append(values, v)
	}
	sort.Ints(values)

	for _, v := range values {
		fmt.Fprintf(&buf, "%s%d=%d\n", countPrefix, v, set.Counts[v])
	}

	return buf.Bytes()
}

// decode parses the output of encode. Any malformed or inconsistent content
// is reported as models.ErrCorruptData.
func decode(data []byte) (*models.RollSet, error) {
	fields := map[string]string{}
	counts := map[int]int64{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: missing '='", models.ErrCorruptData, lineNo)
		}

		if rest, isCount := strings.CutPrefix(key, countPrefix); isCount {
			v, err := strconv.Atoi(rest)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: bad value %q", models.ErrCorruptData, lineNo, rest)
			}
			c, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: bad count %q", models.ErrCorruptData, lineNo, value)
			}
			if _, dup := counts[v]; dup {
				return nil, fmt.Errorf("%w: line %d: duplicate count for %d", models.ErrCorruptData, lineNo, v)
			}
			counts[v] = c
			continue
		}

		if _, dup := fields[key]; dup {
			return nil, fmt.Errorf("%w: line %d: duplicate key %q", models.ErrCorruptData, lineNo, key)
		}
		fields[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrCorruptData, err)
	}

	if v := fields["version"]; v != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %q", models.ErrCorruptData, v)
	}

	diceCount, err := intField(fields, "dice")
	if err != nil {
		return nil, err
	}
	faceCount, err := intField(fields, "faces")
	if err != nil {
		return nil, err
	}
	total, err := intField(fields, "total")
	if err != nil {
		return nil, err
	}

	var savedAt time.Time
	if raw, ok := fields["saved_at"]; ok && raw != "" {
		savedAt, err = time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: bad saved_at %q", models.ErrCorruptData, raw)
		}
	}

	set := &models.RollSet{
		Config: models.DiceConfig{
			Name:      fields["name"],
			DiceCount: diceCount,
			FaceCount: faceCount,
			Mode:      models.TallyMode(fields["mode"]),
		},
		Counts:  counts,
		Total:   int64(total),
		SavedAt: savedAt,
	}

	// Restoring checks ranges, counts and the total
	if _, err := models.RestoreRollStore(set); err != nil {
		return nil, err
	}

	return set, nil
}

func intField(fields map[string]string, key string) (int, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", models.ErrCorruptData, key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s %q", models.ErrCorruptData, key, raw)
	}
	return v, nil
}
