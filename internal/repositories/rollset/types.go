package rollset

import (
	"strings"
	"unicode"

	"github.com/KirkDiggler/dicegraph/internal/models"
)

// SaveRollSetInput contains parameters for saving a roll set
type SaveRollSetInput struct {
	Name string
	Set  *models.RollSet
}

// GetRollSetInput contains parameters for retrieving a roll set
type GetRollSetInput struct {
	Name string
}

// ListRollSetsOutput contains the saved roll set names in sorted order
type ListRollSetsOutput struct {
	Names []string
}

// DeleteRollSetInput contains parameters for deleting a roll set
type DeleteRollSetInput struct {
	Name string
}

// DeleteAllOutput reports how many roll sets were removed
type DeleteAllOutput struct {
	Deleted int
}

// Key turns a display name into the storage key: letters, digits, '_' and '-'
// are kept, spaces become underscores and everything else is dropped.
// Key is idempotent, so a listed key can be passed back to GetRollSet.
func Key(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}
