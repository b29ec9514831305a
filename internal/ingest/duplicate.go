package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultDuplicatePhrase is the wording the document server uses when it
// rejects an upload as an existing document. The contract is textual, so the
// phrase is configuration rather than logic; any wording change upstream only
// needs a config update here.
const DefaultDuplicatePhrase = "It is a duplicate of"

// digitRun matches the first run of decimal digits.
var digitRun = regexp.MustCompile(`[0-9]+`)

// DuplicateResolver maps a rejected-as-duplicate failure message back to the
// pre-existing document's identifier.
type DuplicateResolver struct {
	phrase string
}

// NewDuplicateResolver creates a resolver for the given rejection phrase.
// An empty phrase falls back to the default wording.
func NewDuplicateResolver(phrase string) *DuplicateResolver {
	if phrase == "" {
		phrase = DefaultDuplicatePhrase
	}
	return &DuplicateResolver{phrase: phrase}
}

// IsDuplicate reports whether the failure message signals a duplicate.
func (r *DuplicateResolver) IsDuplicate(message string) bool {
	return strings.Contains(message, r.phrase)
}

// ExtractExistingID pulls the existing document's id out of the message:
// everything after the last '#', first run of decimal digits. Returns false
// when there is no '#' or no digits follow it.
func (r *DuplicateResolver) ExtractExistingID(message string) (int, bool) {
	idx := strings.LastIndex(message, "#")
	if idx < 0 {
		return 0, false
	}
	match := digitRun.FindString(message[idx+1:])
	if match == "" {
		return 0, false
	}
	id, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return id, true
}
