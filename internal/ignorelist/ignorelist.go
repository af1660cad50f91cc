// Package ignorelist persists the set of acknowledged-signal fingerprints.
// Acknowledged signals are filtered out of future runs unless the caller
// explicitly asks for them back (earlier versions called this a baseline;
// behavior is unchanged, only the name moved).
package ignorelist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/felixgeelhaar/dsdrift/internal/errors"
	"github.com/felixgeelhaar/dsdrift/internal/signal"
)

// DefaultPath is the conventional ignore-list location.
const DefaultPath = ".dsdrift/ignore.json"

// Entry is one acknowledged signal.
type Entry struct {
	Fingerprint    string    `json:"fingerprint"`
	Message        string    `json:"message,omitempty"`
	Location       string    `json:"location,omitempty"`
	AcknowledgedAt time.Time `json:"acknowledged_at"`
}

// List is a persisted set of acknowledged signals.
type List struct {
	Entries []Entry `json:"entries"`
}

// Load reads an ignore list. A missing file is an empty list, not an
// error: a project that never acknowledged anything has nothing to filter.
func Load(path string) (*List, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &List{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read ignore list: "+path, err)
	}

	var list List
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to parse ignore list: "+path, err)
	}
	return &list, nil
}

// Save writes the list, creating the parent directory as needed. Entries
// are sorted by fingerprint so the file diffs cleanly under version
// control.
func (l *List) Save(path string) error {
	if path == "" {
		path = DefaultPath
	}

	sort.Slice(l.Entries, func(i, j int) bool {
		return l.Entries[i].Fingerprint < l.Entries[j].Fingerprint
	})

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return errors.NewFileWriteError(path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.NewFileWriteError(path, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewFileWriteError(path, err)
	}
	return nil
}

// Acknowledge adds signals to the list, skipping ones already present.
// Returns how many entries were added.
func (l *List) Acknowledge(signals []signal.DriftSignal, now time.Time) int {
	existing := l.Fingerprints()
	added := 0
	for _, sig := range signals {
		fp := sig.Fingerprint()
		if _, ok := existing[fp]; ok {
			continue
		}
		existing[fp] = struct{}{}
		l.Entries = append(l.Entries, Entry{
			Fingerprint:    fp,
			Message:        sig.Message,
			Location:       sig.Source.Location,
			AcknowledgedAt: now,
		})
		added++
	}
	return added
}

// Fingerprints returns the acknowledged fingerprints as a set, in the
// shape the rule-engine pipeline consumes.
func (l *List) Fingerprints() map[string]struct{} {
	set := make(map[string]struct{}, len(l.Entries))
	for _, e := range l.Entries {
		set[e.Fingerprint] = struct{}{}
	}
	return set
}
