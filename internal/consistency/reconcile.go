package consistency

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ariel-frischer/uxgate/internal/validation"
)

// FileValue is one artifact's declared value for a key.
type FileValue struct {
	File  string
	Value string
}

// Conflict is a canonical key with more than one distinct normalized value across artifacts.
type Conflict struct {
	Key    CanonicalKey
	Values []FileValue // sorted by filename
}

// Message renders the conflict as it appears in the issue list.
func (c Conflict) Message() string {
	parts := make([]string, 0, len(c.Values))
	for _, fv := range c.Values {
		parts = append(parts, fmt.Sprintf("%s='%s'", fv.File, fv.Value))
	}
	return fmt.Sprintf("Cross-artifact conflict for '%s': %s", c.Key, strings.Join(parts, "; "))
}

// Files returns the contributing filenames.
func (c Conflict) Files() []string {
	files := make([]string, 0, len(c.Values))
	for _, fv := range c.Values {
		files = append(files, fv.File)
	}
	return files
}

// MissingKey is a required key that an artifact does not declare.
type MissingKey struct {
	File string
	Key  CanonicalKey
}

// FindMissingKeys returns, per loaded artifact, each required key that is absent or empty.
// Artifacts are visited in run order and keys are sorted within each artifact.
func FindMissingKeys(parsed map[string]KeyMap, required map[string][]CanonicalKey) []MissingKey {
	names := make([]string, 0, len(parsed))
	for name := range parsed {
		names = append(names, name)
	}
	sortArtifactNames(names)

	var missing []MissingKey
	for _, name := range names {
		keys := make([]CanonicalKey, len(required[name]))
		copy(keys, required[name])
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

		found := parsed[name]
		for _, key := range keys {
			if strings.TrimSpace(found[key]) == "" {
				missing = append(missing, MissingKey{File: name, Key: key})
			}
		}
	}
	return missing
}

// FindConflicts returns one Conflict per canonical key whose declared values disagree.
// Requiredness does not matter here: any artifact that declares a key takes part.
// The result does not depend on map iteration or artifact load order.
func FindConflicts(parsed map[string]KeyMap) []Conflict {
	var conflicts []Conflict
	for _, key := range criticalKeys {
		var values []FileValue
		distinct := map[string]struct{}{}
		for file, keys := range parsed {
			value := strings.TrimSpace(keys[key])
			if value == "" {
				continue
			}
			values = append(values, FileValue{File: file, Value: value})
			distinct[value] = struct{}{}
		}
		if len(distinct) <= 1 {
			continue
		}
		sort.Slice(values, func(i, j int) bool { return values[i].File < values[j].File })
		conflicts = append(conflicts, Conflict{Key: key, Values: values})
	}
	return conflicts
}

// Reconcile runs both cross-document checks and returns missing-key issues followed by
// conflict issues.
func Reconcile(parsed map[string]KeyMap, required map[string][]CanonicalKey) []validation.Issue {
	var issues []validation.Issue

	for _, m := range FindMissingKeys(parsed, required) {
		issues = append(issues, validation.Issue{
			Check:   validation.CheckConsistency,
			Source:  m.File,
			Key:     string(m.Key),
			Message: fmt.Sprintf("%s: missing Consistency Key -> %s", m.File, m.Key),
			Hint:    fmt.Sprintf("Add '- %s: <value>' under a '## Consistency Keys' heading", m.Key),
		})
	}

	for _, c := range FindConflicts(parsed) {
		issues = append(issues, validation.Issue{
			Check:   validation.CheckConsistency,
			Source:  strings.Join(c.Files(), ", "),
			Key:     string(c.Key),
			Message: c.Message(),
			Hint:    "Align the value across all listed artifacts",
		})
	}

	return issues
}
