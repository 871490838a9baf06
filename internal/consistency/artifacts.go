package consistency

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Artifact is one markdown document of the design-handoff set.
type Artifact struct {
	Name string
	Text string
}

// requiredArtifacts is the fixed artifact set, in run order.
var requiredArtifacts = []string{
	"01-intent-inference.md",
	"02-problem-frame.md",
	"03-user-task-model.md",
	"04-mobile-flows.md",
	"05-screen-specs.md",
	"06-visual-system.md",
	"07-ux-copy.md",
	"08-quality-gates.md",
	"09-handoff-package.md",
	"10-verification.md",
	"11-release-summary.md",
}

var requiredKeysByFile = map[string][]CanonicalKey{
	"01-intent-inference.md": {KeyAppPurposeHypothesis, KeyPrimaryOperationSequence},
	"04-mobile-flows.md":     {KeyNavigationModel},
	"05-screen-specs.md": {
		KeyPlatformRuntime,
		KeyDesignSystemStrategy,
		KeyUILibraryStack,
		KeyNavigationModel,
	},
	"06-visual-system.md": {KeyVisualConcept},
	"07-ux-copy.md":       {KeyNavigationModel, KeyCopyTerminologyContract},
	"09-handoff-package.md": {
		KeyPlatformRuntime,
		KeyDesignSystemStrategy,
		KeyUILibraryStack,
		KeyNavigationModel,
	},
	"10-verification.md":    {KeyNavigationModel},
	"11-release-summary.md": {KeyNavigationModel, KeyVisualConcept},
}

// RequiredArtifacts returns the artifact filenames a complete run contains.
func RequiredArtifacts() []string {
	out := make([]string, len(requiredArtifacts))
	copy(out, requiredArtifacts)
	return out
}

// RequiredKeys returns the per-file required key sets.
// Files without an entry have no required keys.
func RequiredKeys() map[string][]CanonicalKey {
	out := make(map[string][]CanonicalKey, len(requiredKeysByFile))
	for name, keys := range requiredKeysByFile {
		cp := make([]CanonicalKey, len(keys))
		copy(cp, keys)
		out[name] = cp
	}
	return out
}

// IsKnownArtifact reports whether name is one of the fixed artifact filenames.
func IsKnownArtifact(name string) bool {
	return artifactRank(name) >= 0
}

// artifactRank is the position of name in the run order, or -1 for unknown files.
func artifactRank(name string) int {
	for i, n := range requiredArtifacts {
		if n == name {
			return i
		}
	}
	return -1
}

// sortArtifactNames orders names by run order, then unknown names alphabetically.
func sortArtifactNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		ri, rj := artifactRank(names[i]), artifactRank(names[j])
		switch {
		case ri >= 0 && rj >= 0:
			return ri < rj
		case ri >= 0:
			return true
		case rj >= 0:
			return false
		default:
			return names[i] < names[j]
		}
	})
}

// ReadArtifact reads a single artifact file. It returns (nil, nil) when the file does not exist.
// Invalid UTF-8 sequences are dropped rather than rejected.
func ReadArtifact(dir, name string) (*Artifact, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading artifact %s: %w", name, err)
	}
	return &Artifact{Name: name, Text: strings.ToValidUTF8(string(data), "")}, nil
}
