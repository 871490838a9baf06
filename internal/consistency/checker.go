package consistency

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	apperrors "github.com/ariel-frischer/uxgate/internal/errors"
	"github.com/ariel-frischer/uxgate/internal/logging"
	"github.com/ariel-frischer/uxgate/internal/validation"
	"golang.org/x/sync/errgroup"
)

// Options controls a consistency check.
type Options struct {
	// AllowMissingArtifacts waives the "missing required artifact" issues for partial runs.
	AllowMissingArtifacts bool
	// StrictDuplicates reports keys declared twice in one section instead of silently
	// keeping the last value.
	StrictDuplicates bool
	// Workers bounds parallel artifact extraction. Values below 1 mean one worker.
	Workers int
}

// Checker validates Consistency Keys across an artifact directory.
type Checker struct {
	opts   Options
	logger *slog.Logger
}

// NewChecker creates a checker. A nil logger discards log output.
func NewChecker(opts Options, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = logging.Discard()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Checker{opts: opts, logger: logger}
}

// loaded is the per-artifact slot filled by one extraction worker.
type loaded struct {
	artifact   *Artifact
	extraction Extraction
}

// Check validates dir and returns the accumulated issues.
// It returns an Input CLIError, and no result, when dir is unusable or holds no known artifacts.
func (c *Checker) Check(ctx context.Context, dir string) (*validation.Result, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, apperrors.ArtifactDirInvalid(dir)
	}

	slots, err := c.load(ctx, dir)
	if err != nil {
		return nil, err
	}

	parsed := make(map[string]KeyMap)
	var present []loaded
	for _, slot := range slots {
		if slot.artifact == nil {
			continue
		}
		present = append(present, slot)
		parsed[slot.artifact.Name] = slot.extraction.Keys
	}
	if len(present) == 0 {
		return nil, apperrors.NoArtifactsFound(dir)
	}

	result := validation.NewResult(validation.CheckConsistency, dir)

	if !c.opts.AllowMissingArtifacts {
		for _, name := range requiredArtifacts {
			if _, ok := parsed[name]; !ok {
				result.AddIssue(validation.Issue{
					Source:  name,
					Message: fmt.Sprintf("Missing required artifact: %s", name),
					Hint:    "Generate the artifact or pass --allow-missing-artifacts for a partial run",
				})
			}
		}
	}

	for _, slot := range present {
		name := slot.artifact.Name
		if !slot.extraction.Found {
			c.logger.Debug("no Consistency Keys section", "artifact", name)
		}
		for _, dup := range slot.extraction.Duplicates {
			c.logger.Debug("duplicate consistency key, last value wins",
				"artifact", name, "key", dup.Key, "line", dup.Line,
				"previous", dup.Previous, "value", dup.Value)
			if c.opts.StrictDuplicates {
				result.AddIssue(validation.Issue{
					Source: name,
					Key:    string(dup.Key),
					Message: fmt.Sprintf("%s: duplicate Consistency Key '%s' at line %d ('%s' overrides '%s')",
						name, dup.Key, dup.Line, dup.Value, dup.Previous),
					Hint: "Declare each key once per Consistency Keys section",
				})
			}
		}
	}

	result.AddIssues(Reconcile(parsed, requiredKeysByFile))

	c.logger.Debug("consistency check complete",
		"dir", dir, "artifacts", len(present), "issues", len(result.Issues))
	return result, nil
}

// load reads and extracts every known artifact in parallel.
// Slots are indexed by run order so the merge is deterministic.
func (c *Checker) load(ctx context.Context, dir string) ([]loaded, error) {
	slots := make([]loaded, len(requiredArtifacts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for i, name := range requiredArtifacts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			artifact, err := ReadArtifact(dir, name)
			if err != nil {
				return apperrors.ArtifactUnreadable(name, err)
			}
			if artifact == nil {
				return nil
			}
			ext := ExtractKeysDetailed(artifact.Text)
			c.logger.Debug("extracted consistency keys",
				"artifact", name, "keys", len(ext.Keys), "section", ext.Found)
			slots[i] = loaded{artifact: artifact, extraction: ext}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slots, nil
}
