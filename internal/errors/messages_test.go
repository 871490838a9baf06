// Package errors_test tests structured CLI error message generation and remediation steps.
// Related: internal/errors/messages.go
// Tags: errors, cli-errors, messages, remediation, error-categories
package errors

import (
	"strings"
	"testing"
)

func TestInputErrorMessages(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err          *CLIError
		wantContains string
	}{
		"artifact dir invalid": {
			err:          ArtifactDirInvalid("/runs/missing"),
			wantContains: "/runs/missing",
		},
		"no artifacts found": {
			err:          NoArtifactsFound("/runs/empty"),
			wantContains: "no known artifact files found in /runs/empty",
		},
		"artifact unreadable": {
			err:          ArtifactUnreadable("/runs/r1/01-intent-inference.md", &testError{}),
			wantContains: "01-intent-inference.md",
		},
		"matrix not found": {
			err:          MatrixNotFound("/runs/r1/matrix.csv"),
			wantContains: "file not found",
		},
		"matrix is directory": {
			err:          MatrixIsDirectory("/runs/r1"),
			wantContains: "directory",
		},
		"matrix unreadable": {
			err:          MatrixUnreadable("/runs/r1/matrix.md", &testError{}),
			wantContains: "matrix.md",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if tc.err.Category != Input {
				t.Errorf("Expected Input category, got %v", tc.err.Category)
			}
			if !strings.Contains(tc.err.Message, tc.wantContains) {
				t.Errorf("Message %q should contain %q", tc.err.Message, tc.wantContains)
			}
			if len(tc.err.Remediation) == 0 {
				t.Error("Expected remediation steps")
			}
		})
	}
}

func TestUnreadableErrorsKeepCause(t *testing.T) {
	cause := &testError{}

	if ArtifactUnreadable("a.md", cause).Unwrap() != cause {
		t.Error("ArtifactUnreadable should keep its cause")
	}
	if MatrixUnreadable("m.csv", cause).Unwrap() != cause {
		t.Error("MatrixUnreadable should keep its cause")
	}
}

func TestConfigFileNotFound(t *testing.T) {
	err := ConfigFileNotFound("/path/to/config")

	if err.Category != Configuration {
		t.Errorf("Expected Configuration category, got %v", err.Category)
	}
	if !strings.Contains(err.Message, "/path/to/config") {
		t.Error("Expected message to contain path")
	}
}

func TestConfigParseError(t *testing.T) {
	original := &testError{}
	err := ConfigParseError("/path/to/config", original)

	if err.Category != Configuration {
		t.Errorf("Expected Configuration category, got %v", err.Category)
	}
	if len(err.Remediation) == 0 {
		t.Error("Expected remediation steps")
	}
}

func TestInvalidFlagCombination(t *testing.T) {
	err := InvalidFlagCombination("--watch --format json", "watch mode prints text only")

	if err.Category != Argument {
		t.Errorf("Expected Argument category, got %v", err.Category)
	}
	if !strings.Contains(err.Message, "--watch --format json") {
		t.Error("Expected message to contain flags")
	}
}

func TestUnknownSchema(t *testing.T) {
	err := UnknownSchema("bogus", []string{"completeness", "traceability"})

	if err.Category != Argument {
		t.Errorf("Expected Argument category, got %v", err.Category)
	}
	if err.Usage == "" {
		t.Error("Expected non-empty usage")
	}
	if !strings.Contains(err.Message, "bogus") {
		t.Error("Expected message to contain schema name")
	}
}
