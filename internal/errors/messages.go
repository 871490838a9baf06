package errors

import "fmt"

// ArtifactDirInvalid reports a missing or non-directory artifact path.
func ArtifactDirInvalid(path string) *CLIError {
	return NewInputError(
		fmt.Sprintf("artifact_dir is invalid: %s", path),
		"Pass the path to a run-artifacts/<run-id> directory",
		"Check that the directory exists and is readable",
	)
}

// NoArtifactsFound reports a directory that holds none of the known artifact files.
func NoArtifactsFound(dir string) *CLIError {
	return NewInputError(
		fmt.Sprintf("no known artifact files found in %s", dir),
		"Artifact files are named 01-intent-inference.md through 11-release-summary.md",
		"Run 'uxgate schema consistency' to list the expected files",
	)
}

// ArtifactUnreadable reports an artifact that exists but could not be read.
func ArtifactUnreadable(path string, cause error) *CLIError {
	e := NewInputError(
		fmt.Sprintf("cannot read artifact %s: %v", path, cause),
		"Check the file permissions",
	)
	e.Err = cause
	return e
}

// MatrixNotFound reports a matrix path that does not exist.
func MatrixNotFound(path string) *CLIError {
	return NewInputError(
		fmt.Sprintf("file not found: %s", path),
		"Pass the path to a markdown (.md) or CSV matrix file",
	)
}

// MatrixIsDirectory reports a matrix path that points at a directory.
func MatrixIsDirectory(path string) *CLIError {
	return NewInputError(
		fmt.Sprintf("path is a directory, not a file: %s", path),
		"Specify the full path to the matrix file",
	)
}

// MatrixUnreadable reports a matrix file that could not be read.
func MatrixUnreadable(path string, cause error) *CLIError {
	e := NewInputError(
		fmt.Sprintf("cannot read matrix %s: %v", path, cause),
		"Check the file permissions",
	)
	e.Err = cause
	return e
}

// ConfigFileNotFound reports an explicitly requested config file that is missing.
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Create the file or omit --config to use defaults",
	)
}

// ConfigParseError reports a config file or value that failed to load.
func ConfigParseError(path string, cause error) *CLIError {
	e := NewConfigError(
		fmt.Sprintf("failed to load config %s: %v", path, cause),
		"Check the JSON syntax of the config file",
		"Check UXGATE_* environment variables for invalid values",
	)
	e.Err = cause
	return e
}

// InvalidFlagCombination reports flags that cannot be used together.
func InvalidFlagCombination(flags, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination %s: %s", flags, reason),
		"Run the command with --help to see valid usage",
	)
}

// UnknownSchema reports a schema name that uxgate does not define.
func UnknownSchema(name string, valid []string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("unknown schema: %s", name),
		"uxgate schema <name>",
		fmt.Sprintf("Use one of: %v", valid),
	)
}
