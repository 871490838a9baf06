package util

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/uxgate/internal/cli/shared"
	"github.com/ariel-frischer/uxgate/internal/consistency"
	apperrors "github.com/ariel-frischer/uxgate/internal/errors"
	"github.com/ariel-frischer/uxgate/internal/matrix"
	"github.com/ariel-frischer/uxgate/internal/validation"
)

var schemaNames = []string{"consistency", "completeness", "traceability"}

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema <consistency|completeness|traceability>",
		Short: "Print the rules a check enforces",
		Long: `Print the static tables behind a check: canonical keys, aliases and required
keys per artifact for consistency; columns, statuses and row rules for the matrices.`,
		Example: `  uxgate schema consistency
  uxgate schema completeness --format yaml`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: schemaNames,
		RunE:      runSchema,
	}
	cmd.GroupID = shared.GroupInfo
	return cmd
}

// formatFlag returns the --format value, text when unset.
func formatFlag(cmd *cobra.Command) (validation.Format, error) {
	if !cmd.Flags().Changed("format") {
		return validation.FormatText, nil
	}
	name, _ := cmd.Flags().GetString("format")
	format, err := validation.ParseFormat(name)
	if err != nil {
		return "", apperrors.NewArgumentError(err.Error())
	}
	return format, nil
}

func runSchema(cmd *cobra.Command, args []string) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return shared.InputFailure(cmd.ErrOrStderr(), err)
	}

	doc, err := schemaDocument(args[0])
	if err != nil {
		return shared.InputFailure(cmd.ErrOrStderr(), err)
	}

	out := cmd.OutOrStdout()
	if format == validation.FormatText {
		return writeSchemaText(out, doc)
	}
	return writeSchemaStructured(out, doc, format)
}

// schemaDoc is the printable form of one check's rules.
type schemaDoc struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`

	CanonicalKeys []string            `json:"canonical_keys,omitempty" yaml:"canonical_keys,omitempty"`
	Aliases       map[string]string   `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Artifacts     []string            `json:"required_artifacts,omitempty" yaml:"required_artifacts,omitempty"`
	RequiredKeys  map[string][]string `json:"required_keys,omitempty" yaml:"required_keys,omitempty"`

	Columns        []string            `json:"required_columns,omitempty" yaml:"required_columns,omitempty"`
	Statuses       []string            `json:"statuses,omitempty" yaml:"statuses,omitempty"`
	StatusFields   map[string][]string `json:"status_fields,omitempty" yaml:"status_fields,omitempty"`
	CriticalPrefix string              `json:"critical_prefix,omitempty" yaml:"critical_prefix,omitempty"`
	CriticalFields []string            `json:"critical_fields,omitempty" yaml:"critical_fields,omitempty"`
}

func schemaDocument(name string) (schemaDoc, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == string(validation.CheckConsistency) {
		return consistencyDoc(), nil
	}
	s, err := matrix.SchemaFor(name)
	if err != nil {
		return schemaDoc{}, apperrors.UnknownSchema(name, schemaNames)
	}
	return schemaDoc{
		Name:           name,
		Description:    s.Description,
		Columns:        s.RequiredColumns,
		Statuses:       s.Statuses,
		StatusFields:   s.StatusFields,
		CriticalPrefix: s.CriticalPrefix,
		CriticalFields: s.CriticalFields,
	}, nil
}

func consistencyDoc() schemaDoc {
	doc := schemaDoc{
		Name:         string(validation.CheckConsistency),
		Description:  "Consistency Keys declared under '## Consistency Keys' must agree across artifacts",
		Aliases:      map[string]string{},
		Artifacts:    consistency.RequiredArtifacts(),
		RequiredKeys: map[string][]string{},
	}
	for _, key := range consistency.CriticalKeys() {
		doc.CanonicalKeys = append(doc.CanonicalKeys, string(key))
	}
	for alias, key := range consistency.KeyAliases() {
		doc.Aliases[alias] = string(key)
	}
	for file, keys := range consistency.RequiredKeys() {
		for _, key := range keys {
			doc.RequiredKeys[file] = append(doc.RequiredKeys[file], string(key))
		}
	}
	return doc
}

func writeSchemaText(out io.Writer, doc schemaDoc) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n%s\n", doc.Name, doc.Description)

	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&sb, "\n%s:\n", title)
		for _, item := range items {
			fmt.Fprintf(&sb, "  - %s\n", item)
		}
	}
	table := func(title string, m map[string][]string, order []string) {
		if len(m) == 0 {
			return
		}
		fmt.Fprintf(&sb, "\n%s:\n", title)
		for _, k := range order {
			if v, ok := m[k]; ok {
				fmt.Fprintf(&sb, "  %s: %s\n", k, strings.Join(v, ", "))
			}
		}
	}

	list("Canonical keys", doc.CanonicalKeys)
	if len(doc.Aliases) > 0 {
		aliases := make([]string, 0, len(doc.Aliases))
		for alias, key := range doc.Aliases {
			aliases = append(aliases, fmt.Sprintf("%s -> %s", alias, key))
		}
		sort.Strings(aliases)
		list("Aliases", aliases)
	}
	list("Required artifacts", doc.Artifacts)
	table("Required keys", doc.RequiredKeys, doc.Artifacts)

	list("Required columns", doc.Columns)
	list("Statuses", doc.Statuses)
	table("Status requires", doc.StatusFields, doc.Statuses)
	if doc.CriticalPrefix != "" {
		fmt.Fprintf(&sb, "\nRows with id prefix %s must fill: %s\n",
			doc.CriticalPrefix, strings.Join(doc.CriticalFields, ", "))
	}

	_, err := io.WriteString(out, sb.String())
	return err
}

func writeSchemaStructured(out io.Writer, doc schemaDoc, format validation.Format) error {
	if format == validation.FormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding schema: %w", err)
		}
		return nil
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}
	return enc.Close()
}
