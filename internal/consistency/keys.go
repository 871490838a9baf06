// Package consistency extracts Consistency Keys from design artifacts and reconciles
// them across documents.
//
// Each artifact may declare a "Consistency Keys" section of "- label: value" bullets.
// Labels are normalized to a closed set of canonical keys, values are normalized for
// comparison, and the reconciler reports keys that are missing where required or that
// disagree between artifacts.
package consistency

import (
	"regexp"
	"strings"
)

// CanonicalKey is the normalized identifier of a consistency fact.
type CanonicalKey string

const (
	KeyAppPurposeHypothesis     CanonicalKey = "app_purpose_hypothesis"
	KeyPrimaryOperationSequence CanonicalKey = "primary_operation_sequence"
	KeyPlatformRuntime          CanonicalKey = "platform_runtime"
	KeyDesignSystemStrategy     CanonicalKey = "design_system_strategy"
	KeyUILibraryStack           CanonicalKey = "ui_library_stack"
	KeyNavigationModel          CanonicalKey = "navigation_model"
	KeyVisualConcept            CanonicalKey = "visual_concept"
	KeyCopyTerminologyContract  CanonicalKey = "copy_terminology_contract"
)

// criticalKeys is ordered; reconciliation reports conflicts in this order.
var criticalKeys = []CanonicalKey{
	KeyAppPurposeHypothesis,
	KeyPrimaryOperationSequence,
	KeyPlatformRuntime,
	KeyDesignSystemStrategy,
	KeyUILibraryStack,
	KeyNavigationModel,
	KeyVisualConcept,
	KeyCopyTerminologyContract,
}

var keyAliases = map[string]CanonicalKey{
	"app purpose hypothesis":     KeyAppPurposeHypothesis,
	"app_purpose_hypothesis":     KeyAppPurposeHypothesis,
	"primary operation sequence": KeyPrimaryOperationSequence,
	"primary_operation_sequence": KeyPrimaryOperationSequence,
	"platform runtime":           KeyPlatformRuntime,
	"platform_runtime":           KeyPlatformRuntime,
	"design system strategy":     KeyDesignSystemStrategy,
	"design_system_strategy":     KeyDesignSystemStrategy,
	"ui library stack":           KeyUILibraryStack,
	"ui_library_stack":           KeyUILibraryStack,
	"navigation model":           KeyNavigationModel,
	"navigation_model":           KeyNavigationModel,
	"visual concept":             KeyVisualConcept,
	"visual_concept":             KeyVisualConcept,
	"copy terminology contract":  KeyCopyTerminologyContract,
	"copy_terminology_contract":  KeyCopyTerminologyContract,
}

var (
	// slugSeparatorRe matches runs of whitespace and hyphens inside a key label.
	slugSeparatorRe = regexp.MustCompile(`[\s\-]+`)
	// whitespaceRe matches runs of whitespace inside a value.
	whitespaceRe = regexp.MustCompile(`\s+`)
	// arrowRe matches a step arrow written as "->", " -> ", " - > " and similar spacings.
	arrowRe = regexp.MustCompile(`\s*-\s*>\s*`)
)

// CriticalKeys returns the closed set of canonical keys, in reporting order.
func CriticalKeys() []CanonicalKey {
	out := make([]CanonicalKey, len(criticalKeys))
	copy(out, criticalKeys)
	return out
}

// KeyAliases returns a copy of the alias table.
func KeyAliases() map[string]CanonicalKey {
	out := make(map[string]CanonicalKey, len(keyAliases))
	for k, v := range keyAliases {
		out[k] = v
	}
	return out
}

// IsCritical reports whether key belongs to the closed canonical key set.
func IsCritical(key CanonicalKey) bool {
	for _, k := range criticalKeys {
		if k == key {
			return true
		}
	}
	return false
}

// NormalizeKey maps a human-written label to its canonical key.
// Labels without an alias come back as their slug; the function never fails.
func NormalizeKey(raw string) CanonicalKey {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	slug := slugSeparatorRe.ReplaceAllString(lowered, "_")
	if key, ok := keyAliases[slug]; ok {
		return key
	}
	if key, ok := keyAliases[lowered]; ok {
		return key
	}
	return CanonicalKey(slug)
}

// NormalizeValue canonicalizes a value for equality comparison.
// Only the operation sequence gets arrow unification, so "login -> home",
// "login - > home" and "login→home" all compare equal.
func NormalizeValue(key CanonicalKey, raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if key == KeyPrimaryOperationSequence {
		value = strings.ReplaceAll(value, "→", "->")
		value = arrowRe.ReplaceAllString(value, "->")
	}
	return whitespaceRe.ReplaceAllString(value, " ")
}
