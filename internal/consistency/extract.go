package consistency

import (
	"regexp"
	"strings"
)

var (
	// sectionHeadingRe matches a level 2-3 "Consistency Keys" heading.
	sectionHeadingRe = regexp.MustCompile(`(?i)^#{2,3}\s+Consistency Keys\s*$`)
	// anyHeadingRe matches any markdown heading of level 1-6.
	anyHeadingRe = regexp.MustCompile(`^#{1,6}\s+\S+`)
	// bulletRe matches "- label: value" and "* label: value".
	bulletRe = regexp.MustCompile(`^\s*[-*]\s*([^:]+):\s*(.+?)\s*$`)
)

// KeyMap maps canonical keys to normalized values for one artifact.
type KeyMap map[CanonicalKey]string

// Duplicate records a canonical key declared more than once in one section.
type Duplicate struct {
	Key      CanonicalKey
	Line     int    // 1-based line of the later declaration
	Previous string // value that was overwritten
	Value    string // value that won
}

// Extraction is the detailed outcome of scanning one document.
type Extraction struct {
	Keys       KeyMap
	Found      bool // whether a Consistency Keys heading was seen
	Duplicates []Duplicate
}

// ExtractKeys returns the canonical key map declared in text's Consistency Keys section.
// A document without the section yields an empty map.
func ExtractKeys(text string) KeyMap {
	return ExtractKeysDetailed(text).Keys
}

// ExtractKeysDetailed scans text like ExtractKeys and also reports repeated keys.
// When a key repeats, the last occurrence wins.
func ExtractKeysDetailed(text string) Extraction {
	ext := Extraction{Keys: KeyMap{}}
	inSection := false

	for i, line := range splitLines(text) {
		trimmed := strings.TrimSpace(line)

		if !inSection {
			if sectionHeadingRe.MatchString(trimmed) {
				inSection = true
				ext.Found = true
			}
			continue
		}

		if anyHeadingRe.MatchString(trimmed) {
			break
		}

		match := bulletRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		key := NormalizeKey(match[1])
		if !IsCritical(key) {
			continue
		}
		value := NormalizeValue(key, match[2])
		if prev, ok := ext.Keys[key]; ok {
			ext.Duplicates = append(ext.Duplicates, Duplicate{
				Key:      key,
				Line:     i + 1,
				Previous: prev,
				Value:    value,
			})
		}
		ext.Keys[key] = value
	}

	return ext
}

// splitLines splits on \n, \r\n and \r.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
