// Package prefs resolves the preferred-categories profile value. The value has
// two serialized forms that must both be accepted: the current one, a JSON
// object mapping fitness level to a comma-joined category list, and a legacy
// flat comma-joined list that applies to whatever level the user currently is.
// Parsing never fails; anything that is not a JSON object is treated as the
// legacy form. Writes always serialize the per-level form, so legacy values are
// upgraded the first time a level's list is edited (one-way migration).
package prefs

import (
	"encoding/json"
	"strings"
)

// Value is the parsed preference value.
type Value struct {
	// Levels holds the per-level lists when the value was in the current form.
	Levels map[string]string
	// Flat holds the whole raw value when it was in the legacy form.
	Flat   string
	IsFlat bool
}

// Parse decodes a raw preferred-categories value in either form.
func Parse(raw string) Value {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Value{Levels: map[string]string{}}
	}

	var levels map[string]string
	if err := json.Unmarshal([]byte(raw), &levels); err == nil && levels != nil {
		return Value{Levels: levels}
	}
	return Value{Flat: raw, IsFlat: true}
}

// CategoriesFor returns the ordered category list for the given level. Legacy
// flat values apply to every level. Entries are trimmed, empties dropped,
// order preserved; duplicates are harmless downstream and kept.
func (v Value) CategoriesFor(level string) []string {
	if v.IsFlat {
		return SplitList(v.Flat)
	}
	return SplitList(v.Levels[level])
}

// Merge sets the given level's category list inside an existing raw value and
// returns the new raw value, always in the per-level JSON form. A legacy flat
// value is first seeded as the current level's list so other levels are never
// clobbered by the upgrade.
func Merge(existingRaw, level string, categories []string) string {
	v := Parse(existingRaw)

	levels := v.Levels
	if v.IsFlat {
		levels = map[string]string{level: v.Flat}
	}
	if levels == nil {
		levels = map[string]string{}
	}
	levels[level] = strings.Join(trimAll(categories), ", ")

	out, err := json.Marshal(levels)
	if err != nil {
		// map[string]string cannot fail to marshal; keep the old value if it
		// somehow does.
		return existingRaw
	}
	return string(out)
}

// SplitList splits a comma-joined category list, trimming entries and
// dropping empties.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
