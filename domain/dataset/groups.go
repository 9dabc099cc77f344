package dataset

import (
	"fmt"
	"strconv"
)

// Group is the descriptive socioeconomic group label
type Group string

// GroupMapping binds one raw group code to its descriptive label
type GroupMapping struct {
	Code    string `json:"code"`
	Label   Group  `json:"label"`
	Ordinal int    `json:"ordinal"`
}

var groupMappings = []GroupMapping{
	{Code: "group A", Label: "Grupo 1 - Condiciones limitadas", Ordinal: 1},
	{Code: "group B", Label: "Grupo 2 - Acceso limitado", Ordinal: 2},
	{Code: "group C", Label: "Grupo 3 - Promedio", Ordinal: 3},
	{Code: "group D", Label: "Grupo 4 - Buen acceso", Ordinal: 4},
	{Code: "group E", Label: "Grupo 5 - Óptimas condiciones", Ordinal: 5},
}

// GroupCount is the number of socioeconomic groups
const GroupCount = 5

var (
	groupByCode  map[string]GroupMapping
	groupByLabel map[Group]GroupMapping
)

func init() {
	if err := ValidateGroupMappings(groupMappings); err != nil {
		panic(err)
	}
	groupByCode = make(map[string]GroupMapping, len(groupMappings))
	groupByLabel = make(map[Group]GroupMapping, len(groupMappings))
	for _, m := range groupMappings {
		groupByCode[m.Code] = m
		groupByLabel[m.Label] = m
	}
}

// ValidateGroupMappings checks that mappings form a bijection between
// GroupCount codes and GroupCount labels with ordinals 1..GroupCount.
func ValidateGroupMappings(mappings []GroupMapping) error {
	if len(mappings) != GroupCount {
		return fmt.Errorf("group mapping must have %d entries, got %d", GroupCount, len(mappings))
	}
	codes := make(map[string]bool, len(mappings))
	labels := make(map[Group]bool, len(mappings))
	ordinals := make(map[int]bool, len(mappings))
	for _, m := range mappings {
		if m.Code == "" || m.Label == "" {
			return fmt.Errorf("group mapping has empty code or label: %+v", m)
		}
		if codes[m.Code] {
			return fmt.Errorf("duplicate group code %q", m.Code)
		}
		if labels[m.Label] {
			return fmt.Errorf("duplicate group label %q", m.Label)
		}
		if m.Ordinal < 1 || m.Ordinal > GroupCount || ordinals[m.Ordinal] {
			return fmt.Errorf("invalid or duplicate ordinal %d for %q", m.Ordinal, m.Code)
		}
		codes[m.Code] = true
		labels[m.Label] = true
		ordinals[m.Ordinal] = true
	}
	return nil
}

// GroupMappings returns the fixed mapping in ordinal order
func GroupMappings() []GroupMapping {
	return append([]GroupMapping(nil), groupMappings...)
}

// GroupForCode maps a raw code such as "group C" to its label
func GroupForCode(code string) (Group, bool) {
	m, ok := groupByCode[code]
	return m.Label, ok
}

// Groups returns every label in ordinal order
func Groups() []Group {
	out := make([]Group, len(groupMappings))
	for i, m := range groupMappings {
		out[i] = m.Label
	}
	return out
}

// Ordinal returns the 1-based rank of the group, or 0 when unknown
func (g Group) Ordinal() int {
	return groupByLabel[g].Ordinal
}

// Code returns the raw code the label was mapped from
func (g Group) Code() string {
	return groupByLabel[g].Code
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
