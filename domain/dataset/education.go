package dataset

import "sort"

// EducationLevels lists parental education levels from lowest to highest
var EducationLevels = []string{
	"some high school",
	"high school",
	"some college",
	"associate's degree",
	"bachelor's degree",
	"master's degree",
}

var educationRank = func() map[string]int {
	m := make(map[string]int, len(EducationLevels))
	for i, level := range EducationLevels {
		m[level] = i
	}
	return m
}()

// SortEducationLevels orders levels by rank in place. Unknown levels keep
// their relative order and go after every known level.
func SortEducationLevels(levels []string) {
	sort.SliceStable(levels, func(i, j int) bool {
		return sortRank(levels[i]) < sortRank(levels[j])
	})
}

func sortRank(level string) int {
	if rank, ok := educationRank[level]; ok {
		return rank
	}
	return len(EducationLevels)
}
