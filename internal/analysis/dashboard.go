package analysis

import (
	"goscores/domain/dataset"
	"goscores/domain/stats"
)

// Chart gates. Each output is computed over the rows matching only the listed
// selection fields.
var (
	groupComparisonGate = []dataset.Field{dataset.FieldGender, dataset.FieldPrep}
	educationGate       = []dataset.Field{dataset.FieldPrep}
)

// Compute derives every dashboard aggregate for one selection
func Compute(ds *dataset.Dataset, sel dataset.Selection) stats.Snapshot {
	selected := Filter(ds, sel)
	byGenderPrep := FilterByFields(ds, sel, groupComparisonGate...)
	byPrep := FilterByFields(ds, sel, educationGate...)

	// column is a known constant, the error is unreachable
	educationCounts, _ := DistributionOf(selected, dataset.ColumnEducation)

	return stats.Snapshot{
		Selection:       sel,
		Empty:           len(selected) == 0,
		MatchedRows:     len(selected),
		Means:           MeansOf(selected),
		Radar:           RadarOf(selected),
		GroupMeans:      GroupMeans(byGenderPrep),
		Correlation:     Correlate(ds),
		EducationCounts: educationCounts,
		EducationTrend:  GroupMeansByEducation(byPrep),
		EducationSpread: SpreadByEducation(byPrep),
		Scatter:         ScatterOf(selected),
	}
}
