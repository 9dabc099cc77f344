package analysis

import (
	"fmt"

	"goscores/domain/core"
	"goscores/domain/dataset"
	"goscores/domain/stats"

	mstats "github.com/montanaflynn/stats"
)

// MeansOf computes the arithmetic mean of each subject. Empty input yields
// stats.NoData for all three.
func MeansOf(rows []dataset.Record) stats.MeanScores {
	math, reading, writing := subjectColumns(rows)
	return stats.MeanScores{
		Math:    meanOrNoData(math),
		Reading: meanOrNoData(reading),
		Writing: meanOrNoData(writing),
	}
}

// RadarOf returns the subject means as a vector in math, reading, writing order
func RadarOf(rows []dataset.Record) stats.RadarVector {
	means := MeansOf(rows)
	vector := stats.RadarVector{
		Axes:   append([]dataset.Subject(nil), dataset.Subjects...),
		Values: make([]stats.Score, len(dataset.Subjects)),
	}
	for i, subject := range dataset.Subjects {
		vector.Values[i] = means.Get(subject)
	}
	return vector
}

// GroupMeans groups rows by socioeconomic group. All five groups are
// always present in ordinal order; groups without rows carry NoData.
func GroupMeans(rows []dataset.Record) []stats.GroupMean {
	buckets := make(map[dataset.Group][]dataset.Record, dataset.GroupCount)
	for _, r := range rows {
		buckets[r.Group] = append(buckets[r.Group], r)
	}

	groups := dataset.Groups()
	out := make([]stats.GroupMean, 0, len(groups))
	for _, g := range groups {
		out = append(out, stats.GroupMean{
			Group:   g,
			Ordinal: g.Ordinal(),
			Count:   len(buckets[g]),
			Means:   MeansOf(buckets[g]),
		})
	}
	return out
}

// GroupMeansByEducation groups rows by parental education level, ordered
// by the education ordinal. Only observed levels are listed.
func GroupMeansByEducation(rows []dataset.Record) []stats.EducationMean {
	levels, buckets := bucketByEducation(rows)

	out := make([]stats.EducationMean, 0, len(levels))
	for _, level := range levels {
		out = append(out, stats.EducationMean{
			Level: level,
			Count: len(buckets[level]),
			Means: MeansOf(buckets[level]),
		})
	}
	return out
}

// DistributionOf counts rows per distinct value of a categorical column in
// first-seen order. Counts always sum to len(rows).
func DistributionOf(rows []dataset.Record, column string) ([]stats.CategoryCount, error) {
	if !isCategorical(column) {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownColumn, column)
	}

	index := make(map[string]int)
	out := make([]stats.CategoryCount, 0)
	for _, r := range rows {
		value, _ := r.Category(column)
		i, ok := index[value]
		if !ok {
			i = len(out)
			index[value] = i
			out = append(out, stats.CategoryCount{Category: value})
		}
		out[i].Count++
	}
	return out, nil
}

// ScatterOf projects rows onto the math vs reading scatter
func ScatterOf(rows []dataset.Record) []stats.ScatterPoint {
	points := make([]stats.ScatterPoint, len(rows))
	for i, r := range rows {
		points[i] = stats.ScatterPoint{
			Math:      r.Math,
			Reading:   r.Reading,
			Writing:   r.Writing,
			Education: r.Education,
			Lunch:     r.Lunch,
		}
	}
	return points
}

// SpreadByEducation summarizes each subject's distribution per education level
func SpreadByEducation(rows []dataset.Record) []stats.EducationSpread {
	levels, buckets := bucketByEducation(rows)

	out := make([]stats.EducationSpread, 0, len(levels))
	for _, level := range levels {
		math, reading, writing := subjectColumns(buckets[level])
		out = append(out, stats.EducationSpread{
			Level: level,
			Subjects: map[dataset.Subject]stats.Spread{
				dataset.SubjectMath:    spreadOf(math),
				dataset.SubjectReading: spreadOf(reading),
				dataset.SubjectWriting: spreadOf(writing),
			},
		})
	}
	return out
}

func spreadOf(values []float64) stats.Spread {
	spread := stats.Spread{
		Count:  len(values),
		Min:    scoreOrNoData(mstats.Min(values)),
		Q1:     stats.NoData,
		Median: stats.NoData,
		Q3:     stats.NoData,
		Max:    scoreOrNoData(mstats.Max(values)),
		Mean:   meanOrNoData(values),
	}

	quartiles, err := mstats.Quartile(values)
	if err != nil {
		return spread
	}
	spread.Q1 = stats.Score(quartiles.Q1)
	spread.Median = stats.Score(quartiles.Q2)
	spread.Q3 = stats.Score(quartiles.Q3)
	if len(values) == 1 {
		// a single value has no lower or upper half
		spread.Q1, spread.Q3 = spread.Median, spread.Median
	}
	return spread
}

func bucketByEducation(rows []dataset.Record) ([]string, map[string][]dataset.Record) {
	var levels []string
	buckets := make(map[string][]dataset.Record)
	for _, r := range rows {
		if _, ok := buckets[r.Education]; !ok {
			levels = append(levels, r.Education)
		}
		buckets[r.Education] = append(buckets[r.Education], r)
	}
	dataset.SortEducationLevels(levels)
	return levels, buckets
}

func subjectColumns(rows []dataset.Record) (math, reading, writing []float64) {
	math = make([]float64, len(rows))
	reading = make([]float64, len(rows))
	writing = make([]float64, len(rows))
	for i, r := range rows {
		math[i] = r.Math
		reading[i] = r.Reading
		writing[i] = r.Writing
	}
	return math, reading, writing
}

func meanOrNoData(values []float64) stats.Score {
	return scoreOrNoData(mstats.Mean(values))
}

func scoreOrNoData(v float64, err error) stats.Score {
	if err != nil {
		return stats.NoData
	}
	return stats.Score(v)
}

func isCategorical(column string) bool {
	for _, c := range dataset.CategoricalColumns {
		if c == column {
			return true
		}
	}
	return false
}
