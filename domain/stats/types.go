package stats

import (
	"bytes"
	"math"
	"strconv"

	"goscores/domain/dataset"
)

// Score is a derived numeric value. NaN marks "no data" and encodes as JSON null.
type Score float64

// NoData is the explicit empty-input marker
var NoData = Score(math.NaN())

// Valid reports whether the score carries data
func (s Score) Valid() bool {
	f := float64(s)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Float returns the raw value
func (s Score) Float() float64 {
	return float64(s)
}

func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(s), 'g', -1, 64), nil
}

func (s *Score) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = NoData
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*s = Score(f)
	return nil
}

// MeanScores holds the arithmetic mean of each subject
type MeanScores struct {
	Math    Score `json:"math"`
	Reading Score `json:"reading"`
	Writing Score `json:"writing"`
}

// Get returns the mean for a subject
func (m MeanScores) Get(s dataset.Subject) Score {
	switch s {
	case dataset.SubjectMath:
		return m.Math
	case dataset.SubjectReading:
		return m.Reading
	case dataset.SubjectWriting:
		return m.Writing
	}
	return NoData
}

// HasData is false when every mean is the no-data marker
func (m MeanScores) HasData() bool {
	return m.Math.Valid() || m.Reading.Valid() || m.Writing.Valid()
}

// GroupMean is one bar of the group comparison chart
type GroupMean struct {
	Group   dataset.Group `json:"group"`
	Ordinal int           `json:"ordinal"`
	Count   int           `json:"count"`
	Means   MeanScores    `json:"means"`
}

// EducationMean is one point of the per-education trend
type EducationMean struct {
	Level string     `json:"level"`
	Count int        `json:"count"`
	Means MeanScores `json:"means"`
}

// CategoryCount is one slice of a value-count distribution
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// RadarVector is the mean triple in fixed axis order
type RadarVector struct {
	Axes   []dataset.Subject `json:"axes"`
	Values []Score           `json:"values"`
}

// CorrelationMatrix is a symmetric Pearson matrix over the subjects
type CorrelationMatrix struct {
	Subjects []dataset.Subject `json:"subjects"`
	N        int               `json:"n"`
	R        [][]Score         `json:"r"`
	PValues  [][]Score         `json:"p_values"`
}

// At returns r for a pair of subjects
func (c CorrelationMatrix) At(a, b dataset.Subject) Score {
	i, j := subjectIndex(c.Subjects, a), subjectIndex(c.Subjects, b)
	if i < 0 || j < 0 {
		return NoData
	}
	return c.R[i][j]
}

func subjectIndex(subjects []dataset.Subject, s dataset.Subject) int {
	for i, candidate := range subjects {
		if candidate == s {
			return i
		}
	}
	return -1
}

// ScatterPoint is one student in the math vs reading scatter
type ScatterPoint struct {
	Math      float64 `json:"math"`
	Reading   float64 `json:"reading"`
	Writing   float64 `json:"writing"`
	Education string  `json:"education"`
	Lunch     string  `json:"lunch"`
}

// Spread is a five-number summary plus mean
type Spread struct {
	Count  int   `json:"count"`
	Min    Score `json:"min"`
	Q1     Score `json:"q1"`
	Median Score `json:"median"`
	Q3     Score `json:"q3"`
	Max    Score `json:"max"`
	Mean   Score `json:"mean"`
}

// EducationSpread feeds the box and violin charts for one education level
type EducationSpread struct {
	Level    string                     `json:"level"`
	Subjects map[dataset.Subject]Spread `json:"subjects"`
}

// Snapshot bundles every derived aggregate for one selection
type Snapshot struct {
	Selection       dataset.Selection `json:"selection"`
	Empty           bool              `json:"empty"`
	MatchedRows     int               `json:"matched_rows"`
	Means           MeanScores        `json:"means"`
	Radar           RadarVector       `json:"radar"`
	GroupMeans      []GroupMean       `json:"group_means"`
	Correlation     CorrelationMatrix `json:"correlation"`
	EducationCounts []CategoryCount   `json:"education_counts"`
	EducationTrend  []EducationMean   `json:"education_trend"`
	EducationSpread []EducationSpread `json:"education_spread"`
	Scatter         []ScatterPoint    `json:"scatter"`
}
