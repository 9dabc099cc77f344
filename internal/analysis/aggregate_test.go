package analysis

import (
	"encoding/json"
	"math"
	"testing"

	"goscores/domain/core"
	"goscores/domain/dataset"
	"goscores/domain/stats"
	"goscores/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	groupA, _ = dataset.GroupForCode("group A")
	groupB, _ = dataset.GroupForCode("group B")
)

func rec(gender string, group dataset.Group, education, prep string, math, reading, writing float64) dataset.Record {
	return dataset.Record{
		Gender: gender, Group: group, Education: education, Lunch: "standard", Prep: prep,
		Math: math, Reading: reading, Writing: writing,
	}
}

func TestMeansOf(t *testing.T) {
	rows := []dataset.Record{
		rec("female", groupA, "high school", "none", 60, 70, 80),
		rec("female", groupA, "high school", "none", 80, 80, 80),
		rec("female", groupA, "high school", "none", 100, 90, 80),
	}

	means := MeansOf(rows)
	assert.Equal(t, stats.Score(80), means.Math)
	assert.Equal(t, stats.Score(80), means.Reading)
	assert.Equal(t, stats.Score(80), means.Writing)
}

func TestMeansOfEmptyIsNoData(t *testing.T) {
	means := MeansOf(nil)
	assert.False(t, means.HasData())
	assert.True(t, math.IsNaN(means.Math.Float()))

	radar := RadarOf([]dataset.Record{})
	require.Len(t, radar.Values, 3)
	for _, v := range radar.Values {
		assert.False(t, v.Valid())
	}
}

func TestRadarOfAxisOrder(t *testing.T) {
	rows := []dataset.Record{
		rec("female", groupA, "high school", "none", 60, 70, 80),
		rec("female", groupA, "high school", "none", 80, 90, 70),
	}

	radar := RadarOf(rows)
	assert.Equal(t, []dataset.Subject{dataset.SubjectMath, dataset.SubjectReading, dataset.SubjectWriting}, radar.Axes)
	assert.Equal(t, []stats.Score{70, 80, 75}, radar.Values)
}

func TestGroupMeansAlwaysFiveGroups(t *testing.T) {
	rows := []dataset.Record{
		rec("male", groupB, "high school", "none", 50, 60, 70),
		rec("male", groupB, "high school", "none", 70, 80, 90),
	}

	groups := GroupMeans(rows)
	require.Len(t, groups, dataset.GroupCount)
	for i, g := range groups {
		assert.Equal(t, i+1, g.Ordinal)
		assert.Equal(t, dataset.Groups()[i], g.Group)
	}

	assert.Equal(t, 0, groups[0].Count)
	assert.False(t, groups[0].Means.HasData())
	assert.Equal(t, 2, groups[1].Count)
	assert.Equal(t, stats.Score(60), groups[1].Means.Math)
	assert.Equal(t, stats.Score(80), groups[1].Means.Writing)
}

func TestGroupMeansByEducationOrder(t *testing.T) {
	rows := []dataset.Record{
		rec("female", groupA, "master's degree", "none", 90, 90, 90),
		rec("female", groupA, "some high school", "none", 40, 50, 60),
		rec("female", groupA, "master's degree", "none", 70, 70, 70),
	}

	trend := GroupMeansByEducation(rows)
	require.Len(t, trend, 2)
	assert.Equal(t, "some high school", trend[0].Level)
	assert.Equal(t, 1, trend[0].Count)
	assert.Equal(t, "master's degree", trend[1].Level)
	assert.Equal(t, 2, trend[1].Count)
	assert.Equal(t, stats.Score(80), trend[1].Means.Math)

	assert.Empty(t, GroupMeansByEducation(nil))
}

func TestDistributionOf(t *testing.T) {
	rows := []dataset.Record{
		rec("female", groupA, "high school", "none", 1, 1, 1),
		rec("male", groupA, "some college", "none", 1, 1, 1),
		rec("female", groupA, "high school", "none", 1, 1, 1),
	}

	counts, err := DistributionOf(rows, dataset.ColumnEducation)
	require.NoError(t, err)
	assert.Equal(t, []stats.CategoryCount{
		{Category: "high school", Count: 2},
		{Category: "some college", Count: 1},
	}, counts)

	total := 0
	for _, c := range counts {
		total += c.Count
	}
	assert.Equal(t, len(rows), total)

	empty, err := DistributionOf(nil, dataset.ColumnGender)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDistributionOfUnknownColumn(t *testing.T) {
	_, err := DistributionOf(nil, dataset.ColumnMath)
	assert.ErrorIs(t, err, core.ErrUnknownColumn)

	_, err = DistributionOf(nil, "shoe size")
	assert.ErrorIs(t, err, core.ErrUnknownColumn)
}

func TestScatterOf(t *testing.T) {
	rows := []dataset.Record{rec("female", groupA, "high school", "none", 61, 72, 83)}

	points := ScatterOf(rows)
	require.Len(t, points, 1)
	assert.Equal(t, stats.ScatterPoint{Math: 61, Reading: 72, Writing: 83, Education: "high school", Lunch: "standard"}, points[0])
	assert.Empty(t, ScatterOf(nil))
}

func TestSpreadByEducation(t *testing.T) {
	rows := []dataset.Record{
		rec("female", groupA, "high school", "none", 10, 10, 10),
		rec("female", groupA, "high school", "none", 20, 20, 20),
		rec("female", groupA, "high school", "none", 30, 30, 30),
		rec("female", groupA, "high school", "none", 40, 40, 40),
		rec("female", groupA, "some college", "none", 55, 65, 75),
	}

	spreads := SpreadByEducation(rows)
	require.Len(t, spreads, 2)
	assert.Equal(t, "high school", spreads[0].Level)

	math := spreads[0].Subjects[dataset.SubjectMath]
	assert.Equal(t, 4, math.Count)
	assert.Equal(t, stats.Score(10), math.Min)
	assert.Equal(t, stats.Score(15), math.Q1)
	assert.Equal(t, stats.Score(25), math.Median)
	assert.Equal(t, stats.Score(35), math.Q3)
	assert.Equal(t, stats.Score(40), math.Max)
	assert.Equal(t, stats.Score(25), math.Mean)

	single := spreads[1].Subjects[dataset.SubjectWriting]
	assert.Equal(t, 1, single.Count)
	assert.Equal(t, stats.Score(75), single.Q1)
	assert.Equal(t, stats.Score(75), single.Q3)
	assert.Equal(t, stats.Score(75), single.Max)
}

func TestFilterIsExactAndCaseSensitive(t *testing.T) {
	ds := testkit.MustDataset(t,
		testkit.Student("female", "group A", "high school", "none", 1, 1, 1),
		testkit.Student("Female", "group A", "high school", "none", 1, 1, 1),
		testkit.Student("female", "group A", "high school", "completed", 1, 1, 1),
		testkit.Student("female", "group B", "high school", "none", 1, 1, 1),
	)
	sel := dataset.Selection{Prep: "none", Gender: "female", Group: groupA}

	assert.Len(t, Filter(ds, sel), 1)
	assert.Len(t, FilterByFields(ds, sel, dataset.FieldPrep), 3)
	assert.Len(t, FilterByFields(ds, sel, dataset.FieldGender, dataset.FieldPrep), 2)
	assert.Len(t, FilterByFields(ds, sel), ds.Len())
	assert.Len(t, FilterByFields(ds, sel, dataset.AllFields...), 1)
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}
