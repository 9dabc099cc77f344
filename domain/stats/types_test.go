package stats

import (
	"encoding/json"
	"math"
	"testing"

	"goscores/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreJSONEncodesNoDataAsNull(t *testing.T) {
	means := MeanScores{Math: 80, Reading: NoData, Writing: Score(72.5)}

	data, err := json.Marshal(means)
	require.NoError(t, err)
	assert.JSONEq(t, `{"math":80,"reading":null,"writing":72.5}`, string(data))

	var decoded MeanScores
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Score(80), decoded.Math)
	assert.True(t, math.IsNaN(decoded.Reading.Float()))
	assert.Equal(t, Score(72.5), decoded.Writing)
}

func TestMeanScoresHasData(t *testing.T) {
	assert.False(t, MeanScores{Math: NoData, Reading: NoData, Writing: NoData}.HasData())
	assert.True(t, MeanScores{Math: 1, Reading: NoData, Writing: NoData}.HasData())
	assert.Equal(t, Score(3), MeanScores{Writing: 3}.Get(dataset.SubjectWriting))
	assert.False(t, MeanScores{}.Get(dataset.Subject("art")).Valid())
}

func TestCorrelationMatrixAt(t *testing.T) {
	m := CorrelationMatrix{
		Subjects: dataset.Subjects,
		R: [][]Score{
			{1, 0.5, 0.25},
			{0.5, 1, 0.75},
			{0.25, 0.75, 1},
		},
	}
	assert.Equal(t, Score(0.75), m.At(dataset.SubjectReading, dataset.SubjectWriting))
	assert.Equal(t, m.At(dataset.SubjectMath, dataset.SubjectWriting), m.At(dataset.SubjectWriting, dataset.SubjectMath))
	assert.False(t, m.At(dataset.SubjectMath, dataset.Subject("art")).Valid())
}
