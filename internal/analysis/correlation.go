package analysis

import (
	"math"

	"goscores/domain/dataset"
	"goscores/domain/stats"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Correlate computes the Pearson matrix of the three subjects over the whole
// dataset. The selection never applies here. Cells are NoData when fewer than
// two rows exist or a subject has zero variance.
func Correlate(ds *dataset.Dataset) stats.CorrelationMatrix {
	n := ds.Len()
	columns := make([][]float64, len(dataset.Subjects))
	for i, subject := range dataset.Subjects {
		columns[i] = make([]float64, n)
		for row := 0; row < n; row++ {
			columns[i][row] = ds.Record(row).Score(subject)
		}
	}

	size := len(dataset.Subjects)
	matrix := stats.CorrelationMatrix{
		Subjects: append([]dataset.Subject(nil), dataset.Subjects...),
		N:        n,
		R:        make([][]stats.Score, size),
		PValues:  make([][]stats.Score, size),
	}

	varies := make([]bool, size)
	for i := range columns {
		varies[i] = n >= 2 && stat.Variance(columns[i], nil) > 0
	}

	for i := 0; i < size; i++ {
		matrix.R[i] = make([]stats.Score, size)
		matrix.PValues[i] = make([]stats.Score, size)
		for j := 0; j < size; j++ {
			matrix.R[i][j] = stats.NoData
			matrix.PValues[i][j] = stats.NoData
			if !varies[i] || !varies[j] {
				continue
			}
			if i == j {
				matrix.R[i][j] = 1
				continue
			}
			if j < i {
				// symmetric, reuse the upper triangle
				matrix.R[i][j] = matrix.R[j][i]
				matrix.PValues[i][j] = matrix.PValues[j][i]
				continue
			}
			r := clampUnit(stat.Correlation(columns[i], columns[j], nil))
			matrix.R[i][j] = stats.Score(r)
			matrix.PValues[i][j] = correlationPValue(r, n)
		}
	}
	return matrix
}

// correlationPValue is the two-sided p-value of r under H0: rho = 0
func correlationPValue(r float64, n int) stats.Score {
	if n < 3 || math.IsNaN(r) {
		return stats.NoData
	}
	if math.Abs(r) >= 1 {
		return 0
	}
	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return stats.Score(2 * (1 - dist.CDF(math.Abs(t))))
}

func clampUnit(r float64) float64 {
	if r > 1 {
		return 1
	}
	if r < -1 {
		return -1
	}
	return r
}
