// Package testkit builds normalized datasets for tests in other packages.
package testkit

import (
	"testing"

	"goscores/adapters/synthetic"
	domainDataset "goscores/domain/dataset"
	"goscores/internal/dataset"
)

// MustDataset normalizes the students into a dataset or fails the test
func MustDataset(t testing.TB, students ...synthetic.Student) *domainDataset.Dataset {
	t.Helper()
	ds, err := dataset.Normalize(synthetic.Table(students...))
	if err != nil {
		t.Fatalf("testkit: normalize fixture: %v", err)
	}
	return ds
}

// SyntheticDataset returns a deterministic generated dataset of n rows
func SyntheticDataset(t testing.TB, n int, seed int64) *domainDataset.Dataset {
	t.Helper()
	table, err := synthetic.NewGenerator(synthetic.GeneratorConfig{Count: n, Seed: seed}).ReadTable(t.Context())
	if err != nil {
		t.Fatalf("testkit: generate dataset: %v", err)
	}
	ds, err := dataset.Normalize(table)
	if err != nil {
		t.Fatalf("testkit: normalize generated dataset: %v", err)
	}
	return ds
}

// Student is a shorthand fixture row
func Student(gender, code, education, prep string, math, reading, writing float64) synthetic.Student {
	return synthetic.Student{
		Gender:    gender,
		GroupCode: code,
		Education: education,
		Lunch:     "standard",
		Prep:      prep,
		Math:      math,
		Reading:   reading,
		Writing:   writing,
	}
}
