package analysis

import (
	"goscores/domain/dataset"
)

// Matches reports whether a record equals the selection on all three
// fields. Comparison is exact: no trimming, no case folding.
func Matches(r dataset.Record, s dataset.Selection) bool {
	return r.Prep == s.Prep && r.Gender == s.Gender && r.Group == s.Group
}

// Filter returns the rows matching the full selection, in dataset order
func Filter(ds *dataset.Dataset, s dataset.Selection) []dataset.Record {
	rows := make([]dataset.Record, 0)
	for i := 0; i < ds.Len(); i++ {
		if r := ds.Record(i); Matches(r, s) {
			rows = append(rows, r)
		}
	}
	return rows
}

// FilterByFields returns the rows matching the selection on the listed
// fields only. With no fields every row is returned.
func FilterByFields(ds *dataset.Dataset, s dataset.Selection, fields ...dataset.Field) []dataset.Record {
	var usePrep, useGender, useGroup bool
	for _, f := range fields {
		switch f {
		case dataset.FieldPrep:
			usePrep = true
		case dataset.FieldGender:
			useGender = true
		case dataset.FieldGroup:
			useGroup = true
		}
	}

	rows := make([]dataset.Record, 0)
	for i := 0; i < ds.Len(); i++ {
		r := ds.Record(i)
		if usePrep && r.Prep != s.Prep {
			continue
		}
		if useGender && r.Gender != s.Gender {
			continue
		}
		if useGroup && r.Group != s.Group {
			continue
		}
		rows = append(rows, r)
	}
	return rows
}
