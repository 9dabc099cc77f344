package dataset

import (
	"time"

	"goscores/domain/core"
)

// Canonical column names after header normalization
const (
	ColumnGender    = "gender"
	ColumnGroup     = "race/ethnicity"
	ColumnEducation = "parental_level_of_education"
	ColumnLunch     = "lunch"
	ColumnPrep      = "test_preparation_course"
	ColumnMath      = "math_score"
	ColumnReading   = "reading_score"
	ColumnWriting   = "writing_score"
)

// RequiredColumns lists every column a normalized table must expose
var RequiredColumns = []string{
	ColumnGender,
	ColumnGroup,
	ColumnEducation,
	ColumnLunch,
	ColumnPrep,
	ColumnMath,
	ColumnReading,
	ColumnWriting,
}

// CategoricalColumns are the nominal columns that support value counts
var CategoricalColumns = []string{
	ColumnGender,
	ColumnGroup,
	ColumnEducation,
	ColumnLunch,
	ColumnPrep,
}

// Subject is one of the three score columns
type Subject string

const (
	SubjectMath    Subject = "math"
	SubjectReading Subject = "reading"
	SubjectWriting Subject = "writing"
)

// Subjects is the fixed axis order used by every vector-shaped output
var Subjects = []Subject{SubjectMath, SubjectReading, SubjectWriting}

// Record is one student observation
type Record struct {
	Gender    string  `json:"gender"`
	Group     Group   `json:"group"`
	Education string  `json:"parental_level_of_education"`
	Lunch     string  `json:"lunch"`
	Prep      string  `json:"test_preparation_course"`
	Math      float64 `json:"math_score"`
	Reading   float64 `json:"reading_score"`
	Writing   float64 `json:"writing_score"`
}

// Score returns the record's score for a subject
func (r Record) Score(s Subject) float64 {
	switch s {
	case SubjectMath:
		return r.Math
	case SubjectReading:
		return r.Reading
	case SubjectWriting:
		return r.Writing
	}
	return 0
}

// Category returns the value of a categorical column
func (r Record) Category(column string) (string, bool) {
	switch column {
	case ColumnGender:
		return r.Gender, true
	case ColumnGroup:
		return string(r.Group), true
	case ColumnEducation:
		return r.Education, true
	case ColumnLunch:
		return r.Lunch, true
	case ColumnPrep:
		return r.Prep, true
	}
	return "", false
}

// RawTable is an un-normalized table as produced by a reader
type RawTable struct {
	Source  string
	Headers []string
	Rows    [][]string
}

// Domains holds the observed values of each filterable column
type Domains struct {
	Prep      []string `json:"prep"`
	Gender    []string `json:"gender"`
	Group     []Group  `json:"group"`
	Education []string `json:"education"`
	Lunch     []string `json:"lunch"`
}

// Info describes the loaded dataset for operators
type Info struct {
	Source      string    `json:"source"`
	Rows        int       `json:"rows"`
	Fingerprint core.Hash `json:"fingerprint"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// Dataset is the immutable normalized table. It is built once by the
// normalizer and shared read-only by every computation.
type Dataset struct {
	records     []Record
	domains     Domains
	fingerprint core.Hash
	source      string
	loadedAt    time.Time
}

// New builds a Dataset from already validated records. The slice is copied.
func New(records []Record, source string, loadedAt time.Time) *Dataset {
	owned := make([]Record, len(records))
	copy(owned, records)

	fp := core.NewFingerprinter()
	for _, r := range owned {
		fp.Add(r.Gender, string(r.Group), r.Education, r.Lunch, r.Prep,
			formatScore(r.Math), formatScore(r.Reading), formatScore(r.Writing))
	}

	return &Dataset{
		records:     owned,
		domains:     collectDomains(owned),
		fingerprint: fp.Sum(),
		source:      source,
		loadedAt:    loadedAt,
	}
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.records)
}

// Record returns the i-th record by value
func (d *Dataset) Record(i int) Record {
	return d.records[i]
}

// Records returns a copy of all records in load order
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Domains returns the observed column domains
func (d *Dataset) Domains() Domains {
	return Domains{
		Prep:      append([]string(nil), d.domains.Prep...),
		Gender:    append([]string(nil), d.domains.Gender...),
		Group:     append([]Group(nil), d.domains.Group...),
		Education: append([]string(nil), d.domains.Education...),
		Lunch:     append([]string(nil), d.domains.Lunch...),
	}
}

func (d *Dataset) Fingerprint() core.Hash { return d.fingerprint }
func (d *Dataset) Source() string       { return d.source }

// Info summarizes the dataset
func (d *Dataset) Info() Info {
	return Info{
		Source:      d.source,
		Rows:        len(d.records),
		Fingerprint: d.fingerprint,
		LoadedAt:    d.loadedAt,
	}
}

func collectDomains(records []Record) Domains {
	var domains Domains
	seen := map[string]map[string]bool{
		ColumnPrep:      {},
		ColumnGender:    {},
		ColumnGroup:     {},
		ColumnEducation: {},
		ColumnLunch:     {},
	}
	add := func(column, value string, dst *[]string) {
		if !seen[column][value] {
			seen[column][value] = true
			*dst = append(*dst, value)
		}
	}

	for _, r := range records {
		add(ColumnPrep, r.Prep, &domains.Prep)
		add(ColumnGender, r.Gender, &domains.Gender)
		add(ColumnEducation, r.Education, &domains.Education)
		add(ColumnLunch, r.Lunch, &domains.Lunch)
		seen[ColumnGroup][string(r.Group)] = true
	}

	// Groups are listed in ordinal order rather than first-seen order
	for _, g := range Groups() {
		if seen[ColumnGroup][string(g)] {
			domains.Group = append(domains.Group, g)
		}
	}
	SortEducationLevels(domains.Education)
	return domains
}
