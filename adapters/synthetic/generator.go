package synthetic

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"goscores/domain/dataset"
	"goscores/ports"
)

var _ ports.TableReader = (*Generator)(nil)

// RawHeaders are the headers as they appear in the published CSV
var RawHeaders = []string{
	"gender",
	"race/ethnicity",
	"parental level of education",
	"lunch",
	"test preparation course",
	"math score",
	"reading score",
	"writing score",
}

// GeneratorConfig configures the synthetic student generator
type GeneratorConfig struct {
	Count int   `json:"count"`
	Seed  int64 `json:"seed"`
}

// DefaultGeneratorConfig matches the size of the published dataset
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{Count: 1000, Seed: 42}
}

// Generator produces a deterministic raw table of plausible students
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new student generator
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

type weighted struct {
	value  string
	weight float64
}

var (
	groupWeights = []weighted{
		{"group A", 0.089}, {"group B", 0.190}, {"group C", 0.319}, {"group D", 0.262}, {"group E", 0.140},
	}
	educationWeights = []weighted{
		{"some high school", 0.179}, {"high school", 0.196}, {"some college", 0.226},
		{"associate's degree", 0.222}, {"bachelor's degree", 0.118}, {"master's degree", 0.059},
	}
)

// ReadTable generates the table. The same config always yields the same rows.
func (g *Generator) ReadTable(ctx context.Context) (*dataset.RawTable, error) {
	if g.config.Count < 1 {
		return nil, fmt.Errorf("synthetic row count must be positive, got %d", g.config.Count)
	}

	rng := rand.New(rand.NewSource(g.config.Seed))
	students := make([]Student, 0, g.config.Count)
	for i := 0; i < g.config.Count; i++ {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		students = append(students, g.student(rng))
	}

	table := Table(students...)
	table.Source = fmt.Sprintf("synthetic://%d?seed=%d", g.config.Count, g.config.Seed)
	return table, nil
}

func (g *Generator) student(rng *rand.Rand) Student {
	s := Student{
		Gender:    "female",
		GroupCode: pick(rng, groupWeights),
		Education: pick(rng, educationWeights),
		Lunch:     "standard",
		Prep:      "none",
	}
	if rng.Float64() < 0.482 {
		s.Gender = "male"
	}
	if rng.Float64() < 0.355 {
		s.Lunch = "free/reduced"
	}
	if rng.Float64() < 0.358 {
		s.Prep = "completed"
	}

	// Shared ability keeps the three subjects strongly correlated
	ability := 66 + rng.NormFloat64()*13
	if s.Lunch == "standard" {
		ability += 5
	}
	if s.Prep == "completed" {
		ability += 4
	}
	ability += float64(s.GroupCode[len(s.GroupCode)-1]-'A') * 1.5

	literacy := 0.0
	if s.Gender == "female" {
		literacy = 4
	} else {
		ability += 2
		literacy = -3
	}

	s.Math = clampScore(ability + rng.NormFloat64()*5)
	s.Reading = clampScore(ability + literacy + rng.NormFloat64()*5)
	s.Writing = clampScore(ability + literacy*1.2 + rng.NormFloat64()*5)
	return s
}

func pick(rng *rand.Rand, options []weighted) string {
	r := rng.Float64()
	acc := 0.0
	for _, opt := range options {
		acc += opt.weight
		if r < acc {
			return opt.value
		}
	}
	return options[len(options)-1].value
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, math.Round(v)))
}

// Student is one raw row expressed with typed fields, used to build fixtures
type Student struct {
	Gender    string
	GroupCode string
	Education string
	Lunch     string
	Prep      string
	Math      float64
	Reading   float64
	Writing   float64
}

// Table renders students as a raw table with the published headers
func Table(students ...Student) *dataset.RawTable {
	table := &dataset.RawTable{
		Source:  "fixture",
		Headers: append([]string(nil), RawHeaders...),
		Rows:    make([][]string, 0, len(students)),
	}
	for _, s := range students {
		table.Rows = append(table.Rows, []string{
			s.Gender,
			s.GroupCode,
			s.Education,
			s.Lunch,
			s.Prep,
			strconv.FormatFloat(s.Math, 'f', -1, 64),
			strconv.FormatFloat(s.Reading, 'f', -1, 64),
			strconv.FormatFloat(s.Writing, 'f', -1, 64),
		})
	}
	return table
}
