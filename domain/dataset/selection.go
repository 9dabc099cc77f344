package dataset

import "fmt"

// Selection is the three-way filter chosen by a user
type Selection struct {
	Prep   string `json:"prep" yaml:"prep"`
	Gender string `json:"gender" yaml:"gender"`
	Group  Group  `json:"group" yaml:"group"`
}

// Field names one component of a Selection
type Field int

const (
	FieldPrep Field = iota
	FieldGender
	FieldGroup
)

func (f Field) String() string {
	switch f {
	case FieldPrep:
		return "prep"
	case FieldGender:
		return "gender"
	case FieldGroup:
		return "group"
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// AllFields gates on the full selection
var AllFields = []Field{FieldPrep, FieldGender, FieldGroup}

// DefaultSelection is the initial dashboard state
func DefaultSelection() Selection {
	return Selection{
		Prep:   "none",
		Gender: "female",
		Group:  groupMappings[0].Label,
	}
}

func (s Selection) String() string {
	return fmt.Sprintf("prep=%q gender=%q group=%q", s.Prep, s.Gender, s.Group)
}
