package domain

import "strings"

type Rubric struct {
	ID          int         `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description *string     `json:"description" yaml:"description,omitempty"`
	Criteria    []Criterion `json:"criteria" yaml:"criteria"`
}

type Criterion struct {
	ID          int     `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description *string `json:"description" yaml:"description,omitempty"`
	Levels      []Level `json:"levels" yaml:"levels"`
}

type Level struct {
	ID     int     `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Points float64 `json:"points" yaml:"points"`
}

func (r Rubric) GetID() int { return r.ID }

func (r Rubric) Clone() Rubric {
	out := r
	out.Description = cloneStrPtr(r.Description)
	if r.Criteria != nil {
		out.Criteria = make([]Criterion, len(r.Criteria))
		for i, c := range r.Criteria {
			cc := c
			cc.Description = cloneStrPtr(c.Description)
			if c.Levels != nil {
				cc.Levels = make([]Level, len(c.Levels))
				copy(cc.Levels, c.Levels)
			}
			out.Criteria[i] = cc
		}
	}
	return out
}

// MaxPoints sums the highest level of every criterion.
func (r Rubric) MaxPoints() float64 {
	var total float64
	for _, c := range r.Criteria {
		var best float64
		for _, l := range c.Levels {
			if l.Points > best {
				best = l.Points
			}
		}
		total += best
	}
	return total
}

func (r Rubric) SortName() string {
	return r.Name
}

func (r Rubric) DisplayName() string {
	return CoalesceStr(strings.TrimSpace(r.Name), "unnamed rubric")
}
