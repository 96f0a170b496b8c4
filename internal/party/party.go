// Package party holds the shapes shared by the two invoice parties: the
// sender (company profile) and the recipient (client).
package party

import "strings"

// Address is the postal address embedded in both party records. Street2 is
// the only optional field.
type Address struct {
	Street1 string `json:"street1"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Zip     string `json:"zip"`
}

// Lines flattens the address into display lines, skipping blanks.
func (a Address) Lines() []string {
	lines := make([]string, 0, 3)
	if a.Street1 != "" {
		lines = append(lines, a.Street1)
	}
	if a.Street2 != "" {
		lines = append(lines, a.Street2)
	}
	locality := make([]string, 0, 3)
	for _, part := range []string{a.City, a.State, a.Country} {
		if part != "" {
			locality = append(locality, part)
		}
	}
	last := strings.Join(locality, ", ")
	if a.Zip != "" {
		if last != "" {
			last += " " + a.Zip
		} else {
			last = a.Zip
		}
	}
	if last != "" {
		lines = append(lines, last)
	}
	return lines
}

// Complete reports whether every required address field is set.
func (a Address) Complete() bool {
	return a.Street1 != "" && a.City != "" && a.State != "" && a.Country != "" && a.Zip != ""
}
