package domain

import "strings"

// FormInput is raw, untrimmed user input for a new project.
type FormInput struct {
	Name        string
	Description string
	Location    string
	CarbonSaved string
}

// Validate trims the text fields and parses carbonSaved. Every field is
// required; negative carbon values are allowed.
func (in FormInput) Validate() (NewProject, error) {
	np := NewProject{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
	}

	var bad []string
	if np.Name == "" {
		bad = append(bad, "name")
	}
	if np.Description == "" {
		bad = append(bad, "description")
	}
	if np.Location == "" {
		bad = append(bad, "location")
	}
	carbon, ok := ParseCarbon(in.CarbonSaved)
	if !ok {
		bad = append(bad, "carbonSaved")
	}
	np.CarbonSaved = carbon

	if len(bad) > 0 {
		return NewProject{}, &ValidationError{Fields: bad}
	}
	return np, nil
}
