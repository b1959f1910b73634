package domain

import "time"

// BirthDateLayout is the wire format for birth dates.
const BirthDateLayout = "2006-01-02"

// PersonalData is the intake form record that accompanies a session.
// It is supplied by the upstream intake flow and consumed only by the
// report generator.
type PersonalData struct {
	Name       string `json:"name"`
	Gender     string `json:"gender,omitempty"`
	Profession string `json:"profession,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	BirthDate  string `json:"birth_date,omitempty"`
}

// Age computes the age in full years at the reference time. It returns
// false when the birth date is missing or malformed; callers degrade to
// a placeholder instead of failing.
func (p PersonalData) Age(at time.Time) (int, bool) {
	if p.BirthDate == "" {
		return 0, false
	}
	birth, err := time.Parse(BirthDateLayout, p.BirthDate)
	if err != nil {
		return 0, false
	}
	age := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		age--
	}
	return age, true
}
