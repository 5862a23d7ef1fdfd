package models

// CountryInput is the raw data for a new country, before validation.
type CountryInput struct {
	Name    string
	ISOCode string
}

// CountryUpdate is the raw data for a partial update; nil fields are left as is.
type CountryUpdate struct {
	Name     *string
	ISOCode  *string
	IsActive *bool
}

// ToPatch validates the supplied ISO code and returns the domain patch.
// Name validation happens when the patch is applied.
func (u CountryUpdate) ToPatch() (CountryPatch, error) {
	p := CountryPatch{Name: u.Name, IsActive: u.IsActive}
	if u.ISOCode != nil {
		code, err := ParseISOCode(*u.ISOCode)
		if err != nil {
			return CountryPatch{}, err
		}
		p.ISOCode = &code
	}
	return p, nil
}
