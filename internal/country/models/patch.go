package models

// CountryPatch carries the fields of a partial update; nil means "leave as is".
type CountryPatch struct {
	Name     *string
	ISOCode  *ISOCode
	IsActive *bool
}

// IsEmpty reports whether no field was supplied.
func (p CountryPatch) IsEmpty() bool {
	return p.Name == nil && p.ISOCode == nil && p.IsActive == nil
}

// Apply mutates c with the supplied fields. c is untouched when the name is invalid.
func (p CountryPatch) Apply(c *Country) error {
	if p.Name != nil {
		if err := c.Rename(*p.Name); err != nil {
			return err
		}
	}
	if p.ISOCode != nil {
		c.ISOCode = *p.ISOCode
	}
	if p.IsActive != nil {
		if *p.IsActive {
			c.Activate()
		} else {
			c.Deactivate()
		}
	}
	return nil
}
