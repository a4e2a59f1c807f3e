// AngelaMos | 2026
// amenity.go

package domain

type Amenity struct {
	Base
	Name string `db:"name"`
}

type AmenityPatch struct {
	Name *string
}

func NewAmenity(name string) (*Amenity, error) {
	if err := ValidateName("name", name); err != nil {
		return nil, err
	}

	return &Amenity{
		Base: newBase(),
		Name: name,
	}, nil
}

func (a *Amenity) Apply(p AmenityPatch) error {
	if p.Name != nil {
		if err := ValidateName("name", *p.Name); err != nil {
			return err
		}
		a.Name = *p.Name
	}
	a.Touch()
	return nil
}

func (a *Amenity) Attribute(name string) (any, bool) {
	switch name {
	case "id":
		return a.ID, true
	case "name":
		return a.Name, true
	}
	return nil, false
}

func (a *Amenity) Clone() *Amenity {
	c := *a
	return &c
}
