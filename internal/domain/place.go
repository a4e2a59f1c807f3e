// AngelaMos | 2026
// place.go

package domain

import (
	"slices"
)

type Place struct {
	Base
	Title       string   `db:"title"`
	Description string   `db:"description"`
	Price       float64  `db:"price"`
	Latitude    float64  `db:"latitude"`
	Longitude   float64  `db:"longitude"`
	OwnerID     string   `db:"owner_id"`
	AmenityIDs  []string `db:"-"`
	ReviewIDs   []string `db:"-"`
}

type PlaceFields struct {
	Title       string
	Description string
	Price       Number
	Latitude    Number
	Longitude   Number
	OwnerID     string
}

// PlacePatch carries scalar changes only. Amenity replacement needs the
// ids resolved first and goes through SetAmenities.
type PlacePatch struct {
	Title       *string
	Description *string
	Price       *Number
	Latitude    *Number
	Longitude   *Number
}

func NewPlace(f PlaceFields) (*Place, error) {
	if err := ValidateTitle(f.Title); err != nil {
		return nil, err
	}
	price, err := ValidatePrice(f.Price)
	if err != nil {
		return nil, err
	}
	lat, err := ValidateLatitude(f.Latitude)
	if err != nil {
		return nil, err
	}
	lon, err := ValidateLongitude(f.Longitude)
	if err != nil {
		return nil, err
	}
	if err := requireID("owner_id", f.OwnerID); err != nil {
		return nil, err
	}

	return &Place{
		Base:        newBase(),
		Title:       f.Title,
		Description: f.Description,
		Price:       price,
		Latitude:    lat,
		Longitude:   lon,
		OwnerID:     f.OwnerID,
		AmenityIDs:  []string{},
		ReviewIDs:   []string{},
	}, nil
}

func (p *Place) Apply(patch PlacePatch) error {
	if patch.Title != nil {
		if err := ValidateTitle(*patch.Title); err != nil {
			return err
		}
	}
	var price, lat, lon float64
	var err error
	if patch.Price != nil {
		if price, err = ValidatePrice(*patch.Price); err != nil {
			return err
		}
	}
	if patch.Latitude != nil {
		if lat, err = ValidateLatitude(*patch.Latitude); err != nil {
			return err
		}
	}
	if patch.Longitude != nil {
		if lon, err = ValidateLongitude(*patch.Longitude); err != nil {
			return err
		}
	}

	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = price
	}
	if patch.Latitude != nil {
		p.Latitude = lat
	}
	if patch.Longitude != nil {
		p.Longitude = lon
	}
	p.Touch()

	return nil
}

// SetAmenities replaces the amenity set. Callers must have resolved every
// id beforehand.
func (p *Place) SetAmenities(ids []string) {
	set := make([]string, 0, len(ids))
	for _, id := range ids {
		set = appendUnique(set, id)
	}
	p.AmenityIDs = set
}

func (p *Place) HasAmenity(id string) bool {
	return slices.Contains(p.AmenityIDs, id)
}

func (p *Place) AddReview(reviewID string) {
	p.ReviewIDs = appendUnique(p.ReviewIDs, reviewID)
}

func (p *Place) RemoveReview(reviewID string) bool {
	var removed bool
	p.ReviewIDs, removed = removeID(p.ReviewIDs, reviewID)
	return removed
}

func (p *Place) IsOwnedBy(userID string) bool {
	return p.OwnerID == userID
}

func (p *Place) Attribute(name string) (any, bool) {
	switch name {
	case "id":
		return p.ID, true
	case "title":
		return p.Title, true
	case "owner_id":
		return p.OwnerID, true
	}
	return nil, false
}

func (p *Place) Clone() *Place {
	c := *p
	c.AmenityIDs = slices.Clone(p.AmenityIDs)
	c.ReviewIDs = slices.Clone(p.ReviewIDs)
	return &c
}
