// AngelaMos | 2026
// review.go

package domain

type Review struct {
	Base
	Text    string `db:"text"`
	Rating  int    `db:"rating"`
	PlaceID string `db:"place_id"`
	UserID  string `db:"user_id"`
}

type ReviewFields struct {
	Text    string
	Rating  Number
	PlaceID string
	UserID  string
}

type ReviewPatch struct {
	Text   *string
	Rating *Number
}

func NewReview(f ReviewFields) (*Review, error) {
	if err := ValidateText(f.Text); err != nil {
		return nil, err
	}
	rating, err := ValidateRating(f.Rating)
	if err != nil {
		return nil, err
	}
	if err := requireID("place_id", f.PlaceID); err != nil {
		return nil, err
	}
	if err := requireID("user_id", f.UserID); err != nil {
		return nil, err
	}

	return &Review{
		Base:    newBase(),
		Text:    f.Text,
		Rating:  rating,
		PlaceID: f.PlaceID,
		UserID:  f.UserID,
	}, nil
}

func (r *Review) Apply(p ReviewPatch) error {
	if p.Text != nil {
		if err := ValidateText(*p.Text); err != nil {
			return err
		}
	}
	var rating int
	if p.Rating != nil {
		var err error
		if rating, err = ValidateRating(*p.Rating); err != nil {
			return err
		}
	}

	if p.Text != nil {
		r.Text = *p.Text
	}
	if p.Rating != nil {
		r.Rating = rating
	}
	r.Touch()

	return nil
}

func (r *Review) IsAuthoredBy(userID string) bool {
	return r.UserID == userID
}

func (r *Review) Attribute(name string) (any, bool) {
	switch name {
	case "id":
		return r.ID, true
	case "place_id":
		return r.PlaceID, true
	case "user_id":
		return r.UserID, true
	case "rating":
		return r.Rating, true
	}
	return nil, false
}

func (r *Review) Clone() *Review {
	c := *r
	return &c
}
