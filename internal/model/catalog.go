package model

// Catalog entities are the collections a tenant edits freely in the admin
// panel. They never carry their owner inline; every repository call is scoped
// by the owning professional's ID.

type Service struct {
	ID       EntityID `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Duration string   `json:"duration"` // free text, e.g. "60 min"
	PostCare string   `json:"post_care,omitempty"`
}

type Work struct {
	ID             EntityID `json:"id"`
	Title          string   `json:"title"`
	ImageBeforeURL string   `json:"image_before_url"`
	ImageAfterURL  string   `json:"image_after_url"`
}

// Testimonial ratings are curated: the editor only offers 3 to 5 stars.
const (
	MinTestimonialRating = 3
	MaxTestimonialRating = 5
)

type Testimonial struct {
	ID         EntityID `json:"id"`
	ClientName string   `json:"client_name"`
	Text       string   `json:"text"`
	Rating     int      `json:"rating"`
}

// ValidRating reports whether the rating is within the curated range.
func (t *Testimonial) ValidRating() bool {
	return t.Rating >= MinTestimonialRating && t.Rating <= MaxTestimonialRating
}

// CollectionKind selects which catalog collection a reconciliation targets.
type CollectionKind string

const (
	CollectionServices     CollectionKind = "services"
	CollectionWorks        CollectionKind = "works"
	CollectionTestimonials CollectionKind = "testimonials"
)

func (k CollectionKind) Valid() bool {
	switch k {
	case CollectionServices, CollectionWorks, CollectionTestimonials:
		return true
	}
	return false
}
