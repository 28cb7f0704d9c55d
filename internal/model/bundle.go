package model

// TenantBundle is everything the public page and the admin panel need for
// one tenant, loaded in a single call.
type TenantBundle struct {
	Professional *Professional  `json:"professional"`
	Services     []*Service     `json:"services"`
	Works        []*Work        `json:"works"`
	Appointments []*Appointment `json:"appointments"`
	Testimonials []*Testimonial `json:"testimonials"`
}
