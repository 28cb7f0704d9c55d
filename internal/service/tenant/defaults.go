package tenant

import (
	"github.com/google/uuid"

	"github.com/charllys777/appsaloes/internal/model"
)

// DefaultHours is the schedule a brand-new profile starts with:
// weekdays nine to six with a lunch break, Saturday mornings, Sundays
// closed.
func DefaultHours() model.WorkHours {
	weekday := []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00", "17:00", "18:00"}
	return model.WorkHours{
		"Seg": weekday,
		"Ter": weekday,
		"Qua": weekday,
		"Qui": weekday,
		"Sex": weekday,
		"Sáb": {"09:00", "10:00", "11:00", "12:00"},
		"Dom": {},
	}.Normalize()
}

// defaultProfessional is the placeholder profile shown to an account
// that signed up but has not saved anything yet.
func defaultProfessional(id uuid.UUID) *model.Professional {
	return &model.Professional{
		ID:              id,
		Name:            "Novo Estúdio",
		Bio:             "Bem-vindo ao seu novo espaço. Configure seu perfil no painel.",
		Specialization:  "Estética & Beleza",
		ProfilePhotoURL: "https://images.unsplash.com/photo-1570172619644-dfd03ed5d881?q=80&w=2070&auto=format&fit=crop",
		BioPhotoURL:     "https://images.unsplash.com/photo-1559839734-2b71ea197ec2?q=80&w=2070&auto=format&fit=crop",
		Theme:           model.ThemeRose,
		Status:          model.ProfileStatusActive,
		WorkHours:       DefaultHours(),
	}
}
