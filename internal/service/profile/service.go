package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/charllys777/appsaloes/internal/model"
	"github.com/charllys777/appsaloes/internal/repository"
	apperrors "github.com/charllys777/appsaloes/pkg/errors"
)

type Service struct {
	professionalRepo repository.ProfessionalRepository
}

func NewService(professionalRepo repository.ProfessionalRepository) *Service {
	return &Service{professionalRepo: professionalRepo}
}

// Upsert fully replaces the owner's profile. The slug defaults to a
// slugified display name when the request omits it; slug collisions
// surface as repository.ErrSlugTaken for the handler to map to a
// conflict.
func (s *Service) Upsert(ctx context.Context, ownerID uuid.UUID, req *model.UpsertProfileRequest) (*model.Professional, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = Slugify(req.Name)
	} else {
		slug = Slugify(slug)
	}

	theme := req.Theme
	if theme == "" {
		theme = model.ThemeRose
	}

	prof := &model.Professional{
		ID:              ownerID,
		Name:            req.Name,
		Bio:             req.Bio,
		Specialization:  req.Specialization,
		Address:         req.Address,
		MapsLink:        req.MapsLink,
		WhatsApp:        req.WhatsApp,
		ProfilePhotoURL: req.ProfilePhotoURL,
		BioPhotoURL:     req.BioPhotoURL,
		LogoURL:         req.LogoURL,
		Theme:           theme,
		Status:          model.ProfileStatusActive,
		Slug:            slug,
		WorkHours:       req.WorkHours.Normalize(),
	}

	if err := s.professionalRepo.Upsert(ctx, prof); err != nil {
		if errors.Is(err, repository.ErrSlugTaken) {
			return nil, apperrors.Conflict(fmt.Sprintf("slug %q already in use", slug), err)
		}
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return prof, nil
}

// asciiFold maps the accented letters that show up in Brazilian names
// onto their plain forms.
var asciiFold = map[rune]rune{
	'á': 'a', 'à': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
	'ó': 'o', 'ò': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
	'ç': 'c', 'ñ': 'n',
}

// Slugify turns a display name into a URL-safe slug: lowercase ASCII
// letters and digits separated by single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if folded, ok := asciiFold[r]; ok {
			r = folded
		}
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
