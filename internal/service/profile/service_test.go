package profile

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charllys777/appsaloes/internal/model"
	"github.com/charllys777/appsaloes/internal/repository"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Ana Clara", "ana-clara"},
		{"Estúdio São João", "estudio-sao-joao"},
		{"  Maria!!  ", "maria"},
		{"João & Cia.", "joao-cia"},
		{"café---com---leite", "cafe-com-leite"},
		{"UPPER case 123", "upper-case-123"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.name), "input %q", tt.name)
	}
}

type upsertRecorder struct {
	repository.ProfessionalRepository

	got *model.Professional
	err error
}

func (r *upsertRecorder) Upsert(ctx context.Context, p *model.Professional) error {
	r.got = p
	return r.err
}

func TestUpsertDefaults(t *testing.T) {
	repo := &upsertRecorder{}
	svc := NewService(repo)
	ownerID := uuid.New()

	prof, err := svc.Upsert(context.Background(), ownerID, &model.UpsertProfileRequest{
		Name:      "Estúdio São João",
		WorkHours: model.WorkHours{"Seg": {"09:00"}},
	})
	require.NoError(t, err)
	require.NotNil(t, repo.got)

	assert.Equal(t, ownerID, prof.ID)
	assert.Equal(t, "estudio-sao-joao", prof.Slug, "slug defaults to the slugified name")
	assert.Equal(t, model.ThemeRose, prof.Theme)
	assert.Equal(t, model.ProfileStatusActive, prof.Status)
	assert.Len(t, prof.WorkHours, len(model.Weekdays), "work hours are normalized")
}

func TestUpsertSlugifiesExplicitSlug(t *testing.T) {
	repo := &upsertRecorder{}
	svc := NewService(repo)

	prof, err := svc.Upsert(context.Background(), uuid.New(), &model.UpsertProfileRequest{
		Name: "Ana",
		Slug: "Meu Estúdio",
	})
	require.NoError(t, err)
	assert.Equal(t, "meu-estudio", prof.Slug)
}

func TestUpsertSlugConflict(t *testing.T) {
	repo := &upsertRecorder{err: repository.ErrSlugTaken}
	svc := NewService(repo)

	_, err := svc.Upsert(context.Background(), uuid.New(), &model.UpsertProfileRequest{Name: "Ana"})
	assert.ErrorIs(t, err, repository.ErrSlugTaken)
}
