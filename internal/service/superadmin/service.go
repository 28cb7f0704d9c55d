package superadmin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/charllys777/appsaloes/internal/config"
	"github.com/charllys777/appsaloes/internal/email"
	"github.com/charllys777/appsaloes/internal/model"
	"github.com/charllys777/appsaloes/internal/repository"
	authsvc "github.com/charllys777/appsaloes/internal/service/auth"
	"github.com/charllys777/appsaloes/pkg/logger"
)

const defaultCheckTimeout = 3 * time.Second

// Service answers the platform-level questions: who may operate the
// owner console, which profiles exist, and which of them are live.
type Service struct {
	professionalRepo repository.ProfessionalRepository
	outboxRepo       repository.OutboxRepository
	authService      *authsvc.Service
	emailService     *email.Service
	logger           *logger.Logger

	allowlist    map[string]bool
	checkTimeout time.Duration
}

func NewService(
	professionalRepo repository.ProfessionalRepository,
	outboxRepo repository.OutboxRepository,
	authService *authsvc.Service,
	emailService *email.Service,
	cfg config.SuperadminConfig,
	logger *logger.Logger,
) *Service {
	allowlist := make(map[string]bool, len(cfg.Allowlist))
	for _, e := range cfg.Allowlist {
		allowlist[strings.ToLower(e)] = true
	}
	timeout := cfg.CheckTimeout
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}
	return &Service{
		professionalRepo: professionalRepo,
		outboxRepo:       outboxRepo,
		authService:      authService,
		emailService:     emailService,
		logger:           logger,
		allowlist:        allowlist,
		checkTimeout:     timeout,
	}
}

// IsSuperAdmin decides whether the user may enter the owner console.
// The whole check is bounded by the configured timeout and fails closed:
// a slow or failing database means no privilege, never an error. The
// result is advisory UI state, so a false negative only hides a menu.
func (s *Service) IsSuperAdmin(ctx context.Context, userID uuid.UUID, userEmail string) bool {
	ctx, cancel := context.WithTimeout(ctx, s.checkTimeout)
	defer cancel()

	result := make(chan bool, 1)
	go func() {
		result <- s.check(ctx, userID, userEmail)
	}()

	select {
	case ok := <-result:
		return ok
	case <-ctx.Done():
		s.logger.Warn("super admin check timed out", "user_id", userID.String())
		return false
	}
}

func (s *Service) check(ctx context.Context, userID uuid.UUID, userEmail string) bool {
	if s.allowlist[strings.ToLower(userEmail)] {
		// The allowlist wins regardless of database state. Repair the
		// persisted flag so dashboard-driven checks agree with it.
		if err := s.professionalRepo.SetSuperAdmin(ctx, userID, "Super Admin", true); err != nil {
			s.logger.Warn("failed to self-heal super admin flag", "user_id", userID.String(), "error", err.Error())
		}
		return true
	}

	prof, err := s.professionalRepo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("super admin lookup failed", "user_id", userID.String(), "error", err.Error())
		}
		return false
	}
	return prof.SuperAdmin
}

// ListProfiles returns every tenant profile, newest first.
func (s *Service) ListProfiles(ctx context.Context) ([]*model.Professional, error) {
	profiles, err := s.professionalRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// ListAdmins returns the profiles carrying the super admin flag.
func (s *Service) ListAdmins(ctx context.Context) ([]*model.Professional, error) {
	admins, err := s.professionalRepo.ListSuperAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

// ToggleStatus flips a profile between active and inactive and returns
// the new status. Disabling queues an outbound event so the tenant can
// be told their page went dark.
func (s *Service) ToggleStatus(ctx context.Context, profileID uuid.UUID) (model.ProfileStatus, error) {
	prof, err := s.professionalRepo.Get(ctx, profileID)
	if err != nil {
		return "", fmt.Errorf("failed to load profile: %w", err)
	}

	next := model.ProfileStatusInactive
	if prof.Status == model.ProfileStatusInactive {
		next = model.ProfileStatusActive
	}
	if err := s.professionalRepo.UpdateStatus(ctx, profileID, next); err != nil {
		return "", fmt.Errorf("failed to update profile status: %w", err)
	}

	if next == model.ProfileStatusInactive {
		s.queueDisabledEvent(ctx, prof)
	}
	return next, nil
}

// ProvisionAdmin creates an account, flags its profile as super admin,
// and sends the welcome mail. Mail failure does not undo the grant.
func (s *Service) ProvisionAdmin(ctx context.Context, emailAddr, password, name string) (*model.Account, error) {
	account, _, err := s.authService.SignUp(ctx, emailAddr, password)
	if err != nil {
		return nil, err
	}

	if err := s.professionalRepo.SetSuperAdmin(ctx, account.ID, name, true); err != nil {
		return nil, fmt.Errorf("failed to flag new admin: %w", err)
	}

	if s.emailService != nil {
		if err := s.emailService.SendAdminWelcome(account.Email, name); err != nil {
			s.logger.Warn("failed to send admin welcome mail", "email", account.Email, "error", err.Error())
		}
	}
	return account, nil
}

func (s *Service) queueDisabledEvent(ctx context.Context, prof *model.Professional) {
	payload, err := json.Marshal(map[string]string{
		"profile_id": prof.ID.String(),
		"name":       prof.Name,
	})
	if err != nil {
		return
	}
	event := &model.OutboxEvent{
		EventType: model.EventProfileDisabled,
		Payload:   payload,
	}
	if err := s.outboxRepo.Create(ctx, event); err != nil {
		s.logger.Warn("failed to queue profile disabled event", "profile_id", prof.ID.String(), "error", err.Error())
	}
}
