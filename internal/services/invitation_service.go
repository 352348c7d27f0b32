package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"clientdesk/internal/caching"
	"clientdesk/internal/identity"
	"clientdesk/internal/metrics"
	"clientdesk/internal/models"
	"clientdesk/internal/repositories"
	"clientdesk/internal/saga"
)

// InviteClientInput is the validated onboarding request. ContactName and
// Email are required and email well-formedness is the boundary's job;
// the service re-checks only what it depends on.
type InviteClientInput struct {
	ContactName     string
	Email           string
	CompanyName     *string
	Phone           *string
	ProjectName     *string
	ProjectType     *string
	PersonalMessage *string
}

// InvitationResult is the successful outcome. NotificationSent is false
// when email delivery failed; the tenant records persist regardless.
type InvitationResult struct {
	Client           *models.Client  `json:"client"`
	Project          *models.Project `json:"project,omitempty"`
	NotificationSent bool            `json:"notification_sent"`
}

type InvitationService interface {
	InviteClient(ctx context.Context, input InviteClientInput) (*InvitationResult, error)
}

type invitationService struct {
	coordinator *saga.Coordinator
	identities  identity.Provisioner
	clientRepo  repositories.ClientRepository
	userRepo    repositories.UserRepository
	projectRepo repositories.ProjectRepository
	packageRepo repositories.PackageRepository
	cache       caching.CacheService
	notifier    NotificationSender
	portalURL   string
	log         zerolog.Logger
}

func NewInvitationService(
	coordinator *saga.Coordinator,
	identities identity.Provisioner,
	clientRepo repositories.ClientRepository,
	userRepo repositories.UserRepository,
	projectRepo repositories.ProjectRepository,
	packageRepo repositories.PackageRepository,
	cache caching.CacheService,
	notifier NotificationSender,
	portalURL string,
	log zerolog.Logger,
) InvitationService {
	return &invitationService{
		coordinator: coordinator,
		identities:  identities,
		clientRepo:  clientRepo,
		userRepo:    userRepo,
		projectRepo: projectRepo,
		packageRepo: packageRepo,
		cache:       cache,
		notifier:    notifier,
		portalURL:   portalURL,
		log:         log,
	}
}

const invitationSagaName = "client-invitation"

// InviteClient provisions an auth identity, a client record, a portal
// user, and optionally a project, in that order, compensating all
// completed steps on any failure. The invitation email runs after the
// compensation chain: its failure is reported, never rolled back.
func (s *invitationService) InviteClient(ctx context.Context, input InviteClientInput) (*InvitationResult, error) {
	if input.ContactName == "" {
		return nil, newValidationError("contact_name", "is required")
	}
	if input.Email == "" {
		return nil, newValidationError("email", "is required")
	}

	// Duplicate-email precondition: rejected up front, not compensated.
	// Two racing invitations can both pass this check; the unique
	// constraint on clients.email decides the loser, whose saga then
	// compensates like any step failure.
	if _, err := s.clientRepo.GetByEmail(ctx, input.Email); err == nil {
		metrics.SagaRunsTotal.WithLabelValues(invitationSagaName, "rejected").Inc()
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return nil, fmt.Errorf("generate credentials: %w", err)
	}

	var (
		identityID uuid.UUID
		client     *models.Client
		project    *models.Project
	)

	steps := []saga.Step{
		{
			Name: "create-identity",
			Do: func(ctx context.Context) error {
				id, err := s.identities.Create(ctx, input.Email, tempPassword, map[string]string{
					"role": string(models.RoleClient),
				})
				if err != nil {
					return err
				}
				identityID = id
				return nil
			},
			Undo: func(ctx context.Context) error {
				return s.identities.Delete(ctx, identityID)
			},
		},
		{
			Name: "create-client",
			Do: func(ctx context.Context) error {
				client = &models.Client{
					ID:             uuid.New(),
					PrimaryContact: input.ContactName,
					Email:          input.Email,
					CompanyName:    input.CompanyName,
					Phone:          input.Phone,
					Status:         models.ClientStatusLead,
					Notes:          invitationNotes(input.ProjectName),
				}
				return s.clientRepo.Create(ctx, client)
			},
			Undo: func(ctx context.Context) error {
				return s.clientRepo.Delete(ctx, client.ID)
			},
		},
		{
			Name: "create-user",
			Do: func(ctx context.Context) error {
				return s.userRepo.Create(ctx, &models.User{
					ID:       identityID,
					Email:    input.Email,
					Role:     models.RoleClient,
					ClientID: &client.ID,
				})
			},
			Undo: func(ctx context.Context) error {
				return s.userRepo.Delete(ctx, identityID)
			},
		},
	}

	if input.ProjectName != nil && *input.ProjectName != "" {
		steps = append(steps, saga.Step{
			Name: "create-project",
			Do: func(ctx context.Context) error {
				project = &models.Project{
					ID:          uuid.New(),
					ClientID:    client.ID,
					Name:        *input.ProjectName,
					ProjectType: input.ProjectType,
					Status:      models.ProjectStatusPlanning,
					TotalValue:  s.lookupPackagePrice(ctx, input.ProjectType),
				}
				return s.projectRepo.Create(ctx, project)
			},
			Undo: func(ctx context.Context) error {
				return s.projectRepo.Delete(ctx, project.ID)
			},
		})
	}

	if err := s.coordinator.Run(ctx, invitationSagaName, steps); err != nil {
		metrics.SagaRunsTotal.WithLabelValues(invitationSagaName, "compensated").Inc()
		recordCompensationFailures(invitationSagaName, err)
		return nil, err
	}

	metrics.SagaRunsTotal.WithLabelValues(invitationSagaName, "success").Inc()

	// Notification is deliberately outside the compensation chain: the
	// tenant must persist even when delivery fails.
	notified := true
	email := models.InvitationEmail{
		Recipient:       input.Email,
		ContactName:     input.ContactName,
		CompanyName:     derefOrEmpty(input.CompanyName),
		TempPassword:    tempPassword,
		PersonalMessage: derefOrEmpty(input.PersonalMessage),
		PortalURL:       s.portalURL,
	}
	if err := s.notifier.SendInvitation(ctx, email); err != nil {
		notified = false
		s.log.Warn().Err(err).Str("email", input.Email).Msg("invitation email delivery failed")
	}

	return &InvitationResult{
		Client:           client,
		Project:          project,
		NotificationSent: notified,
	}, nil
}

// lookupPackagePrice resolves a project type to its package price,
// consulting the cache first. Absence of a matching package is not an
// error: the value just defaults to zero.
func (s *invitationService) lookupPackagePrice(ctx context.Context, projectType *string) float64 {
	if projectType == nil || *projectType == "" {
		return 0
	}

	if pkg, err := s.cache.GetServicePackage(ctx, *projectType); err == nil {
		return pkg.Price
	}

	pkg, err := s.packageRepo.GetByName(ctx, *projectType)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.log.Warn().Err(err).Str("project_type", *projectType).Msg("package price lookup failed")
		}
		return 0
	}

	if err := s.cache.SetServicePackage(ctx, pkg, 10*time.Minute); err != nil {
		s.log.Debug().Err(err).Msg("package cache write failed")
	}
	return pkg.Price
}

func invitationNotes(projectName *string) *string {
	if projectName == nil || *projectName == "" {
		return nil
	}
	notes := fmt.Sprintf("Invited with project request: %s", *projectName)
	return &notes
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// recordCompensationFailures feeds failed undo attempts into the metrics
// so operators can alert on partial rollbacks.
func recordCompensationFailures(sagaName string, err error) {
	var cf *saga.CompensatedFailure
	if !errors.As(err, &cf) {
		return
	}
	for _, undo := range cf.Undo {
		if !undo.Succeeded() {
			metrics.CompensationFailuresTotal.WithLabelValues(sagaName, undo.Step).Inc()
		}
	}
}
