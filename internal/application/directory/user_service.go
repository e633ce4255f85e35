package directory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/directory"
	"github.com/sefcontact/engine/internal/domain/shared"
)

// UserService handles user directory operations
type UserService struct {
	userRepo       directory.UserRepository
	eventPublisher shared.EventPublisher
}

// NewUserService creates a new UserService
func NewUserService(userRepo directory.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *UserService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a new user after checking email uniqueness
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "User with this email already exists")
	}

	user, err := directory.NewUser(req.Name, req.Email, directory.Role(req.Role))
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, user)

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves users with filtering and pagination
func (s *UserService) List(ctx context.Context, filter UserListFilter) (*shared.Paginated[UserResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Role != "" {
		domainFilter.Filters["role"] = filter.Role
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	users, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.userRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToUserResponses(users), total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListActiveAgents retrieves all active agents, for assignment pickers
func (s *UserService) ListActiveAgents(ctx context.Context) ([]UserResponse, error) {
	agents, err := s.userRepo.FindActiveAgents(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserResponses(agents), nil
}

// SetActive toggles a user's active flag. Deactivation keeps the user's
// portfolio assignments; reassignment is a separate, deliberate step.
func (s *UserService) SetActive(ctx context.Context, userID uuid.UUID, req SetUserActiveRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.SetActive(req.Active)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, user)

	response := ToUserResponse(user)
	return &response, nil
}

// RecordLogin stamps the user's last login time
func (s *UserService) RecordLogin(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.RecordLogin(time.Now())

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, user)

	response := ToUserResponse(user)
	return &response, nil
}

// SetPerformanceScore updates an agent's performance score
func (s *UserService) SetPerformanceScore(ctx context.Context, userID uuid.UUID, req SetPerformanceScoreRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.SetPerformanceScore(req.Score); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

func (s *UserService) publishEvents(ctx context.Context, user *directory.User) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range user.GetDomainEvents() {
		// Event handling is best-effort; a failed publish must not fail the command
		_ = s.eventPublisher.Publish(ctx, event)
	}
	user.ClearDomainEvents()
}
