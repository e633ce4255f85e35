package consumer

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/application/access"
	"github.com/sefcontact/engine/internal/domain/consumer"
	"github.com/sefcontact/engine/internal/domain/directory"
	"github.com/sefcontact/engine/internal/domain/portfolio"
	"github.com/sefcontact/engine/internal/domain/shared"
)

// ConsumerService handles consumer ledger operations. Profile-opening
// operations run through the access guard so an agent can only touch
// consumers assigned to them.
type ConsumerService struct {
	consumerRepo   consumer.ConsumerRepository
	portfolioRepo  portfolio.PortfolioRepository
	userRepo       directory.UserRepository
	guard          *access.Guard
	eventPublisher shared.EventPublisher
}

// NewConsumerService creates a new ConsumerService
func NewConsumerService(
	consumerRepo consumer.ConsumerRepository,
	portfolioRepo portfolio.PortfolioRepository,
	userRepo directory.UserRepository,
	guard *access.Guard,
) *ConsumerService {
	return &ConsumerService{
		consumerRepo:  consumerRepo,
		portfolioRepo: portfolioRepo,
		userRepo:      userRepo,
		guard:         guard,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ConsumerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a consumer record in an existing portfolio, assigned to
// an active agent
func (s *ConsumerService) Create(ctx context.Context, req CreateConsumerRequest) (*ConsumerResponse, error) {
	if _, err := s.portfolioRepo.FindByID(ctx, req.PortfolioID); err != nil {
		if shared.IsCode(err, shared.CodeNotFound) {
			return nil, shared.NewDomainError(shared.CodeValidation, "Owning portfolio does not exist")
		}
		return nil, err
	}

	agent, err := s.userRepo.FindByID(ctx, req.AgentID)
	if err != nil {
		return nil, err
	}
	if !agent.IsActiveAgent() {
		return nil, shared.NewDomainError(shared.CodeInvalidAssignment, "Consumers can only be assigned to active agents")
	}

	c, err := consumer.NewConsumer(req.PortfolioID, req.AgentID, consumer.ContactInfo{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		SSN:           req.SSN,
		AccountNumber: req.AccountNumber,
	}, req.Balance)
	if err != nil {
		return nil, err
	}

	if err := s.consumerRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)

	response := ToConsumerResponse(c)
	return &response, nil
}

// GetByID opens a consumer profile, enforcing the actor's visibility scope
func (s *ConsumerService) GetByID(ctx context.Context, actor access.Actor, consumerID uuid.UUID) (*ConsumerResponse, error) {
	if err := s.guard.Authorize(ctx, actor, consumerID); err != nil {
		return nil, err
	}

	c, err := s.consumerRepo.FindByID(ctx, consumerID)
	if err != nil {
		return nil, err
	}

	response := ToConsumerResponse(c)
	return &response, nil
}

// List retrieves the consumers visible to the actor, optionally narrowed
// by status, portfolio, and search text
func (s *ConsumerService) List(ctx context.Context, actor access.Actor, filter ConsumerListFilter) (*shared.Paginated[ConsumerResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	visible, err := s.guard.VisibleConsumers(ctx, actor)
	if err != nil {
		return nil, err
	}

	matched := make([]consumer.Consumer, 0, len(visible))
	for _, c := range visible {
		if filter.Status != "" && string(c.Status) != filter.Status {
			continue
		}
		if filter.PortfolioID != nil && c.PortfolioID != *filter.PortfolioID {
			continue
		}
		if filter.Search != "" && !matchesSearch(c, filter.Search) {
			continue
		}
		matched = append(matched, c)
	}

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	result := shared.NewPaginated(ToConsumerResponses(matched[start:end]), total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListByPortfolio retrieves a portfolio's consumers, scoped to the actor
func (s *ConsumerService) ListByPortfolio(ctx context.Context, actor access.Actor, portfolioID uuid.UUID) ([]ConsumerResponse, error) {
	consumers, err := s.consumerRepo.FindByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	if !actor.SeesEverything() {
		scoped := consumers[:0]
		for _, c := range consumers {
			if c.AssignedAgentID == actor.UserID {
				scoped = append(scoped, c)
			}
		}
		consumers = scoped
	}

	return ToConsumerResponses(consumers), nil
}

func matchesSearch(c consumer.Consumer, search string) bool {
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(c.Name), s) ||
		strings.Contains(strings.ToLower(c.Email), s) ||
		strings.Contains(c.Phone, s)
}

// AppendNote appends an entry to the consumer's note log
func (s *ConsumerService) AppendNote(ctx context.Context, actor access.Actor, consumerID uuid.UUID, req AppendNoteRequest) (*ConsumerResponse, error) {
	if err := s.guard.Authorize(ctx, actor, consumerID); err != nil {
		return nil, err
	}

	c, err := s.consumerRepo.FindByID(ctx, consumerID)
	if err != nil {
		return nil, err
	}

	if err := c.AppendNote(consumer.NoteCategory(req.Category), req.Text, actor.UserID); err != nil {
		return nil, err
	}

	if err := s.consumerRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToConsumerResponse(c)
	return &response, nil
}

// ChangeStatus moves a consumer to a new collection status. The mandatory
// reason lands in the note log as an audit entry.
func (s *ConsumerService) ChangeStatus(ctx context.Context, actor access.Actor, consumerID uuid.UUID, req ChangeConsumerStatusRequest) (*ConsumerResponse, error) {
	if err := s.guard.Authorize(ctx, actor, consumerID); err != nil {
		return nil, err
	}

	c, err := s.consumerRepo.FindByID(ctx, consumerID)
	if err != nil {
		return nil, err
	}

	if err := c.ChangeStatus(consumer.Status(req.Status), req.Reason, actor.UserID); err != nil {
		return nil, err
	}

	if err := s.consumerRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)

	response := ToConsumerResponse(c)
	return &response, nil
}

func (s *ConsumerService) publishEvents(ctx context.Context, c *consumer.Consumer) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range c.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	c.ClearDomainEvents()
}
