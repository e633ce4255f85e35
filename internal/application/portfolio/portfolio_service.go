package portfolio

import (
	"context"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/domain/directory"
	"github.com/sefcontact/engine/internal/domain/portfolio"
	"github.com/sefcontact/engine/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PortfolioService handles portfolio registry operations
type PortfolioService struct {
	portfolioRepo  portfolio.PortfolioRepository
	userRepo       directory.UserRepository
	eventPublisher shared.EventPublisher
}

// NewPortfolioService creates a new PortfolioService
func NewPortfolioService(portfolioRepo portfolio.PortfolioRepository, userRepo directory.UserRepository) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		userRepo:      userRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PortfolioService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Upload registers a new portfolio of delinquent accounts. When the request
// names an agent the portfolio is assigned on creation through the same
// two-sided logic as Assign.
func (s *PortfolioService) Upload(ctx context.Context, req UploadPortfolioRequest) (*PortfolioResponse, error) {
	p, err := portfolio.NewPortfolio(req.Name, req.AccountCount, req.TotalValue)
	if err != nil {
		return nil, err
	}

	if req.AgentID != nil {
		if err := s.attachAgent(ctx, p, *req.AgentID); err != nil {
			return nil, err
		}
	}

	if err := s.portfolioRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, p)

	response := ToPortfolioResponse(p)
	return &response, nil
}

// GetByID retrieves a portfolio by ID
func (s *PortfolioService) GetByID(ctx context.Context, portfolioID uuid.UUID) (*PortfolioResponse, error) {
	p, err := s.portfolioRepo.FindByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	response := ToPortfolioResponse(p)
	return &response, nil
}

// List retrieves portfolios with filtering and pagination
func (s *PortfolioService) List(ctx context.Context, filter PortfolioListFilter) (*shared.Paginated[PortfolioResponse], error) {
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
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	portfolios, err := s.portfolioRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.portfolioRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToPortfolioResponses(portfolios), total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListByAgent retrieves the portfolios assigned to an agent
func (s *PortfolioService) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]PortfolioResponse, error) {
	portfolios, err := s.portfolioRepo.FindByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	return ToPortfolioResponses(portfolios), nil
}

// ListUnassigned retrieves portfolios without an assigned agent
func (s *PortfolioService) ListUnassigned(ctx context.Context) ([]PortfolioResponse, error) {
	portfolios, err := s.portfolioRepo.FindUnassigned(ctx)
	if err != nil {
		return nil, err
	}
	return ToPortfolioResponses(portfolios), nil
}

// Assign points a portfolio at an agent and updates both sides of the
// relationship: the portfolio's owning reference and the agent's assignment
// set. If the portfolio was previously assigned, the old agent loses the
// portfolio in the same operation so the mirror never drifts.
//
// An unknown portfolio or agent id surfaces as not found; a resolved user
// who is inactive or does not hold the agent role is an invalid assignment.
func (s *PortfolioService) Assign(ctx context.Context, portfolioID uuid.UUID, req AssignPortfolioRequest) (*PortfolioResponse, error) {
	p, err := s.portfolioRepo.FindByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	if err := s.attachAgent(ctx, p, req.AgentID); err != nil {
		return nil, err
	}

	if err := s.portfolioRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, p)

	response := ToPortfolioResponse(p)
	return &response, nil
}

// RecordRecovery increments a portfolio's recovered amount
func (s *PortfolioService) RecordRecovery(ctx context.Context, portfolioID uuid.UUID, req RecordRecoveryRequest) (*PortfolioResponse, error) {
	p, err := s.portfolioRepo.FindByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	if err := p.RecordRecovery(req.Amount); err != nil {
		return nil, err
	}

	if err := s.portfolioRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, p)

	response := ToPortfolioResponse(p)
	return &response, nil
}

// ChangeStatus moves a portfolio to a new lifecycle status
func (s *PortfolioService) ChangeStatus(ctx context.Context, portfolioID uuid.UUID, req ChangePortfolioStatusRequest) (*PortfolioResponse, error) {
	p, err := s.portfolioRepo.FindByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	if err := p.ChangeStatus(portfolio.Status(req.Status)); err != nil {
		return nil, err
	}

	if err := s.portfolioRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPortfolioResponse(p)
	return &response, nil
}

// Insights summarizes the whole portfolio book
func (s *PortfolioService) Insights(ctx context.Context) (*PortfolioInsights, error) {
	portfolios, err := s.portfolioRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	insights := PortfolioInsights{
		TotalPortfolios: len(portfolios),
		TotalValue:      decimal.Zero,
		TotalRecovered:  decimal.Zero,
		OverallRate:     decimal.Zero,
	}
	var top *portfolio.Portfolio
	for i := range portfolios {
		p := &portfolios[i]
		if p.Status == portfolio.StatusActive {
			insights.ActivePortfolios++
		}
		if !p.IsAssigned() {
			insights.Unassigned++
		}
		insights.TotalValue = insights.TotalValue.Add(p.TotalValue)
		insights.TotalRecovered = insights.TotalRecovered.Add(p.RecoveredAmount)
		if top == nil || p.RecoveryRate().GreaterThan(top.RecoveryRate()) {
			top = p
		}
	}
	if top != nil {
		resp := ToPortfolioResponse(top)
		insights.TopPerformer = &resp
	}
	if !insights.TotalValue.IsZero() {
		insights.OverallRate = insights.TotalRecovered.Div(insights.TotalValue).Mul(decimal.NewFromInt(100))
	}

	return &insights, nil
}

// attachAgent resolves the agent, validates the target, and moves the
// portfolio between assignment sets. A lookup miss propagates as not found;
// an inactive or non-agent user is an invalid assignment.
func (s *PortfolioService) attachAgent(ctx context.Context, p *portfolio.Portfolio, agentID uuid.UUID) error {
	agent, err := s.userRepo.FindByID(ctx, agentID)
	if err != nil {
		return err
	}
	if !agent.IsActiveAgent() {
		return shared.NewDomainError(shared.CodeInvalidAssignment, "Portfolios can only be assigned to active agents")
	}

	// Detach the previous holder before attaching the new one
	if p.AssignedAgentID != nil && *p.AssignedAgentID != agent.ID {
		previous, err := s.userRepo.FindByID(ctx, *p.AssignedAgentID)
		if err == nil {
			previous.DetachPortfolio(p.ID)
			if err := s.userRepo.Save(ctx, previous); err != nil {
				return err
			}
		} else if !shared.IsCode(err, shared.CodeNotFound) {
			return err
		}
	}

	p.AssignAgent(agent.ID)
	agent.AttachPortfolio(p.ID)

	return s.userRepo.Save(ctx, agent)
}

func (s *PortfolioService) publishEvents(ctx context.Context, p *portfolio.Portfolio) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range p.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	p.ClearDomainEvents()
}
