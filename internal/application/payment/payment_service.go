package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sefcontact/engine/internal/application/access"
	"github.com/sefcontact/engine/internal/domain/consumer"
	"github.com/sefcontact/engine/internal/domain/payment"
	"github.com/sefcontact/engine/internal/domain/shared"
)

// PaymentService handles the payment ledger. Completion flows touch two
// stores, the payment and the consumer balance, and are ordered so a failed
// balance deduction leaves the payment record untouched: the consumer side
// validates and saves first, the payment transition commits after.
type PaymentService struct {
	paymentRepo    payment.PaymentRepository
	consumerRepo   consumer.ConsumerRepository
	guard          *access.Guard
	eventPublisher shared.EventPublisher
	now            func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo payment.PaymentRepository,
	consumerRepo consumer.ConsumerRepository,
	guard *access.Guard,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		consumerRepo: consumerRepo,
		guard:        guard,
		now:          time.Now,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetClock overrides the service clock, for tests
func (s *PaymentService) SetClock(now func() time.Time) {
	s.now = now
}

// Schedule creates a pending payment due on a future date. Scheduling does
// not touch the consumer balance; only processing does.
func (s *PaymentService) Schedule(ctx context.Context, actor access.Actor, req SchedulePaymentRequest) (*PaymentResponse, error) {
	if err := s.guard.Authorize(ctx, actor, req.ConsumerID); err != nil {
		return nil, err
	}

	p, err := payment.NewScheduledPayment(req.ConsumerID, actor.UserID, req.Amount, req.DueDate, payment.Method(req.Method))
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, p)

	response := ToPaymentResponse(p, s.now())
	return &response, nil
}

// RecordDirect records an immediately-completed payment and decrements the
// consumer balance in the same operation. An amount exceeding the balance
// fails with no record created.
func (s *PaymentService) RecordDirect(ctx context.Context, actor access.Actor, req RecordDirectPaymentRequest) (*PaymentResponse, error) {
	if err := s.guard.Authorize(ctx, actor, req.ConsumerID); err != nil {
		return nil, err
	}

	c, err := s.consumerRepo.FindByID(ctx, req.ConsumerID)
	if err != nil {
		return nil, err
	}

	p, err := payment.NewDirectPayment(req.ConsumerID, actor.UserID, req.Amount, payment.Method(req.Method), req.Reference, req.Notes)
	if err != nil {
		return nil, err
	}

	at := s.now()
	if err := c.ApplyPayment(req.Amount, at); err != nil {
		return nil, err
	}
	if err := s.consumerRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, p)
	s.publishConsumerEvents(ctx, c)

	response := ToPaymentResponse(p, at)
	return &response, nil
}

// Process completes a scheduled payment and decrements the consumer balance.
// If the deduction fails the stored payment keeps its prior status, so a
// partially-applied completion can never be observed.
func (s *PaymentService) Process(ctx context.Context, actor access.Actor, paymentID uuid.UUID, req ProcessPaymentRequest) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.Authorize(ctx, actor, p.ConsumerID); err != nil {
		return nil, err
	}

	// Validate the transition before touching the consumer store
	if err := p.Complete(payment.Method(req.Method), req.Reference); err != nil {
		return nil, err
	}

	c, err := s.consumerRepo.FindByID(ctx, p.ConsumerID)
	if err != nil {
		return nil, err
	}

	at := s.now()
	if err := c.ApplyPayment(p.Amount, at); err != nil {
		return nil, err
	}
	if err := s.consumerRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, p)
	s.publishConsumerEvents(ctx, c)

	response := ToPaymentResponse(p, at)
	return &response, nil
}

// Cancel abandons a scheduled payment without touching the consumer balance
func (s *PaymentService) Cancel(ctx context.Context, actor access.Actor, paymentID uuid.UUID) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.Authorize(ctx, actor, p.ConsumerID); err != nil {
		return nil, err
	}

	if err := p.Cancel(); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, p)

	response := ToPaymentResponse(p, s.now())
	return &response, nil
}

// Edit applies free-form corrections to a payment record. This bypasses the
// transition guards but never touches consumer balances.
func (s *PaymentService) Edit(ctx context.Context, actor access.Actor, paymentID uuid.UUID, req EditPaymentRequest) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.Authorize(ctx, actor, p.ConsumerID); err != nil {
		return nil, err
	}

	fields := payment.EditFields{
		Amount:    req.Amount,
		DueDate:   req.DueDate,
		Reference: req.Reference,
		Notes:     req.Notes,
	}
	if req.Method != nil {
		m := payment.Method(*req.Method)
		fields.Method = &m
	}
	if req.Status != nil {
		st := payment.Status(*req.Status)
		fields.Status = &st
	}

	if err := p.Edit(fields); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(p, s.now())
	return &response, nil
}

// GetByID retrieves a payment, enforcing the actor's consumer visibility
func (s *PaymentService) GetByID(ctx context.Context, actor access.Actor, paymentID uuid.UUID) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.Authorize(ctx, actor, p.ConsumerID); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(p, s.now())
	return &response, nil
}

// List retrieves the payments visible to the actor, narrowed by status,
// consumer, and due-date window. Status filtering matches against the
// time-derived effective status, so "overdue" finds stored-pending rows
// past their due date.
func (s *PaymentService) List(ctx context.Context, actor access.Actor, filter PaymentListFilter) (*shared.Paginated[PaymentResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	payments, err := s.visiblePayments(ctx, actor)
	if err != nil {
		return nil, err
	}

	now := s.now()
	matched := make([]payment.Payment, 0, len(payments))
	for _, p := range payments {
		if filter.ConsumerID != nil && p.ConsumerID != *filter.ConsumerID {
			continue
		}
		if filter.Status != "" && string(p.EffectiveStatus(now)) != filter.Status {
			continue
		}
		if filter.DueFrom != nil && p.DueDate.Before(*filter.DueFrom) {
			continue
		}
		if filter.DueTo != nil && p.DueDate.After(*filter.DueTo) {
			continue
		}
		matched = append(matched, p)
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

	result := shared.NewPaginated(ToPaymentResponses(matched[start:end], now), total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListByConsumer retrieves a consumer's payment history, guard-checked
func (s *PaymentService) ListByConsumer(ctx context.Context, actor access.Actor, consumerID uuid.UUID) ([]PaymentResponse, error) {
	if err := s.guard.Authorize(ctx, actor, consumerID); err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.FindByConsumer(ctx, consumerID)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(payments, s.now()), nil
}

// ListDueBetween retrieves payments due inside a window, for callback and
// follow-up planning
func (s *PaymentService) ListDueBetween(ctx context.Context, actor access.Actor, from, to time.Time) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByDueDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	if !actor.SeesEverything() {
		scoped := payments[:0]
		for _, p := range payments {
			if p.AgentID == actor.UserID {
				scoped = append(scoped, p)
			}
		}
		payments = scoped
	}

	return ToPaymentResponses(payments, s.now()), nil
}

func (s *PaymentService) visiblePayments(ctx context.Context, actor access.Actor) ([]payment.Payment, error) {
	if actor.SeesEverything() {
		return s.paymentRepo.FindAll(ctx, shared.Filter{})
	}
	return s.paymentRepo.FindByAgent(ctx, actor.UserID)
}

func (s *PaymentService) publishEvents(ctx context.Context, p *payment.Payment) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range p.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	p.ClearDomainEvents()
}

func (s *PaymentService) publishConsumerEvents(ctx context.Context, c *consumer.Consumer) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range c.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	c.ClearDomainEvents()
}
