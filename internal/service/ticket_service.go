package service

import (
	"time"

	"waterpark-pos/internal/model"
	"waterpark-pos/internal/repository"
	"waterpark-pos/internal/ws"
	"waterpark-pos/pkg/validator"

	"github.com/google/uuid"
)

// CreateTicketRequest is the entry-counter checkout payload
type CreateTicketRequest struct {
	CustomerName  string  `json:"customer_name" validate:"required"`
	CustomerPhone string  `json:"customer_phone" validate:"required"`
	MenCount      int     `json:"men_count" validate:"gte=0"`
	WomenCount    int     `json:"women_count" validate:"gte=0"`
	ChildCount    int     `json:"child_count" validate:"gte=0"`
	Subtotal      float64 `json:"subtotal" validate:"gte=0"`
	TotalAmount   float64 `json:"total_amount" validate:"gte=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cash upi"`
	IsVIP         bool    `json:"is_vip"`
}

// TicketListFilter mirrors RentalListFilter minus linking concerns
type TicketListFilter struct {
	StartDate string
	EndDate   string
	Search    string
	CashierID string
}

type TicketService interface {
	Create(req *CreateTicketRequest, actor model.AuthContext) (*model.TicketTransaction, error)
	List(f TicketListFilter, actor model.AuthContext) ([]model.TicketTransaction, error)
}

type ticketService struct {
	ticketRepo repository.TicketRepository
	userRepo   repository.UserRepository
	hub        *ws.Hub
}

func NewTicketService(ticketRepo repository.TicketRepository, userRepo repository.UserRepository, hub *ws.Hub) TicketService {
	return &ticketService{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		hub:        hub,
	}
}

func (s *ticketService) Create(req *CreateTicketRequest, actor model.AuthContext) (*model.TicketTransaction, error) {
	if !actor.HasRole() {
		return nil, ErrForbidden
	}
	if err := validator.FirstError(req); err != nil {
		return nil, invalid("%s", err)
	}

	total := req.MenCount + req.WomenCount + req.ChildCount
	if total == 0 && !req.IsVIP {
		return nil, invalid("at least one ticket is required")
	}

	now := model.NowLocal()

	t := &model.TicketTransaction{
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		MenCount:       req.MenCount,
		WomenCount:     req.WomenCount,
		ChildCount:     req.ChildCount,
		Subtotal:       req.Subtotal,
		TotalAmount:    req.TotalAmount,
		PaymentMethod:  req.PaymentMethod,
		IsVIP:          req.IsVIP,
		CashierID:      actor.UserID,
		CashierName:    actor.Name,
		CreatedAtLocal: now,
	}
	t.CreatedBy = actor.UserID.String()
	t.UpdatedBy = actor.UserID.String()

	// The repo continues the day's tag sequence inside the insert
	// transaction so two counters cannot hand out overlapping ranges.
	if err := s.ticketRepo.CreateWithTags(t, now[:10], total); err != nil {
		return nil, err
	}

	if s.hub != nil {
		go s.hub.Publish(ws.EventTicketCreated, t)
	}

	return t, nil
}

func (s *ticketService) List(f TicketListFilter, actor model.AuthContext) ([]model.TicketTransaction, error) {
	if !actor.HasRole() {
		return nil, ErrForbidden
	}

	filter := repository.TicketFilter{
		Start:  f.StartDate,
		Search: f.Search,
	}
	if f.EndDate != "" {
		end, err := time.Parse("2006-01-02", f.EndDate)
		if err != nil {
			return nil, invalid("invalid end date, expected YYYY-MM-DD")
		}
		filter.EndBefore = end.AddDate(0, 0, 1).Format("2006-01-02")
	}

	if actor.IsAdmin() {
		if f.CashierID != "" {
			id, err := uuid.Parse(f.CashierID)
			if err != nil {
				return nil, invalid("invalid cashier id")
			}
			filter.CashierID = &id
		}
	} else {
		own := actor.UserID
		filter.CashierID = &own
	}

	rows, err := s.ticketRepo.Find(filter)
	if err != nil {
		return nil, err
	}

	// Re-resolve cashier names against the live user table
	idSet := map[uuid.UUID]bool{}
	for i := range rows {
		idSet[rows[i].CashierID] = true
	}
	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	if names, err := s.userRepo.NamesByIDs(ids); err == nil {
		for i := range rows {
			if name, ok := names[rows[i].CashierID]; ok {
				rows[i].CashierName = name
			}
		}
	}

	return rows, nil
}
