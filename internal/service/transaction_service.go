package service

import (
	"errors"
	"time"

	"waterpark-pos/internal/model"
	"waterpark-pos/internal/repository"
	"waterpark-pos/internal/ws"
	"waterpark-pos/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrForbidden            = errors.New("forbidden: no counter access")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrParentNotFound       = errors.New("parent transaction not found")
	ErrParentNotActive      = errors.New("parent transaction is not active")
	ErrParentAlreadyLinked  = errors.New("parent transaction already has a linked transaction")
	ErrAlreadyReturned      = errors.New("advance has already been returned for this transaction")
	ErrChildReturn          = errors.New("linked transactions are settled through their parent")
	ErrDeductionExceedsHeld = errors.New("deduction exceeds remaining advance")
)

// CreateRentalRequest is the clothes-counter checkout payload
type CreateRentalRequest struct {
	CustomerName        string            `json:"customer_name" validate:"required"`
	CustomerPhone       string            `json:"customer_phone" validate:"required"`
	Items               model.RentalItems `json:"items"`
	Subtotal            float64           `json:"subtotal" validate:"gte=0"`
	Advance             float64           `json:"advance" validate:"gte=0"`
	TotalDue            float64           `json:"total_due" validate:"gte=0"`
	IsVIP               bool              `json:"is_vip"`
	ParentTransactionID *uuid.UUID        `json:"parent_transaction_id"`
}

// ReturnAdvanceRequest settles a held deposit with itemized deductions
type ReturnAdvanceRequest struct {
	TransactionID       uuid.UUID             `json:"transaction_id" validate:"uuid_required"`
	ReturnDetails       model.ReturnBreakdown `json:"return_details"`
	LinkedReturnDetails model.ReturnBreakdown `json:"linked_return_details"`
}

// RentalListFilter is the listing query. Dates are inclusive calendar days
// in YYYY-MM-DD form, compared as strings against the stored local-time
// column.
type RentalListFilter struct {
	StartDate     string
	EndDate       string
	Status        string
	Search        string
	CashierID     string
	IncludeLinked bool
}

type TransactionService interface {
	Create(req *CreateRentalRequest, actor model.AuthContext) (*model.RentalTransaction, error)
	List(f RentalListFilter, actor model.AuthContext) ([]model.RentalTransaction, error)
	Get(id uuid.UUID, actor model.AuthContext) (*model.RentalTransaction, error)
	ReturnAdvance(req *ReturnAdvanceRequest, actor model.AuthContext) (*model.RentalTransaction, error)
}

type transactionService struct {
	rentalRepo repository.RentalRepository
	userRepo   repository.UserRepository
	hub        *ws.Hub
}

func NewTransactionService(rentalRepo repository.RentalRepository, userRepo repository.UserRepository, hub *ws.Hub) TransactionService {
	return &transactionService{
		rentalRepo: rentalRepo,
		userRepo:   userRepo,
		hub:        hub,
	}
}

func (s *transactionService) Create(req *CreateRentalRequest, actor model.AuthContext) (*model.RentalTransaction, error) {
	if !actor.HasRole() {
		return nil, ErrForbidden
	}
	if err := validator.FirstError(req); err != nil {
		return nil, invalid("%s", err)
	}
	if req.Items.Total() == 0 && !req.IsVIP {
		return nil, invalid("at least one item is required")
	}

	t := &model.RentalTransaction{
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		RentalItems:    req.Items,
		Subtotal:       req.Subtotal,
		Advance:        req.Advance,
		TotalDue:       req.TotalDue,
		IsVIP:          req.IsVIP,
		Status:         model.RentalActive,
		CashierID:      actor.UserID,
		CashierName:    actor.Name,
		CreatedAtLocal: model.NowLocal(),
	}
	t.CreatedBy = actor.UserID.String()
	t.UpdatedBy = actor.UserID.String()

	if req.ParentTransactionID != nil {
		parent, err := s.rentalRepo.FindByID(*req.ParentTransactionID)
		if err != nil || parent == nil {
			return nil, ErrParentNotFound
		}
		if parent.Status != model.RentalActive {
			return nil, ErrParentNotActive
		}
		existing, err := s.rentalRepo.FindChild(parent.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrParentAlreadyLinked
		}
		if req.Subtotal > parent.Advance {
			return nil, invalid("credit amount exceeds available advance by %.2f", req.Subtotal-parent.Advance)
		}

		// Credit sale: cost is consumed from the parent's held advance.
		// The parent's stored advance is only decremented at return time.
		t.ParentTransactionID = &parent.ID
		t.Advance = 0
		t.TotalDue = req.Subtotal
	}

	if err := s.rentalRepo.Create(t); err != nil {
		return nil, err
	}

	if s.hub != nil {
		go s.hub.Publish(ws.EventRentalCreated, t)
	}

	return t, nil
}

func (s *transactionService) Get(id uuid.UUID, actor model.AuthContext) (*model.RentalTransaction, error) {
	if !actor.HasRole() {
		return nil, ErrForbidden
	}
	t, err := s.rentalRepo.FindByID(id)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	if !actor.IsAdmin() && t.CashierID != actor.UserID {
		return nil, ErrForbidden
	}
	if child, err := s.rentalRepo.FindChild(t.ID); err == nil && child != nil {
		t.LinkedTransaction = child
	}
	return t, nil
}

func (s *transactionService) List(f RentalListFilter, actor model.AuthContext) ([]model.RentalTransaction, error) {
	if !actor.HasRole() {
		return nil, ErrForbidden
	}

	filter := repository.RentalFilter{
		Start:  f.StartDate,
		Status: f.Status,
		Search: f.Search,
	}
	if f.EndDate != "" {
		end, err := time.Parse("2006-01-02", f.EndDate)
		if err != nil {
			return nil, invalid("invalid end date, expected YYYY-MM-DD")
		}
		filter.EndBefore = end.AddDate(0, 0, 1).Format("2006-01-02")
	}

	// Cashiers only ever see their own records; the cashierId filter is an
	// admin capability.
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

	rows, err := s.rentalRepo.Find(filter)
	if err != nil {
		return nil, err
	}

	// Split parents from credit children. Children stay out of the top
	// level; a child matched by search surfaces its parent instead when
	// includeLinked is requested.
	var parents []model.RentalTransaction
	var matchedChildren []model.RentalTransaction
	parentIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		if row.IsChild() {
			if f.IncludeLinked && f.Search != "" {
				matchedChildren = append(matchedChildren, row)
			}
			continue
		}
		parents = append(parents, row)
		parentIDs = append(parentIDs, row.ID)
	}

	children, err := s.rentalRepo.FindChildren(parentIDs)
	if err != nil {
		return nil, err
	}
	childByParent := map[uuid.UUID]*model.RentalTransaction{}
	for i := range children {
		childByParent[*children[i].ParentTransactionID] = &children[i]
	}

	listed := map[uuid.UUID]bool{}
	for i := range parents {
		parents[i].LinkedTransaction = childByParent[parents[i].ID]
		listed[parents[i].ID] = true
	}

	for i := range matchedChildren {
		child := matchedChildren[i]
		if listed[*child.ParentTransactionID] {
			continue
		}
		parent, err := s.rentalRepo.FindByID(*child.ParentTransactionID)
		if err != nil || parent == nil {
			continue
		}
		// A credit slip can hang off another cashier's parent; surfacing
		// that parent would leak a foreign record into a cashier's list.
		if !actor.IsAdmin() && parent.CashierID != actor.UserID {
			continue
		}
		parent.LinkedTransaction = &child
		parents = append(parents, *parent)
		listed[parent.ID] = true
	}

	s.refreshNames(parents)
	return parents, nil
}

// refreshNames re-resolves cashier and return-handler display names against
// the live user table so renamed users show correctly retroactively.
func (s *transactionService) refreshNames(transactions []model.RentalTransaction) {
	idSet := map[uuid.UUID]bool{}
	collect := func(t *model.RentalTransaction) {
		idSet[t.CashierID] = true
		if t.ReturnedByID != nil {
			idSet[*t.ReturnedByID] = true
		}
	}
	for i := range transactions {
		collect(&transactions[i])
		if transactions[i].LinkedTransaction != nil {
			collect(transactions[i].LinkedTransaction)
		}
	}

	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	names, err := s.userRepo.NamesByIDs(ids)
	if err != nil {
		return // keep the stored snapshots
	}

	apply := func(t *model.RentalTransaction) {
		if name, ok := names[t.CashierID]; ok {
			t.CashierName = name
		}
		if t.ReturnedByID != nil {
			if name, ok := names[*t.ReturnedByID]; ok {
				t.ReturnedByName = name
			}
		}
	}
	for i := range transactions {
		apply(&transactions[i])
		if transactions[i].LinkedTransaction != nil {
			apply(transactions[i].LinkedTransaction)
		}
	}
}

// validateBreakdown checks the quantity conservation rule for every item on
// the original slip and, when requireDeduction is set, that damage or loss
// carries a positive deduction.
func validateBreakdown(quantities map[string]int, breakdown model.ReturnBreakdown, requireDeduction bool) error {
	if len(breakdown) == 0 {
		// A zero-item slip (VIP entry holding only an advance) has nothing
		// to account for.
		if len(quantities) == 0 {
			return nil
		}
		return invalid("return details are required")
	}
	for key, qty := range quantities {
		detail, ok := breakdown[key]
		if !ok {
			return invalid("missing return counts for %s: expected %d, got 0", key, qty)
		}
		got := detail.ReturnedGood + detail.ReturnedDamaged + detail.Lost
		if got != qty {
			return invalid("return counts for %s do not add up: expected %d, got %d", key, qty, got)
		}
		if requireDeduction && (detail.ReturnedDamaged > 0 || detail.Lost > 0) && detail.Deduction <= 0 {
			return invalid("%s has damaged or lost units but no deduction", key)
		}
	}
	return nil
}

func (s *transactionService) ReturnAdvance(req *ReturnAdvanceRequest, actor model.AuthContext) (*model.RentalTransaction, error) {
	if !actor.HasRole() {
		return nil, ErrForbidden
	}

	parent, err := s.rentalRepo.FindByID(req.TransactionID)
	if err != nil || parent == nil {
		return nil, ErrTransactionNotFound
	}
	if parent.IsChild() {
		return nil, ErrChildReturn
	}
	if parent.Status == model.RentalAdvanceReturned {
		return nil, ErrAlreadyReturned
	}

	if err := validateBreakdown(parent.Quantities(), req.ReturnDetails, !parent.IsVIP); err != nil {
		return nil, err
	}

	child, err := s.rentalRepo.FindChild(parent.ID)
	if err != nil {
		return nil, err
	}

	var childSubtotal, childDeduction float64
	if child != nil {
		if len(req.LinkedReturnDetails) == 0 && len(child.Quantities()) > 0 {
			return nil, invalid("return details for the linked transaction are required")
		}
		if err := validateBreakdown(child.Quantities(), req.LinkedReturnDetails, false); err != nil {
			return nil, err
		}
		childSubtotal = child.Subtotal
		childDeduction = req.LinkedReturnDetails.TotalDeduction()
	}

	parentDeduction := req.ReturnDetails.TotalDeduction()
	amountReturned := parent.Advance - childSubtotal - parentDeduction - childDeduction
	if amountReturned < 0 {
		return nil, ErrDeductionExceedsHeld
	}

	now := model.NowLocal()
	returnedBy := actor.UserID

	parent.Status = model.RentalAdvanceReturned
	parent.ReturnedAtLocal = now
	parent.ReturnedByID = &returnedBy
	parent.ReturnedByName = actor.Name
	parent.TotalDeduction = parentDeduction
	parent.AmountReturned = amountReturned
	parent.ReturnDetails = req.ReturnDetails.Encode()
	parent.UpdatedBy = returnedBy.String()

	if child != nil {
		child.Status = model.RentalAdvanceReturned
		child.ReturnedAtLocal = now
		child.ReturnedByID = &returnedBy
		child.ReturnedByName = actor.Name
		child.TotalDeduction = childDeduction
		child.AmountReturned = 0 // a credit child never held an advance
		child.ReturnDetails = req.LinkedReturnDetails.Encode()
		child.UpdatedBy = returnedBy.String()
	}

	// Parent and child settle together or not at all
	if err := s.rentalRepo.MarkReturned(parent, child); err != nil {
		return nil, err
	}

	parent.LinkedTransaction = child

	if s.hub != nil {
		go s.hub.Publish(ws.EventAdvanceReturned, parent)
	}

	return parent, nil
}
