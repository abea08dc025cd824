package service_test

import (
	"errors"
	"testing"

	"waterpark-pos/internal/model"
	"waterpark-pos/internal/repository"
	"waterpark-pos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRentalRepo is a mock implementation of the RentalRepository interface
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(t *model.RentalTransaction) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockRentalRepo) FindByID(id uuid.UUID) (*model.RentalTransaction, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RentalTransaction), args.Error(1)
}

func (m *MockRentalRepo) FindChild(parentID uuid.UUID) (*model.RentalTransaction, error) {
	args := m.Called(parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RentalTransaction), args.Error(1)
}

func (m *MockRentalRepo) FindChildren(parentIDs []uuid.UUID) ([]model.RentalTransaction, error) {
	args := m.Called(parentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RentalTransaction), args.Error(1)
}

func (m *MockRentalRepo) Find(f repository.RentalFilter) ([]model.RentalTransaction, error) {
	args := m.Called(f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RentalTransaction), args.Error(1)
}

func (m *MockRentalRepo) MarkReturned(parent, child *model.RentalTransaction) error {
	args := m.Called(parent, child)
	return args.Error(0)
}

func (m *MockRentalRepo) TodayStats(datePrefix string) (int64, float64, error) {
	args := m.Called(datePrefix)
	return args.Get(0).(int64), args.Get(1).(float64), args.Error(2)
}

func (m *MockRentalRepo) ActiveAdvanceTotal() (float64, error) {
	args := m.Called()
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRentalRepo) RevenueByDay(start, endBefore string) ([]repository.DayRevenue, error) {
	args := m.Called(start, endBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.DayRevenue), args.Error(1)
}

func (m *MockRentalRepo) DeleteAll() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepo is a mock implementation of the UserRepository interface
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) FindByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) FindAll() ([]model.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepo) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) Update(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	args := m.Called(userID, hashedPassword)
	return args.Error(0)
}

func (m *MockUserRepo) ClearRole(userID uuid.UUID, updatedBy string) error {
	args := m.Called(userID, updatedBy)
	return args.Error(0)
}

func (m *MockUserRepo) NamesByIDs(ids []uuid.UUID) (map[uuid.UUID]string, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]string), args.Error(1)
}

func strPtr(s string) *string { return &s }

func cashierCtx() model.AuthContext {
	return model.AuthContext{
		UserID: uuid.New(),
		Email:  "cashier@example.com",
		Name:   "Counter Cashier",
		Role:   strPtr(model.RoleCashier),
	}
}

func adminCtx() model.AuthContext {
	return model.AuthContext{
		UserID: uuid.New(),
		Email:  "admin@example.com",
		Name:   "Administrator",
		Role:   strPtr(model.RoleAdmin),
	}
}

func newService(rentalRepo *MockRentalRepo, userRepo *MockUserRepo) service.TransactionService {
	return service.NewTransactionService(rentalRepo, userRepo, nil)
}

func activeParent(advance float64) *model.RentalTransaction {
	parent := &model.RentalTransaction{
		CustomerName:   "Asha",
		CustomerPhone:  "9876543210",
		RentalItems:    model.RentalItems{Tube: 2},
		Subtotal:       100,
		Advance:        advance,
		TotalDue:       100 + advance,
		Status:         model.RentalActive,
		CashierID:      uuid.New(),
		CashierName:    "Counter Cashier",
		CreatedAtLocal: "2026-08-30T10:15:00",
	}
	parent.ID = uuid.New()
	return parent
}

func TestCreateRequiresRole(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	svc := newService(rentalRepo, new(MockUserRepo))

	noRole := model.AuthContext{UserID: uuid.New(), Email: "new@example.com"}
	_, err := svc.Create(&service.CreateRentalRequest{
		CustomerName:  "Asha",
		CustomerPhone: "9876543210",
		Items:         model.RentalItems{Tube: 1},
	}, noRole)

	assert.ErrorIs(t, err, service.ErrForbidden)
	rentalRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateRequiresCustomerFields(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	svc := newService(rentalRepo, new(MockUserRepo))

	_, err := svc.Create(&service.CreateRentalRequest{
		CustomerPhone: "9876543210",
		Items:         model.RentalItems{Tube: 1},
	}, cashierCtx())
	assert.Error(t, err)

	_, err = svc.Create(&service.CreateRentalRequest{
		CustomerName: "Asha",
		Items:        model.RentalItems{Tube: 1},
	}, cashierCtx())
	assert.Error(t, err)

	rentalRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateRequiresItemsUnlessVIP(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	svc := newService(rentalRepo, new(MockUserRepo))

	_, err := svc.Create(&service.CreateRentalRequest{
		CustomerName:  "Asha",
		CustomerPhone: "9876543210",
	}, cashierCtx())
	assert.Error(t, err)
	rentalRepo.AssertNotCalled(t, "Create", mock.Anything)

	// Same request with the VIP flag goes through
	rentalRepo.On("Create", mock.Anything).Return(nil)
	created, err := svc.Create(&service.CreateRentalRequest{
		CustomerName:  "Asha",
		CustomerPhone: "9876543210",
		IsVIP:         true,
		Advance:       100,
	}, cashierCtx())
	assert.NoError(t, err)
	assert.True(t, created.IsVIP)
}

func TestCreateStampsCashierAndStatus(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	svc := newService(rentalRepo, new(MockUserRepo))
	actor := cashierCtx()

	rentalRepo.On("Create", mock.Anything).Return(nil)

	created, err := svc.Create(&service.CreateRentalRequest{
		CustomerName:  "Asha",
		CustomerPhone: "9876543210",
		Items:         model.RentalItems{Tube: 2, Locker: 1},
		Subtotal:      130,
		Advance:       200,
		TotalDue:      330,
	}, actor)

	assert.NoError(t, err)
	assert.Equal(t, model.RentalActive, created.Status)
	assert.Equal(t, actor.UserID, created.CashierID)
	assert.Equal(t, actor.Name, created.CashierName)
	assert.NotEmpty(t, created.CreatedAtLocal)
	rentalRepo.AssertExpectations(t)
}

func TestCreateCreditExceedingAdvanceFails(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	svc := newService(rentalRepo, new(MockUserRepo))

	parent := activeParent(200)
	rentalRepo.On("FindByID", parent.ID).Return(parent, nil)
	rentalRepo.On("FindChild", parent.ID).Return(nil, nil)

	_, err := svc.Create(&service.CreateRentalRequest{
		CustomerName:        "Asha",
		CustomerPhone:       "9876543210",
		Items:               model.RentalItems{Tube: 5},
		Subtotal:            250,
		ParentTransactionID: &parent.ID,
	}, cashierCtx())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds available advance by 50.00")
	rentalRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateCreditForcesZeroAdvance(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	svc := newService(rentalRepo, new(MockUserRepo))

	parent := activeParent(500)
	rentalRepo.On("FindByID", parent.ID).Return(parent, nil)
	rentalRepo.On("FindChild", parent.ID).Return(nil, nil)
	rentalRepo.On("Create", mock.MatchedBy(func(tx *model.RentalTransaction) bool {
		return tx.Advance == 0 && tx.TotalDue == tx.Subtotal && tx.ParentTransactionID != nil
	})).Return(nil)

	created, err := svc.Create(&service.CreateRentalRequest{
		CustomerName:        "Asha",
		CustomerPhone:       "9876543210",
		Items:               model.RentalItems{Locker: 1},
		Subtotal:            150,
		Advance:             100, // ignored for credit sales
		TotalDue:            250, // ignored for credit sales
		ParentTransactionID: &parent.ID,
	}, cashierCtx())

	assert.NoError(t, err)
	assert.Equal(t, float64(0), created.Advance)
	assert.Equal(t, float64(150), created.TotalDue)
	rentalRepo.AssertExpectations(t)
}

func TestCreateSecondChildFails(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	svc := newService(rentalRepo, new(MockUserRepo))

	parent := activeParent(500)
	existingChild := activeParent(0)
	existingChild.ParentTransactionID = &parent.ID

	rentalRepo.On("FindByID", parent.ID).Return(parent, nil)
	rentalRepo.On("FindChild", parent.ID).Return(existingChild, nil)

	_, err := svc.Create(&service.CreateRentalRequest{
		CustomerName:        "Asha",
		CustomerPhone:       "9876543210",
		Items:               model.RentalItems{Tube: 1},
		Subtotal:            50,
		ParentTransactionID: &parent.ID,
	}, cashierCtx())

	assert.ErrorIs(t, err, service.ErrParentAlreadyLinked)
	rentalRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateCreditParentMissingOrInactive(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	svc := newService(rentalRepo, new(MockUserRepo))

	missing := uuid.New()
	rentalRepo.On("FindByID", missing).Return(nil, errors.New("record not found"))

	_, err := svc.Create(&service.CreateRentalRequest{
		CustomerName:        "Asha",
		CustomerPhone:       "9876543210",
		Items:               model.RentalItems{Tube: 1},
		Subtotal:            50,
		ParentTransactionID: &missing,
	}, cashierCtx())
	assert.ErrorIs(t, err, service.ErrParentNotFound)

	returned := activeParent(500)
	returned.Status = model.RentalAdvanceReturned
	rentalRepo.On("FindByID", returned.ID).Return(returned, nil)

	_, err = svc.Create(&service.CreateRentalRequest{
		CustomerName:        "Asha",
		CustomerPhone:       "9876543210",
		Items:               model.RentalItems{Tube: 1},
		Subtotal:            50,
		ParentTransactionID: &returned.ID,
	}, cashierCtx())
	assert.ErrorIs(t, err, service.ErrParentNotActive)
}

func TestReturnAdvanceQuantityMismatch(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	svc := newService(rentalRepo, new(MockUserRepo))

	parent := activeParent(200) // 2 tubes on the slip
	rentalRepo.On("FindByID", parent.ID).Return(parent, nil)

	_, err := svc.ReturnAdvance(&service.ReturnAdvanceRequest{
		TransactionID: parent.ID,
		ReturnDetails: model.ReturnBreakdown{
			model.ItemTube: {ReturnedGood: 1},
		},
	}, cashierCtx())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2, got 1")
	rentalRepo.AssertNotCalled(t, "MarkReturned", mock.Anything, mock.Anything)
}

func TestReturnAdvanceDamagedNeedsDeduction(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	svc := newService(rentalRepo, new(MockUserRepo))

	parent := activeParent(200)
	rentalRepo.On("FindByID", parent.ID).Return(parent, nil)

	_, err := svc.ReturnAdvance(&service.ReturnAdvanceRequest{
		TransactionID: parent.ID,
		ReturnDetails: model.ReturnBreakdown{
			model.ItemTube: {ReturnedGood: 1, ReturnedDamaged: 1, Deduction: 0},
		},
	}, cashierCtx())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no deduction")
}

func TestReturnAdvanceVIPSkipsDeductionRule(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	svc := newService(rentalRepo, new(MockUserRepo))

	parent := activeParent(200)
	parent.IsVIP = true
	rentalRepo.On("FindByID", parent.ID).Return(parent, nil)
	rentalRepo.On("FindChild", parent.ID).Return(nil, nil)
	rentalRepo.On("MarkReturned", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.ReturnAdvance(&service.ReturnAdvanceRequest{
		TransactionID: parent.ID,
		ReturnDetails: model.ReturnBreakdown{
			model.ItemTube: {ReturnedGood: 1, ReturnedDamaged: 1, Deduction: 0},
		},
	}, cashierCtx())

	assert.NoError(t, err)
	assert.Equal(t, float64(200), result.AmountReturned)
}

func TestReturnAlreadyReturnedFails(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	svc := newService(rentalRepo, new(MockUserRepo))

	parent := activeParent(200)
	parent.Status = model.RentalAdvanceReturned
	rentalRepo.On("FindByID", parent.ID).Return(parent, nil)

	_, err := svc.ReturnAdvance(&service.ReturnAdvanceRequest{
		TransactionID: parent.ID,
		ReturnDetails: model.ReturnBreakdown{
			model.ItemTube: {ReturnedGood: 2},
		},
	}, cashierCtx())

	assert.ErrorIs(t, err, service.ErrAlreadyReturned)
	rentalRepo.AssertNotCalled(t, "MarkReturned", mock.Anything, mock.Anything)
}

func TestReturnChildDirectlyFails(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	svc := newService(rentalRepo, new(MockUserRepo))

	parentID := uuid.New()
	child := activeParent(0)
	child.ParentTransactionID = &parentID
	rentalRepo.On("FindByID", child.ID).Return(child, nil)

	_, err := svc.ReturnAdvance(&service.ReturnAdvanceRequest{
		TransactionID: child.ID,
		ReturnDetails: model.ReturnBreakdown{
			model.ItemTube: {ReturnedGood: 2},
		},
	}, cashierCtx())

	assert.ErrorIs(t, err, service.ErrChildReturn)
}

func TestReturnWithLinkedChild(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	svc := newService(rentalRepo, new(MockUserRepo))
	actor := cashierCtx()

	// Parent advance 500, linked child subtotal 150, zero deductions:
	// returned amount must be 350.
	parent := activeParent(500)
	child := &model.RentalTransaction{
		CustomerName:        parent.CustomerName,
		CustomerPhone:       parent.CustomerPhone,
		RentalItems:         model.RentalItems{Locker: 1},
		Subtotal:            150,
		Advance:             0,
		TotalDue:            150,
		Status:              model.RentalActive,
		ParentTransactionID: &parent.ID,
	}
	child.ID = uuid.New()

	rentalRepo.On("FindByID", parent.ID).Return(parent, nil)
	rentalRepo.On("FindChild", parent.ID).Return(child, nil)
	rentalRepo.On("MarkReturned", parent, child).Return(nil)

	result, err := svc.ReturnAdvance(&service.ReturnAdvanceRequest{
		TransactionID: parent.ID,
		ReturnDetails: model.ReturnBreakdown{
			model.ItemTube: {ReturnedGood: 2},
		},
		LinkedReturnDetails: model.ReturnBreakdown{
			model.ItemLocker: {ReturnedGood: 1},
		},
	}, actor)

	assert.NoError(t, err)
	assert.Equal(t, float64(350), result.AmountReturned)
	assert.Equal(t, model.RentalAdvanceReturned, result.Status)
	assert.NotNil(t, result.LinkedTransaction)
	assert.Equal(t, model.RentalAdvanceReturned, result.LinkedTransaction.Status)
	assert.Equal(t, float64(0), result.LinkedTransaction.AmountReturned)
	assert.Equal(t, result.ReturnedAtLocal, result.LinkedTransaction.ReturnedAtLocal)
	assert.Equal(t, actor.Name, result.ReturnedByName)
	rentalRepo.AssertExpectations(t)
}

func TestReturnLinkedBreakdownRequired(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	svc := newService(rentalRepo, new(MockUserRepo))

	parent := activeParent(500)
	child := activeParent(0)
	child.ParentTransactionID = &parent.ID

	rentalRepo.On("FindByID", parent.ID).Return(parent, nil)
	rentalRepo.On("FindChild", parent.ID).Return(child, nil)

	_, err := svc.ReturnAdvance(&service.ReturnAdvanceRequest{
		TransactionID: parent.ID,
		ReturnDetails: model.ReturnBreakdown{
			model.ItemTube: {ReturnedGood: 2},
		},
	}, cashierCtx())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "linked transaction")
	rentalRepo.AssertNotCalled(t, "MarkReturned", mock.Anything, mock.Anything)
}

func TestReturnAdvanceZeroItemVIPSlip(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	svc := newService(rentalRepo, new(MockUserRepo))

	// A VIP slip holding only an advance has nothing on it to account for
	parent := activeParent(200)
	parent.IsVIP = true
	parent.RentalItems = model.RentalItems{}
	parent.Subtotal = 0
	parent.TotalDue = 200
	rentalRepo.On("FindByID", parent.ID).Return(parent, nil)
	rentalRepo.On("FindChild", parent.ID).Return(nil, nil)
	rentalRepo.On("MarkReturned", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.ReturnAdvance(&service.ReturnAdvanceRequest{
		TransactionID: parent.ID,
	}, cashierCtx())

	assert.NoError(t, err)
	assert.Equal(t, model.RentalAdvanceReturned, result.Status)
	assert.Equal(t, float64(200), result.AmountReturned)
	rentalRepo.AssertExpectations(t)
}

func TestReturnLostItemDeduction(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	svc := newService(rentalRepo, new(MockUserRepo))

	// Advance 200, one lost tube priced 100: returned amount 100.
	parent := activeParent(200)
	rentalRepo.On("FindByID", parent.ID).Return(parent, nil)
	rentalRepo.On("FindChild", parent.ID).Return(nil, nil)
	rentalRepo.On("MarkReturned", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.ReturnAdvance(&service.ReturnAdvanceRequest{
		TransactionID: parent.ID,
		ReturnDetails: model.ReturnBreakdown{
			model.ItemTube: {ReturnedGood: 1, Lost: 1, Deduction: 100},
		},
	}, cashierCtx())

	assert.NoError(t, err)
	assert.Equal(t, float64(100), result.TotalDeduction)
	assert.Equal(t, float64(100), result.AmountReturned)
}

func TestReturnDeductionExceedsAdvance(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	svc := newService(rentalRepo, new(MockUserRepo))

	parent := activeParent(100)
	rentalRepo.On("FindByID", parent.ID).Return(parent, nil)
	rentalRepo.On("FindChild", parent.ID).Return(nil, nil)

	_, err := svc.ReturnAdvance(&service.ReturnAdvanceRequest{
		TransactionID: parent.ID,
		ReturnDetails: model.ReturnBreakdown{
			model.ItemTube: {ReturnedGood: 1, Lost: 1, Deduction: 150},
		},
	}, cashierCtx())

	assert.ErrorIs(t, err, service.ErrDeductionExceedsHeld)
	rentalRepo.AssertNotCalled(t, "MarkReturned", mock.Anything, mock.Anything)
}

func TestListCashierAlwaysScopedToOwnRecords(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	userRepo := new(MockUserRepo)
	svc := newService(rentalRepo, userRepo)
	actor := cashierCtx()

	rentalRepo.On("Find", mock.MatchedBy(func(f repository.RentalFilter) bool {
		return f.CashierID != nil && *f.CashierID == actor.UserID
	})).Return([]model.RentalTransaction{}, nil)
	rentalRepo.On("FindChildren", mock.Anything).Return(nil, nil)
	userRepo.On("NamesByIDs", mock.Anything).Return(map[uuid.UUID]string{}, nil)

	// The cashierId filter is ignored for non-admins
	_, err := svc.List(service.RentalListFilter{
		CashierID: uuid.New().String(),
	}, actor)

	assert.NoError(t, err)
	rentalRepo.AssertExpectations(t)
}

func TestListAdminCanFilterByCashier(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	userRepo := new(MockUserRepo)
	svc := newService(rentalRepo, userRepo)

	target := uuid.New()
	rentalRepo.On("Find", mock.MatchedBy(func(f repository.RentalFilter) bool {
		return f.CashierID != nil && *f.CashierID == target
	})).Return([]model.RentalTransaction{}, nil)
	rentalRepo.On("FindChildren", mock.Anything).Return(nil, nil)
	userRepo.On("NamesByIDs", mock.Anything).Return(map[uuid.UUID]string{}, nil)

	_, err := svc.List(service.RentalListFilter{CashierID: target.String()}, adminCtx())

	assert.NoError(t, err)
	rentalRepo.AssertExpectations(t)
}

func TestListEmbedsLinkedChildAndRefreshesNames(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	userRepo := new(MockUserRepo)
	svc := newService(rentalRepo, userRepo)

	parent := activeParent(500)
	child := activeParent(0)
	child.ParentTransactionID = &parent.ID

	rentalRepo.On("Find", mock.Anything).Return([]model.RentalTransaction{*parent}, nil)
	rentalRepo.On("FindChildren", []uuid.UUID{parent.ID}).Return([]model.RentalTransaction{*child}, nil)
	// The cashier was renamed after the sale
	userRepo.On("NamesByIDs", mock.Anything).Return(map[uuid.UUID]string{
		parent.CashierID: "Renamed Cashier",
	}, nil)

	result, err := svc.List(service.RentalListFilter{}, adminCtx())

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.NotNil(t, result[0].LinkedTransaction)
	assert.Equal(t, child.ID, result[0].LinkedTransaction.ID)
	assert.Equal(t, "Renamed Cashier", result[0].CashierName)
}

func TestListExcludesChildrenFromTopLevel(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	userRepo := new(MockUserRepo)
	svc := newService(rentalRepo, userRepo)

	parent := activeParent(500)
	child := activeParent(0)
	child.ParentTransactionID = &parent.ID

	rentalRepo.On("Find", mock.Anything).Return([]model.RentalTransaction{*parent, *child}, nil)
	rentalRepo.On("FindChildren", []uuid.UUID{parent.ID}).Return([]model.RentalTransaction{*child}, nil)
	userRepo.On("NamesByIDs", mock.Anything).Return(map[uuid.UUID]string{}, nil)

	result, err := svc.List(service.RentalListFilter{}, adminCtx())

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, parent.ID, result[0].ID)
}

func TestListSearchSurfacesChildUnderParent(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	userRepo := new(MockUserRepo)
	svc := newService(rentalRepo, userRepo)

	parent := activeParent(500)
	child := activeParent(0)
	child.ParentTransactionID = &parent.ID

	// Search matched only the child row
	rentalRepo.On("Find", mock.Anything).Return([]model.RentalTransaction{*child}, nil)
	rentalRepo.On("FindChildren", []uuid.UUID{}).Return(nil, nil)
	rentalRepo.On("FindByID", parent.ID).Return(parent, nil)
	userRepo.On("NamesByIDs", mock.Anything).Return(map[uuid.UUID]string{}, nil)

	result, err := svc.List(service.RentalListFilter{
		Search:        "9876",
		IncludeLinked: true,
	}, adminCtx())

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, parent.ID, result[0].ID)
	assert.NotNil(t, result[0].LinkedTransaction)
	assert.Equal(t, child.ID, result[0].LinkedTransaction.ID)
}

func TestListSearchNeverSurfacesForeignParent(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	userRepo := new(MockUserRepo)
	svc := newService(rentalRepo, userRepo)
	actor := cashierCtx()

	// The actor's own credit slip hangs off a parent sold by someone else
	parent := activeParent(500)
	child := activeParent(0)
	child.ParentTransactionID = &parent.ID
	child.CashierID = actor.UserID

	rentalRepo.On("Find", mock.Anything).Return([]model.RentalTransaction{*child}, nil)
	rentalRepo.On("FindChildren", []uuid.UUID{}).Return(nil, nil)
	rentalRepo.On("FindByID", parent.ID).Return(parent, nil)
	userRepo.On("NamesByIDs", mock.Anything).Return(map[uuid.UUID]string{}, nil)

	result, err := svc.List(service.RentalListFilter{
		Search:        "9876",
		IncludeLinked: true,
	}, actor)

	assert.NoError(t, err)
	assert.Empty(t, result)
}
