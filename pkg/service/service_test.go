package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snaplink/snaplink-go/pkg/collection"
	"github.com/snaplink/snaplink-go/pkg/service"
	"github.com/snaplink/snaplink-go/pkg/testutils"
	"github.com/snaplink/snaplink-go/pkg/withdrawal"
)

// fakeAPI is an in-memory stand-in for the backend, enforcing the
// same Pending-only rules the server does.
type fakeAPI struct {
	nextID   int64
	items    map[int64]*withdrawal.WithdrawalRequest
	balance  withdrawal.WalletBalance
	createN  int
	cancelN  int
	balanceN int
}

func newFakeAPI(balance int64) *fakeAPI {
	return &fakeAPI{
		nextID:  1,
		items:   map[int64]*withdrawal.WithdrawalRequest{},
		balance: withdrawal.WalletBalance{AvailableBalance: balance, TotalBalance: balance},
	}
}

var errNotPending = errors.New("Chỉ có thể thao tác với yêu cầu đang chờ duyệt")

func (f *fakeAPI) add(r withdrawal.WithdrawalRequest) *withdrawal.WithdrawalRequest {
	r.ID = f.nextID
	f.nextID++
	f.items[r.ID] = &r
	return &r
}

func (f *fakeAPI) Create(_ context.Context, req withdrawal.CreateRequest) (*withdrawal.WithdrawalRequest, error) {
	f.createN++
	return f.add(withdrawal.WithdrawalRequest{
		WalletID:          req.WalletID,
		Amount:            req.Amount,
		BankAccountNumber: req.BankAccountNumber,
		BankAccountName:   req.BankAccountName,
		BankName:          req.BankName,
		RequestStatus:     withdrawal.StatusPending,
	}), nil
}

func (f *fakeAPI) Update(_ context.Context, id int64, req withdrawal.UpdateRequest) (*withdrawal.WithdrawalRequest, error) {
	r, ok := f.items[id]
	if !ok {
		return nil, withdrawal.ErrRequestNotFound
	}
	if !r.RequestStatus.CanEdit() {
		return nil, errNotPending
	}
	if req.BankAccountNumber != "" {
		r.BankAccountNumber = req.BankAccountNumber
	}
	if req.BankAccountName != "" {
		r.BankAccountName = req.BankAccountName
	}
	if req.BankName != "" {
		r.BankName = req.BankName
	}
	cp := *r
	return &cp, nil
}

func (f *fakeAPI) Cancel(_ context.Context, id int64) (bool, error) {
	f.cancelN++
	r, ok := f.items[id]
	if !ok {
		return false, withdrawal.ErrRequestNotFound
	}
	if !r.RequestStatus.CanCancel() {
		return false, errNotPending
	}
	r.RequestStatus = withdrawal.StatusCancelled
	return true, nil
}

func (f *fakeAPI) Get(_ context.Context, id int64) (*withdrawal.WithdrawalRequest, error) {
	r, ok := f.items[id]
	if !ok {
		return nil, withdrawal.ErrRequestNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeAPI) GetDetail(ctx context.Context, id int64) (*withdrawal.WithdrawalRequest, error) {
	return f.Get(ctx, id)
}

func (f *fakeAPI) transition(id int64, status withdrawal.RequestStatus) (*withdrawal.WithdrawalRequest, error) {
	r, ok := f.items[id]
	if !ok {
		return nil, withdrawal.ErrRequestNotFound
	}
	r.RequestStatus = status
	cp := *r
	return &cp, nil
}

func (f *fakeAPI) Process(_ context.Context, id int64, _ withdrawal.TransitionRequest) (*withdrawal.WithdrawalRequest, error) {
	return f.transition(id, withdrawal.StatusProcessing)
}

func (f *fakeAPI) Approve(_ context.Context, id int64, _ withdrawal.TransitionRequest) (*withdrawal.WithdrawalRequest, error) {
	return f.transition(id, withdrawal.StatusApproved)
}

func (f *fakeAPI) Reject(_ context.Context, id int64, req withdrawal.TransitionRequest) (*withdrawal.WithdrawalRequest, error) {
	r, err := f.transition(id, withdrawal.StatusRejected)
	if err == nil {
		f.items[id].RejectionReason = req.Reason
		r.RejectionReason = req.Reason
	}
	return r, err
}

func (f *fakeAPI) Complete(_ context.Context, id int64, req withdrawal.TransitionRequest) (*withdrawal.WithdrawalRequest, error) {
	r, err := f.transition(id, withdrawal.StatusCompleted)
	if err == nil {
		f.items[id].ConfirmationReference = req.ConfirmationReference
		r.ConfirmationReference = req.ConfirmationReference
	}
	return r, err
}

func (f *fakeAPI) WalletBalance(context.Context, int64) (*withdrawal.WalletBalance, error) {
	f.balanceN++
	cp := f.balance
	return &cp, nil
}

// list serves the fake's items as a single page, newest last (server
// order is whatever the server says).
func (f *fakeAPI) list(_ context.Context, page, pageSize int) (*withdrawal.RequestPage, error) {
	var items []withdrawal.WithdrawalRequest
	for id := int64(1); id < f.nextID; id++ {
		if r, ok := f.items[id]; ok {
			items = append(items, *r)
		}
	}
	return &withdrawal.RequestPage{
		Items: items, Page: page, PageSize: pageSize,
		TotalCount: len(items), TotalPages: 1,
	}, nil
}

type staticLimits struct{}

func (staticLimits) Limits(context.Context) (withdrawal.WithdrawalLimits, error) {
	return withdrawal.DefaultLimits(), nil
}

func newService(api *fakeAPI) *service.Service {
	return service.New(service.Deps{
		API:    api,
		Limits: staticLimits{},
		Mine:   collection.New(api.list, 10, testutils.Logger()),
		Admin:  collection.New(api.list, 10, testutils.Logger()),
		UserID: 9,
		Logger: testutils.Logger(),
	})
}

func validForm(amount int64) withdrawal.CreateRequest {
	return withdrawal.CreateRequest{
		WalletID:          3,
		Amount:            amount,
		BankAccountNumber: "0123456789",
		BankAccountName:   "NGUYEN VAN A",
		BankName:          "Vietcombank",
	}
}

func TestCreate_ValidationBlocksSubmission(t *testing.T) {
	api := newFakeAPI(5_000_000)
	svc := newService(api)

	created, errs, err := svc.Create(context.Background(), validForm(5_000))
	require.NoError(t, err, "validation failures are not errors")
	assert.Nil(t, created)
	assert.False(t, errs.IsValid())
	assert.Contains(t, errs.Amount, "tối thiểu")
	assert.Zero(t, api.createN, "nothing reached the backend")
}

func TestCreate_BalanceCap(t *testing.T) {
	api := newFakeAPI(100_000)
	svc := newService(api)

	_, errs, err := svc.Create(context.Background(), validForm(200_000))
	require.NoError(t, err)
	assert.Equal(t, "Số tiền vượt quá số dư khả dụng", errs.Amount)
	assert.Zero(t, api.createN)
}

func TestCreate_SuccessRefreshesListAndBalance(t *testing.T) {
	api := newFakeAPI(5_000_000)
	svc := newService(api)
	ctx := context.Background()

	created, errs, err := svc.Create(ctx, validForm(2_000_000))
	require.NoError(t, err)
	require.True(t, errs.IsValid())
	require.NotNil(t, created)
	assert.Equal(t, withdrawal.StatusPending, created.RequestStatus)

	items := svc.Mine().Items()
	require.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)
	assert.Equal(t, withdrawal.StatusPending, items[0].RequestStatus)
	assert.Equal(t, 2, api.balanceN, "initial snapshot plus refresh after create")
}

func TestCancel_PendingSucceedsAndRefreshes(t *testing.T) {
	api := newFakeAPI(5_000_000)
	svc := newService(api)
	ctx := context.Background()

	created, _, err := svc.Create(ctx, validForm(500_000))
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, created.ID))
	items := svc.Mine().Items()
	require.Len(t, items, 1)
	assert.Equal(t, withdrawal.StatusCancelled, items[0].RequestStatus)
}

func TestCancel_OfCancelledSurfacesErrorKeepsItem(t *testing.T) {
	api := newFakeAPI(5_000_000)
	svc := newService(api)
	ctx := context.Background()

	created, _, err := svc.Create(ctx, validForm(500_000))
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, created.ID))

	// Local state knows the status: the guard fires before the network.
	before := api.cancelN
	err = svc.Cancel(ctx, created.ID)
	require.ErrorIs(t, err, withdrawal.ErrNotPending)
	assert.Equal(t, before, api.cancelN)
	assert.Len(t, svc.Mine().Items(), 1, "item stays in local state")
}

func TestCancel_StaleLocalStateServerWins(t *testing.T) {
	api := newFakeAPI(5_000_000)
	svc := newService(api)
	ctx := context.Background()

	created, _, err := svc.Create(ctx, validForm(500_000))
	require.NoError(t, err)

	// A moderator approves behind the client's back.
	_, err = api.Approve(ctx, created.ID, withdrawal.TransitionRequest{})
	require.NoError(t, err)

	// Local list still says Pending, so the guard passes and the
	// server's rejection surfaces as an application error.
	err = svc.Cancel(ctx, created.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, withdrawal.ErrNotPending)
	assert.Len(t, svc.Mine().Items(), 1)
}

func TestUpdate_PatchesInPlace(t *testing.T) {
	api := newFakeAPI(5_000_000)
	svc := newService(api)
	ctx := context.Background()

	created, _, err := svc.Create(ctx, validForm(500_000))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, withdrawal.UpdateRequest{BankName: "Techcombank"})
	require.NoError(t, err)
	assert.Equal(t, "Techcombank", updated.BankName)

	items := svc.Mine().Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Techcombank", items[0].BankName)
}

func TestUpdate_NonPendingBlockedLocally(t *testing.T) {
	api := newFakeAPI(5_000_000)
	svc := newService(api)
	ctx := context.Background()

	created, _, err := svc.Create(ctx, validForm(500_000))
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, created.ID))

	_, err = svc.Update(ctx, created.ID, withdrawal.UpdateRequest{BankName: "ACB"})
	assert.ErrorIs(t, err, withdrawal.ErrNotPending)
}

func TestAdminTransitions_PatchAdminList(t *testing.T) {
	api := newFakeAPI(5_000_000)
	svc := newService(api)
	ctx := context.Background()

	created, _, err := svc.Create(ctx, validForm(500_000))
	require.NoError(t, err)
	require.NoError(t, svc.Admin().Fetch(ctx))

	r, err := svc.Approve(ctx, created.ID, withdrawal.TransitionRequest{})
	require.NoError(t, err)
	assert.Equal(t, withdrawal.StatusApproved, r.RequestStatus)
	assert.Equal(t, withdrawal.StatusApproved, svc.Admin().Items()[0].RequestStatus)

	r, err = svc.Process(ctx, created.ID, withdrawal.TransitionRequest{})
	require.NoError(t, err)
	assert.Equal(t, withdrawal.StatusProcessing, r.RequestStatus)

	r, err = svc.Complete(ctx, created.ID, "https://cdn.snaplink.vn/confirm/1.jpg")
	require.NoError(t, err)
	assert.Equal(t, withdrawal.StatusCompleted, r.RequestStatus)
	assert.Equal(t, "https://cdn.snaplink.vn/confirm/1.jpg", r.ConfirmationReference)
	assert.Equal(t, withdrawal.StatusCompleted, svc.Admin().Items()[0].RequestStatus)
}

func TestReject_CarriesReason(t *testing.T) {
	api := newFakeAPI(5_000_000)
	svc := newService(api)
	ctx := context.Background()

	created, _, err := svc.Create(ctx, validForm(500_000))
	require.NoError(t, err)
	require.NoError(t, svc.Admin().Fetch(ctx))

	r, err := svc.Reject(ctx, created.ID, "Sai thông tin tài khoản")
	require.NoError(t, err)
	assert.Equal(t, withdrawal.StatusRejected, r.RequestStatus)
	assert.Equal(t, "Sai thông tin tài khoản", r.RejectionReason)
}
