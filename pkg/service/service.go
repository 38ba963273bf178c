// Package service wires the withdrawal flow together: form validation
// in front of the API client, and collection state kept consistent
// after every mutating call. The server stays the sole arbiter of
// legal state transitions; every mutation response is treated as
// authoritative and overwrites local state.
package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/snaplink/snaplink-go/pkg/client"
	"github.com/snaplink/snaplink-go/pkg/collection"
	"github.com/snaplink/snaplink-go/pkg/withdrawal"
)

// API is the client surface the service depends on. *client.Client
// satisfies it; tests substitute a fake.
type API interface {
	Create(ctx context.Context, req withdrawal.CreateRequest) (*withdrawal.WithdrawalRequest, error)
	Update(ctx context.Context, id int64, req withdrawal.UpdateRequest) (*withdrawal.WithdrawalRequest, error)
	Cancel(ctx context.Context, id int64) (bool, error)
	Get(ctx context.Context, id int64) (*withdrawal.WithdrawalRequest, error)
	GetDetail(ctx context.Context, id int64) (*withdrawal.WithdrawalRequest, error)
	Process(ctx context.Context, id int64, req withdrawal.TransitionRequest) (*withdrawal.WithdrawalRequest, error)
	Approve(ctx context.Context, id int64, req withdrawal.TransitionRequest) (*withdrawal.WithdrawalRequest, error)
	Reject(ctx context.Context, id int64, req withdrawal.TransitionRequest) (*withdrawal.WithdrawalRequest, error)
	Complete(ctx context.Context, id int64, req withdrawal.TransitionRequest) (*withdrawal.WithdrawalRequest, error)
	WalletBalance(ctx context.Context, userID int64) (*withdrawal.WalletBalance, error)
}

// Deps carries everything a Service needs.
type Deps struct {
	API    API
	Limits client.LimitsProvider
	// Mine is the collection backing the user's own request list.
	Mine *collection.Controller
	// Admin backs the moderator list; nil for regular user sessions.
	Admin  *collection.Controller
	UserID int64
	Logger *slog.Logger
}

// Service provides the withdrawal flows for one signed-in user.
type Service struct {
	api    API
	limits client.LimitsProvider
	mine   *collection.Controller
	admin  *collection.Controller
	userID int64
	logger *slog.Logger

	mu      sync.Mutex
	balance *withdrawal.WalletBalance
}

// New creates a Service from its dependencies.
func New(d Deps) *Service {
	return &Service{
		api:    d.API,
		limits: d.Limits,
		mine:   d.Mine,
		admin:  d.Admin,
		userID: d.UserID,
		logger: d.Logger,
	}
}

// Mine returns the controller backing the user's own list.
func (s *Service) Mine() *collection.Controller { return s.mine }

// Admin returns the moderator list controller, nil for user sessions.
func (s *Service) Admin() *collection.Controller { return s.admin }

// Balance returns the last wallet snapshot, fetching one if none has
// been loaded yet.
func (s *Service) Balance(ctx context.Context) (*withdrawal.WalletBalance, error) {
	s.mu.Lock()
	b := s.balance
	s.mu.Unlock()
	if b != nil {
		return b, nil
	}
	return s.RefreshBalance(ctx)
}

// RefreshBalance refetches the wallet snapshot.
func (s *Service) RefreshBalance(ctx context.Context) (*withdrawal.WalletBalance, error) {
	b, err := s.api.WalletBalance(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.balance = b
	s.mu.Unlock()
	return b, nil
}

// Limits returns the current withdrawal policy values.
func (s *Service) Limits(ctx context.Context) (withdrawal.WithdrawalLimits, error) {
	return s.limits.Limits(ctx)
}

// Create validates the form and, when it passes, opens the request.
// Validation failures come back in FormErrors and never reach the
// network; the error return is reserved for the call itself. On
// success the user list is reloaded and the wallet snapshot refreshed.
func (s *Service) Create(ctx context.Context, form withdrawal.CreateRequest) (*withdrawal.WithdrawalRequest, withdrawal.FormErrors, error) {
	limits, err := s.Limits(ctx)
	if err != nil {
		return nil, withdrawal.FormErrors{}, err
	}
	balance, err := s.Balance(ctx)
	if err != nil {
		return nil, withdrawal.FormErrors{}, err
	}

	if errs := limits.ValidateForm(form, balance.AvailableBalance); !errs.IsValid() {
		return nil, errs, nil
	}

	created, err := s.api.Create(ctx, form)
	if err != nil {
		return nil, withdrawal.FormErrors{}, err
	}
	s.logger.Info("withdrawal request created",
		"id", created.ID, "amount", created.Amount)

	// A full reload is simpler than splicing the new item into page 1.
	if err := s.mine.Refresh(ctx); err != nil {
		s.logger.Warn("list refresh after create failed", "error", err)
	}
	if _, err := s.RefreshBalance(ctx); err != nil {
		s.logger.Warn("balance refresh after create failed", "error", err)
	}
	return created, withdrawal.FormErrors{}, nil
}

// Update changes the bank fields of a pending request and patches the
// user list in place with the server's response.
func (s *Service) Update(ctx context.Context, id int64, req withdrawal.UpdateRequest) (*withdrawal.WithdrawalRequest, error) {
	if cur := s.find(s.mine, id); cur != nil && !cur.RequestStatus.CanEdit() {
		return nil, withdrawal.ErrNotPending
	}
	updated, err := s.api.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.mine.Patch(*updated)
	return updated, nil
}

// Cancel cancels a pending request. A request the server has already
// moved on from surfaces an application error and stays in the list;
// it is up to the user to refresh and see its real state.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	if cur := s.find(s.mine, id); cur != nil && !cur.RequestStatus.CanCancel() {
		return withdrawal.ErrNotPending
	}
	if _, err := s.api.Cancel(ctx, id); err != nil {
		return err
	}
	s.logger.Info("withdrawal request cancelled", "id", id)
	if err := s.mine.Refresh(ctx); err != nil {
		s.logger.Warn("list refresh after cancel failed", "error", err)
	}
	return nil
}

// Detail fetches one request with moderator info.
func (s *Service) Detail(ctx context.Context, id int64) (*withdrawal.WithdrawalRequest, error) {
	return s.api.GetDetail(ctx, id)
}

func (s *Service) find(c *collection.Controller, id int64) *withdrawal.WithdrawalRequest {
	if c == nil {
		return nil
	}
	for _, item := range c.Items() {
		if item.ID == id {
			return &item
		}
	}
	return nil
}
