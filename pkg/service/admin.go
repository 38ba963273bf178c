package service

import (
	"context"

	"github.com/snaplink/snaplink-go/pkg/withdrawal"
)

// Moderator transitions. Each patches the admin list in place with the
// server's response rather than reloading the whole page; the server
// validates the predecessor status and its answer wins over whatever
// the list held.

type transitionFunc func(ctx context.Context, id int64, req withdrawal.TransitionRequest) (*withdrawal.WithdrawalRequest, error)

func (s *Service) adminTransition(ctx context.Context, id int64, fn transitionFunc, req withdrawal.TransitionRequest, action string) (*withdrawal.WithdrawalRequest, error) {
	updated, err := fn(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("withdrawal request transitioned",
		"id", id, "action", action, "status", updated.RequestStatus)
	if s.admin != nil {
		s.admin.Patch(*updated)
	}
	return updated, nil
}

// Process marks a request as being worked on.
func (s *Service) Process(ctx context.Context, id int64, req withdrawal.TransitionRequest) (*withdrawal.WithdrawalRequest, error) {
	return s.adminTransition(ctx, id, s.api.Process, req, "process")
}

// Approve approves a pending request.
func (s *Service) Approve(ctx context.Context, id int64, req withdrawal.TransitionRequest) (*withdrawal.WithdrawalRequest, error) {
	return s.adminTransition(ctx, id, s.api.Approve, req, "approve")
}

// Reject rejects a request with a reason.
func (s *Service) Reject(ctx context.Context, id int64, reason string) (*withdrawal.WithdrawalRequest, error) {
	return s.adminTransition(ctx, id, s.api.Reject, withdrawal.TransitionRequest{Reason: reason}, "reject")
}

// Complete finishes a request with a confirmation reference.
func (s *Service) Complete(ctx context.Context, id int64, confirmation string) (*withdrawal.WithdrawalRequest, error) {
	return s.adminTransition(ctx, id, s.api.Complete, withdrawal.TransitionRequest{ConfirmationReference: confirmation}, "complete")
}
