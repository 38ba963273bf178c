// Package withdrawal holds the domain model for moving funds from a
// SnapLink wallet to an external bank account: the request aggregate,
// its status lifecycle, the policy limits and the form validation
// rules enforced before a request is sent to the backend.
package withdrawal

import (
	"encoding/json"
	"time"
)

// RequestStatus is the lifecycle state of a withdrawal request.
type RequestStatus string

const (
	StatusPending    RequestStatus = "Pending"
	StatusApproved   RequestStatus = "Approved"
	StatusRejected   RequestStatus = "Rejected"
	StatusProcessing RequestStatus = "Processing"
	StatusCompleted  RequestStatus = "Completed"
	StatusCancelled  RequestStatus = "Cancelled"
)

// Statuses lists every known status, in lifecycle order.
var Statuses = []RequestStatus{
	StatusPending,
	StatusApproved,
	StatusProcessing,
	StatusCompleted,
	StatusRejected,
	StatusCancelled,
}

// Known reports whether s is one of the six statuses the backend emits.
func (s RequestStatus) Known() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected,
		StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the request can no longer change state.
func (s RequestStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// CanEdit reports whether the owner may still change the bank fields.
// Only pending requests are editable.
func (s RequestStatus) CanEdit() bool { return s == StatusPending }

// CanCancel reports whether the owner may still cancel the request.
func (s RequestStatus) CanCancel() bool { return s == StatusPending }

// ModeratorInfo identifies the moderator who acted on a request. It is
// only populated on the detail endpoint.
type ModeratorInfo struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
}

// WithdrawalRequest is a user's request to move funds from their
// platform wallet to an external bank account.
//
// Invariants:
//   - ID, WalletID, UserID and RequestedAt are set by the backend at
//     creation and never change.
//   - Amount is a positive integer in the smallest currency unit (VND)
//     and is immutable once the status leaves Pending.
//   - Bank fields are mutable only while the status is Pending.
type WithdrawalRequest struct {
	ID                     int64          `json:"id"`
	WalletID               int64          `json:"walletId"`
	UserID                 int64          `json:"userId"`
	Amount                 int64          `json:"amount"`
	BankAccountNumber      string         `json:"bankAccountNumber"`
	BankAccountName        string         `json:"bankAccountName"`
	BankName               string         `json:"bankName"`
	RequestStatus          RequestStatus  `json:"requestStatus"`
	RequestedAt            time.Time      `json:"requestedAt"`
	ProcessedAt            *time.Time     `json:"processedAt,omitempty"`
	ProcessedByModeratorID *int64         `json:"processedByModeratorId,omitempty"`
	Moderator              *ModeratorInfo `json:"moderator,omitempty"`

	// The backend stores both of these in a single rejectionReason
	// column: a rejection explanation when status is Rejected, a
	// confirmation image URL when status is Completed. The client
	// model keeps them apart; the JSON codec below demuxes on status.
	RejectionReason       string `json:"-"`
	ConfirmationReference string `json:"-"`
}

// wireRequest mirrors WithdrawalRequest on the wire, where the
// overloaded rejectionReason field still exists.
type wireRequest WithdrawalRequest

type wireEnvelope struct {
	*wireRequest
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// UnmarshalJSON decodes the backend payload, routing the overloaded
// rejectionReason field by status.
func (w *WithdrawalRequest) UnmarshalJSON(b []byte) error {
	aux := wireEnvelope{wireRequest: (*wireRequest)(w)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if w.RequestStatus == StatusCompleted {
		w.ConfirmationReference = aux.RejectionReason
		w.RejectionReason = ""
	} else {
		w.RejectionReason = aux.RejectionReason
	}
	return nil
}

// MarshalJSON encodes back to the backend's single-field shape.
func (w WithdrawalRequest) MarshalJSON() ([]byte, error) {
	aux := wireEnvelope{wireRequest: (*wireRequest)(&w)}
	if w.RequestStatus == StatusCompleted {
		aux.RejectionReason = w.ConfirmationReference
	} else {
		aux.RejectionReason = w.RejectionReason
	}
	return json.Marshal(aux)
}

// WithdrawalLimits are the process-wide policy values applied to new
// requests. They come from the backend; Default is assumed when the
// limits endpoint is unavailable.
type WithdrawalLimits struct {
	MinAmount    int64  `json:"minAmount"`
	MaxAmount    int64  `json:"maxAmount"`
	DailyLimit   *int64 `json:"dailyLimit,omitempty"`
	MonthlyLimit *int64 `json:"monthlyLimit,omitempty"`
}

const (
	// DefaultMinAmount is the smallest permitted withdrawal in VND.
	DefaultMinAmount int64 = 10_000
	// DefaultMaxAmount is the largest permitted withdrawal in VND.
	DefaultMaxAmount int64 = 50_000_000
)

// DefaultLimits returns the policy values assumed when the backend
// limits endpoint cannot be reached.
func DefaultLimits() WithdrawalLimits {
	return WithdrawalLimits{MinAmount: DefaultMinAmount, MaxAmount: DefaultMaxAmount}
}

// WalletBalance is a read-only snapshot of a user's wallet, refreshed
// after a request is created.
type WalletBalance struct {
	AvailableBalance int64 `json:"availableBalance"`
	PendingBalance   int64 `json:"pendingBalance"`
	TotalBalance     int64 `json:"totalBalance"`
}

// RequestPage is one page of a withdrawal request listing, in the
// order the server returned it. The client never re-sorts.
type RequestPage struct {
	Items      []WithdrawalRequest `json:"items"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
	TotalCount int                 `json:"totalCount"`
	TotalPages int                 `json:"totalPages"`
}

// HasMore reports whether pages remain after this one.
func (p RequestPage) HasMore() bool { return p.Page < p.TotalPages }

// CreateRequest is the payload for opening a new withdrawal request.
type CreateRequest struct {
	WalletID          int64  `json:"walletId" validate:"required"`
	Amount            int64  `json:"amount" validate:"required,min=10000,max=50000000"`
	BankAccountNumber string `json:"bankAccountNumber" validate:"required,numeric,min=6,max=100"`
	BankAccountName   string `json:"bankAccountName" validate:"required,max=100"`
	BankName          string `json:"bankName" validate:"required,max=100"`
}

// UpdateRequest carries the bank fields that may change while a
// request is still pending. Empty fields are left untouched.
type UpdateRequest struct {
	BankAccountNumber string `json:"bankAccountNumber,omitempty" validate:"omitempty,numeric,min=6,max=100"`
	BankAccountName   string `json:"bankAccountName,omitempty" validate:"omitempty,max=100"`
	BankName          string `json:"bankName,omitempty" validate:"omitempty,max=100"`
}

// TransitionRequest is the payload for the moderator actions. Reason
// is required on reject; ConfirmationReference is required on
// complete; both are optional elsewhere.
type TransitionRequest struct {
	Reason                string `json:"reason,omitempty"`
	ConfirmationReference string `json:"confirmationReference,omitempty"`
	Note                  string `json:"note,omitempty"`
}
