// Package format maps withdrawal domain values to display strings:
// status badges, VND currency, absolute dates and masked account
// numbers. Everything here is pure and total — unknown input maps to
// a defined fallback, never a panic.
package format

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/leekchan/accounting"

	"github.com/snaplink/snaplink-go/pkg/withdrawal"
)

// StatusDisplay is the fixed tuple a status renders as.
type StatusDisplay struct {
	Color      string
	Background string
	Label      string
	Icon       string
}

var statusDisplays = map[withdrawal.RequestStatus]StatusDisplay{
	withdrawal.StatusPending:    {Color: "#F59E0B", Background: "#FEF3C7", Label: "Chờ duyệt", Icon: "time-outline"},
	withdrawal.StatusApproved:   {Color: "#10B981", Background: "#D1FAE5", Label: "Đã duyệt", Icon: "checkmark-circle-outline"},
	withdrawal.StatusRejected:   {Color: "#EF4444", Background: "#FEE2E2", Label: "Bị từ chối", Icon: "close-circle-outline"},
	withdrawal.StatusProcessing: {Color: "#6B73FF", Background: "#E0E7FF", Label: "Đang xử lý", Icon: "sync-outline"},
	withdrawal.StatusCompleted:  {Color: "#059669", Background: "#A7F3D0", Label: "Hoàn thành", Icon: "checkmark-done-outline"},
	withdrawal.StatusCancelled:  {Color: "#6B7280", Background: "#F3F4F6", Label: "Đã hủy", Icon: "ban-outline"},
}

// unknownStatus is the neutral fallback for statuses this client does
// not recognize.
var unknownStatus = StatusDisplay{Color: "#6B7280", Background: "#F3F4F6", Label: "Không xác định", Icon: "help-circle-outline"}

// Status returns the display tuple for a request status. It is total:
// any unrecognized status yields the neutral fallback.
func Status(s withdrawal.RequestStatus) StatusDisplay {
	if d, ok := statusDisplays[s]; ok {
		return d
	}
	return unknownStatus
}

var vnd = accounting.Accounting{Symbol: "₫", Precision: 0, Thousand: ".", Format: "%v %s"}

// Currency renders an amount in the smallest VND unit, e.g.
// "1.000.000 ₫".
func Currency(amount int64) string {
	return vnd.FormatMoney(amount)
}

// CompactAmount renders an amount with thousands separators and the
// plain currency code, for log lines and notification-style summaries.
func CompactAmount(amount int64) string {
	return humanize.Comma(amount) + " VND"
}

// Date renders an absolute date, dd/MM/yyyy.
func Date(t time.Time) string {
	return t.Format("02/01/2006")
}

// DateTime renders an absolute timestamp, dd/MM/yyyy HH:mm.
func DateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

// MaskAccountNumber hides the middle of a bank account number, keeping
// the first 2 and last 4 digits. Numbers of 4 characters or fewer are
// returned unchanged; that edge case is inherited from the mobile
// client's contract.
func MaskAccountNumber(account string) string {
	if len(account) <= 4 {
		return account
	}
	stars := len(account) - 6
	if stars < 0 {
		stars = 0
	}
	return account[:2] + strings.Repeat("*", stars) + account[len(account)-4:]
}
