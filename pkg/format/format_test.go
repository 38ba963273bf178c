package format_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snaplink/snaplink-go/pkg/format"
	"github.com/snaplink/snaplink-go/pkg/withdrawal"
)

func TestStatus_KnownStatuses(t *testing.T) {
	d := format.Status(withdrawal.StatusProcessing)
	assert.Equal(t, "#6B73FF", d.Color)
	assert.Equal(t, "#E0E7FF", d.Background)
	assert.Equal(t, "Đang xử lý", d.Label)
	assert.Equal(t, "sync-outline", d.Icon)

	labels := map[withdrawal.RequestStatus]string{
		withdrawal.StatusPending:   "Chờ duyệt",
		withdrawal.StatusApproved:  "Đã duyệt",
		withdrawal.StatusRejected:  "Bị từ chối",
		withdrawal.StatusCompleted: "Hoàn thành",
		withdrawal.StatusCancelled: "Đã hủy",
	}
	for status, label := range labels {
		assert.Equal(t, label, format.Status(status).Label, "status %s", status)
	}
}

func TestStatus_Totality(t *testing.T) {
	// Any input, including garbage, yields a defined tuple.
	for _, s := range []string{"Unknown", "", "pending", "💥", "Completed "} {
		d := format.Status(withdrawal.RequestStatus(s))
		assert.NotEmpty(t, d.Label, "input %q", s)
		assert.NotEmpty(t, d.Color, "input %q", s)
	}
	assert.Equal(t, "Không xác định", format.Status("Unknown").Label)
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, "1.000.000 ₫", format.Currency(1_000_000))
	assert.Equal(t, "10.000 ₫", format.Currency(10_000))
	assert.Equal(t, "0 ₫", format.Currency(0))
	assert.Equal(t, "50.000.000 ₫", format.Currency(50_000_000))
}

func TestCompactAmount(t *testing.T) {
	assert.Equal(t, "2,000,000 VND", format.CompactAmount(2_000_000))
}

func TestDateFormatting(t *testing.T) {
	at := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "01/08/2026", format.Date(at))
	assert.Equal(t, "01/08/2026 09:30", format.DateTime(at))
}

func TestMaskAccountNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0123456789", "01****6789"},
		{"1234567", "12*4567"},
		{"123456", "123456"}, // first 2 + last 4 cover all six digits
		{"1234", "1234"},     // short numbers pass through unmasked
		{"12", "12"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, format.MaskAccountNumber(tt.in))
		})
	}
}

func TestMaskAccountNumber_ShapeProperty(t *testing.T) {
	// For n > 6: length preserved, first 2 and last 4 intact, middle
	// is all stars.
	for n := 7; n <= 30; n++ {
		in := strings.Repeat("5", 2) + strings.Repeat("1", n-6) + strings.Repeat("9", 4)
		require.Len(t, in, n)
		out := format.MaskAccountNumber(in)
		require.Len(t, out, n, "length must be preserved for n=%d", n)
		assert.Equal(t, in[:2], out[:2])
		assert.Equal(t, in[n-4:], out[n-4:])
		assert.Equal(t, strings.Repeat("*", n-6), out[2:n-4])
	}
}
