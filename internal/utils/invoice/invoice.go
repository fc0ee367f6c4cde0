// Package invoice implements the invoice numbering scheme: a calendar-month
// period code plus a sequence that starts at a fixed floor each period.
package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SequenceFloor is the first sequence number assigned in a fresh period.
const SequenceFloor int64 = 7000

// PeriodCode returns the fixed-width MMYY period for t, e.g. "0825" for
// August 2025.
func PeriodCode(t time.Time) string {
	return t.Format("0106")
}

// Format renders a full invoice number, e.g. "0825-7013".
func Format(period string, seq int64) string {
	return fmt.Sprintf("%s-%d", period, seq)
}

// Parse splits an invoice number into its period code and sequence.
func Parse(invoiceNumber string) (period string, seq int64, err error) {
	idx := strings.IndexByte(invoiceNumber, '-')
	if idx <= 0 || idx == len(invoiceNumber)-1 {
		return "", 0, fmt.Errorf("malformed invoice number %q", invoiceNumber)
	}
	period = invoiceNumber[:idx]
	seq, err = strconv.ParseInt(invoiceNumber[idx+1:], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed invoice sequence in %q: %w", invoiceNumber, err)
	}
	return period, seq, nil
}
