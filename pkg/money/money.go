// Package money handles USDT amounts. All balances and transfers are
// stored in micro-units (1 USDT = 1,000,000) so arithmetic stays exact.
package money

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MicroPerUSDT is the number of micro-units in one USDT.
const MicroPerUSDT = 1_000_000

// ErrInvalidAmount is returned when user input does not parse as a
// positive USDT amount.
var ErrInvalidAmount = errors.New("invalid amount")

// Format renders a micro-unit amount as USDT with two decimals, the
// precision shown to users.
func Format(micro int64) string {
	sign := ""
	if micro < 0 {
		sign = "-"
		micro = -micro
	}
	whole := micro / MicroPerUSDT
	cents := (micro % MicroPerUSDT) / 10_000
	return fmt.Sprintf("%s%d.%02d", sign, whole, cents)
}

// FormatExact renders a micro-unit amount with full six-decimal
// precision, used for payable deposit amounts where every digit counts.
func FormatExact(micro int64) string {
	sign := ""
	if micro < 0 {
		sign = "-"
		micro = -micro
	}
	return fmt.Sprintf("%s%d.%06d", sign, micro/MicroPerUSDT, micro%MicroPerUSDT)
}

// Parse converts a user-entered USDT amount ("10", "10.5", "0.25") to
// micro-units. At most six decimal places are accepted.
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidAmount
	}

	wholePart, fracPart, _ := strings.Cut(s, ".")
	if wholePart == "" {
		wholePart = "0"
	}
	whole, err := strconv.ParseInt(wholePart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	var frac int64
	if fracPart != "" {
		if len(fracPart) > 6 {
			return 0, ErrInvalidAmount
		}
		frac, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil || frac < 0 {
			return 0, ErrInvalidAmount
		}
		for i := len(fracPart); i < 6; i++ {
			frac *= 10
		}
	}

	micro := whole*MicroPerUSDT + frac
	if micro <= 0 {
		return 0, ErrInvalidAmount
	}
	return micro, nil
}

// ParseWhole converts a whole-USDT amount to micro-units, rejecting
// decimals. Deposit orders only accept whole amounts.
func ParseWhole(s string) (int64, error) {
	s = strings.TrimSpace(s)
	whole, err := strconv.ParseInt(s, 10, 64)
	if err != nil || whole <= 0 {
		return 0, ErrInvalidAmount
	}
	return whole * MicroPerUSDT, nil
}
