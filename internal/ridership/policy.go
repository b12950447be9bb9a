package ridership

import (
	"fmt"
	"strings"
)

// ZeroDenominatorPolicy decides what a ratio computation does when its denominator is zero.
type ZeroDenominatorPolicy int

const (
	// ZeroFill reports the ratio as zero.
	ZeroFill ZeroDenominatorPolicy = iota
	// FailOnZero returns a *DivisionByZeroError.
	FailOnZero
)

func (p ZeroDenominatorPolicy) String() string {
	switch p {
	case ZeroFill:
		return "zero-fill"
	case FailOnZero:
		return "error"
	default:
		return fmt.Sprintf("ZeroDenominatorPolicy(%d)", int(p))
	}
}

// ParseZeroDenominatorPolicy parses the configuration spelling of a policy.
func ParseZeroDenominatorPolicy(s string) (ZeroDenominatorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "zero-fill", "zerofill", "zero":
		return ZeroFill, nil
	case "error", "fail":
		return FailOnZero, nil
	}
	return 0, fmt.Errorf("unknown zero denominator policy %q", s)
}

// percent returns num/den*100, applying the policy when den is zero.
func (p ZeroDenominatorPolicy) percent(num, den float64, op string, year int) (float64, error) {
	if den != 0 {
		return num / den * 100, nil
	}
	if p == FailOnZero {
		return 0, &DivisionByZeroError{Operation: op, Year: year}
	}
	return 0, nil
}
