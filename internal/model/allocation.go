package model

// FundAmount is a rupee amount assigned to a single fund.
type FundAmount struct {
	Fund   string
	Amount int64
}

// Allocation is an ordered fund-by-fund split of a deployment amount.
// Order follows the configured fund list so formatted output is stable.
type Allocation []FundAmount

// Total returns the sum of all allocated amounts.
func (a Allocation) Total() int64 {
	var sum int64
	for _, e := range a {
		sum += e.Amount
	}
	return sum
}

// AmountFor returns the amount allocated to the named fund, or 0.
func (a Allocation) AmountFor(fund string) int64 {
	for _, e := range a {
		if e.Fund == fund {
			return e.Amount
		}
	}
	return 0
}
