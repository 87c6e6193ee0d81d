package tx

import "fmt"

// Selection is the result of coin selection.
type Selection struct {
	Selected []UnspentOutput
	Change   uint64
}

// Total returns the sum of the selected amounts.
func (s *Selection) Total() uint64 {
	var total uint64
	for _, u := range s.Selected {
		total += u.Amount
	}
	return total
}

// SelectCoins picks the shortest prefix of available whose running total
// reaches target. Outputs are visited in the order given; the caller
// controls priority by ordering the slice. Change is the surplus over target.
//
// A zero target selects nothing. If the whole slice does not cover target,
// ErrInsufficientFunds is returned and no selection is produced.
func SelectCoins(available []UnspentOutput, target uint64) (*Selection, error) {
	if target == 0 {
		return &Selection{Selected: []UnspentOutput{}}, nil
	}

	var running uint64
	for i, u := range available {
		next, err := addAmount(running, u.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: at output %s:%d", err, u.OutputID, u.OutputIndex)
		}
		running = next
		if running >= target {
			selected := make([]UnspentOutput, i+1)
			copy(selected, available[:i+1])
			return &Selection{Selected: selected, Change: running - target}, nil
		}
	}

	return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, running, target)
}
