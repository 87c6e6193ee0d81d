package tx

import (
	"testing"
)

// FuzzDecodeJSONNoPanic ensures DecodeJSON never panics on arbitrary input.
func FuzzDecodeJSONNoPanic(f *testing.F) {
	f.Add([]byte(`{"id":"","txIns":[],"txOuts":[]}`))
	f.Add([]byte(`{"id":"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855","txIns":[{"txOutId":"a","txOutIndex":0,"signature":"00"}],"txOuts":[{"address":"b","amount":1}]}`))
	f.Add([]byte(`null`))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		txn, err := DecodeJSON(data)
		if err == nil && txn == nil {
			t.Fatal("nil transaction without error")
		}
	})
}

// FuzzSelectCoinsPrefix checks the prefix and change properties of
// SelectCoins on arbitrary amounts.
func FuzzSelectCoinsPrefix(f *testing.F) {
	f.Add(uint16(50), uint16(25), uint16(0), uint64(40))
	f.Add(uint16(50), uint16(25), uint16(0), uint64(75))
	f.Add(uint16(50), uint16(25), uint16(0), uint64(100))
	f.Add(uint16(0), uint16(0), uint16(1), uint64(1))

	f.Fuzz(func(t *testing.T, a, b, c uint16, target uint64) {
		available := []UnspentOutput{
			testUTXO("f0", 0, uint64(a)),
			testUTXO("f1", 1, uint64(b)),
			testUTXO("f2", 2, uint64(c)),
		}
		sum := uint64(a) + uint64(b) + uint64(c)

		sel, err := SelectCoins(available, target)
		if target > sum {
			if err == nil {
				t.Fatalf("target %d > sum %d must fail", target, sum)
			}
			return
		}
		if err != nil {
			t.Fatalf("SelectCoins(%d): %v", target, err)
		}
		n := len(sel.Selected)
		for i := 0; i < n; i++ {
			if sel.Selected[i] != available[i] {
				t.Fatalf("selected[%d] is not a prefix element", i)
			}
		}
		total := sel.Total()
		if total < target || sel.Change != total-target {
			t.Fatalf("total %d change %d target %d", total, sel.Change, target)
		}
		if target > 0 && n > 0 && total-sel.Selected[n-1].Amount >= target {
			t.Fatalf("selection is longer than needed")
		}
	})
}
