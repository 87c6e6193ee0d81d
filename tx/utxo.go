package tx

// UnspentOutput is a spendable value record observed on the ledger.
// The core only reads these; spending is the ledger's business.
type UnspentOutput struct {
	OutputID     string `json:"txOutId"`
	OutputIndex  uint32 `json:"txOutIndex"`
	OwnerAddress string `json:"address"`
	Amount       uint64 `json:"amount"`
}

// Outpoint identifies an UnspentOutput.
type Outpoint struct {
	OutputID    string
	OutputIndex uint32
}

// Outpoint returns the (OutputID, OutputIndex) pair of u.
func (u UnspentOutput) Outpoint() Outpoint {
	return Outpoint{OutputID: u.OutputID, OutputIndex: u.OutputIndex}
}

// TxInput references exactly one UnspentOutput. Signature is nil until signed.
type TxInput struct {
	OutputID    string
	OutputIndex uint32
	Signature   []byte
}

// Outpoint returns the output referenced by in.
func (in TxInput) Outpoint() Outpoint {
	return Outpoint{OutputID: in.OutputID, OutputIndex: in.OutputIndex}
}

// TxOutput pays Amount to Address.
type TxOutput struct {
	Address string
	Amount  uint64
}

// Transaction is an ordered set of inputs and outputs identified by ID,
// the digest of its unsigned content.
type Transaction struct {
	ID      string
	Inputs  []TxInput
	Outputs []TxOutput
}

// Clone returns a deep copy of t.
func (t *Transaction) Clone() *Transaction {
	if t == nil {
		return nil
	}
	c := &Transaction{
		ID:      t.ID,
		Inputs:  make([]TxInput, len(t.Inputs)),
		Outputs: make([]TxOutput, len(t.Outputs)),
	}
	for i, in := range t.Inputs {
		c.Inputs[i] = in
		if in.Signature != nil {
			c.Inputs[i].Signature = append([]byte(nil), in.Signature...)
		}
	}
	copy(c.Outputs, t.Outputs)
	return c
}

// ContentID recomputes the id from the current inputs and outputs.
func (t *Transaction) ContentID() string {
	return ComputeID(t.Inputs, t.Outputs)
}

// OutputTotal sums the output amounts.
func (t *Transaction) OutputTotal() (uint64, error) {
	var total uint64
	for _, out := range t.Outputs {
		next, err := addAmount(total, out.Amount)
		if err != nil {
			return 0, err
		}
		total = next
	}
	return total, nil
}

// IsSigned reports whether every input carries a signature.
func (t *Transaction) IsSigned() bool {
	for _, in := range t.Inputs {
		if len(in.Signature) == 0 {
			return false
		}
	}
	return len(t.Inputs) > 0
}

func addAmount(a, b uint64) (uint64, error) {
	s := a + b
	if s < a {
		return 0, ErrAmountOverflow
	}
	return s, nil
}
