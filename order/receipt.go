package order

import "github.com/caisseplanck/register/id"

// Receipt records a completed checkout.
type Receipt struct {
	ID            id.ID   `json:"id"`
	Operator      string  `json:"operator"`
	Lines         []Line  `json:"lines"`
	Text          string  `json:"text"`
	Total         float64 `json:"total"`
	BalanceBefore float64 `json:"balance_before"`
	BalanceAfter  float64 `json:"balance_after"`
}

// NewReceipt snapshots o for operator.
func NewReceipt(operator string, o *Order) *Receipt {
	return &Receipt{
		ID:       id.NewReceiptID(),
		Operator: operator,
		Lines:    o.Lines(),
		Text:     o.String(),
		Total:    o.Total(),
	}
}
