package model

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction types. Sale/exchange-sell/income move cash into the till,
// purchase/exchange-buy/expense move it out. Amounts are stored positive;
// the sign comes from the type at aggregation time.
const (
	TxTypeSale         = "sale"
	TxTypePurchase     = "purchase"
	TxTypeExchangeBuy  = "exchange-buy"
	TxTypeExchangeSell = "exchange-sell"
	TxTypeIncome       = "income"
	TxTypeExpense      = "expense"
	TxTypeVoid         = "void"
)

// Transaction is a cash-movement audit record. Created as a side effect of
// sale/purchase/currency recording, and directly manageable from the
// tracking view.
type Transaction struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Type        string              `bson:"type"`
	Description string              `bson:"description"`
	Amount      decimal.Decimal     `bson:"amount"`
	Date        string              `bson:"date"` // canonical YYYY-MM-DD
	Method      string              `bson:"method"`
	// ReferenceID links back to the originating sale/purchase/exchange, when any.
	ReferenceID *primitive.ObjectID `bson:"referenceId,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt"`
}

// TxSign returns +1 for inflow types, -1 for outflow types, 0 for unknown.
func TxSign(txType string) int {
	switch txType {
	case TxTypeSale, TxTypeExchangeSell, TxTypeIncome:
		return 1
	case TxTypePurchase, TxTypeExchangeBuy, TxTypeExpense, TxTypeVoid:
		return -1
	}
	return 0
}
