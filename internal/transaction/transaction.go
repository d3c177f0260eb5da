package transaction

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VeliorGroup/fluxo/internal/money"
)

var ErrNotFound = errors.New("transaction not found")

// Type represents the direction of a transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeIncome, TypeExpense:
		return t, nil
	}

	return "", fmt.Errorf("unknown transaction type %q", s)
}

// Status represents the settlement state of a transaction.
// Any status may be set to any other; there is no enforced transition order.
type Status string

const (
	StatusPaid       Status = "paid"
	StatusPending    Status = "pending"
	StatusForecasted Status = "forecasted"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPaid, StatusPending, StatusForecasted:
		return st, nil
	}

	return "", fmt.Errorf("unknown transaction status %q", s)
}

// Open reports whether the transaction is still expected to settle.
func (s Status) Open() bool {
	return s == StatusPending || s == StatusForecasted
}

// Category is the closed set of ledger categories.
type Category string

const (
	CategoryClientInvoice         Category = "client_invoice"
	CategoryOfficeRent            Category = "office_rent"
	CategoryUtilities             Category = "utilities"
	CategorySoftwareSubscriptions Category = "software_subscriptions"
	CategoryPayroll               Category = "payroll"
	CategoryTaxes                 Category = "taxes"
	CategoryFreelanceIncome       Category = "freelance_income"
	CategoryConsulting            Category = "consulting"
	CategoryEquipment             Category = "equipment"
	CategoryMarketing             Category = "marketing"
	CategoryMiscellaneous         Category = "miscellaneous"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryClientInvoice,
	CategoryFreelanceIncome,
	CategoryConsulting,
	CategoryPayroll,
	CategoryTaxes,
	CategoryOfficeRent,
	CategoryUtilities,
	CategorySoftwareSubscriptions,
	CategoryEquipment,
	CategoryMarketing,
	CategoryMiscellaneous,
}

var categoryLabels = map[Category]string{
	CategoryClientInvoice:         "Client Invoice",
	CategoryOfficeRent:            "Office Rent",
	CategoryUtilities:             "Utilities",
	CategorySoftwareSubscriptions: "Software Subscriptions",
	CategoryPayroll:               "Payroll",
	CategoryTaxes:                 "Taxes",
	CategoryFreelanceIncome:       "Freelance Income",
	CategoryConsulting:            "Consulting",
	CategoryEquipment:             "Equipment",
	CategoryMarketing:             "Marketing",
	CategoryMiscellaneous:         "Miscellaneous",
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categoryLabels[c]; !ok {
		return "", fmt.Errorf("unknown transaction category %q", s)
	}

	return c, nil
}

// Label is the human-readable category name.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}

	return string(c)
}

// Transaction is a single ledger entry. Amount is signed: positive for
// income, negative for expense, and never zero.
type Transaction struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	CompanyID   uuid.UUID
	AccountID   *uuid.UUID
	Amount      decimal.Decimal
	Currency    money.Currency
	Date        time.Time
	Description string
	Category    Category
	Status      Status
	CompanyName string // Loaded via JOIN
	AccountName string // Loaded via JOIN
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Type derives the direction from the sign of the amount.
func (t *Transaction) Type() Type {
	if t.Amount.IsNegative() {
		return TypeExpense
	}

	return TypeIncome
}

// SignedAmount applies the sign convention for typ to an unsigned amount.
func SignedAmount(amount decimal.Decimal, typ Type) decimal.Decimal {
	if typ == TypeExpense {
		return amount.Abs().Neg()
	}

	return amount.Abs()
}
