package validate_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VeliorGroup/fluxo/internal/validate"
)

type sample struct {
	OwnerID  uuid.UUID       `json:"owner_id" validate:"required"`
	Name     string          `json:"name" validate:"required,max=10"`
	Currency string          `json:"currency" validate:"currency"`
	Amount   decimal.Decimal `json:"amount" validate:"gt=0"`
	Email    string          `json:"email" validate:"omitempty,email"`
}

func TestStruct(t *testing.T) {
	ok := sample{
		OwnerID:  uuid.New(),
		Name:     "Fluxo",
		Currency: "EUR",
		Amount:   decimal.NewFromInt(3),
	}
	require.NoError(t, validate.Struct(ok))

	bad := sample{
		Name:     "a name that is too long",
		Currency: "USD",
		Amount:   decimal.Zero,
		Email:    "nope",
	}

	err := validate.Struct(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, validate.ErrInvalid)

	var verr *validate.Error
	require.True(t, errors.As(err, &verr))

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}

	assert.ElementsMatch(t, []string{"owner_id", "name", "currency", "amount", "email"}, fields)
}

func TestFail(t *testing.T) {
	err := validate.Fail("parent_id", "would create a cycle")
	assert.ErrorIs(t, err, validate.ErrInvalid)
	assert.Contains(t, err.Error(), "parent_id: would create a cycle")
}

func TestText(t *testing.T) {
	assert.Equal(t, "Office rent", validate.Text("  <b>Office rent</b> "))
	assert.Equal(t, "", validate.Text("<script>alert(1)</script>"))
}

func TestText_KeepsAmpersand(t *testing.T) {
	assert.Equal(t, "Tom & Jerry sh.p.k.", validate.Text("Tom & Jerry sh.p.k."))
}
