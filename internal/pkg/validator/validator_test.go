package validator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/autospares/internal/domain"
)

type sample struct {
	Name  string          `json:"name" validate:"required,max=5"`
	Price decimal.Decimal `json:"price" validate:"gte=0"`
	Items []sampleItem    `json:"items" validate:"required,min=1,dive"`
}

type sampleItem struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(sample{
		Name:  "ok",
		Price: decimal.RequireFromString("10.50"),
		Items: []sampleItem{{Quantity: 1}},
	})
	assert.NoError(t, err)
}

func TestStruct_CollectsFieldErrors(t *testing.T) {
	err := Struct(sample{
		Name:  "",
		Price: decimal.RequireFromString("-1"),
		Items: []sampleItem{{Quantity: 0}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))

	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Message
	}
	assert.Equal(t, "is required", fields["name"])
	assert.Contains(t, fields, "price")
	assert.Equal(t, "must be greater than 0", fields["items[0].quantity"])
}

func TestGet_ReturnsSharedInstance(t *testing.T) {
	assert.Same(t, Get(), Get())
}
