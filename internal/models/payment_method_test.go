package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethodMerge(t *testing.T) {
	stored := PaymentMethod{
		Name:   "Old name",
		Type:   "BankCard",
		Status: "Active",
		PaymentMethodDetails: PaymentMethodDetails{
			CardNumber: "4111", Brand: "Visa", ExpirationDate: "2027-01", NameOnCard: "J Doe",
		},
	}

	t.Run("non-empty patch fields overlay", func(t *testing.T) {
		merged := stored.Merge(&UpdatePaymentMethodRequest{
			Name:                 "New name",
			Status:               "Suspended",
			PaymentMethodDetails: PaymentMethodDetails{Brand: "Mastercard"},
		})

		assert.Equal(t, "New name", merged.Name)
		assert.Equal(t, "Suspended", merged.Status)
		assert.Equal(t, "Mastercard", merged.Brand)
		assert.Equal(t, "4111", merged.CardNumber, "untouched fields survive")
		assert.Equal(t, "BankCard", merged.Type)
	})

	t.Run("empty patch fields are treated as absent", func(t *testing.T) {
		merged := stored.Merge(&UpdatePaymentMethodRequest{})

		assert.Equal(t, stored.Name, merged.Name)
		assert.Equal(t, stored.PaymentMethodDetails, merged.PaymentMethodDetails)
	})

	t.Run("merge does not mutate the receiver", func(t *testing.T) {
		_ = stored.Merge(&UpdatePaymentMethodRequest{Name: "Changed"})
		assert.Equal(t, "Old name", stored.Name)
	})

	t.Run("type change overlays for revalidation", func(t *testing.T) {
		merged := stored.Merge(&UpdatePaymentMethodRequest{Type: "DigitalWallet"})
		assert.Equal(t, "DigitalWallet", merged.Type)
	})
}

func TestPaymentMethodProject(t *testing.T) {
	pm := &PaymentMethod{
		ID:     uuid.Must(uuid.NewV7()),
		Href:   "/tmf-api/paymentMethod/v4/paymentMethod/abc",
		Name:   "My card",
		Type:   "BankCard",
		Status: "Active",
		PaymentMethodDetails: PaymentMethodDetails{
			CardNumber: "4111", Brand: "Visa", ExpirationDate: "2027-01", NameOnCard: "J Doe",
		},
	}

	t.Run("no fields returns the full entity", func(t *testing.T) {
		out, err := pm.Project(nil)
		require.NoError(t, err)
		assert.Equal(t, "My card", out["name"])
		assert.Equal(t, "BankCard", out["@type"])
		assert.Equal(t, "Visa", out["brand"])
	})

	t.Run("projection keeps id plus requested fields", func(t *testing.T) {
		out, err := pm.Project([]string{"name", "status"})
		require.NoError(t, err)
		assert.Len(t, out, 3)
		assert.Equal(t, pm.ID.String(), out["id"])
		assert.Equal(t, "My card", out["name"])
		assert.Equal(t, "Active", out["status"])
	})

	t.Run("unknown field names are ignored", func(t *testing.T) {
		out, err := pm.Project([]string{"name", "nope"})
		require.NoError(t, err)
		assert.Len(t, out, 2)
		_, ok := out["nope"]
		assert.False(t, ok)
	})

	t.Run("at-prefixed fields project", func(t *testing.T) {
		out, err := pm.Project([]string{"@type"})
		require.NoError(t, err)
		assert.Equal(t, "BankCard", out["@type"])
	})
}

func TestPaymentMethodJSONShape(t *testing.T) {
	pm := &PaymentMethod{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     "Wallet",
		Type:     "DigitalWallet",
		BaseType: BaseTypePaymentMethod,
		Status:   "Active",
		PaymentMethodDetails: PaymentMethodDetails{
			Service: "PayPal", WalletID: "w-1",
		},
	}

	raw, err := json.Marshal(pm)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))

	// Detail fields flatten onto the top-level object and empty ones drop out.
	assert.Equal(t, "PayPal", out["service"])
	assert.Equal(t, "w-1", out["walletId"])
	assert.Equal(t, "PaymentMethod", out["@baseType"])
	_, hasCard := out["cardNumber"]
	assert.False(t, hasCard)
}

func TestListPaymentMethodsFiltersFieldList(t *testing.T) {
	tests := []struct {
		name   string
		fields string
		want   []string
	}{
		{"empty returns nil", "", nil},
		{"single field", "name", []string{"name"}},
		{"multiple fields", "name,status", []string{"name", "status"}},
		{"whitespace trimmed", " name , status ", []string{"name", "status"}},
		{"only commas returns nil", ",,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ListPaymentMethodsFilters{Fields: tt.fields}
			assert.Equal(t, tt.want, f.FieldList())
		})
	}
}

func TestUpdatePaymentMethodRequestIsEmpty(t *testing.T) {
	assert.True(t, (&UpdatePaymentMethodRequest{}).IsEmpty())
	assert.False(t, (&UpdatePaymentMethodRequest{Name: "x"}).IsEmpty())
	assert.False(t, (&UpdatePaymentMethodRequest{
		PaymentMethodDetails: PaymentMethodDetails{Bank: "b"},
	}).IsEmpty())
}
