package validation

import (
	"strings"

	"github.com/KJithathma/tmf670-payment-method-api/internal/apperrors"
	"github.com/KJithathma/tmf670-payment-method-api/internal/models"
)

// requiredField names one field of a type variant and reads its value from the union.
type requiredField struct {
	name string
	get  func(d models.PaymentMethodDetails) string
}

// variantRequiredFields maps @type to the detail fields it requires. Types
// absent from the map enforce no extra fields.
var variantRequiredFields = map[string][]requiredField{
	"BankCard": {
		{"cardNumber", func(d models.PaymentMethodDetails) string { return d.CardNumber }},
		{"brand", func(d models.PaymentMethodDetails) string { return d.Brand }},
		{"expirationDate", func(d models.PaymentMethodDetails) string { return d.ExpirationDate }},
		{"nameOnCard", func(d models.PaymentMethodDetails) string { return d.NameOnCard }},
	},
	"BankAccountTransfer": bankAccountFields,
	"BankAccountDebit":    bankAccountFields,
	"DigitalWallet": {
		{"service", func(d models.PaymentMethodDetails) string { return d.Service }},
		{"walletId", func(d models.PaymentMethodDetails) string { return d.WalletID }},
	},
	"Check": {
		{"checkId", func(d models.PaymentMethodDetails) string { return d.CheckID }},
		{"drawer", func(d models.PaymentMethodDetails) string { return d.Drawer }},
		{"payee", func(d models.PaymentMethodDetails) string { return d.Payee }},
		{"signedDate", func(d models.PaymentMethodDetails) string { return d.SignedDate }},
		{"bank", func(d models.PaymentMethodDetails) string { return d.Bank }},
	},
}

// bankAccountFields is shared by BankAccountTransfer and BankAccountDebit.
var bankAccountFields = []requiredField{
	{"accountNumber", func(d models.PaymentMethodDetails) string { return d.AccountNumber }},
	{"owner", func(d models.PaymentMethodDetails) string { return d.Owner }},
	{"bank", func(d models.PaymentMethodDetails) string { return d.Bank }},
}

// variantLabel maps @type to the variant name used in the missing-fields
// message; the two bank-account variants share one message.
var variantLabel = map[string]string{
	"BankCard":            "BankCard",
	"BankAccountTransfer": "BankAccountTransfer/BankAccountDebit",
	"BankAccountDebit":    "BankAccountTransfer/BankAccountDebit",
	"DigitalWallet":       "DigitalWallet",
	"Check":               "Check",
}

// ValidatePaymentMethod checks the type-conditional required-field rules for a
// payment method. On the update path pm must be the merged entity (stored
// record overlaid with the patch), not the patch alone. Empty values count as
// missing. Pure; returns the first failure as a *apperrors.ValidationError,
// nil when valid.
func ValidatePaymentMethod(pm *models.PaymentMethod, isCreate bool) error {
	if isCreate && (pm.Name == "" || pm.Type == "") {
		return apperrors.NewValidationError("", "name and @type are required")
	}

	if pm.Type != "" && !models.IsValidPaymentMethodType(pm.Type) {
		return apperrors.NewValidationError("@type",
			"Invalid @type. Must be one of: "+strings.Join(models.ValidPaymentMethodTypes(), ", "))
	}

	for _, f := range variantRequiredFields[pm.Type] {
		if f.get(pm.PaymentMethodDetails) == "" {
			return apperrors.NewValidationError(f.name,
				"Required fields for "+variantLabel[pm.Type]+" missing")
		}
	}

	if pm.Status != "" && !models.IsValidStatus(pm.Status) {
		return apperrors.NewValidationError("status",
			"Invalid status. Must be one of: "+strings.Join(models.ValidStatuses(), ", "))
	}

	return nil
}
