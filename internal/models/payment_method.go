package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BaseTypePaymentMethod is the resource-family discriminator stamped on every entity.
const BaseTypePaymentMethod = "PaymentMethod"

// validPaymentMethodTypes is the fixed TMF670 type enumeration, in the order
// used for error messages.
var validPaymentMethodTypes = []string{
	"BankCard",
	"BankAccountTransfer",
	"BankAccountDebit",
	"DigitalWallet",
	"Check",
	"Voucher",
	"Cash",
	"BucketPaymentMethod",
	"AccountPaymentMethod",
	"LoyaltyPaymentMethod",
}

// validStatuses is the payment method lifecycle status enumeration, in the order
// used for error messages.
var validStatuses = []string{"Active", "Inactive", "Suspended", "Expired", "Cancelled"}

// StatusActive is the default status assigned on create when the client sends none.
const StatusActive = "Active"

// IsValidPaymentMethodType reports whether t is one of the 10 fixed @type values.
func IsValidPaymentMethodType(t string) bool {
	for _, v := range validPaymentMethodTypes {
		if v == t {
			return true
		}
	}

	return false
}

// ValidPaymentMethodTypes returns the type enumeration in fixed order.
func ValidPaymentMethodTypes() []string {
	out := make([]string, len(validPaymentMethodTypes))
	copy(out, validPaymentMethodTypes)

	return out
}

// IsValidStatus reports whether s is a member of the status enumeration.
func IsValidStatus(s string) bool {
	for _, v := range validStatuses {
		if v == s {
			return true
		}
	}

	return false
}

// ValidStatuses returns the status enumeration in fixed order.
func ValidStatuses() []string {
	out := make([]string, len(validStatuses))
	copy(out, validStatuses)

	return out
}

// PaymentMethodDetails is the union of type-specific optional fields. Only the
// subset matching the entity's @type is semantically required; the rest stay
// empty and are omitted on the wire. Stored as a single jsonb document.
//
// `bank` is shared by the bank-account variants and Check, which is why the
// union is one flat struct rather than one embedded struct per variant
// (duplicate JSON keys across embedded structs would be dropped on marshal).
type PaymentMethodDetails struct {
	// BankCard
	CardNumber     string `json:"cardNumber,omitempty"`
	Brand          string `json:"brand,omitempty"`
	ExpirationDate string `json:"expirationDate,omitempty"`
	NameOnCard     string `json:"nameOnCard,omitempty"`

	// BankAccountTransfer / BankAccountDebit
	AccountNumber string `json:"accountNumber,omitempty"`
	Owner         string `json:"owner,omitempty"`
	Bank          string `json:"bank,omitempty"`

	// DigitalWallet
	Service  string `json:"service,omitempty"`
	WalletID string `json:"walletId,omitempty"`

	// Check
	CheckID    string `json:"checkId,omitempty"`
	Drawer     string `json:"drawer,omitempty"`
	Payee      string `json:"payee,omitempty"`
	SignedDate string `json:"signedDate,omitempty"`
}

// merge overlays non-empty patch fields onto d and returns the result.
// Empty patch values are treated as absent.
func (d PaymentMethodDetails) merge(patch PaymentMethodDetails) PaymentMethodDetails {
	overlay := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}

	overlay(&d.CardNumber, patch.CardNumber)
	overlay(&d.Brand, patch.Brand)
	overlay(&d.ExpirationDate, patch.ExpirationDate)
	overlay(&d.NameOnCard, patch.NameOnCard)
	overlay(&d.AccountNumber, patch.AccountNumber)
	overlay(&d.Owner, patch.Owner)
	overlay(&d.Bank, patch.Bank)
	overlay(&d.Service, patch.Service)
	overlay(&d.WalletID, patch.WalletID)
	overlay(&d.CheckID, patch.CheckID)
	overlay(&d.Drawer, patch.Drawer)
	overlay(&d.Payee, patch.Payee)
	overlay(&d.SignedDate, patch.SignedDate)

	return d
}

// IsEmpty reports whether no detail field is set.
func (d PaymentMethodDetails) IsEmpty() bool {
	return d == PaymentMethodDetails{}
}

// PaymentMethod is the stored entity plus the computed id/href fields.
// Href is derived from the configured base path at serialization time and is
// never persisted.
type PaymentMethod struct {
	ID          uuid.UUID `json:"id"`
	Href        string    `json:"href,omitempty"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"@type,omitempty"`
	BaseType    string    `json:"@baseType,omitempty"`
	Status      string    `json:"status,omitempty"`
	StatusDate  time.Time `json:"statusDate"`

	PaymentMethodDetails
}

// Merge returns a copy of pm with non-empty patch fields overlaid. Used to
// build the proposed post-update entity that validation runs against.
func (pm PaymentMethod) Merge(patch *UpdatePaymentMethodRequest) *PaymentMethod {
	merged := pm

	if patch.Name != "" {
		merged.Name = patch.Name
	}

	if patch.Description != "" {
		merged.Description = patch.Description
	}

	if patch.Type != "" {
		merged.Type = patch.Type
	}

	if patch.Status != "" {
		merged.Status = patch.Status
	}

	merged.PaymentMethodDetails = pm.PaymentMethodDetails.merge(patch.PaymentMethodDetails)

	return &merged
}

// Project returns the entity as a map restricted to the requested field names.
// id is always present; unknown field names are ignored. With no fields the
// full entity map is returned.
func (pm *PaymentMethod) Project(fields []string) (map[string]any, error) {
	raw, err := json.Marshal(pm)
	if err != nil {
		return nil, fmt.Errorf("marshal payment method: %w", err)
	}

	var full map[string]any
	if err := json.Unmarshal(raw, &full); err != nil {
		return nil, fmt.Errorf("unmarshal payment method: %w", err)
	}

	if len(fields) == 0 {
		return full, nil
	}

	out := map[string]any{"id": full["id"]}

	for _, f := range fields {
		if v, ok := full[f]; ok {
			out[f] = v
		}
	}

	return out, nil
}

// CreatePaymentMethodRequest is the POST /paymentMethod body. The server
// assigns id, href, @baseType and statusDate; status defaults to Active.
type CreatePaymentMethodRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"@type"`
	Status      string `json:"status,omitempty"`

	PaymentMethodDetails
}

// UpdatePaymentMethodRequest is the PATCH /paymentMethod/{id} body. All fields
// are optional; empty values are treated as absent.
type UpdatePaymentMethodRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"@type,omitempty"`
	Status      string `json:"status,omitempty"`

	PaymentMethodDetails
}

// IsEmpty reports whether the patch carries no fields at all.
func (r *UpdatePaymentMethodRequest) IsEmpty() bool {
	return r.Name == "" && r.Description == "" && r.Type == "" && r.Status == "" &&
		r.PaymentMethodDetails.IsEmpty()
}

// ListPaymentMethodsFilters represents the GET /paymentMethod query parameters:
// equality filters plus the optional field projection list.
type ListPaymentMethodsFilters struct {
	Status string `form:"status"`
	Type   string `form:"@type"`
	Name   string `form:"name"`
	Fields string `form:"fields"`
}

// FieldList splits the comma-separated fields parameter into trimmed names.
// Returns nil when no projection was requested.
func (f *ListPaymentMethodsFilters) FieldList() []string {
	if f.Fields == "" {
		return nil
	}

	parts := strings.Split(f.Fields, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			out = append(out, name)
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}
