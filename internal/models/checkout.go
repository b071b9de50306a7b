package models

import (
	"fmt"
	"math"
	"regexp"
)

// CheckoutStep identifies which view of the checkout flow is active.
type CheckoutStep int

const (
	StepClosed CheckoutStep = iota
	StepAmountSelection
	StepBilling
	StepPayment
	StepConfirmation
)

// String returns a human-readable step name for logging and templates.
func (s CheckoutStep) String() string {
	switch s {
	case StepClosed:
		return "closed"
	case StepAmountSelection:
		return "amount"
	case StepBilling:
		return "billing"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

// PurchaseType distinguishes what the buyer is paying for.
type PurchaseType string

const (
	PurchaseDonation PurchaseType = "donation"
	PurchaseGiftCard PurchaseType = "gift_card"
	PurchaseBuyMeal  PurchaseType = "buy_meal"
)

// emailPattern matches the address format required before a payment may be
// submitted. Deliberately loose; real verification is the mail server's job.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CheckoutSession holds all state shared across the checkout steps. It is a
// value type: the reducer returns updated copies rather than mutating shared
// state in place.
type CheckoutSession struct {
	Step         CheckoutStep
	PurchaseType PurchaseType

	SellerID    string
	SellerName  string
	CostPerMeal float64

	Amount  float64 // display units (dollars)
	Name    string
	Email   string
	Address string
	City    string
	State   string
	ZipCode string

	TermsAccepted bool
	Subscribed    bool

	IdempotencyKey string
	Errors         []string
}

// NewCheckoutSession returns a session with all fields at their defaults.
// Subscription opt-in defaults to true; everything else is zero.
func NewCheckoutSession() CheckoutSession {
	return CheckoutSession{
		Step:         StepClosed,
		PurchaseType: PurchaseDonation,
		Subscribed:   true,
	}
}

// CanSubmit reports whether the terminal payment submission is allowed.
// Subscription opt-in never gates submission.
func (s CheckoutSession) CanSubmit() bool {
	return s.TermsAccepted &&
		s.Name != "" &&
		s.Email != "" &&
		emailPattern.MatchString(s.Email)
}

// AmountInCents converts the displayed amount to minor currency units.
func (s CheckoutSession) AmountInCents() int {
	return int(math.Round(s.Amount * 100))
}

// PurchaseTypePhrase returns the human phrase for the purchase type.
func (s CheckoutSession) PurchaseTypePhrase(lowercase bool) string {
	switch s.PurchaseType {
	case PurchaseGiftCard:
		if lowercase {
			return "voucher purchase"
		}
		return "Voucher purchase"
	case PurchaseBuyMeal:
		return "Gift a Meal purchase"
	case PurchaseDonation:
		fallthrough
	default:
		if lowercase {
			return "donation"
		}
		return "Donation"
	}
}

// MealCount returns how many meals the current amount buys. Only meaningful
// for the buy_meal purchase type.
func (s CheckoutSession) MealCount() int {
	if s.CostPerMeal <= 0 {
		return 0
	}
	return int(s.Amount / s.CostPerMeal)
}

// MealCountText returns the parenthesized meal summary shown next to the
// amount, or an empty string for non-meal purchases.
func (s CheckoutSession) MealCountText() string {
	if s.PurchaseType != PurchaseBuyMeal {
		return ""
	}
	count := s.MealCount()
	label := "meal"
	if count > 1 {
		label = "meals"
	}
	return fmt.Sprintf("(%d %s)", count, label)
}
