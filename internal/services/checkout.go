package services

import (
	"context"
	"log"
	"strconv"

	"github.com/google/uuid"

	"donation-campaign-platform/internal/models"
)

// ActionType identifies a checkout state transition.
type ActionType string

const (
	OpenCheckout  ActionType = "open"
	SetField      ActionType = "set_field"
	Advance       ActionType = "advance"
	Retreat       ActionType = "retreat"
	CloseCheckout ActionType = "close"
)

// SessionField identifies one settable checkout session field.
type SessionField string

const (
	FieldAmount    SessionField = "amount"
	FieldName      SessionField = "name"
	FieldEmail     SessionField = "email"
	FieldAddress   SessionField = "address"
	FieldCity      SessionField = "city"
	FieldState     SessionField = "state"
	FieldZipCode   SessionField = "zip_code"
	FieldTerms     SessionField = "terms_accepted"
	FieldSubscribe SessionField = "subscribed"
)

// CheckoutContext captures the campaign/seller the checkout was opened for.
type CheckoutContext struct {
	PurchaseType models.PurchaseType
	SellerID     string
	SellerName   string
	CostPerMeal  float64
	// Step optionally opens directly at a specific step; zero (StepClosed)
	// means the default first step.
	Step models.CheckoutStep
}

// Action is one dispatched checkout event. Exactly one of the payload fields
// is meaningful depending on Type.
type Action struct {
	Type    ActionType
	Field   SessionField
	Value   string
	Context CheckoutContext
}

// Reduce applies an action to a checkout session and returns the resulting
// session. It is the single pure transition function for the checkout flow;
// payment submission is the only transition that lives outside it because it
// performs network IO.
func Reduce(session models.CheckoutSession, action Action) models.CheckoutSession {
	switch action.Type {
	case OpenCheckout:
		opened := models.NewCheckoutSession()
		opened.Step = models.StepAmountSelection
		if action.Context.Step != models.StepClosed {
			opened.Step = action.Context.Step
		}
		if action.Context.PurchaseType != "" {
			opened.PurchaseType = action.Context.PurchaseType
		}
		opened.SellerID = action.Context.SellerID
		opened.SellerName = action.Context.SellerName
		opened.CostPerMeal = action.Context.CostPerMeal
		opened.IdempotencyKey = uuid.New().String()
		return opened

	case SetField:
		return setField(session, action.Field, action.Value)

	case Advance:
		// The forward transition is never blocked; only the terminal submit
		// is gated by CanSubmit. Confirmation is reachable only through a
		// successful payment.
		if session.Step >= models.StepAmountSelection && session.Step < models.StepPayment {
			session.Step++
		}
		return session

	case Retreat:
		// Always permitted; already-entered fields survive going back.
		if session.Step > models.StepAmountSelection && session.Step <= models.StepPayment {
			session.Step--
		}
		return session

	case CloseCheckout:
		return models.NewCheckoutSession()

	default:
		return session
	}
}

// setField updates exactly one session field. Cross-field validation is
// deferred to submission gating.
func setField(session models.CheckoutSession, field SessionField, value string) models.CheckoutSession {
	switch field {
	case FieldAmount:
		if amount, err := strconv.ParseFloat(value, 64); err == nil && amount >= 0 {
			session.Amount = amount
		}
	case FieldName:
		session.Name = value
	case FieldEmail:
		session.Email = value
	case FieldAddress:
		session.Address = value
	case FieldCity:
		session.City = value
	case FieldState:
		session.State = value
	case FieldZipCode:
		session.ZipCode = value
	case FieldTerms:
		session.TermsAccepted = value == "true" || value == "on"
	case FieldSubscribe:
		session.Subscribed = value == "true" || value == "on"
	}
	return session
}

// squareErrorMessages maps known payment-processor error codes to user-facing
// messages. Unmapped codes fall back to the raw detail text from the server.
var squareErrorMessages = map[string]string{
	"CARD_DECLINED":                "Your card was declined. Please try a different card.",
	"CARD_DECLINED_CALL_ISSUER":    "Your card was declined. Please contact your card issuer for more information.",
	"CARD_EXPIRED":                 "This card is expired. Please use a different card.",
	"INVALID_EXPIRATION":           "The expiration date entered is invalid.",
	"CVV_FAILURE":                  "The CVV entered does not match the card.",
	"VERIFY_CVV_FAILURE":           "The CVV entered does not match the card.",
	"VERIFY_AVS_FAILURE":           "The postal code entered does not match the card's billing address.",
	"ADDRESS_VERIFICATION_FAILURE": "The postal code entered does not match the card's billing address.",
	"INSUFFICIENT_FUNDS":           "The card has insufficient funds to complete this payment.",
	"INVALID_CARD_DATA":            "The card details entered are invalid. Please check them and try again.",
	"GENERIC_DECLINE":              "Your payment could not be processed. Please try again.",
}

// MapErrorDetails converts processor error details into display messages.
func MapErrorDetails(details []models.ErrorDetail) []string {
	messages := make([]string, 0, len(details))
	for _, detail := range details {
		if message, ok := squareErrorMessages[detail.Code]; ok {
			messages = append(messages, message)
		} else {
			messages = append(messages, detail.Detail)
		}
	}
	return messages
}

// CheckoutService coordinates the checkout flow against the campaign backend.
type CheckoutService struct {
	api CampaignAPIInterface
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(api CampaignAPIInterface) *CheckoutService {
	return &CheckoutService{api: api}
}

// SubmitPayment submits the tokenized card payment described by the session.
// Valid only from the payment step; any other step is returned unchanged. On
// success the session moves to confirmation with its fields reset; on failure
// it stays on the payment step with the error list populated. Failures never
// propagate past this boundary.
func (s *CheckoutService) SubmitPayment(ctx context.Context, session models.CheckoutSession, nonce string) models.CheckoutSession {
	if session.Step != models.StepPayment {
		return session
	}
	session.Errors = nil
	if !session.CanSubmit() {
		session.Errors = []string{"Please accept the terms and enter a valid name and email before submitting."}
		return session
	}

	// A gift-a-meal purchase is still represented as a gift card on the wire.
	itemType := string(session.PurchaseType)
	if session.PurchaseType == models.PurchaseBuyMeal {
		itemType = string(models.PurchaseGiftCard)
	}

	payment := PaymentParams{
		Amount:   session.AmountInCents(),
		Currency: "usd",
		ItemType: itemType,
		Quantity: 1,
	}
	buyer := Buyer{
		Name:           session.Name,
		Email:          session.Email,
		Nonce:          nonce,
		IdempotencyKey: session.IdempotencyKey,
		IsSubscribed:   session.Subscribed,
	}
	isDistribution := session.PurchaseType == models.PurchaseBuyMeal

	outcome, err := s.api.SubmitPayment(ctx, nonce, session.SellerID, payment, buyer, isDistribution)
	if err != nil {
		log.Printf("Payment submission failed for seller %s: %v", session.SellerID, err)
		session.Errors = MapErrorDetails([]models.ErrorDetail{{Code: models.GenericDeclineCode}})
		return session
	}
	if !outcome.OK {
		session.Errors = MapErrorDetails(outcome.Errors)
		return session
	}

	confirmed := models.NewCheckoutSession()
	confirmed.Step = models.StepConfirmation
	confirmed.PurchaseType = session.PurchaseType
	confirmed.SellerName = session.SellerName
	return confirmed
}
