package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"donation-campaign-platform/internal/config"
	"donation-campaign-platform/internal/models"
	"donation-campaign-platform/internal/services"
	"donation-campaign-platform/web/templates"
)

const checkoutSessionKey = "checkout"

// CheckoutHandler drives the multi-step checkout flow. The checkout session
// lives in the cookie session between steps; every mutation goes through the
// reducer so the handler itself holds no flow logic.
type CheckoutHandler struct {
	checkout services.CheckoutServiceInterface
	store    sessions.Store
	square   config.SquareConfig
	campaign config.CampaignConfig
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout services.CheckoutServiceInterface, store sessions.Store, square config.SquareConfig, campaign config.CampaignConfig) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		store:    store,
		square:   square,
		campaign: campaign,
	}
}

// CheckoutPage renders the view for the current checkout step.
func (h *CheckoutHandler) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	session := h.loadSession(r)

	data := templates.CheckoutPageData{
		Session:             session,
		SquareApplicationID: h.square.ApplicationID,
		SquareLocationID:    h.square.LocationID,
		SquareSandbox:       h.square.IsSandbox(),
	}

	if err := templates.Render(w, "checkout.html", data); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// Open starts a fresh checkout for the requested purchase type and seller.
func (h *CheckoutHandler) Open(w http.ResponseWriter, r *http.Request) {
	purchaseType := models.PurchaseType(r.FormValue("purchase_type"))
	switch purchaseType {
	case models.PurchaseDonation, models.PurchaseGiftCard, models.PurchaseBuyMeal:
	default:
		purchaseType = models.PurchaseDonation
	}

	sellerID := r.FormValue("seller_id")
	if sellerID == "" {
		sellerID = "light-up-chinatown"
	}
	sellerName := r.FormValue("seller_name")
	if sellerName == "" {
		sellerName = "Light Up Chinatown"
	}

	session := services.Reduce(models.NewCheckoutSession(), services.Action{
		Type: services.OpenCheckout,
		Context: services.CheckoutContext{
			PurchaseType: purchaseType,
			SellerID:     sellerID,
			SellerName:   sellerName,
			CostPerMeal:  h.campaign.CostPerMeal,
		},
	})

	// Preset tier buttons open the checkout with an amount already chosen.
	if amount := r.FormValue("amount"); amount != "" {
		session = services.Reduce(session, services.Action{
			Type:  services.SetField,
			Field: services.FieldAmount,
			Value: amount,
		})
	}

	h.saveAndRedirect(w, r, session)
}

// Field applies a single field update to the checkout session.
func (h *CheckoutHandler) Field(w http.ResponseWriter, r *http.Request) {
	session := services.Reduce(h.loadSession(r), services.Action{
		Type:  services.SetField,
		Field: services.SessionField(r.FormValue("field")),
		Value: r.FormValue("value"),
	})
	h.saveAndRedirect(w, r, session)
}

// Advance moves the checkout to the next step.
func (h *CheckoutHandler) Advance(w http.ResponseWriter, r *http.Request) {
	session := services.Reduce(h.loadSession(r), services.Action{Type: services.Advance})
	h.saveAndRedirect(w, r, session)
}

// Back moves the checkout to the previous step, keeping entered fields.
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	session := services.Reduce(h.loadSession(r), services.Action{Type: services.Retreat})
	h.saveAndRedirect(w, r, session)
}

// Close abandons the checkout and resets all session fields.
func (h *CheckoutHandler) Close(w http.ResponseWriter, r *http.Request) {
	session := services.Reduce(h.loadSession(r), services.Action{Type: services.CloseCheckout})
	if err := h.saveSession(w, r, session); err != nil {
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Submit forwards the tokenized card nonce to the payment submission path.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	nonce := r.FormValue("nonce")
	session := h.checkout.SubmitPayment(r.Context(), h.loadSession(r), nonce)
	h.saveAndRedirect(w, r, session)
}

// loadSession reads the checkout session from the cookie session, falling
// back to a fresh one.
func (h *CheckoutHandler) loadSession(r *http.Request) models.CheckoutSession {
	cookieSession, err := h.store.Get(r, "session")
	if err != nil {
		return models.NewCheckoutSession()
	}
	if session, ok := cookieSession.Values[checkoutSessionKey].(models.CheckoutSession); ok {
		return session
	}
	return models.NewCheckoutSession()
}

func (h *CheckoutHandler) saveSession(w http.ResponseWriter, r *http.Request, session models.CheckoutSession) error {
	cookieSession, err := h.store.Get(r, "session")
	if err != nil {
		// A stale or tampered cookie still yields a usable new session.
		log.Printf("Checkout session decode failed: %v", err)
	}
	cookieSession.Values[checkoutSessionKey] = session
	return cookieSession.Save(r, w)
}

func (h *CheckoutHandler) saveAndRedirect(w http.ResponseWriter, r *http.Request, session models.CheckoutSession) {
	if err := h.saveSession(w, r, session); err != nil {
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/checkout", http.StatusSeeOther)
}
