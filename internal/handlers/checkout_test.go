package handlers

import (
	"encoding/gob"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"donation-campaign-platform/internal/config"
	"donation-campaign-platform/internal/models"
	"donation-campaign-platform/internal/services"
)

func init() {
	gob.Register(models.CheckoutSession{})
}

// checkoutEnv drives the checkout routes like a browser would, carrying the
// session cookie from response to request.
type checkoutEnv struct {
	api     *services.MockCampaignAPI
	router  chi.Router
	cookies []*http.Cookie
}

func newCheckoutEnv() *checkoutEnv {
	api := new(services.MockCampaignAPI)
	handler := NewCheckoutHandler(
		services.NewCheckoutService(api),
		sessions.NewCookieStore([]byte("test-session-secret")),
		config.SquareConfig{ApplicationID: "sq-app", LocationID: "sq-loc", Environment: "sandbox"},
		config.CampaignConfig{CostPerMeal: 10},
	)

	r := chi.NewRouter()
	r.Get("/checkout", handler.CheckoutPage)
	r.Post("/checkout/open", handler.Open)
	r.Post("/checkout/field", handler.Field)
	r.Post("/checkout/advance", handler.Advance)
	r.Post("/checkout/back", handler.Back)
	r.Post("/checkout/close", handler.Close)
	r.Post("/checkout/submit", handler.Submit)

	return &checkoutEnv{api: api, router: r}
}

func (e *checkoutEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	if set := rec.Result().Cookies(); len(set) > 0 {
		e.cookies = set
	}
	return rec
}

func (e *checkoutEnv) post(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req)
}

func (e *checkoutEnv) setField(t *testing.T, field, value string) {
	t.Helper()
	rec := e.post(t, "/checkout/field", url.Values{"field": {field}, "value": {value}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
}

// page fetches the checkout view for the current session state.
func (e *checkoutEnv) page(t *testing.T) string {
	t.Helper()
	rec := e.do(t, httptest.NewRequest(http.MethodGet, "/checkout", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestCheckoutHandler_OpenShowsAmountStep(t *testing.T) {
	env := newCheckoutEnv()

	rec := env.post(t, "/checkout/open", url.Values{"purchase_type": {"donation"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/checkout", rec.Header().Get("Location"))

	body := env.page(t)
	assert.Contains(t, body, "Choose an amount")
	assert.Contains(t, body, "Complete your donation")
	assert.Contains(t, body, "sandbox.web.squarecdn.com")
}

func TestCheckoutHandler_OpenWithPresetAmount(t *testing.T) {
	env := newCheckoutEnv()

	env.post(t, "/checkout/open", url.Values{"purchase_type": {"donation"}, "amount": {"45"}})

	assert.Contains(t, env.page(t), `value="45"`)
}

func TestCheckoutHandler_OpenUnknownPurchaseTypeDefaultsToDonation(t *testing.T) {
	env := newCheckoutEnv()

	env.post(t, "/checkout/open", url.Values{"purchase_type": {"lottery_ticket"}})

	assert.Contains(t, env.page(t), "Complete your donation")
}

func TestCheckoutHandler_AdvanceAndBack(t *testing.T) {
	env := newCheckoutEnv()
	env.post(t, "/checkout/open", url.Values{"purchase_type": {"donation"}})

	env.post(t, "/checkout/advance", nil)
	assert.Contains(t, env.page(t), "Please add your billing information")

	env.post(t, "/checkout/back", nil)
	assert.Contains(t, env.page(t), "Choose an amount")
}

func TestCheckoutHandler_FieldsSurviveSteps(t *testing.T) {
	env := newCheckoutEnv()
	env.post(t, "/checkout/open", url.Values{"purchase_type": {"donation"}})
	env.post(t, "/checkout/advance", nil)

	env.setField(t, "name", "Ada Wong")
	env.setField(t, "email", "ada@example.com")
	env.post(t, "/checkout/back", nil)
	env.post(t, "/checkout/advance", nil)

	body := env.page(t)
	assert.Contains(t, body, `value="Ada Wong"`)
	assert.Contains(t, body, `value="ada@example.com"`)
}

func TestCheckoutHandler_SubmitSuccess(t *testing.T) {
	env := newCheckoutEnv()
	env.api.On("SubmitPayment", mock.Anything, "card-nonce", "seller-46",
		mock.AnythingOfType("services.PaymentParams"),
		mock.AnythingOfType("services.Buyer"),
		false,
	).Return(&services.PaymentOutcome{OK: true}, nil)

	env.post(t, "/checkout/open", url.Values{
		"purchase_type": {"donation"},
		"seller_id":     {"seller-46"},
		"seller_name":   {"46 Mott Bakery"},
		"amount":        {"30"},
	})
	env.setField(t, "name", "Ada Wong")
	env.setField(t, "email", "ada@example.com")
	env.setField(t, "terms_accepted", "true")
	env.post(t, "/checkout/advance", nil)
	env.post(t, "/checkout/advance", nil)

	rec := env.post(t, "/checkout/submit", url.Values{"nonce": {"card-nonce"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	body := env.page(t)
	assert.Contains(t, body, "Thank you for your support!")
	assert.Contains(t, body, "46 Mott Bakery")
	env.api.AssertExpectations(t)
}

func TestCheckoutHandler_SubmitDeclineStaysOnPayment(t *testing.T) {
	env := newCheckoutEnv()
	env.api.On("SubmitPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&services.PaymentOutcome{OK: false, Errors: []models.ErrorDetail{
			{Code: "CARD_DECLINED", Detail: "raw processor text"},
		}}, nil)

	env.post(t, "/checkout/open", url.Values{"purchase_type": {"donation"}, "amount": {"30"}})
	env.setField(t, "name", "Ada Wong")
	env.setField(t, "email", "ada@example.com")
	env.setField(t, "terms_accepted", "true")
	env.post(t, "/checkout/advance", nil)
	env.post(t, "/checkout/advance", nil)

	env.post(t, "/checkout/submit", url.Values{"nonce": {"card-nonce"}})

	body := env.page(t)
	assert.Contains(t, body, "Please add your payment information")
	assert.Contains(t, body, "Your card was declined. Please try a different card.")
}

func TestCheckoutHandler_SubmitWithoutOpenCheckoutIsNoOp(t *testing.T) {
	env := newCheckoutEnv()

	rec := env.post(t, "/checkout/submit", url.Values{"nonce": {"card-nonce"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	env.api.AssertNotCalled(t, "SubmitPayment")
}

func TestCheckoutHandler_CloseRedirectsHome(t *testing.T) {
	env := newCheckoutEnv()
	env.post(t, "/checkout/open", url.Values{"purchase_type": {"buy_meal"}})

	rec := env.post(t, "/checkout/close", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// The flow is closed; no step view renders until the next open.
	body := env.page(t)
	assert.NotContains(t, body, "Choose an amount")
}
