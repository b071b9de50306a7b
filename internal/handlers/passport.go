package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"donation-campaign-platform/internal/models"
	"donation-campaign-platform/internal/services"
	"donation-campaign-platform/web/templates"
)

// PassportHandler handles the passport redemption dashboard
type PassportHandler struct {
	passports services.PassportServiceInterface
}

// NewPassportHandler creates a new passport handler
func NewPassportHandler(passports services.PassportServiceInterface) *PassportHandler {
	return &PassportHandler{passports: passports}
}

// PassportPage renders the passport dashboard: the stamp grid grouped by
// sponsor, the FAQ, and the reward-email confirmation banner. If ticket
// enrichment fails the grid renders empty rather than partial.
func (h *PassportHandler) PassportPage(w http.ResponseWriter, r *http.Request) {
	passportID := chi.URLParam(r, "id")

	tickets, err := h.passports.LoadPassport(r.Context(), passportID)
	if err != nil {
		log.Printf("Passport %s load failed: %v", passportID, err)
		tickets = nil
	}

	if r.Context().Err() != nil {
		return
	}

	data := templates.PassportPageData{
		PassportID: passportID,
		Rows:       models.BuildTicketRows(tickets, models.MinPassportRows),
		ShowFAQ:    r.URL.Query().Get("faq") != "",
		EmailSent:  r.URL.Query().Get("email_sent") != "",
	}

	if err := templates.Render(w, "passport.html", data); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// SendRedemptionEmail triggers the reward email and redirects back to the
// dashboard with the confirmation banner shown.
func (h *PassportHandler) SendRedemptionEmail(w http.ResponseWriter, r *http.Request) {
	passportID := chi.URLParam(r, "id")

	if err := h.passports.RequestRedemptionEmail(r.Context(), passportID); err != nil {
		log.Printf("Redemption email for passport %s failed: %v", passportID, err)
		http.Redirect(w, r, "/passport/"+passportID, http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/passport/"+passportID+"?email_sent=1", http.StatusSeeOther)
}
