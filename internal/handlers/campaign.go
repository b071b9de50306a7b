package handlers

import (
	"log"
	"net/http"
	"time"

	"donation-campaign-platform/internal/config"
	"donation-campaign-platform/internal/models"
	"donation-campaign-platform/internal/services"
	"donation-campaign-platform/web/templates"
)

// donationTiers are the preset donation amounts offered on the landing page.
var donationTiers = []int{45, 150}

// CampaignHandler handles the campaign landing page
type CampaignHandler struct {
	api      services.CampaignAPIInterface
	campaign config.CampaignConfig
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(api services.CampaignAPIInterface, campaign config.CampaignConfig) *CampaignHandler {
	return &CampaignHandler{
		api:      api,
		campaign: campaign,
	}
}

// CampaignPage renders the campaign landing page with donation progress. A
// failed project fetch renders the page with zero progress rather than an
// error; the campaign content is still useful without the running total.
func (h *CampaignHandler) CampaignPage(w http.ResponseWriter, r *http.Request) {
	project := &models.Project{}
	fetched, err := h.api.GetProject(r.Context(), h.campaign.ProjectID)
	if err != nil {
		log.Printf("Failed to load project %d: %v", h.campaign.ProjectID, err)
	} else {
		project = fetched
	}

	// The client may have gone away while we were fetching.
	if r.Context().Err() != nil {
		return
	}

	data := templates.CampaignPageData{
		AmountRaised:  project.AmountRaised,
		GoalAmount:    h.campaign.GoalAmount,
		PercentRaised: project.PercentRaised(h.campaign.GoalAmount),
		DaysUntilEnd:  models.DaysUntil(h.campaign.EndDate, time.Now()),
		DonationTiers: donationTiers,
	}

	if err := templates.Render(w, "campaign.html", data); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
