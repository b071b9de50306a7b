package templates

import "donation-campaign-platform/internal/models"

// CampaignPageData feeds the campaign landing page.
type CampaignPageData struct {
	AmountRaised  int // cents
	GoalAmount    int // cents
	PercentRaised int
	DaysUntilEnd  int
	DonationTiers []int // display units
}

// PassportPageData feeds the passport dashboard.
type PassportPageData struct {
	PassportID string
	Rows       []models.TicketRow
	ShowFAQ    bool
	EmailSent  bool
}

// CheckoutPageData feeds the checkout flow page.
type CheckoutPageData struct {
	Session             models.CheckoutSession
	SquareApplicationID string
	SquareLocationID    string
	SquareSandbox       bool
}
