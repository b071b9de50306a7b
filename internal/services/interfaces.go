package services

import (
	"context"

	"donation-campaign-platform/internal/models"
)

// CampaignAPIInterface defines the operations consumed from the remote
// campaign backend. All durable state lives behind this interface.
type CampaignAPIInterface interface {
	GetProject(ctx context.Context, projectID int) (*models.Project, error)
	GetPassportTickets(ctx context.Context, passportID string) ([]models.Ticket, error)
	GetParticipatingSeller(ctx context.Context, sellerID int) (*models.Seller, error)
	SendRedemptionEmail(ctx context.Context, passportID string) error
	SubmitPayment(ctx context.Context, nonce, sellerID string, payment PaymentParams, buyer Buyer, isDistribution bool) (*PaymentOutcome, error)
}

// PassportServiceInterface defines the interface for passport services
type PassportServiceInterface interface {
	LoadPassport(ctx context.Context, passportID string) ([]models.Ticket, error)
	RequestRedemptionEmail(ctx context.Context, passportID string) error
}

// CheckoutServiceInterface defines the interface for checkout services
type CheckoutServiceInterface interface {
	SubmitPayment(ctx context.Context, session models.CheckoutSession, nonce string) models.CheckoutSession
}
