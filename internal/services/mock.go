package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"donation-campaign-platform/internal/models"
)

// MockCampaignAPI is a testify mock of the campaign backend client.
type MockCampaignAPI struct {
	mock.Mock
}

func (m *MockCampaignAPI) GetProject(ctx context.Context, projectID int) (*models.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockCampaignAPI) GetPassportTickets(ctx context.Context, passportID string) ([]models.Ticket, error) {
	args := m.Called(ctx, passportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ticket), args.Error(1)
}

func (m *MockCampaignAPI) GetParticipatingSeller(ctx context.Context, sellerID int) (*models.Seller, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Seller), args.Error(1)
}

func (m *MockCampaignAPI) SendRedemptionEmail(ctx context.Context, passportID string) error {
	args := m.Called(ctx, passportID)
	return args.Error(0)
}

func (m *MockCampaignAPI) SubmitPayment(ctx context.Context, nonce, sellerID string, payment PaymentParams, buyer Buyer, isDistribution bool) (*PaymentOutcome, error) {
	args := m.Called(ctx, nonce, sellerID, payment, buyer, isDistribution)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PaymentOutcome), args.Error(1)
}

// MockPassportService is a testify mock of the passport service.
type MockPassportService struct {
	mock.Mock
}

func (m *MockPassportService) LoadPassport(ctx context.Context, passportID string) ([]models.Ticket, error) {
	args := m.Called(ctx, passportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ticket), args.Error(1)
}

func (m *MockPassportService) RequestRedemptionEmail(ctx context.Context, passportID string) error {
	args := m.Called(ctx, passportID)
	return args.Error(0)
}
