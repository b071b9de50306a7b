package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"donation-campaign-platform/internal/models"
)

// PassportService loads a passport's tickets and enriches them with seller
// stamp metadata.
type PassportService struct {
	api CampaignAPIInterface
}

// NewPassportService creates a new passport service
func NewPassportService(api CampaignAPIInterface) *PassportService {
	return &PassportService{api: api}
}

// LoadPassport fetches the passport's tickets and stamps each one with its
// participating seller's stamp URL. Seller lookups fan out concurrently, one
// per ticket, and join all-or-nothing: if any lookup fails the whole load
// fails and no partial result is returned, so callers keep whatever they were
// already displaying.
func (s *PassportService) LoadPassport(ctx context.Context, passportID string) ([]models.Ticket, error) {
	tickets, err := s.api.GetPassportTickets(ctx, passportID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch passport tickets: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	enriched := make([]models.Ticket, len(tickets))
	for i, ticket := range tickets {
		i, ticket := i, ticket
		g.Go(func() error {
			seller, err := s.api.GetParticipatingSeller(ctx, ticket.ParticipatingSellerID)
			if err != nil {
				return fmt.Errorf("failed to fetch seller %d for ticket %d: %w", ticket.ParticipatingSellerID, ticket.ID, err)
			}
			ticket.StampURL = seller.StampURL
			enriched[i] = ticket
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return enriched, nil
}

// RequestRedemptionEmail triggers the reward email for a passport.
func (s *PassportService) RequestRedemptionEmail(ctx context.Context, passportID string) error {
	if err := s.api.SendRedemptionEmail(ctx, passportID); err != nil {
		return fmt.Errorf("failed to request redemption email: %w", err)
	}
	return nil
}
