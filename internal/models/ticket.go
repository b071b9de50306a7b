package models

import (
	"errors"
	"sort"
	"time"
)

const (
	// TicketsPerRow is the fixed capacity of a passport display row.
	TicketsPerRow = 3
	// MinPassportRows is the minimum number of rows the passport grid renders;
	// short results are padded with empty rows up to this count.
	MinPassportRows = 6
)

// Ticket represents one stamp/redemption opportunity in a passport. It is a
// read-only projection of server state; redemption happens server-side and is
// only visible after a re-fetch.
type Ticket struct {
	ID                    int        `json:"id"`
	TicketID              string     `json:"ticket_id"`
	ContactID             int        `json:"contact_id"`
	ParticipatingSellerID int        `json:"participating_seller_id"`
	SponsorSellerID       *int       `json:"sponsor_seller_id"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	RedeemedAt            *time.Time `json:"redeemed_at"`
	Expiration            *time.Time `json:"expiration"`

	// StampURL is filled in at read time from the participating seller record.
	StampURL string `json:"stamp_url"`
}

// Seller represents a participating merchant in the promotion.
type Seller struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	StampURL string `json:"stamp_url"`
}

// TicketRow is one passport display row holding up to TicketsPerRow tickets.
// An empty row is a padding row and carries no data.
type TicketRow []Ticket

// IsRedeemed reports whether the ticket has been redeemed.
func (t Ticket) IsRedeemed() bool {
	return t.RedeemedAt != nil
}

// IsSponsored reports whether a sponsoring seller backs this ticket.
func (t Ticket) IsSponsored() bool {
	return t.SponsorSellerID != nil
}

// redeemedTime returns the redemption time for ordering purposes; unredeemed
// tickets sort as the earliest possible time.
func (t Ticket) redeemedTime() time.Time {
	if t.RedeemedAt == nil {
		return time.Time{}
	}
	return *t.RedeemedAt
}

// Validate validates the ticket data
func (t *Ticket) Validate() error {
	if t.ParticipatingSellerID <= 0 {
		return errors.New("ticket must reference a participating seller")
	}
	if t.SponsorSellerID != nil && *t.SponsorSellerID <= 0 {
		return errors.New("sponsor seller id must be positive when set")
	}
	if t.RedeemedAt != nil && t.RedeemedAt.Before(t.CreatedAt) {
		return errors.New("ticket cannot be redeemed before it was created")
	}
	return nil
}

// Validate validates the seller data
func (s *Seller) Validate() error {
	if s.ID <= 0 {
		return errors.New("seller id is required")
	}
	if s.Name == "" {
		return errors.New("seller name is required")
	}
	return nil
}

// BuildTicketRows transforms a flat ticket list into ordered passport rows.
//
// Tickets are grouped by sponsoring seller, groups ordered by sponsor id
// descending with unsponsored tickets last. Within a group, tickets are
// ordered by redemption time descending; unredeemed tickets sort last. Rows
// hold up to TicketsPerRow tickets and the final row of each group may be
// short. If fewer than minRows real rows are produced, empty padding rows are
// appended; pass 0 to disable padding. The input is never mutated.
func BuildTicketRows(tickets []Ticket, minRows int) []TicketRow {
	groups := make(map[int][]Ticket)
	var ungrouped []Ticket
	for _, t := range tickets {
		if t.SponsorSellerID == nil {
			ungrouped = append(ungrouped, t)
			continue
		}
		groups[*t.SponsorSellerID] = append(groups[*t.SponsorSellerID], t)
	}

	sponsorIDs := make([]int, 0, len(groups))
	for id := range groups {
		sponsorIDs = append(sponsorIDs, id)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sponsorIDs)))

	rows := []TicketRow{}
	for _, id := range sponsorIDs {
		rows = appendGroupRows(rows, groups[id])
	}
	rows = appendGroupRows(rows, ungrouped)

	for len(rows) < minRows {
		rows = append(rows, TicketRow{})
	}
	return rows
}

// appendGroupRows sorts one sponsor group by recency and chunks it into rows.
func appendGroupRows(rows []TicketRow, group []Ticket) []TicketRow {
	sorted := make([]Ticket, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].redeemedTime(), sorted[j].redeemedTime()
		if !a.Equal(b) {
			return a.After(b)
		}
		// Deterministic tie-break so equal redemption times render stably.
		return sorted[i].ID < sorted[j].ID
	})

	for len(sorted) > 0 {
		n := len(sorted)
		if n > TicketsPerRow {
			n = TicketsPerRow
		}
		rows = append(rows, TicketRow(sorted[:n]))
		sorted = sorted[n:]
	}
	return rows
}

// CountTickets returns the number of real tickets across rows, ignoring
// padding rows.
func CountTickets(rows []TicketRow) int {
	total := 0
	for _, row := range rows {
		total += len(row)
	}
	return total
}
