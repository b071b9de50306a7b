package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"donation-campaign-platform/internal/models"
)

// CampaignAPIConfig represents campaign backend client configuration
type CampaignAPIConfig struct {
	BaseURL string
	Timeout time.Duration
	// SandboxPayments routes charges to the sandbox payment endpoint. It
	// affects payment submission only.
	SandboxPayments bool
}

// CampaignAPIService is the HTTP client for the remote campaign backend. It
// validates and normalizes every payload at this boundary so downstream code
// never inspects transport response shapes.
type CampaignAPIService struct {
	config CampaignAPIConfig
	client *http.Client
}

// NewCampaignAPIService creates a new campaign backend client
func NewCampaignAPIService(config CampaignAPIConfig) *CampaignAPIService {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &CampaignAPIService{
		config: config,
		client: &http.Client{Timeout: timeout},
	}
}

// PaymentParams describes the charge itself, in minor currency units.
type PaymentParams struct {
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	ItemType string `json:"item_type"`
	Quantity int    `json:"quantity"`
}

// Buyer carries the purchaser's contact info and the tokenized card nonce.
type Buyer struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Nonce          string `json:"nonce"`
	IdempotencyKey string `json:"idempotency_key"`
	IsSubscribed   bool   `json:"is_subscribed"`
}

// PaymentOutcome is the normalized result of a payment submission: either OK,
// or a list of processor error details.
type PaymentOutcome struct {
	OK     bool
	Errors []models.ErrorDetail
}

type projectEnvelope struct {
	Data models.Project `json:"data"`
}

type ticketsEnvelope struct {
	Data []models.Ticket `json:"data"`
}

type sellerEnvelope struct {
	Data models.Seller `json:"data"`
}

type paymentRequest struct {
	SellerID       string        `json:"seller_id"`
	Nonce          string        `json:"nonce"`
	IsDistribution bool          `json:"is_distribution"`
	Payment        PaymentParams `json:"payment"`
	Buyer          Buyer         `json:"buyer"`
}

type paymentErrorBody struct {
	Errors  []models.ErrorDetail `json:"errors"`
	Message string               `json:"message"`
}

// GetProject fetches a fundraising project's status
func (s *CampaignAPIService) GetProject(ctx context.Context, projectID int) (*models.Project, error) {
	var envelope projectEnvelope
	url := fmt.Sprintf("%s/projects/%d", s.config.BaseURL, projectID)
	if err := s.getJSON(ctx, url, &envelope, models.ErrProjectNotFound); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// GetPassportTickets fetches the ticket list for a passport
func (s *CampaignAPIService) GetPassportTickets(ctx context.Context, passportID string) ([]models.Ticket, error) {
	var envelope ticketsEnvelope
	url := fmt.Sprintf("%s/passports/%s/tickets", s.config.BaseURL, passportID)
	if err := s.getJSON(ctx, url, &envelope, models.ErrPassportNotFound); err != nil {
		return nil, err
	}
	for i := range envelope.Data {
		if err := envelope.Data[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid ticket %d in passport %s: %w", envelope.Data[i].ID, passportID, err)
		}
	}
	return envelope.Data, nil
}

// GetParticipatingSeller fetches a participating seller by id
func (s *CampaignAPIService) GetParticipatingSeller(ctx context.Context, sellerID int) (*models.Seller, error) {
	var envelope sellerEnvelope
	url := fmt.Sprintf("%s/sellers/%d", s.config.BaseURL, sellerID)
	if err := s.getJSON(ctx, url, &envelope, models.ErrSellerNotFound); err != nil {
		return nil, err
	}
	if err := envelope.Data.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seller %d: %w", sellerID, err)
	}
	return &envelope.Data, nil
}

// SendRedemptionEmail asks the backend to email the passport holder a link to
// their available rewards.
func (s *CampaignAPIService) SendRedemptionEmail(ctx context.Context, passportID string) error {
	url := fmt.Sprintf("%s/passports/%s/redemption_email", s.config.BaseURL, passportID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create redemption email request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send redemption email request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return models.ErrPassportNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("redemption email request failed with status %d", resp.StatusCode)
	}
	return nil
}

// SubmitPayment submits a tokenized card payment for a seller. A 2xx response
// yields an OK outcome. A rejection with a structured error list yields those
// details; a rejection with only a message field yields one synthetic generic
// decline. Transport failures are returned as errors for the caller to
// convert.
func (s *CampaignAPIService) SubmitPayment(ctx context.Context, nonce, sellerID string, payment PaymentParams, buyer Buyer, isDistribution bool) (*PaymentOutcome, error) {
	body, err := json.Marshal(paymentRequest{
		SellerID:       sellerID,
		Nonce:          nonce,
		IsDistribution: isDistribution,
		Payment:        payment,
		Buyer:          buyer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment request: %w", err)
	}

	url := s.config.BaseURL + "/charges"
	if s.config.SandboxPayments {
		url = s.config.BaseURL + "/charges/sandbox"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send payment request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return &PaymentOutcome{OK: true}, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read payment response body: %w", err)
	}
	return &PaymentOutcome{OK: false, Errors: normalizePaymentErrors(resp.StatusCode, respBody)}, nil
}

// normalizePaymentErrors converts a rejection body into a non-empty error
// detail list.
func normalizePaymentErrors(statusCode int, body []byte) []models.ErrorDetail {
	var parsed paymentErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if len(parsed.Errors) > 0 {
			return parsed.Errors
		}
		if parsed.Message != "" {
			return []models.ErrorDetail{{Code: models.GenericDeclineCode, Detail: parsed.Message}}
		}
	}
	return []models.ErrorDetail{{
		Code:   models.GenericDeclineCode,
		Detail: fmt.Sprintf("payment failed with status %d", statusCode),
	}}
}

// getJSON performs a GET and decodes the response envelope, mapping 404 to
// the provided sentinel.
func (s *CampaignAPIService) getJSON(ctx context.Context, url string, out interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return notFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request to %s failed with status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}
