package paystack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	TransactionSuccess = "success"
	TransactionFailed  = "failed"
)

const MetadataTypeWalletFunding = "wallet_funding"

// Metadata is echoed back verbatim by the gateway on verification and is the
// only way a transaction is correlated to a booking or wallet-funding intent.
type Metadata struct {
	Type      string `json:"type,omitempty"`
	BookingID string `json:"booking_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}

type Transaction struct {
	Reference string
	Status    string
	Amount    int64 // naira
	Metadata  Metadata
}

// Gateway covers the two operations the platform consumes. Services take the
// interface so tests can substitute a fake.
type Gateway interface {
	Initialize(email string, amount int64, reference string, metadata Metadata) (string, error)
	Verify(reference string) (*Transaction, error)
}

type Client struct {
	secretKey   string
	baseURL     string
	callbackURL string
	httpClient  *http.Client
}

func NewClient(secretKey, baseURL, callbackURL string) *Client {
	return &Client{
		secretKey:   secretKey,
		baseURL:     baseURL,
		callbackURL: callbackURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

type initializeRequest struct {
	Email       string   `json:"email"`
	Amount      int64    `json:"amount"`
	Reference   string   `json:"reference"`
	CallbackURL string   `json:"callback_url,omitempty"`
	Metadata    Metadata `json:"metadata"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status    string   `json:"status"`
		Reference string   `json:"reference"`
		Amount    int64    `json:"amount"`
		Metadata  Metadata `json:"metadata"`
	} `json:"data"`
}

// Initialize opens a payment session and returns the authorization URL the
// payer must be redirected to. The amount is naira; the wire format is kobo.
func (c *Client) Initialize(email string, amount int64, reference string, metadata Metadata) (string, error) {
	body := initializeRequest{
		Email:       email,
		Amount:      amount * 100,
		Reference:   reference,
		CallbackURL: c.callbackURL,
		Metadata:    metadata,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode initialize request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/transaction/initialize", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed initializeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !parsed.Status {
		return "", fmt.Errorf("gateway rejected initialization: %s", parsed.Message)
	}

	if parsed.Data.AuthorizationURL == "" {
		return "", fmt.Errorf("gateway returned no authorization URL")
	}

	return parsed.Data.AuthorizationURL, nil
}

// Verify fetches the final state of a transaction by reference.
func (c *Client) Verify(reference string) (*Transaction, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed verifyResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !parsed.Status {
		return nil, fmt.Errorf("gateway rejected verification: %s", parsed.Message)
	}

	return &Transaction{
		Reference: parsed.Data.Reference,
		Status:    parsed.Data.Status,
		Amount:    parsed.Data.Amount / 100,
		Metadata:  parsed.Data.Metadata,
	}, nil
}
