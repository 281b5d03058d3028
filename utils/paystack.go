package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultPaystackBaseURL = "https://api.paystack.co"

// PaystackClient talks to the Paystack REST API. Amounts are in pesewas
// (minor units); the ledger works in cedis, callers convert.
type PaystackClient struct {
	BaseURL    string
	SecretKey  string
	HTTPClient *http.Client
}

// NewPaystackClient builds a client from the environment
func NewPaystackClient() *PaystackClient {
	baseURL := os.Getenv("PAYSTACK_BASE_URL")
	if baseURL == "" {
		baseURL = defaultPaystackBaseURL
	}
	return &PaystackClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		SecretKey:  os.Getenv("PAYSTACK_SECRET_KEY"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// PaystackInitializeData is the payload of a successful transaction
// initialization
type PaystackInitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// PaystackTransactionData is the payload of a transaction verification
type PaystackTransactionData struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"` // pesewas
	Currency  string `json:"currency"`
	PaidAt    string `json:"paid_at"`
}

type paystackResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// InitializeTransaction opens a hosted payment page session and returns the
// authorization URL the user should be sent to. No local state is written.
func (p *PaystackClient) InitializeTransaction(email string, amountPesewas int64, reference, callbackURL string) (*PaystackInitializeData, error) {
	payload := map[string]interface{}{
		"email":     email,
		"amount":    amountPesewas,
		"currency":  "GHS",
		"reference": reference,
	}
	if callbackURL != "" {
		payload["callback_url"] = callbackURL
	}

	var data PaystackInitializeData
	if err := p.post("/transaction/initialize", payload, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// VerifyTransaction fetches the final status of a transaction by reference
func (p *PaystackClient) VerifyTransaction(reference string) (*PaystackTransactionData, error) {
	req, err := http.NewRequest(http.MethodGet, p.BaseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, WrapError(err, "failed to build verify request")
	}

	var data PaystackTransactionData
	if err := p.do(req, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (p *PaystackClient) post(path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return WrapError(err, "failed to encode request")
	}

	req, err := http.NewRequest(http.MethodPost, p.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return WrapError(err, "failed to build request")
	}

	return p.do(req, out)
}

func (p *PaystackClient) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+p.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return NewUpstreamError("paystack", "Payment gateway unreachable", err)
	}
	defer resp.Body.Close()

	var pr paystackResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return NewUpstreamError("paystack", "Invalid gateway response", err)
	}

	if !pr.Status {
		message := pr.Message
		if message == "" {
			message = fmt.Sprintf("Gateway request failed with status %d", resp.StatusCode)
		}
		return NewUpstreamError("paystack", message, nil)
	}

	if out != nil && pr.Data != nil {
		if err := json.Unmarshal(pr.Data, out); err != nil {
			return NewUpstreamError("paystack", "Invalid gateway response", err)
		}
	}
	return nil
}
