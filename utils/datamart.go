package utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/kay-mensah/DataPlug/models"
)

const defaultDatamartBaseURL = "https://api.datamartgh.shop"

// DatamartGateway is the payment gateway DataMart debits for purchases; we
// prepay into a DataMart wallet, so every purchase rides on it.
const DatamartGateway = "wallet"

// DatamartNetworkMap is the fixed mapping from our network names to
// DataMart's vocabulary. Networks missing here cannot be fulfilled and are
// rejected before any money moves.
var DatamartNetworkMap = map[string]string{
	models.NetworkYello:      "YELLO",
	models.NetworkTelecel:    "TELECEL",
	models.NetworkAirtelTigo: "AT_PREMIUM",
}

// InternalNetworkName maps a DataMart network key back to our name. The
// second return is false for networks we do not sell.
func InternalNetworkName(datamartNetwork string) (string, bool) {
	for internal, external := range DatamartNetworkMap {
		if external == datamartNetwork {
			return internal, true
		}
	}
	return "", false
}

// DatamartClient talks to the DataMart reseller API
type DatamartClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewDatamartClient builds a client from the environment
func NewDatamartClient() *DatamartClient {
	baseURL := os.Getenv("DATAMART_BASE_URL")
	if baseURL == "" {
		baseURL = defaultDatamartBaseURL
	}
	return &DatamartClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     os.Getenv("DATAMART_API_KEY"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// DatamartPurchaseData is the fulfillment reference returned for an accepted
// purchase. Which of the two fields is set depends on the network.
type DatamartPurchaseData struct {
	TransactionReference string `json:"transactionReference"`
	PurchaseID           string `json:"purchaseId"`
}

// DatamartPackage is one sellable package in DataMart's catalog. Capacity and
// price arrive as either strings or numbers depending on the network.
type DatamartPackage struct {
	Capacity json.Number `json:"capacity"`
	Price    json.Number `json:"price"`
}

type datamartResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// PurchaseBundle asks DataMart to deliver a data bundle to the given phone
// number. capacity is the bare number of gigabytes as a string ("5").
func (d *DatamartClient) PurchaseBundle(phoneNumber, network, capacity string) (*DatamartPurchaseData, error) {
	payload := map[string]string{
		"phoneNumber": phoneNumber,
		"network":     network,
		"capacity":    capacity,
		"gateway":     DatamartGateway,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, WrapError(err, "failed to encode purchase request")
	}

	req, err := http.NewRequest(http.MethodPost, d.BaseURL+"/api/developer/purchase", bytes.NewReader(body))
	if err != nil {
		return nil, WrapError(err, "failed to build purchase request")
	}

	var data DatamartPurchaseData
	if err := d.do(req, "Data bundle purchase failed", &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetDataPackages fetches DataMart's full catalog, keyed by their network
// names
func (d *DatamartClient) GetDataPackages() (map[string][]DatamartPackage, error) {
	req, err := http.NewRequest(http.MethodGet, d.BaseURL+"/api/developer/data-packages", nil)
	if err != nil {
		return nil, WrapError(err, "failed to build catalog request")
	}

	var data map[string][]DatamartPackage
	if err := d.do(req, "Failed to fetch data packages", &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (d *DatamartClient) do(req *http.Request, failureMessage string, out interface{}) error {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", d.APIKey)

	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return NewUpstreamError("datamart", "Reseller API unreachable", err)
	}
	defer resp.Body.Close()

	var dr datamartResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return NewUpstreamError("datamart", "Invalid reseller response", err)
	}

	if resp.StatusCode != http.StatusOK || dr.Status != "success" {
		message := dr.Message
		if message == "" {
			message = failureMessage
		}
		return NewUpstreamError("datamart", message, nil)
	}

	if out != nil && dr.Data != nil {
		if err := json.Unmarshal(dr.Data, out); err != nil {
			return NewUpstreamError("datamart", "Invalid reseller response", err)
		}
	}
	return nil
}
