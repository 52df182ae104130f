package zoho

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"homebuyer-prequal/internal/common/config"
	httpclient "homebuyer-prequal/internal/common/http"
)

const DefaultBaseURL = "https://www.zohoapis.com/crm/v3"

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = stderrors.New("zoho: record not found")

type CRMClient struct {
	baseURL    string
	leadSource string
	http       *httpclient.Client
}

// Lead is a Zoho CRM Leads record. Fields prefixed Prequal_ are custom
// fields of the Leads module.
type Lead struct {
	ID          string  `json:"id,omitempty"`
	FirstName   string  `json:"First_Name,omitempty"`
	LastName    string  `json:"Last_Name"`
	Email       string  `json:"Email,omitempty"`
	Phone       string  `json:"Phone,omitempty"`
	LeadSource  string  `json:"Lead_Source,omitempty"`
	LeadStatus  string  `json:"Lead_Status,omitempty"`
	Description string  `json:"Description,omitempty"`
	Income      float64 `json:"Annual_Revenue,omitempty"`

	LegalStatus    string `json:"Prequal_Legal_Status,omitempty"`
	CreditCategory string `json:"Prequal_Credit_Category,omitempty"`
	EmploymentType string `json:"Prequal_Employment_Type,omitempty"`
	Timeline       string `json:"Prequal_Timeline,omitempty"`
	Campaign       string `json:"Prequal_Campaign,omitempty"`
	Agent          string `json:"Prequal_Agent,omitempty"`
	SubmissionID   string `json:"Prequal_Submission_ID,omitempty"`
}

type writeResponse struct {
	Data []struct {
		Code    string `json:"code"`
		Details struct {
			ID string `json:"id"`
		} `json:"details"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"data"`
}

type listResponse struct {
	Data []Lead `json:"data"`
}

// NewCRMClient builds a Leads client from the zoho config section. An empty
// base URL means DefaultBaseURL.
func NewCRMClient(cfg config.ZohoConfig) *CRMClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &CRMClient{
		baseURL:    baseURL,
		leadSource: cfg.LeadSource,
		http: httpclient.NewClient(30*time.Second).
			WithHeader("Authorization", "Zoho-oauthtoken "+cfg.AuthToken),
	}
}

// CreateLead inserts lead and returns its Zoho ID. The configured lead
// source is applied when lead has none.
func (c *CRMClient) CreateLead(ctx context.Context, lead *Lead) (string, error) {
	if lead.LeadSource == "" {
		lead.LeadSource = c.leadSource
	}

	var resp writeResponse
	payload := map[string]interface{}{"data": []Lead{*lead}}
	if _, err := c.http.DoJSON(ctx, http.MethodPost, c.baseURL+"/Leads", payload, &resp); err != nil {
		return "", fmt.Errorf("failed to create lead: %w", err)
	}

	if len(resp.Data) == 0 {
		return "", fmt.Errorf("no data in response")
	}
	if resp.Data[0].Status != "success" {
		return "", fmt.Errorf("lead creation failed: %s (%s)", resp.Data[0].Message, resp.Data[0].Code)
	}
	return resp.Data[0].Details.ID, nil
}

// GetLead fetches one lead by ID.
func (c *CRMClient) GetLead(ctx context.Context, leadID string) (*Lead, error) {
	var resp listResponse
	status, err := c.http.DoJSON(ctx, http.MethodGet, c.baseURL+"/Leads/"+url.PathEscape(leadID), nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	if status == http.StatusNoContent || len(resp.Data) == 0 {
		return nil, ErrNotFound
	}
	return &resp.Data[0], nil
}

// SearchLeadsByEmail returns leads whose email matches exactly. Zoho answers
// 204 when nothing matches; that is an empty result, not an error.
func (c *CRMClient) SearchLeadsByEmail(ctx context.Context, email string) ([]Lead, error) {
	endpoint := c.baseURL + "/Leads/search?" + url.Values{"email": {email}}.Encode()

	var resp listResponse
	if _, err := c.http.DoJSON(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to search leads: %w", err)
	}
	return resp.Data, nil
}

// IsTemporary reports whether a client error may succeed on retry.
func IsTemporary(err error) bool {
	var statusErr *httpclient.StatusError
	if stderrors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return !stderrors.Is(err, ErrNotFound)
}
