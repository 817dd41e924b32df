package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/echovoice/apiserver/types"
)

const defaultClientTimeout = 10 * time.Second

// Client is a typed client for the onboarding gateway. It implements
// Submitter for the Flow.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Client for the given base URL
// (e.g. "http://localhost:8000").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}
}

type submitRequest struct {
	Theme           string                `json:"theme"`
	PersonalDetails types.PersonalDetails `json:"personalDetails"`
	ReferralSource  string                `json:"referralSource"`
	Persona         string                `json:"persona"`
	PricingPlan     string                `json:"pricingPlan"`
}

type submitResponse struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Profile is the gateway's representation of a stored profile.
type Profile struct {
	ID              string                `json:"_id"`
	Theme           string                `json:"theme"`
	PersonalDetails types.PersonalDetails `json:"personalDetails"`
	ReferralSource  string                `json:"referralSource"`
	Persona         string                `json:"persona"`
	PricingPlan     string                `json:"pricingPlan"`
	CreatedAt       string                `json:"createdAt"`
	UpdatedAt       string                `json:"updatedAt"`
}

// Submit posts the aggregate record and returns the assigned profile id.
func (c *Client) Submit(ctx context.Context, record Record) (string, error) {
	body, err := json.Marshal(submitRequest{
		Theme:           record.Theme,
		PersonalDetails: record.PersonalDetails,
		ReferralSource:  record.ReferralSource,
		Persona:         record.Persona,
		PricingPlan:     record.PricingPlan,
	})
	if err != nil {
		return "", fmt.Errorf("marshal onboarding record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/onboarding", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("submit onboarding: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("submit onboarding: %s", responseError(resp))
	}

	var result submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode onboarding response: %w", err)
	}
	return result.UserID, nil
}

// GetProfile fetches a stored profile by id.
func (c *Client) GetProfile(ctx context.Context, id string) (Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/onboarding/"+id, nil)
	if err != nil {
		return Profile{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("fetch onboarding profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("fetch onboarding profile: %s", responseError(resp))
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return Profile{}, fmt.Errorf("decode onboarding profile: %w", err)
	}
	return profile, nil
}

func responseError(resp *http.Response) string {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Sprintf("%s (status %d)", body.Error, resp.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d", resp.StatusCode)
}
