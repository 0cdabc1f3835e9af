// Package client is the Go client for the planner API. Each method wraps one
// endpoint; non-2xx responses become *APIError values that unwrap to the
// matching domain sentinel, so callers can test them with errors.Is.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/api"
	"github.com/pkordes/trip-planner/internal/domain"
)

// Client talks to one planner API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the API at baseURL (e.g. "http://localhost:8080").
// timeout bounds each request; zero means no client-side timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient replaces the underlying *http.Client, e.g. with an
// httptest server's client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap maps the response onto domain.ErrNotFound, domain.ErrValidation or
// domain.ErrConflict. Other failures unwrap to nil.
func (e *APIError) Unwrap() error {
	switch {
	case e.Code == api.CodeNotFound || e.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case e.Code == api.CodeValidation || e.StatusCode == http.StatusUnprocessableEntity:
		return domain.ErrValidation
	case e.Code == api.CodeConflict || e.StatusCode == http.StatusConflict:
		return domain.ErrConflict
	}
	return nil
}

// CreateTrip creates a trip and returns its id.
func (c *Client) CreateTrip(ctx context.Context, req api.CreateTripRequest) (uuid.UUID, error) {
	var resp api.CreateTripResponse
	if err := c.do(ctx, http.MethodPost, "/trips", req, &resp); err != nil {
		return uuid.Nil, fmt.Errorf("client.CreateTrip: %w", err)
	}
	return resp.TripID, nil
}

// GetTripDetails fetches one trip.
func (c *Client) GetTripDetails(ctx context.Context, tripID uuid.UUID) (api.Trip, error) {
	var resp api.TripDetailsResponse
	if err := c.do(ctx, http.MethodGet, "/trips/"+tripID.String(), nil, &resp); err != nil {
		return api.Trip{}, fmt.Errorf("client.GetTripDetails: %w", err)
	}
	return resp.Trip, nil
}

// UpdateTrip replaces the trip's destination and dates.
func (c *Client) UpdateTrip(ctx context.Context, tripID uuid.UUID, req api.UpdateTripRequest) error {
	if err := c.do(ctx, http.MethodPut, "/trips/"+tripID.String(), req, nil); err != nil {
		return fmt.Errorf("client.UpdateTrip: %w", err)
	}
	return nil
}

// ConfirmTrip follows the owner's confirmation link.
func (c *Client) ConfirmTrip(ctx context.Context, tripID uuid.UUID) error {
	if err := c.do(ctx, http.MethodGet, "/trips/"+tripID.String()+"/confirm", nil, nil); err != nil {
		return fmt.Errorf("client.ConfirmTrip: %w", err)
	}
	return nil
}

// ConfirmParticipant confirms a guest's attendance.
func (c *Client) ConfirmParticipant(ctx context.Context, participantID uuid.UUID, req api.ConfirmParticipantRequest) error {
	if err := c.do(ctx, http.MethodPatch, "/participants/"+participantID.String()+"/confirm", req, nil); err != nil {
		return fmt.Errorf("client.ConfirmParticipant: %w", err)
	}
	return nil
}

// ListParticipants returns the trip's participants.
func (c *Client) ListParticipants(ctx context.Context, tripID uuid.UUID) ([]api.Participant, error) {
	var resp api.ParticipantsResponse
	if err := c.do(ctx, http.MethodGet, "/trips/"+tripID.String()+"/participants", nil, &resp); err != nil {
		return nil, fmt.Errorf("client.ListParticipants: %w", err)
	}
	return resp.Participants, nil
}

// InviteParticipant adds a guest to the trip and returns the participant id.
func (c *Client) InviteParticipant(ctx context.Context, tripID uuid.UUID, email string) (uuid.UUID, error) {
	var resp api.InviteResponse
	if err := c.do(ctx, http.MethodPost, "/trips/"+tripID.String()+"/invites", api.InviteRequest{Email: email}, &resp); err != nil {
		return uuid.Nil, fmt.Errorf("client.InviteParticipant: %w", err)
	}
	return resp.ParticipantID, nil
}

// CreateActivity schedules an activity and returns its id.
func (c *Client) CreateActivity(ctx context.Context, tripID uuid.UUID, req api.CreateActivityRequest) (uuid.UUID, error) {
	var resp api.CreateActivityResponse
	if err := c.do(ctx, http.MethodPost, "/trips/"+tripID.String()+"/activities", req, &resp); err != nil {
		return uuid.Nil, fmt.Errorf("client.CreateActivity: %w", err)
	}
	return resp.ActivityID, nil
}

// ListActivities returns the trip's activities grouped by day.
func (c *Client) ListActivities(ctx context.Context, tripID uuid.UUID) ([]api.ActivityDay, error) {
	var resp api.ActivitiesResponse
	if err := c.do(ctx, http.MethodGet, "/trips/"+tripID.String()+"/activities", nil, &resp); err != nil {
		return nil, fmt.Errorf("client.ListActivities: %w", err)
	}
	return resp.Activities, nil
}

// CreateLink saves a link and returns its id.
func (c *Client) CreateLink(ctx context.Context, tripID uuid.UUID, req api.CreateLinkRequest) (uuid.UUID, error) {
	var resp api.CreateLinkResponse
	if err := c.do(ctx, http.MethodPost, "/trips/"+tripID.String()+"/links", req, &resp); err != nil {
		return uuid.Nil, fmt.Errorf("client.CreateLink: %w", err)
	}
	return resp.LinkID, nil
}

// ListLinks returns the trip's links.
func (c *Client) ListLinks(ctx context.Context, tripID uuid.UUID) ([]api.Link, error) {
	var resp api.LinksResponse
	if err := c.do(ctx, http.MethodGet, "/trips/"+tripID.String()+"/links", nil, &resp); err != nil {
		return nil, fmt.Errorf("client.ListLinks: %w", err)
	}
	return resp.Links, nil
}

// ExportURL is the download link for the trip in the given format
// (api.FormatICS or api.FormatCSV).
func (c *Client) ExportURL(tripID uuid.UUID, format string) string {
	return c.baseURL + "/trips/" + tripID.String() + "/export?" + url.Values{"format": {format}}.Encode()
}

// do sends one JSON request. A nil in skips the body; a nil out discards the
// response body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeAPIError reads the error envelope; bodies that are not the envelope
// still yield an APIError carrying the status code.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var env api.ErrorResponse
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && json.Unmarshal(data, &env) == nil {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
	}
	return apiErr
}

// IsNotFound reports whether err is, or wraps, a 404 from the API.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
