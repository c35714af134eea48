// Package streamline is a client for the Streamline VRS JSON API.
//
// Streamline speaks a JSON-RPC style protocol: every call is a POST with a
// methodName and a params object carrying the token pair. Responses wrap the
// payload in {"status": {...}, "data": {...}} where status.code 0 means
// success.
package streamline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrPropertyNotFound is returned when Streamline reports that the
	// requested property/unit id does not exist (inactive or removed units).
	ErrPropertyNotFound = errors.New("streamline: property not found")

	// ErrTransport wraps network failures, timeouts and non-2xx responses.
	ErrTransport = errors.New("streamline: transport error")
)

// APIError is a Streamline status object with a non-zero code.
type APIError struct {
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("streamline: api error %s: %s", e.Code, e.Description)
}

type Client struct {
	apiURL      string
	tokenKey    string
	tokenSecret string
	http        *http.Client
}

func New(apiURL, tokenKey, tokenSecret string, timeout time.Duration) (*Client, error) {
	if apiURL == "" {
		return nil, fmt.Errorf("streamline: api url is required")
	}
	if tokenKey == "" || tokenSecret == "" {
		return nil, fmt.Errorf("streamline: token_key and token_secret are required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiURL:      strings.TrimRight(apiURL, "/"),
		tokenKey:    tokenKey,
		tokenSecret: tokenSecret,
		http:        &http.Client{Timeout: timeout},
	}, nil
}

type envelope struct {
	Status struct {
		Code        *int   `json:"code"`
		Description string `json:"description"`
	} `json:"status"`
	Data json.RawMessage `json:"data"`
}

func (c *Client) call(ctx context.Context, methodName string, params map[string]interface{}) (json.RawMessage, error) {
	merged := map[string]interface{}{
		"token_key":    c.tokenKey,
		"token_secret": c.tokenSecret,
	}
	for k, v := range params {
		merged[k] = v
	}
	payload := map[string]interface{}{
		"methodName": methodName,
		"params":     merged,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("streamline: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("streamline: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("%w: http %d: %s", ErrTransport, resp.StatusCode, string(snippet))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrTransport, err)
	}

	if env.Status.Code != nil && *env.Status.Code != 0 {
		desc := env.Status.Description
		if isNotFound(desc) {
			return nil, ErrPropertyNotFound
		}
		if desc == "" {
			desc = "unknown Streamline API error"
		}
		return nil, &APIError{Code: fmt.Sprintf("%d", *env.Status.Code), Description: desc}
	}

	return env.Data, nil
}

func isNotFound(description string) bool {
	d := strings.ToLower(description)
	return strings.Contains(d, "not found")
}

// BlockedPeriod is one reserved interval as reported by Streamline. Both
// dates are inclusive; EndDate is the last occupied night. The date strings
// arrive in several formats, see availability.ParseDate.
type BlockedPeriod struct {
	StartDate string `json:"startdate"`
	EndDate   string `json:"enddate"`
}

// blockedPeriodList tolerates the API returning either a single object or a
// list under the blocked_period key.
type blockedPeriodList []BlockedPeriod

func (l *blockedPeriodList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var many []BlockedPeriod
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*l = many
		return nil
	}
	var one BlockedPeriod
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = blockedPeriodList{one}
	return nil
}

// PropertyBlockedPeriods fetches the raw availability calendar for a unit.
// An empty result means the property is fully available; that is not an
// error.
func (c *Client) PropertyBlockedPeriods(ctx context.Context, unitID int64) ([]BlockedPeriod, error) {
	data, err := c.call(ctx, "GetPropertyAvailabilityCalendarRawData", map[string]interface{}{
		"unit_id": unitID,
	})
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var payload struct {
		BlockedPeriod blockedPeriodList `json:"blocked_period"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("streamline: decode blocked periods: %w", err)
	}

	out := make([]BlockedPeriod, 0, len(payload.BlockedPeriod))
	for _, bp := range payload.BlockedPeriod {
		if bp.StartDate == "" || bp.EndDate == "" {
			continue
		}
		out = append(out, bp)
	}
	return out, nil
}

// Property is the subset of unit fields the API surface exposes.
type Property struct {
	UnitID   int64  `json:"unit_id"`
	Name     string `json:"name"`
	Bedrooms int    `json:"bedrooms_number"`
	Sleeps   int    `json:"max_occupants"`
}

// PropertyInfo fetches detail for a single unit.
func (c *Client) PropertyInfo(ctx context.Context, unitID int64) (*Property, error) {
	data, err := c.call(ctx, "GetPropertyInfo", map[string]interface{}{
		"unit_id": unitID,
	})
	if err != nil {
		return nil, err
	}

	var p Property
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("streamline: decode property info: %w", err)
	}
	return &p, nil
}

// PropertyList fetches all units. The API nests the list under a "property"
// key but has been observed returning a bare array as well.
func (c *Client) PropertyList(ctx context.Context) ([]Property, error) {
	data, err := c.call(ctx, "GetPropertyList", nil)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []Property
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("streamline: decode property list: %w", err)
		}
		return list, nil
	}

	var payload struct {
		Property []Property `json:"property"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("streamline: decode property list: %w", err)
	}
	return payload.Property, nil
}

// PropertyRates fetches nightly pricing for a unit within a date range.
// The payload shape varies between accounts, so it is passed through as-is.
func (c *Client) PropertyRates(ctx context.Context, unitID int64, startDate, endDate string) (json.RawMessage, error) {
	return c.call(ctx, "GetPropertyRates", map[string]interface{}{
		"unit_id":   unitID,
		"startdate": startDate,
		"enddate":   endDate,
	})
}
