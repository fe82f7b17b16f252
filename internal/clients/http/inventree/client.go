package inventree

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is a typed HTTP client for the inventory backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// StatusError reports a non-2xx backend response with the decoded detail
// message when the body carried one.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// NewClient instantiates the backend client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

// DecodeBarcode resolves a raw barcode to a catalog part. An unrecognized
// barcode surfaces as a *StatusError with the backend's 4xx status.
func (c *Client) DecodeBarcode(ctx context.Context, barcode string) (*PartRecord, error) {
	var out barcodeResponse
	if err := c.do(ctx, http.MethodPost, "/api/barcode/", nil, barcodeRequest{Barcode: barcode}, "", &out); err != nil {
		return nil, err
	}
	if out.Part == nil {
		return nil, &StatusError{StatusCode: http.StatusNotFound, Detail: "barcode did not resolve to a part"}
	}
	return out.Part, nil
}

// SearchParts runs a free-text part search capped at limit results.
func (c *Client) SearchParts(ctx context.Context, query string, limit int) ([]PartRecord, error) {
	params := url.Values{}
	params.Set("search", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var out page[PartRecord]
	if err := c.do(ctx, http.MethodGet, "/api/part/", params, nil, "", &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// GetOrder fetches one sales order header with its customer summary.
func (c *Client) GetOrder(ctx context.Context, orderID int64) (*OrderRecord, error) {
	params := url.Values{}
	params.Set("customer_detail", "true")
	var out OrderRecord
	path := fmt.Sprintf("/api/order/so/%d/", orderID)
	if err := c.do(ctx, http.MethodGet, path, params, nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListOpenOrders fetches outstanding sales orders in the given statuses.
func (c *Client) ListOpenOrders(ctx context.Context, statuses []int) ([]OrderRecord, error) {
	params := url.Values{}
	params.Set("outstanding", "true")
	params.Set("customer_detail", "true")
	if len(statuses) > 0 {
		codes := make([]string, len(statuses))
		for i, s := range statuses {
			codes[i] = strconv.Itoa(s)
		}
		params.Set("status_in", strings.Join(codes, ","))
	}
	var out page[OrderRecord]
	if err := c.do(ctx, http.MethodGet, "/api/order/so/", params, nil, "", &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// ListLines fetches the line items of one order, with part details inlined.
// When outstandingOnly is set the backend filters out fully shipped lines.
func (c *Client) ListLines(ctx context.Context, orderID int64, outstandingOnly bool) ([]LineRecord, error) {
	params := url.Values{}
	params.Set("order", strconv.FormatInt(orderID, 10))
	params.Set("part_detail", "true")
	if outstandingOnly {
		params.Set("outstanding", "true")
	}
	var out page[LineRecord]
	if err := c.do(ctx, http.MethodGet, "/api/order/so-line/", params, nil, "", &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// PatchLine applies a partial update to one line item. The idempotency key,
// when set, is forwarded so the backend can deduplicate retried mutations.
func (c *Client) PatchLine(ctx context.Context, lineID int64, payload LineUpdatePayload, idempotencyKey string) (*LineRecord, error) {
	var out LineRecord
	path := fmt.Sprintf("/api/order/so-line/%d/", lineID)
	if err := c.do(ctx, http.MethodPatch, path, nil, payload, idempotencyKey, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any, idempotencyKey string, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call backend %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read backend %s %s response: %w", method, path, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &StatusError{StatusCode: resp.StatusCode, Detail: errorDetail(payload)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode backend %s %s response: %w", method, path, err)
	}
	return nil
}

func errorDetail(payload []byte) string {
	var body errorBody
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(body.Detail); msg != "" {
		return msg
	}
	return strings.TrimSpace(body.Error)
}
