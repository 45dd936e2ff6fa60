// Package spiderfoot provides an engine.Client implementation backed by the
// HTTP API of a SpiderFoot instance.
package spiderfoot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"osintscan/pkg/domain"
	"osintscan/pkg/engine"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// DefaultModules is what the engine runs when no module list is given.
	DefaultModules = "passive"

	meterName = "osintscan/pkg/engine/spiderfoot"
)

// targetTypes maps application target types to SpiderFoot seed types.
var targetTypes = map[domain.TargetType]string{ //nolint: gochecknoglobals
	domain.TargetTypeEmail:    "EMAILADDR",
	domain.TargetTypeDomain:   "INTERNET_NAME",
	domain.TargetTypeUsername: "USERNAME",
	domain.TargetTypePhone:    "PHONE_NUMBER",
	domain.TargetTypeIP:       "IP_ADDRESS",
}

// EngineTargetType returns the SpiderFoot seed type for t. Unknown types fall
// back to INTERNET_NAME.
func EngineTargetType(t domain.TargetType) string {
	if v, ok := targetTypes[t]; ok {
		return v
	}

	return "INTERNET_NAME"
}

// Options configures a Client.
type Options struct {
	// BaseURL is the root of the SpiderFoot instance, e.g. http://spiderfoot:5001.
	BaseURL string
	// APIKey is sent as a bearer token when non-empty.
	APIKey string
	// MeterProvider records request durations. Nil uses the global provider.
	MeterProvider metric.MeterProvider
}

// Client talks to the SpiderFoot API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	apiKey     string
	duration   metric.Float64Histogram
}

// Ensure Client conforms to the engine.Client interface at compile time.
var _ engine.Client = (*Client)(nil)

// New constructs a Client that sends requests through httpClient.
func New(httpClient *http.Client, opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse engine base url")
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("engine base url %q must be absolute", opts.BaseURL)
	}

	mp := opts.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	duration, err := mp.Meter(meterName).Float64Histogram("engine.request.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of requests sent to the scanning engine"))
	if err != nil {
		return nil, errors.Wrap(err, "create request duration histogram")
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    base,
		apiKey:     opts.APIKey,
		duration:   duration,
	}, nil
}

// StartScan submits a new scan.
func (c *Client) StartScan(ctx context.Context, req engine.StartRequest) (string, error) {
	type startReq struct {
		ScanName   string `json:"scanname"`
		ScanTarget string `json:"scantarget"`
		ModuleList string `json:"modulelist"`
		TypeList   string `json:"typelist"`
	}
	modules := strings.Join(req.Modules, ",")
	if modules == "" {
		modules = DefaultModules
	}
	name := req.Name
	if name == "" {
		name = fmt.Sprintf("scan_%d", time.Now().UnixMilli())
	}

	body, err := json.Marshal(startReq{
		ScanName:   name,
		ScanTarget: req.Target,
		ModuleList: modules,
		TypeList:   EngineTargetType(req.TargetType),
	})
	if err != nil {
		return "", errors.Wrap(err, "marshal request")
	}

	b, err := c.do(ctx, http.MethodPost, "startscan", nil, body)
	if err != nil {
		return "", err
	}

	var res struct {
		ID     json.RawMessage `json:"id"`
		ScanID json.RawMessage `json:"scan_id"`
	}
	if err := json.Unmarshal(b, &res); err != nil {
		return "", errors.Wrap(err, "decode response")
	}

	id := domain.DataString(res.ID)
	if id == "" {
		id = domain.DataString(res.ScanID)
	}
	if id == "" {
		return "", errors.New("engine response is missing the scan id")
	}

	return id, nil
}

// ScanStatus returns the current status of a scan.
func (c *Client) ScanStatus(ctx context.Context, externalID string) (engine.Status, error) {
	b, err := c.do(ctx, http.MethodGet, "scanstatus", url.Values{"id": {externalID}}, nil)
	if err != nil {
		return engine.Status{}, err
	}

	var res struct {
		Status string `json:"status"`
		Total  int    `json:"total"`
	}
	if err := json.Unmarshal(b, &res); err != nil {
		return engine.Status{}, errors.Wrap(err, "decode response")
	}

	return engine.Status{State: engine.State(strings.ToUpper(res.Status)), Total: res.Total}, nil
}

// ScanResults returns every record of a scan. Elements that are not JSON
// objects are dropped.
func (c *Client) ScanResults(ctx context.Context, externalID string) ([]domain.RawResult, error) {
	b, err := c.do(ctx, http.MethodGet, "scanresults", url.Values{"id": {externalID}}, nil)
	if err != nil {
		return nil, err
	}

	return DecodeResults(b)
}

// do sends a request to the given API function and returns the body of a
// successful response. Non-2xx answers become *engine.StatusError.
func (c *Client) do(ctx context.Context, method, fn string, query url.Values, body []byte) ([]byte, error) {
	u := c.baseURL.JoinPath("api")
	q := url.Values{"func": {fn}}
	for k, v := range query {
		q[k] = v
	}
	u.RawQuery = q.Encode()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record(ctx, fn, 0, start)

		return nil, errors.Wrap(err, "send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	c.record(ctx, fn, resp.StatusCode, start)

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &engine.StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	return b, nil
}

func (c *Client) record(ctx context.Context, fn string, status int, start time.Time) {
	c.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		attribute.String("func", fn),
		attribute.Int("status", status),
	))
}
