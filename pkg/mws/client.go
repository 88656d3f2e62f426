// Package mws is a client for the Amazon Marketplace Web Service API. It
// injects the credential and signing parameters into request dictionaries
// built by the section packages (reports, orders, feeds, ...), signs them
// with Signature Version 2 and parses the responses.
package mws

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/donaldgifford/amazon-mws/internal/metrics"
	"github.com/donaldgifford/amazon-mws/pkg/params"
)

const (
	defaultRegion    = "US"
	defaultUserAgent = "amazon-mws-go/1.0 (Language=Go)"
	timestampLayout  = "2006-01-02T15:04:05Z"

	// ActionGetServiceStatus is available on every section.
	ActionGetServiceStatus = "GetServiceStatus"
)

// AccountType is the name of the parameter carrying the account id. Older
// sections (Feeds, Reports) call it Merchant, newer ones SellerId.
type AccountType string

// Account parameter names.
const (
	AccountSeller   AccountType = "SellerId"
	AccountMerchant AccountType = "Merchant"
)

// Section identifies one MWS API section: its URI path, API version and
// account parameter name.
type Section struct {
	Name        string
	Path        string
	Version     string
	AccountType AccountType
}

// Credentials are the MWS developer and seller credentials.
type Credentials struct {
	AccessKey string
	SecretKey string
	AccountID string
	// AuthToken is the MWSAuthToken issued when a seller authorizes a
	// third-party developer. Optional.
	AuthToken string
}

func (c Credentials) validate() error {
	var errs []error
	if c.AccessKey == "" {
		errs = append(errs, errors.New("access key is required"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is required"))
	}
	if c.AccountID == "" {
		errs = append(errs, errors.New("account id is required"))
	}
	return errors.Join(errs...)
}

// Doer sends a parameter dictionary to a section. Section packages depend
// on this interface rather than on *Client.
type Doer interface {
	Do(ctx context.Context, section Section, p params.Values, opts ...RequestOption) (*Response, error)
}

// Builder is implemented by every operation input.
type Builder interface {
	Params() (params.Values, error)
}

// Call builds in and sends it through d. Validation errors are returned
// before any request is made.
func Call(
	ctx context.Context,
	d Doer,
	section Section,
	in Builder,
	opts ...RequestOption,
) (*Response, error) {
	p, err := in.Params()
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return d.Do(ctx, section, p, opts...)
}

// CallByNextToken sends the ByNextToken continuation of action. An empty
// token is a validation error.
func CallByNextToken(
	ctx context.Context,
	d Doer,
	section Section,
	action, token string,
) (*Response, error) {
	if err := params.Required(params.NextTokenKey, token); err != nil {
		return nil, err
	}
	return d.Do(ctx, section, params.ByNextToken(action, token))
}

// ServiceStatus calls GetServiceStatus on section.
func ServiceStatus(ctx context.Context, d Doer, section Section) (*Response, error) {
	return d.Do(ctx, section, params.New(ActionGetServiceStatus))
}

// OperationKey identifies an operation's server-side quota: MWS throttles
// each action of each section separately.
func OperationKey(section Section, action string) string {
	return section.Name + "/" + action
}

// Client implements Doer over HTTP.
type Client struct {
	creds       Credentials
	regionCode  string
	region      Region
	endpoint    string
	client      *http.Client
	rateLimiter *RateLimiter
	logger      *slog.Logger
	userAgent   string
	nowFunc     func() time.Time
}

// Option configures the Client.
type Option func(*Client)

// WithRegion selects the marketplace region (US, UK, DE, JP, ...).
func WithRegion(code string) Option {
	return func(c *Client) {
		c.regionCode = code
	}
}

// WithEndpoint overrides the region's endpoint, e.g. for a test server.
func WithEndpoint(u string) Option {
	return func(c *Client) {
		c.endpoint = u
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimiter makes every Do call wait on r first.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// WithLogger sets the logger. Requests are logged at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithNowFunc overrides the clock used for the Timestamp parameter.
func WithNowFunc(f func() time.Time) Option {
	return func(c *Client) {
		c.nowFunc = f
	}
}

// NewClient creates a Client for the given credentials.
func NewClient(creds Credentials, opts ...Option) (*Client, error) {
	if err := creds.validate(); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}

	c := &Client{
		creds:      creds,
		regionCode: defaultRegion,
		client:     &http.Client{Timeout: 5 * time.Minute},
		logger:     slog.New(slog.DiscardHandler),
		userAgent:  defaultUserAgent,
		nowFunc:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	region, err := LookupRegion(c.regionCode)
	if err != nil {
		return nil, err
	}
	c.region = region
	if c.endpoint == "" {
		c.endpoint = region.Endpoint
	}
	if _, err := url.Parse(c.endpoint); err != nil {
		return nil, fmt.Errorf("parsing endpoint %q: %w", c.endpoint, err)
	}
	return c, nil
}

// Region returns the configured region.
func (c *Client) Region() Region {
	return c.region
}

// MarketplaceID returns the configured region's marketplace id.
func (c *Client) MarketplaceID() string {
	return c.region.MarketplaceID
}

type request struct {
	body        []byte
	contentType string
}

// RequestOption configures a single request.
type RequestOption func(*request)

// WithBody attaches a request body (SubmitFeed). The Content-MD5 header is
// computed from body.
func WithBody(body []byte, contentType string) RequestOption {
	return func(r *request) {
		r.body = body
		r.contentType = contentType
	}
}

// ApplyRequestOptions resolves opts into the body and content type they
// set. It lets Doer implementations other than Client honor WithBody.
func ApplyRequestOptions(opts ...RequestOption) (body []byte, contentType string) {
	req := &request{}
	for _, opt := range opts {
		opt(req)
	}
	return req.body, req.contentType
}

// SignedParams returns p merged with the credential parameters, timestamp
// and signature, exactly as Do would send them. p is not modified.
func (c *Client) SignedParams(section Section, p params.Values) params.Values {
	out := c.defaultParams(section).Merge(p)
	out["Signature"] = Sign(
		c.creds.SecretKey,
		http.MethodPost,
		c.host(),
		section.Path,
		out,
	)
	return out
}

func (c *Client) defaultParams(section Section) params.Values {
	account := section.AccountType
	if account == "" {
		account = AccountSeller
	}
	v := params.Values{
		"AWSAccessKeyId": c.creds.AccessKey,
		string(account):    c.creds.AccountID,
		"SignatureVersion": signatureVersion,
		"SignatureMethod":  signatureMethod,
		"Timestamp":        c.nowFunc().UTC().Format(timestampLayout),
	}
	v.Set("Version", section.Version)
	v.Set("MWSAuthToken", c.creds.AuthToken)
	return v
}

func (c *Client) host() string {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return c.endpoint
	}
	return u.Host
}

// Do signs and sends p to section.
func (c *Client) Do(
	ctx context.Context,
	section Section,
	p params.Values,
	opts ...RequestOption,
) (*Response, error) {
	action := p.Action()
	if action == "" {
		return nil, params.Missing(params.ActionKey)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	reqBody, contentType := ApplyRequestOptions(opts...)
	quotaKey := OperationKey(section, action)

	if c.rateLimiter != nil {
		if err := c.rateLimiter.WaitOperation(ctx, quotaKey); err != nil {
			if errors.Is(err, ErrHourlyQuotaReached) {
				metrics.QuotaLimitHits.Inc()
			}
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		metrics.RateLimiterHourlyUsage.Set(float64(c.rateLimiter.HourlyCount()))
	}

	path := section.Path
	if path == "" {
		path = "/"
	}
	signed := c.SignedParams(section, p)
	u := c.endpoint + path + "?" + signed.Encode()

	var body io.Reader = http.NoBody
	if reqBody != nil {
		body = bytes.NewReader(reqBody)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)
	if reqBody != nil {
		httpReq.Header.Set("Content-Type", contentType)
		httpReq.Header.Set("Content-MD5", ContentMD5(reqBody))
	} else {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")
	}

	start := c.nowFunc()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(section.Name, action, "error").Inc()
		return nil, fmt.Errorf("executing %s request: %w", action, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", action, err)
	}

	elapsed := c.nowFunc().Sub(start)
	metrics.RequestDuration.WithLabelValues(section.Name, action).Observe(elapsed.Seconds())
	metrics.RequestsTotal.WithLabelValues(section.Name, action, strconv.Itoa(resp.StatusCode)).Inc()

	c.logger.Debug("mws request",
		"section", section.Name,
		"action", action,
		"status", resp.StatusCode,
		"duration", elapsed,
	)

	if q := ParseQuota(resp.Header); q != nil {
		metrics.QuotaRemaining.WithLabelValues(section.Name, action).Set(float64(q.Remaining))
		if c.rateLimiter != nil {
			c.rateLimiter.Sync(quotaKey, q)
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := newAPIError(resp.StatusCode, data)
		if apiErr.Throttled() {
			metrics.ThrottledTotal.WithLabelValues(section.Name, action).Inc()
			c.logger.Warn("mws request throttled",
				"section", section.Name,
				"action", action,
				"request_id", apiErr.RequestID,
			)
		}
		return nil, apiErr
	}

	out, err := parseResponse(action, resp.StatusCode, resp.Header, data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", action, err)
	}
	return out, nil
}
