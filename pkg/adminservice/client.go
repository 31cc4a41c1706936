package adminservice

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dhis2-sre/channel-admin/internal/errdef"
	"github.com/dhis2-sre/channel-admin/internal/metrics"
	"github.com/dhis2-sre/channel-admin/internal/middleware"
)

// DefaultPath is where a cluster's load balancer exposes the admin service.
const DefaultPath = "/zato/soap"

// maxReplySize caps how much of a reply is read.
const maxReplySize = 10 << 20

type Config struct {
	// Path of the admin service relative to the cluster address. Defaults to [DefaultPath].
	Path string
	// Username and Password are sent as HTTP Basic Auth credentials if Username is set.
	Username string
	Password string
	// Timeout of a single invocation. No timeout if zero.
	Timeout time.Duration
}

func NewClient(logger *slog.Logger, httpClient *http.Client, config Config) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if config.Path == "" {
		config.Path = DefaultPath
	}
	return Client{
		logger:     logger,
		httpClient: httpClient,
		config:     config,
	}
}

// Client invokes admin services. It doesn't retry, a failed invocation is reported to the caller.
type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	config     Config
}

// Response is the reply of a successful invocation.
type Response struct {
	// CID is the correlation ID the admin service assigned to the invocation.
	CID     string
	Message *Message
}

// Invoke calls service at the admin service reachable under address with the request message.
// Transport failures, SOAP faults and replies with a result other than [ResultOK] are returned as
// errors.
func (c Client) Invoke(ctx context.Context, address, service string, request *Message) (*Response, error) {
	start := time.Now()
	response, result, err := c.invoke(ctx, address, service, request)
	metrics.AdminServiceRequestsTotal.WithLabelValues(service, result).Inc()
	metrics.AdminServiceRequestDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "Invoked admin service",
		"service", service,
		"address", address,
		"cid", response.CID,
		"duration", time.Since(start),
	)
	return response, nil
}

func (c Client) invoke(ctx context.Context, address, service string, request *Message) (*Response, string, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	body, err := request.envelope()
	if err != nil {
		return nil, "error", fmt.Errorf("failed to serialize request to %q: %v", service, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, address+c.config.Path, bytes.NewReader(body))
	if err != nil {
		return nil, "error", fmt.Errorf("failed to create request to %q: %v", service, err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", service)
	if id, ok := middleware.GetCorrelationID(ctx); ok {
		req.Header.Set(middleware.CorrelationIDHeader, id)
	}
	if c.config.Username != "" {
		req.SetBasicAuth(c.config.Username, c.config.Password)
	}

	c.logger.DebugContext(ctx, "Invoking admin service", "service", service, "address", address, "request", request.String())

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "error", fmt.Errorf("failed to invoke %q: %v", service, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxReplySize))
	if err != nil {
		return nil, "error", fmt.Errorf("failed to read reply of %q: %v", service, err)
	}

	message, f, err := parseEnvelope(raw)
	if f != nil {
		return nil, "fault", errdef.NewAdminService("%q returned a SOAP fault %s: %s", service, f.code, f.reason)
	}
	if err != nil {
		if res.StatusCode < 200 || res.StatusCode > 299 {
			return nil, "error", errdef.NewAdminService("%q returned HTTP status %d", service, res.StatusCode)
		}
		return nil, "error", fmt.Errorf("invalid reply of %q: %v", service, err)
	}

	cid, _ := message.Text("zato_env.cid")
	cid = strings.TrimSpace(cid)
	result, err := message.Text("zato_env.result")
	if err != nil {
		return nil, "error", fmt.Errorf("invalid reply of %q: %v", service, err)
	}
	if result = strings.TrimSpace(result); result != ResultOK {
		details, _ := message.Text("zato_env.details")
		return nil, "fault", errdef.NewAdminService("%q failed with result %s (cid %s): %s", service, result, cid, strings.TrimSpace(details))
	}

	return &Response{CID: cid, Message: message}, "ok", nil
}
