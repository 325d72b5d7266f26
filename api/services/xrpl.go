package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"xrplbalance/api/metrics"
	"xrplbalance/api/types"
)

const (
	accountsPath = "/v2/accounts/"
	maxRedirects = 10
)

// ErrUpstream marks every failure to fetch or decode account data.
var ErrUpstream = errors.New("xrpl data api request failed")

var errTooManyRedirects = errors.New("too many redirects")

type XRPLService struct {
	baseURL string
	timeout time.Duration
	client  *fasthttp.Client
	metrics *metrics.Metrics
	logger  *zap.SugaredLogger
}

func NewXRPLService(cfg *types.Config, m *metrics.Metrics, logger *zap.SugaredLogger) *XRPLService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &XRPLService{
		baseURL: strings.TrimRight(cfg.XRPLDataAPIURL, "/"),
		timeout: cfg.XRPLTimeout,
		client: &fasthttp.Client{
			Name:                   cfg.XRPLUserAgent,
			DisablePathNormalizing: true,
		},
		metrics: m,
		logger:  logger,
	}
}

// AccountURL interpolates the address into the accounts endpoint as is.
func (s *XRPLService) AccountURL(address string) string {
	return s.baseURL + accountsPath + address
}

// GetGenesisBalance returns account_data.genesis_balance for the address as
// raw JSON, or nil when either level is absent.
func (s *XRPLService) GetGenesisBalance(address string) (json.RawMessage, error) {
	start := time.Now()

	balance, err := s.fetchGenesisBalance(address)

	s.metrics.ObserveUpstream(time.Since(start), err)

	return balance, err
}

func (s *XRPLService) fetchGenesisBalance(address string) (json.RawMessage, error) {
	url := s.AccountURL(address)

	code, body, err := s.get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrUpstream, url, err)
	}

	s.logger.Debugw("xrpl data api responded", "url", url, "status", code, "bytes", len(body))

	balance, err := genesisBalance(body)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s (status %d): %w", ErrUpstream, url, code, err)
	}

	return balance, nil
}

// get sends the URL byte for byte and follows redirects across hosts. The
// timeout, when set, bounds the whole exchange including every hop.
func (s *XRPLService) get(url string) (int, []byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(url)
	req.URI().DisablePathNormalizing = true

	var deadline time.Time
	if s.timeout > 0 {
		deadline = time.Now().Add(s.timeout)
	}

	for hops := 0; ; hops++ {
		var err error
		if deadline.IsZero() {
			err = s.client.Do(req, resp)
		} else {
			err = s.client.DoDeadline(req, resp, deadline)
		}
		if err != nil {
			return 0, nil, err
		}

		code := resp.StatusCode()
		location := resp.Header.Peek(fasthttp.HeaderLocation)
		if !fasthttp.StatusCodeIsRedirect(code) || len(location) == 0 {
			return code, append([]byte(nil), resp.Body()...), nil
		}
		if hops == maxRedirects {
			return code, nil, errTooManyRedirects
		}

		req.URI().UpdateBytes(location)
	}
}

// genesisBalance walks account_data.genesis_balance. Missing or null levels
// yield nil; a level that is present but not an object is an error.
func genesisBalance(body []byte) (json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	accountData, ok := doc["account_data"]
	if !ok {
		return nil, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(accountData, &fields); err != nil {
		return nil, fmt.Errorf("decode account_data: %w", err)
	}

	return fields["genesis_balance"], nil
}
