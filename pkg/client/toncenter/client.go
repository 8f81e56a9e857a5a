// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package toncenter is a client for the toncenter v2 JSON-RPC API. It
// implements the query side of [api]: running get methods, waiting for
// deployment, and finding transactions.
package toncenter

import (
	"context"
	"net/http"
	"time"

	"github.com/AccumulateNetwork/jsonrpc2/v15"
	"github.com/rs/zerolog"
	"gitlab.com/accumulatenetwork/nft-collection/internal/logging"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/api"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/version"
)

const (
	MainnetEndpoint = "https://toncenter.com/api/v2/jsonRPC"
	TestnetEndpoint = "https://testnet.toncenter.com/api/v2/jsonRPC"
)

// DefaultPollInterval is how often [Client.WaitForDeploy] checks the state
// of an account.
const DefaultPollInterval = 2 * time.Second

var _ api.Querier = (*Client)(nil)
var _ api.DeployWaiter = (*Client)(nil)
var _ api.TransactionFinder = (*Client)(nil)

type Client struct {
	Client http.Client
	Server string

	// PollInterval is used by WaitForDeploy.
	PollInterval time.Duration

	// TransactionLimit is the number of recent transactions FindTransaction
	// searches.
	TransactionLimit int

	logger logging.OptionalLogger
}

type Option func(c *Client) error

// APIKey sets the key sent with every request.
func APIKey(key string) Option {
	return func(c *Client) error {
		c.headers().key = key
		return nil
	}
}

func Timeout(d time.Duration) Option {
	return func(c *Client) error {
		if d < 0 {
			return errors.BadRequest.WithFormat("negative timeout %v", d)
		}
		c.Client.Timeout = d
		return nil
	}
}

func PollInterval(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return errors.BadRequest.WithFormat("poll interval must be positive, got %v", d)
		}
		c.PollInterval = d
		return nil
	}
}

func Logger(logger zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger.Set(logger, "module", "toncenter")
		return nil
	}
}

// New creates a client for the given JSON-RPC endpoint.
func New(server string, opts ...Option) (*Client, error) {
	if server == "" {
		return nil, errors.BadRequest.With("missing endpoint")
	}
	c := new(Client)
	c.Client.Timeout = 15 * time.Second
	c.Server = server
	c.PollInterval = DefaultPollInterval
	c.TransactionLimit = 20
	c.headers()
	for _, opt := range opts {
		err := opt(c)
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

// headerTransport adds the user agent and the API key to requests.
type headerTransport struct {
	key  string
	next http.RoundTripper
}

func (c *Client) headers() *headerTransport {
	if t, ok := c.Client.Transport.(*headerTransport); ok {
		return t
	}
	t := &headerTransport{next: c.Client.Transport}
	c.Client.Transport = t
	return t
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", version.UserAgent())
	if t.key != "" {
		req.Header.Set("X-API-Key", t.key)
	}
	return next.RoundTrip(req)
}

func (c *Client) request(ctx context.Context, method string, params, result interface{}) error {
	start := time.Now()
	jc := jsonrpc2.Client{Client: c.Client}
	err := jc.Request(ctx, c.Server, method, params, result)
	mLatency.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if err == nil {
		mRequests.WithLabelValues(method, "ok").Inc()
		c.logger.Debug().Str("method", method).Dur("duration", time.Since(start)).Msg("Request succeeded")
		return nil
	}

	mRequests.WithLabelValues(method, "error").Inc()
	c.logger.Warn().Err(err).Str("method", method).Msg("Request failed")

	var jerr jsonrpc2.Error
	if errors.As(err, &jerr) {
		return errors.Rejected.WithFormat("%s: %s (%d)", method, jerr.Message, jerr.Code)
	}
	if ctx.Err() != nil {
		return errors.Timeout.WithCauseAndFormat(ctx.Err(), "%s", method)
	}
	return errors.UnknownError.WithFormat("%s: %w", method, err)
}
