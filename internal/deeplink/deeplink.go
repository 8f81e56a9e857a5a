// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package deeplink submits messages by producing ton://transfer links for a
// wallet to sign and send.
package deeplink

import (
	"context"
	"encoding/base64"
	"net/url"

	"github.com/rs/zerolog"
	"gitlab.com/accumulatenetwork/nft-collection/internal/logging"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/api"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/address"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/coins"
)

const Scheme = "ton"

var _ api.Submitter = (*Submitter)(nil)

// Submitter is an [api.Submitter] that does not send anything. The link is
// returned in the submission and passed to the callback, if there is one.
type Submitter struct {
	Testnet bool

	// OnLink is called with each link.
	OnLink func(link string) error

	logger logging.OptionalLogger
}

func New(testnet bool, logger zerolog.Logger) *Submitter {
	s := &Submitter{Testnet: testnet}
	s.logger.Set(logger, "module", "deeplink")
	return s
}

// Link returns the transfer link for the envelope. The destination is
// formatted as bounceable or not per the envelope. The body and state init
// are base64url encoded BoCs.
func (s *Submitter) Link(env *api.Envelope) (string, error) {
	if env == nil || env.To == nil {
		return "", errors.BadRequest.With("missing destination")
	}
	err := coins.Validate(env.Value)
	if err != nil {
		return "", errors.BadRequest.WithCauseAndFormat(err, "value")
	}

	q := url.Values{}
	q.Set("amount", env.Value.String())
	if env.Body != nil {
		q.Set("bin", base64.RawURLEncoding.EncodeToString(env.Body.ToBOC()))
	}
	if env.StateInit != nil {
		q.Set("init", base64.RawURLEncoding.EncodeToString(env.StateInit.ToBOC()))
	}

	u := url.URL{
		Scheme:   Scheme,
		Host:     "transfer",
		Path:     "/" + env.To.Format(address.FormatOptions{Bounceable: env.Bounce, Testnet: s.Testnet, URLSafe: true}),
		RawQuery: q.Encode(),
	}
	return u.String(), nil
}

func (s *Submitter) Submit(_ context.Context, env *api.Envelope) (*api.Submission, error) {
	link, err := s.Link(env)
	if err != nil {
		return nil, err
	}

	sub := &api.Submission{To: env.To, Link: link}
	if env.Body != nil {
		sub.BodyHash = env.Body.Hash()
	}

	s.logger.Info().Str("link", link).Msg("Sign and send with your wallet")
	if s.OnLink != nil {
		err = s.OnLink(link)
		if err != nil {
			return nil, errors.UnknownError.Wrap(err)
		}
	}
	return sub, nil
}
