// Copyright 2022 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import "github.com/rs/zerolog"

// OptionalLogger is a logger that may be unset. When unset, the returned
// events are nil, and zerolog treats every method of a nil event as a no-op.
type OptionalLogger struct {
	L *zerolog.Logger
}

func (l OptionalLogger) Debug() *zerolog.Event {
	if l.L == nil {
		return nil
	}
	return l.L.Debug()
}

func (l OptionalLogger) Info() *zerolog.Event {
	if l.L == nil {
		return nil
	}
	return l.L.Info()
}

func (l OptionalLogger) Warn() *zerolog.Event {
	if l.L == nil {
		return nil
	}
	return l.L.Warn()
}

func (l OptionalLogger) Error() *zerolog.Event {
	if l.L == nil {
		return nil
	}
	return l.L.Error()
}

// Set sets the logger, adding the given key-value pairs as fields.
func (l *OptionalLogger) Set(ll zerolog.Logger, keyVals ...interface{}) {
	if len(keyVals) > 0 {
		ll = ll.With().Fields(keyVals).Logger()
	}
	l.L = &ll
}
