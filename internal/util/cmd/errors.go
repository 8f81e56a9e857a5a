// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package cmdutil

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"golang.org/x/term"
)

// Exit is called by Fatalf. Tests replace it.
var Exit = os.Exit

var stderr io.Writer = os.Stderr

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printf(c *color.Color, format string, args ...interface{}) {
	if isTerminal(stderr) {
		_, _ = c.Fprintf(stderr, format, args...)
	} else {
		_, _ = fmt.Fprintf(stderr, format, args...)
	}
}

func Fatalf(format string, args ...interface{}) {
	printf(color.New(color.FgRed), "Error: "+format+"\n", args...)
	Exit(1)
}

// Check exits if err is not nil. Errors caused by the caller, such as a bad
// flag or an invalid message, exit with status 2.
func Check(err error) {
	if err == nil {
		return
	}
	printf(color.New(color.FgRed), "Error: %v\n", err)
	if errors.Code(err).IsClientError() {
		Exit(2)
	} else {
		Exit(1)
	}
}

func Checkf(err error, format string, otherArgs ...interface{}) {
	if err != nil {
		Check(errors.UnknownError.WithCauseAndFormat(err, format+": %v", append(otherArgs, err)...))
	}
}

func Warnf(format string, args ...interface{}) {
	printf(color.New(color.FgYellow), "WARNING: "+format+"\n", args...)
}
