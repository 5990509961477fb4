// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// traceWriter logs the raw protocol exchange at trace level and mirrors it
// to an optional sink. Lines carrying the LOGIN command are redacted so
// credentials never reach either destination.
type traceWriter struct {
	l    *logrus.Logger
	sink io.Writer
}

func (w *traceWriter) Write(p []byte) (int, error) {
	data := strings.TrimSpace(string(p))
	if strings.Contains(strings.ToUpper(data), "LOGIN") {
		data = "<login exchange, credentials redacted>"
		w.l.Trace("login exchange, credentials redacted")
	} else {
		w.l.WithField("data", data).Trace("protocol exchange")
	}

	if w.sink != nil {
		if _, err := w.sink.Write(append([]byte(data), '\n')); err != nil {
			w.l.WithField("error", err).Debug("Could not write protocol trace to sink")
		}
	}
	return len(p), nil
}
