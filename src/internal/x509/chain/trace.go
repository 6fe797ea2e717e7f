// Copyright (c) 2026 The Certwalk Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

package x509chain

import (
	"crypto/x509"

	"github.com/certwalk/certwalk/src/logger"
)

// TraceFunc receives one event per hop the walker evaluates: the
// certificate under consideration, its path-length at that point, and the
// outcome (nil for Ok). It implements spec.md §6's "observable telemetry":
// per-hop (subject-CN, pathlen, outcome) events that never influence the
// returned Result.
type TraceFunc func(cert *x509.Certificate, pathlen int, err error)

// LoggerTrace adapts a logger.Logger into a TraceFunc, replacing the
// source's stdout printf traces with an injected sink, per spec.md §9's
// "I/O-in-core" redesign item.
func LoggerTrace(log logger.Logger) TraceFunc {
	return func(cert *x509.Certificate, pathlen int, err error) {
		subject := "<none>"
		if cert != nil {
			subject = cert.Subject.CommonName
		}
		outcome := "Ok"
		if err != nil {
			outcome = err.Error()
		}
		log.Printf("x509chain: subject=%q pathlen=%d outcome=%s", subject, pathlen, outcome)
	}
}
