// Copyright (c) 2026 The Certwalk Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// Package x509chain implements the RFC 5280 path-validation state machine
// plus the RFC 6125 server-identity check: it decides whether a
// peer-presented certificate chain authenticates a named server under a
// locally trusted set of anchors.
//
// The package is organized the way the algorithm is specified:
//   - result.go holds the Result taxonomy (FailKind, ValidationError).
//   - relation.go verifies one parent→child hop: naming, AKI/SKI hinting,
//     signature cryptography, and path-length budget.
//   - roles.go holds the three role-specific checks: CA-intermediate,
//     server-leaf, and trust-anchor self-verification.
//   - anchor.go holds Store, the read-only trust-anchor index built once
//     at load time.
//   - walker.go drives the full pipeline: leaf role check, intermediate
//     role checks, the pairwise relation walk, and anchor resolution.
//   - trace.go is the optional per-hop telemetry hook.
//   - visualization.go renders a validated or failed chain for humans.
package x509chain
