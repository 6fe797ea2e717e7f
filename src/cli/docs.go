// Copyright (c) 2026 The Certwalk Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// Package cli provides the command-line interface for certwalk. It implements
// a Cobra-based "verify" command that loads a leaf certificate, an optional
// intermediate bundle, and an optional trust-anchor bundle, walks the chain
// with internal/x509/chain, and renders the outcome as plain text, an ASCII
// tree, or a markdown table. Flags can be supplied directly or defaulted from
// a YAML config file.
package cli
