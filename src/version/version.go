// Copyright (c) 2026 The Certwalk Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// Package version provides centralized version information for certwalk.
package version

// Version holds the current version of certwalk.
// This value can be overridden at build time using ldflags.
var Version = "0.1.0"
