// Copyright (c) 2026 The Certwalk Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// certwalk is a command-line tool for validating an X.509 certificate
// chain against a set of trust anchors.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/certwalk/certwalk/cmd/certwalk@latest
//
// # Usage
//
//	certwalk -f LEAF_CERT [FLAGS]
//
// # Flags
//
//	-f, --leaf           Leaf certificate file (PEM or DER) [required]
//	-i, --intermediates  Intermediate certificate bundle file
//	-a, --anchors        Trust anchor bundle file
//	-n, --servername     Expected server name (RFC 6125 match)
//	-t, --tree           Display the chain as an ASCII tree
//	    --table          Display the chain as a markdown table
//	-j, --json           Emit one JSON trace line per hop instead of CLI text
//	-c, --config         YAML file supplying defaults for any of the above flags
//
// # Examples
//
// Validate a leaf against a bundled intermediate and a trust anchor:
//
//	certwalk -f leaf.pem -i intermediates.pem -a roots.pem -n example.com
//
// Visualize the chain as it is walked:
//
//	certwalk -f leaf.pem -i intermediates.pem -a roots.pem --tree
//
// Supply the same flags from a config file instead:
//
//	certwalk -c certwalk.yaml
package main
