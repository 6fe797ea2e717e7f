// Copyright (c) 2026 The Certwalk Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// Package primitives is the thin façade the chain walker uses to reach
// cryptography, hashing, and the clock without touching them directly.
//
// It exists so the chain-walking state machine in internal/x509/chain never
// hashes, verifies a signature, or reads the clock itself: every
// signature check and every "is now inside the validity window" check goes
// through an Adapter value, which makes the clock replaceable in tests and
// keeps the crypto surface in one place.
package primitives

import (
	"crypto"
	"crypto/md5"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"time"
)

// HashAlgorithm names one of the two digest algorithms this core supports.
//
// Only MD5 and SHA-1 are recognized; broadening to SHA-2 is an open
// question left to deployments that need it (see SPEC_FULL.md §9).
type HashAlgorithm int

const (
	// HashMD5 identifies the MD5 digest algorithm.
	HashMD5 HashAlgorithm = iota
	// HashSHA1 identifies the SHA-1 digest algorithm.
	HashSHA1
)

// String returns a human-readable name for the hash algorithm.
func (h HashAlgorithm) String() string {
	switch h {
	case HashMD5:
		return "MD5"
	case HashSHA1:
		return "SHA1"
	default:
		return "unknown"
	}
}

// cryptoHash maps a HashAlgorithm to the stdlib crypto.Hash it corresponds
// to, which rsa.VerifyPKCS1v15 needs to pick the right DigestInfo prefix.
func (h HashAlgorithm) cryptoHash() crypto.Hash {
	switch h {
	case HashMD5:
		return crypto.MD5
	case HashSHA1:
		return crypto.SHA1
	default:
		return 0
	}
}

// SignatureHashAlgorithm maps a certificate's outer signature algorithm
// identifier to the HashAlgorithm it implies. ok is false for anything
// other than MD5-with-RSA or SHA1-with-RSA, which is every algorithm this
// core does not support (ECDSA, DSA, SHA-2 with RSA, and so on).
func SignatureHashAlgorithm(alg x509.SignatureAlgorithm) (HashAlgorithm, bool) {
	switch alg {
	case x509.MD5WithRSA:
		return HashMD5, true
	case x509.SHA1WithRSA:
		return HashSHA1, true
	default:
		return 0, false
	}
}

// Clock is the injected source of "now" for validity-window checks. The
// core never calls time.Now itself.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

// Now calls the underlying function.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the default Clock, backed by time.Now.
var SystemClock Clock = ClockFunc(time.Now)

// Adapter is the façade over crypto and the clock that the rest of the
// core consumes. Its methods never log or panic on cryptographic failure;
// they report absence or error and let the caller decide what it means.
type Adapter struct {
	clock Clock
}

// New creates an Adapter using the given Clock. Pass primitives.SystemClock
// for production use, or a fixed ClockFunc in tests.
func New(clock Clock) *Adapter {
	if clock == nil {
		clock = SystemClock
	}
	return &Adapter{clock: clock}
}

// Now returns the adapter's current time, as reported by its Clock.
func (a *Adapter) Now() time.Time { return a.clock.Now() }

// Digest hashes data with the given algorithm.
func (a *Adapter) Digest(alg HashAlgorithm, data []byte) []byte {
	switch alg {
	case HashMD5:
		sum := md5.Sum(data)
		return sum[:]
	case HashSHA1:
		sum := sha1.Sum(data)
		return sum[:]
	default:
		return nil
	}
}

// VerifyRSA checks that sig is a valid RSA PKCS#1 v1.5 signature over tbs
// under the given hash algorithm and public key.
//
// This single call is the Go-idiomatic stand-in for the spec's two-step
// verify_rsa_pkcs1 + parse_digest_info combinator: rsa.VerifyPKCS1v15
// recovers the padded DigestInfo, checks its ASN.1 structure and algorithm
// identifier against alg, and compares the digest, all in one pass. See
// DESIGN.md for why this core does not reimplement that recovery by hand.
func (a *Adapter) VerifyRSA(pub *rsa.PublicKey, alg HashAlgorithm, tbs, sig []byte) error {
	digest := a.Digest(alg, tbs)
	return rsa.VerifyPKCS1v15(pub, alg.cryptoHash(), digest, sig)
}

// TBSBytes returns the exact DER-encoded to-be-signed range of cert, as
// produced by the ASN.1 parser. This resolves the spec's Open Question 1:
// the source's hand-tuned byte-offset slice is never reproduced here.
func (a *Adapter) TBSBytes(cert *x509.Certificate) []byte {
	return cert.RawTBSCertificate
}
