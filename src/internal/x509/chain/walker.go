// Copyright (c) 2026 The Certwalk Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

package x509chain

import (
	"bytes"
	"crypto/x509"

	"github.com/certwalk/certwalk/src/internal/x509/primitives"
)

// MaxChainLength bounds the number of certificates VerifyChain will walk.
// spec.md §5 leaves this an open question ("a sensible implementation
// should cap chain length — e.g., 10"); this core adopts that example
// value as the cap rather than leaving it unbounded.
const MaxChainLength = 10

// Walker drives spec.md §4.6's verify_chain pipeline. It holds no mutable
// state of its own: Prims is injected and Anchors is a read-only Store, so
// a *Walker is safe to share across concurrent VerifyChain calls.
type Walker struct {
	Prims   *primitives.Adapter
	Anchors *Store
	Trace   TraceFunc
}

// NewWalker builds a Walker over the given primitives adapter and anchor
// store. trace may be nil to disable telemetry.
func NewWalker(prims *primitives.Adapter, anchors *Store, trace TraceFunc) *Walker {
	return &Walker{Prims: prims, Anchors: anchors, Trace: trace}
}

func (w *Walker) trace(cert *x509.Certificate, pathlen int, err error) {
	if w.Trace != nil {
		w.Trace(cert, pathlen, err)
	}
}

// VerifyChain implements spec.md §4.6. chain[0] is the leaf; chain[1:] are
// intermediates in order, with the top-of-chain certificate last. A nil
// return is Ok; any other return is a *ValidationError.
func (w *Walker) VerifyChain(servername string, chain []*x509.Certificate) error {
	if len(chain) == 0 {
		return fail(InvalidInput, nil, "empty chain")
	}
	if len(chain) > MaxChainLength {
		return fail(InvalidInput, nil, "chain exceeds maximum length")
	}

	leaf := chain[0]
	tail := chain[1:]
	now := w.Prims.Now()

	// Stage 1: leaf role check.
	if err := verifyLeaf(now, leaf, servername); err != nil {
		w.trace(leaf, 0, err)
		return err
	}
	w.trace(leaf, 0, nil)

	// Stage 2: every intermediate's own validity and CA posture, before
	// any relation is checked.
	for i, cert := range tail {
		if err := verifyIntermediate(now, cert); err != nil {
			w.trace(cert, i+1, err)
			return err
		}
	}

	// Stage 3: the pairwise relation walk, leaf upward.
	current := leaf
	pathlen := 0
	for _, super := range tail {
		if err := verifyRelation(w.Prims, super, current, pathlen); err != nil {
			w.trace(super, pathlen, err)
			return err
		}
		current = super
		pathlen++
	}

	// Stage 4: anchor resolution.
	anchor := w.Anchors.FindIssuer(current)
	if anchor == nil {
		if bytes.Equal(current.RawSubject, current.RawIssuer) {
			err := fail(SelfSigned, current, "no trust anchor vouches for this self-signed certificate")
			w.trace(current, pathlen, err)
			return err
		}
		err := fail(NoTrustAnchor, current, "no trust anchor issued this certificate")
		w.trace(current, pathlen, err)
		return err
	}

	if !withinValidity(now, anchor) {
		err := fail(CertificateExpired, anchor, "trust anchor outside validity window")
		w.trace(anchor, pathlen, err)
		return err
	}

	err := verifyRelation(w.Prims, anchor, current, pathlen)
	w.trace(anchor, pathlen, err)
	return err
}
