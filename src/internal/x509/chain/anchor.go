// Copyright (c) 2026 The Certwalk Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

package x509chain

import (
	"bytes"
	"crypto/x509"

	"github.com/certwalk/certwalk/src/internal/x509/ext"
	"github.com/certwalk/certwalk/src/internal/x509/primitives"
)

// Store holds the trust anchors a ChainWalker resolves against. It is
// built once from a set of candidates and is read-only afterward — spec.md
// §4.5 and §5 both require this, and it is what makes a *Store safe to
// share across concurrent VerifyChain calls.
type Store struct {
	anchors   []*x509.Certificate
	attempted int
	retained  int
}

// NewStore runs verifyAnchor on each candidate and retains only those that
// pass. trace, if non-nil, is called once per candidate with the outcome —
// it never changes which candidates are retained.
func NewStore(prims *primitives.Adapter, candidates []*x509.Certificate, trace TraceFunc) *Store {
	s := &Store{}
	for _, cand := range candidates {
		s.attempted++
		err := verifyAnchor(prims, cand)
		if trace != nil {
			trace(cand, 0, err)
		}
		if err == nil {
			s.anchors = append(s.anchors, cand)
			s.retained++
		}
	}
	return s
}

// Attempted returns how many candidates NewStore was given.
func (s *Store) Attempted() int { return s.attempted }

// Retained returns how many candidates passed self-verification and are
// indexed for lookup.
func (s *Store) Retained() int { return s.retained }

// FindIssuer implements spec.md §4.5's issuer lookup:
//   - zero subject matches: nil.
//   - exactly one match: also require the AKI/SKI hint (when both sides
//     carry the identifier) to agree, else nil.
//   - more than one match: nil. The spec deliberately preserves this
//     fail-closed behavior rather than iterating until one validates.
func (s *Store) FindIssuer(child *x509.Certificate) *x509.Certificate {
	var matches []*x509.Certificate
	for _, a := range s.anchors {
		if bytes.Equal(a.RawSubject, child.RawIssuer) {
			matches = append(matches, a)
		}
	}

	switch len(matches) {
	case 0:
		return nil
	case 1:
		anchor := matches[0]
		aki := ext.AuthorityKeyIdOf(child)
		if aki.Present && len(aki.ID) > 0 {
			ski := ext.SubjectKeyIdOf(anchor)
			if ski.Present && len(ski.ID) > 0 && !bytes.Equal(aki.ID, ski.ID) {
				return nil
			}
		}
		return anchor
	default:
		return nil
	}
}
