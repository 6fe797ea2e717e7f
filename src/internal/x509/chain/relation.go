// Copyright (c) 2026 The Certwalk Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

package x509chain

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"

	"github.com/certwalk/certwalk/src/internal/x509/ext"
	"github.com/certwalk/certwalk/src/internal/x509/primitives"
)

// namesEqual implements spec.md §4.3 step 1's Name equality using the
// DER-encoded RDN sequences the parser already preserved — the same
// byte-exact comparison stdlib's own x509.CertPool uses to index
// certificates by subject. This sidesteps RFC 5280's string-preparation
// rules (case folding, whitespace collapsing) for a simpler, stricter
// equality; see DESIGN.md for why that tradeoff was made here.
func namesEqual(a, b []byte) bool { return bytes.Equal(a, b) }

// verifyRelation validates one parent→child hop, in the order spec.md
// §4.3 requires so that error attribution is deterministic:
//  1. name match, 2. AKI/SKI hint, 3. signature, 4. path-length budget.
func verifyRelation(prims *primitives.Adapter, parent, child *x509.Certificate, pathlen int) error {
	if !namesEqual(parent.RawSubject, child.RawIssuer) {
		return fail(InvalidCertificate, child, "issuer does not match parent subject")
	}

	if err := checkKeyIDHint(parent, child); err != nil {
		return err
	}

	if err := checkSignature(prims, parent, child); err != nil {
		return err
	}

	return checkPathLength(parent, pathlen)
}

// checkKeyIDHint implements spec.md §4.3 step 2: the AuthorityKeyId and
// SubjectKeyId are a hint, not a mandate. If either side lacks the
// identifier, the check silently passes.
func checkKeyIDHint(parent, child *x509.Certificate) error {
	aki := ext.AuthorityKeyIdOf(child)
	if !aki.Present || len(aki.ID) == 0 {
		return nil
	}
	ski := ext.SubjectKeyIdOf(parent)
	if !ski.Present || len(ski.ID) == 0 {
		return nil
	}
	if !bytes.Equal(aki.ID, ski.ID) {
		return fail(InvalidExtensions, child, "authority key id does not match parent subject key id")
	}
	return nil
}

// checkSignature implements spec.md §4.3 step 3.
func checkSignature(prims *primitives.Adapter, parent, child *x509.Certificate) error {
	alg, ok := primitives.SignatureHashAlgorithm(child.SignatureAlgorithm)
	if !ok {
		return fail(InvalidSignature, child, "unsupported signature algorithm: "+child.SignatureAlgorithm.String())
	}

	pub, ok := parent.PublicKey.(*rsa.PublicKey)
	if !ok {
		return fail(InvalidSignature, child, "issuer public key is not RSA")
	}

	tbs := prims.TBSBytes(child)
	if err := prims.VerifyRSA(pub, alg, tbs, child.Signature); err != nil {
		return fail(InvalidSignature, child, err.Error())
	}
	return nil
}

// checkPathLength implements spec.md §4.3 step 4: if the parent's
// BasicConstraints carry path_len = Some(n), then n must be at least the
// number of non-self-issued intermediates already walked.
func checkPathLength(parent *x509.Certificate, pathlen int) error {
	bc := ext.BasicConstraintsOf(parent)
	if bc.Present && bc.PathLen != nil && *bc.PathLen < pathlen {
		return fail(InvalidPathlen, parent, "path length constraint exceeded")
	}
	return nil
}
