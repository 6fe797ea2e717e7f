// Copyright (c) 2026 The Certwalk Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

package x509chain

import (
	"bytes"
	"crypto/x509"
	"strings"
	"time"

	"github.com/certwalk/certwalk/src/internal/x509/ext"
	"github.com/certwalk/certwalk/src/internal/x509/primitives"
)

// caHandledCritical is the critical-safe extension set for CA roles
// (intermediate and trust-anchor self-verify), exactly as spec.md §4.4
// states: "in this role the handled set is {KeyUsage, BasicConstraints}."
var caHandledCritical = map[string]bool{
	ext.OIDKeyUsage.String():         true,
	ext.OIDBasicConstraints.String(): true,
}

// leafHandledCritical is the critical-safe extension set for the
// server-leaf role. See SPEC_FULL.md §9 for why SubjectAltName is
// included beyond spec.md's literal enumeration.
var leafHandledCritical = map[string]bool{
	ext.OIDBasicConstraints.String():    true,
	ext.OIDKeyUsage.String():            true,
	ext.OIDExtKeyUsage.String():         true,
	ext.OIDCertificatePolicies.String(): true,
	ext.OIDSubjectAltName.String():      true,
}

func withinValidity(now time.Time, cert *x509.Certificate) bool {
	return !now.Before(cert.NotBefore) && !now.After(cert.NotAfter)
}

// verifyIntermediate implements spec.md §4.4's CA-intermediate role.
func verifyIntermediate(now time.Time, cert *x509.Certificate) error {
	if !withinValidity(now, cert) {
		return fail(CertificateExpired, cert, "intermediate outside validity window")
	}
	return checkCAExtensions(cert)
}

// checkCAExtensions is shared by verifyIntermediate and verifyAnchor: both
// require BasicConstraints asserting CA status, KeyUsage with
// keyCertSign, and no critical extension outside caHandledCritical.
func checkCAExtensions(cert *x509.Certificate) error {
	bc := ext.BasicConstraintsOf(cert)
	if !bc.Present || !bc.IsCA {
		return fail(InvalidExtensions, cert, "missing or non-CA BasicConstraints")
	}

	ku := ext.KeyUsageOf(cert)
	if !ku.Present || !ku.Has(x509.KeyUsageCertSign) {
		return fail(InvalidExtensions, cert, "missing keyCertSign key usage")
	}

	if ext.HasDisallowedCriticalExtension(cert, caHandledCritical) {
		return fail(InvalidExtensions, cert, "unhandled critical extension")
	}
	return nil
}

// verifyLeaf implements spec.md §4.4's server-leaf role.
func verifyLeaf(now time.Time, cert *x509.Certificate, servername string) error {
	if !withinValidity(now, cert) {
		return fail(CertificateExpired, cert, "leaf outside validity window")
	}

	if !matchServerName(cert, servername) {
		return fail(InvalidServerName, cert, "server name does not match certificate identity")
	}

	if err := checkLeafExtensions(cert); err != nil {
		return err
	}
	return nil
}

func checkLeafExtensions(cert *x509.Certificate) error {
	// "BasicConstraints, if present, must NOT assert CA status" — spec.md
	// §4.4 expresses this specifically as "no path-length constraint
	// present", which is the proxy check preserved here.
	bc := ext.BasicConstraintsOf(cert)
	if bc.Present && bc.PathLen != nil {
		return fail(InvalidServerExtensions, cert, "leaf certificate asserts a path length constraint")
	}

	ku := ext.KeyUsageOf(cert)
	if ku.Present && !ku.Has(x509.KeyUsageKeyEncipherment) {
		return fail(InvalidServerExtensions, cert, "leaf KeyUsage lacks keyEncipherment")
	}

	eku := ext.ExtKeyUsageOf(cert)
	if eku.Present && !eku.HasServerAuth() {
		return fail(InvalidServerExtensions, cert, "leaf ExtendedKeyUsage lacks serverAuth")
	}

	pol := ext.PoliciesOf(cert)
	if pol.Present && pol.Critical && !pol.HasAnyPolicy() {
		return fail(InvalidServerExtensions, cert, "critical CertificatePolicies lacks anyPolicy")
	}

	if ext.HasDisallowedCriticalExtension(cert, leafHandledCritical) {
		return fail(InvalidServerExtensions, cert, "unhandled critical extension")
	}
	return nil
}

// matchServerName implements the RFC 6125 server-identity check spec.md
// §4.4 describes: an exact, case-insensitive match against a SAN dNSName
// entry, falling back to the subject Common Name only when SAN is absent.
// No servername fails closed. Wildcards are not handled (spec.md §9 Open
// Question 4).
func matchServerName(cert *x509.Certificate, servername string) bool {
	if servername == "" {
		return false
	}
	san := ext.SubjectAltNameOf(cert)
	if san.Present && len(san.DNSNames) > 0 {
		for _, name := range san.DNSNames {
			if strings.EqualFold(name, servername) {
				return true
			}
		}
		return false
	}
	return cert.Subject.CommonName != "" && strings.EqualFold(cert.Subject.CommonName, servername)
}

// verifyAnchor implements spec.md §4.4's trust-anchor self-verify role,
// applied once per candidate when the Store is built. All four checks
// must hold in this order: self-signed, self-signature, validity, CA
// extensions.
func verifyAnchor(prims *primitives.Adapter, cert *x509.Certificate) error {
	if !bytes.Equal(cert.RawSubject, cert.RawIssuer) {
		return fail(InvalidCA, cert, "trust anchor candidate is not self-signed")
	}

	if err := checkSignature(prims, cert, cert); err != nil {
		return err
	}

	if !withinValidity(prims.Now(), cert) {
		return fail(CertificateExpired, cert, "trust anchor outside validity window")
	}

	return checkCAExtensions(cert)
}
