// Copyright (c) 2026 The Certwalk Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// Package ext provides typed, criticality-aware accessors over a decoded
// certificate's extensions, plus the central criticality policy: any
// extension marked critical that this package does not recognize must
// reject the owning certificate.
//
// This directly implements RFC 5280 §4.2's "a certificate-using system
// MUST reject the certificate if it encounters a critical extension it
// does not recognize." Every accessor here reports both the decoded
// payload (already available on *x509.Certificate via the stdlib parser)
// and whether the underlying extension was marked critical.
package ext

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
)

// OIDs for the seven extension types this core recognizes (RFC 5280 §4.2).
var (
	OIDKeyUsage             = asn1.ObjectIdentifier{2, 5, 29, 15}
	OIDSubjectAltName       = asn1.ObjectIdentifier{2, 5, 29, 17}
	OIDBasicConstraints     = asn1.ObjectIdentifier{2, 5, 29, 19}
	OIDSubjectKeyIdentifier = asn1.ObjectIdentifier{2, 5, 29, 14}
	OIDAuthorityKeyId       = asn1.ObjectIdentifier{2, 5, 29, 35}
	OIDCertificatePolicies  = asn1.ObjectIdentifier{2, 5, 29, 32}
	OIDExtKeyUsage          = asn1.ObjectIdentifier{2, 5, 29, 37}
	// OIDAnyPolicy is the anyPolicy OID certificatePolicies may assert.
	OIDAnyPolicy = asn1.ObjectIdentifier{2, 5, 29, 32, 0}
)

// recognized is the full set of extension types ExtensionInspector can
// decode — the global recognition set from spec.md §4.2. A role's
// "handled" set (spec.md §4.4) is a subset of this, enforced separately by
// the role verifiers.
var recognized = []asn1.ObjectIdentifier{
	OIDKeyUsage,
	OIDSubjectAltName,
	OIDBasicConstraints,
	OIDSubjectKeyIdentifier,
	OIDAuthorityKeyId,
	OIDCertificatePolicies,
	OIDExtKeyUsage,
}

func isRecognized(id asn1.ObjectIdentifier) bool {
	for _, r := range recognized {
		if id.Equal(r) {
			return true
		}
	}
	return false
}

// BasicConstraints is the decoded BasicConstraints extension payload.
type BasicConstraints struct {
	Present  bool
	Critical bool
	IsCA     bool
	// PathLen is nil when the extension omits the path length, matching
	// spec.md's Option<u32>.
	PathLen *int
}

// BasicConstraintsOf reads the BasicConstraints extension of cert.
func BasicConstraintsOf(cert *x509.Certificate) BasicConstraints {
	bc := BasicConstraints{
		Present:  cert.BasicConstraintsValid,
		Critical: extensionCritical(cert, OIDBasicConstraints),
		IsCA:     cert.IsCA,
	}
	if !bc.Present {
		return bc
	}
	if cert.MaxPathLenZero {
		zero := 0
		bc.PathLen = &zero
	} else if cert.MaxPathLen >= 0 {
		v := cert.MaxPathLen
		bc.PathLen = &v
	}
	return bc
}

// KeyUsage is the decoded KeyUsage extension payload.
type KeyUsage struct {
	Present  bool
	Critical bool
	Usage    x509.KeyUsage
}

// Has reports whether every bit in want is set in the usage.
func (k KeyUsage) Has(want x509.KeyUsage) bool { return k.Usage&want == want }

// KeyUsageOf reads the KeyUsage extension of cert.
func KeyUsageOf(cert *x509.Certificate) KeyUsage {
	present := hasExtension(cert, OIDKeyUsage)
	return KeyUsage{
		Present:  present,
		Critical: extensionCritical(cert, OIDKeyUsage),
		Usage:    cert.KeyUsage,
	}
}

// ExtKeyUsage is the decoded ExtendedKeyUsage extension payload.
type ExtKeyUsage struct {
	Present  bool
	Critical bool
	Usages   []x509.ExtKeyUsage
}

// HasServerAuth reports whether id-kp-serverAuth is among the usages.
func (e ExtKeyUsage) HasServerAuth() bool {
	for _, u := range e.Usages {
		if u == x509.ExtKeyUsageServerAuth {
			return true
		}
	}
	return false
}

// ExtKeyUsageOf reads the ExtendedKeyUsage extension of cert.
func ExtKeyUsageOf(cert *x509.Certificate) ExtKeyUsage {
	present := hasExtension(cert, OIDExtKeyUsage)
	return ExtKeyUsage{
		Present:  present,
		Critical: extensionCritical(cert, OIDExtKeyUsage),
		Usages:   cert.ExtKeyUsage,
	}
}

// KeyID is the decoded SubjectKeyId or AuthorityKeyId payload — both are
// just an opaque byte-string hint, per spec.md §3.
type KeyID struct {
	Present  bool
	Critical bool
	ID       []byte
}

// SubjectKeyIdOf reads the SubjectKeyIdentifier extension of cert.
func SubjectKeyIdOf(cert *x509.Certificate) KeyID {
	return KeyID{
		Present:  len(cert.SubjectKeyId) > 0,
		Critical: extensionCritical(cert, OIDSubjectKeyIdentifier),
		ID:       cert.SubjectKeyId,
	}
}

// AuthorityKeyIdOf reads the AuthorityKeyIdentifier extension of cert.
//
// Only the keyIdentifier field is modeled, per spec.md §3's
// AuthorityKeyId{key_id, issuer, serial} — the issuer/serial alternative
// form is rare and out of scope, matching stdlib's own parser which only
// exposes the key-identifier bytes.
func AuthorityKeyIdOf(cert *x509.Certificate) KeyID {
	return KeyID{
		Present:  len(cert.AuthorityKeyId) > 0,
		Critical: extensionCritical(cert, OIDAuthorityKeyId),
		ID:       cert.AuthorityKeyId,
	}
}

// SubjectAltName is the decoded SubjectAltName extension payload. Only
// dNSName entries are modeled — spec.md §3 notes these are "the ones
// relevant" to this core.
type SubjectAltName struct {
	Present  bool
	Critical bool
	DNSNames []string
}

// SubjectAltNameOf reads the SubjectAltName extension of cert.
func SubjectAltNameOf(cert *x509.Certificate) SubjectAltName {
	return SubjectAltName{
		Present:  hasExtension(cert, OIDSubjectAltName),
		Critical: extensionCritical(cert, OIDSubjectAltName),
		DNSNames: cert.DNSNames,
	}
}

// CertificatePolicies is the decoded CertificatePolicies extension
// payload.
type CertificatePolicies struct {
	Present  bool
	Critical bool
	OIDs     []asn1.ObjectIdentifier
}

// HasAnyPolicy reports whether the anyPolicy OID is asserted.
func (c CertificatePolicies) HasAnyPolicy() bool {
	for _, o := range c.OIDs {
		if o.Equal(OIDAnyPolicy) {
			return true
		}
	}
	return false
}

// PoliciesOf reads the CertificatePolicies extension of cert.
func PoliciesOf(cert *x509.Certificate) CertificatePolicies {
	return CertificatePolicies{
		Present:  hasExtension(cert, OIDCertificatePolicies),
		Critical: extensionCritical(cert, OIDCertificatePolicies),
		OIDs:     cert.PolicyIdentifiers,
	}
}

// UnrecognizedCriticalExtensions returns every extension on cert that is
// both marked critical and not among the seven types this package
// recognizes (spec.md §4.2's global recognition set).
func UnrecognizedCriticalExtensions(cert *x509.Certificate) []pkix.Extension {
	var out []pkix.Extension
	for _, e := range cert.Extensions {
		if e.Critical && !isRecognized(e.Id) {
			out = append(out, e)
		}
	}
	return out
}

// HasDisallowedCriticalExtension reports whether cert carries a critical
// extension that is not in the role-specific handled set. allowed holds
// the OIDs (as dotted strings, via OID.String()) a given role treats as
// safe-when-critical; an extension marked critical that is either
// unrecognized globally or absent from allowed trips this check.
func HasDisallowedCriticalExtension(cert *x509.Certificate, allowed map[string]bool) bool {
	for _, e := range cert.Extensions {
		if !e.Critical {
			continue
		}
		if !allowed[e.Id.String()] {
			return true
		}
	}
	return false
}

func hasExtension(cert *x509.Certificate, id asn1.ObjectIdentifier) bool {
	for _, e := range cert.Extensions {
		if e.Id.Equal(id) {
			return true
		}
	}
	return false
}

func extensionCritical(cert *x509.Certificate, id asn1.ObjectIdentifier) bool {
	for _, e := range cert.Extensions {
		if e.Id.Equal(id) {
			return e.Critical
		}
	}
	return false
}
