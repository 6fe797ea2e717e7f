// Copyright (c) 2026 The Certwalk Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

package x509chain

import (
	"crypto/x509"
	"fmt"
)

// FailKind enumerates the outcomes a validation stage can report, per
// spec.md §3. The zero value is InvalidCertificate, a real failure kind,
// so a nil *ValidationError, not a zero FailKind, is what "Ok" looks like.
type FailKind int

const (
	// InvalidCertificate marks a structural defect, most commonly an
	// issuer/subject name mismatch between adjacent certificates.
	InvalidCertificate FailKind = iota
	// InvalidSignature marks a signature that failed cryptographic
	// verification, or an unsupported signature algorithm.
	InvalidSignature
	// CertificateExpired marks a certificate outside its validity window.
	CertificateExpired
	// InvalidExtensions marks a CA-role extension defect (missing
	// BasicConstraints, missing keyCertSign, or an unhandled critical
	// extension on an intermediate or trust anchor), or a child's
	// AuthorityKeyId that differs from its parent's SubjectKeyId.
	InvalidExtensions
	// InvalidPathlen marks a path-length-constraint violation.
	InvalidPathlen
	// SelfSigned marks a self-signed top-of-chain certificate that no
	// configured trust anchor vouches for.
	SelfSigned
	// NoTrustAnchor marks a non-self-signed top-of-chain certificate with
	// no matching trust anchor.
	NoTrustAnchor
	// InvalidInput marks a malformed call: an empty chain, or a chain
	// longer than MaxChainLength.
	InvalidInput
	// InvalidServerExtensions marks a leaf-role extension defect.
	InvalidServerExtensions
	// InvalidServerName marks a failed RFC 6125 server-identity match.
	InvalidServerName
	// InvalidCA marks a trust-anchor candidate that is not self-signed.
	InvalidCA
)

// String returns the FailKind's name, matching spec.md §3's taxonomy.
func (k FailKind) String() string {
	switch k {
	case InvalidCertificate:
		return "InvalidCertificate"
	case InvalidSignature:
		return "InvalidSignature"
	case CertificateExpired:
		return "CertificateExpired"
	case InvalidExtensions:
		return "InvalidExtensions"
	case InvalidPathlen:
		return "InvalidPathlen"
	case SelfSigned:
		return "SelfSigned"
	case NoTrustAnchor:
		return "NoTrustAnchor"
	case InvalidInput:
		return "InvalidInput"
	case InvalidServerExtensions:
		return "InvalidServerExtensions"
	case InvalidServerName:
		return "InvalidServerName"
	case InvalidCA:
		return "InvalidCA"
	default:
		return "Unknown"
	}
}

// ValidationError is the Go realization of spec.md §3's Result type: a nil
// error means Ok, and a non-nil *ValidationError carries exactly one
// FailKind plus enough context to render a diagnostic or a TLS alert.
//
// The shape mirrors stdlib's own x509.CertificateInvalidError — a typed
// reason plus the offending certificate — deliberately, since that is the
// idiom this core's domain already uses.
type ValidationError struct {
	Kind FailKind
	// Cert is the certificate the failure is attributed to. It may be nil
	// for InvalidInput, which fails before any certificate is inspected.
	Cert   *x509.Certificate
	Detail string
}

// Error implements error.
func (e *ValidationError) Error() string {
	subject := "<none>"
	if e.Cert != nil {
		subject = e.Cert.Subject.CommonName
	}
	if e.Detail == "" {
		return fmt.Sprintf("x509chain: %s (subject=%q)", e.Kind, subject)
	}
	return fmt.Sprintf("x509chain: %s (subject=%q): %s", e.Kind, subject, e.Detail)
}

// fail builds a *ValidationError — every check in this package returns
// through this one constructor so the Result contract (§7: "surface the
// first failure verbatim, no aggregation") is easy to audit.
func fail(kind FailKind, cert *x509.Certificate, detail string) *ValidationError {
	return &ValidationError{Kind: kind, Cert: cert, Detail: detail}
}
