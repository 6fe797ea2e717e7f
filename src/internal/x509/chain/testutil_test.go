// Copyright (c) 2026 The Certwalk Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

package x509chain

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/certwalk/certwalk/src/internal/x509/ext"
	"github.com/certwalk/certwalk/src/internal/x509/primitives"
)

// cryptoHashFor mirrors primitives' private HashAlgorithm -> crypto.Hash
// mapping, needed here only to drive rsa.SignPKCS1v15 when building test
// fixtures; production code never needs this outside the primitives
// package itself.
func cryptoHashFor(alg primitives.HashAlgorithm) crypto.Hash {
	switch alg {
	case primitives.HashMD5:
		return crypto.MD5
	case primitives.HashSHA1:
		return crypto.SHA1
	default:
		return 0
	}
}

// certSpec describes everything a test fixture certificate needs. Every
// field is optional; zero values mean "extension absent."
type certSpec struct {
	subjectCN, issuerCN string
	notBefore, notAfter time.Time

	basicConstraints bool
	isCA             bool
	pathLen          *int
	bcCritical       bool

	keyUsage       x509.KeyUsage
	keyUsagePresent bool
	kuCritical     bool

	extKeyUsage        []x509.ExtKeyUsage
	extKeyUsagePresent bool
	ekuCritical        bool

	dnsNames    []string
	sanPresent  bool
	sanCritical bool

	policies           []asn1.ObjectIdentifier
	policiesPresent    bool
	policiesCritical   bool

	subjectKeyID []byte
	skiCritical  bool

	authorityKeyID []byte
	akiCritical    bool

	unknownCritical bool

	pub       *rsa.PublicKey
	sigAlg    x509.SignatureAlgorithm
	tamperSig bool
}

var nextSerial int64 = 1

// buildCert turns a certSpec into an *x509.Certificate, hand-populating
// every field verifyRelation/verifyIntermediate/verifyLeaf/verifyAnchor
// read. It never goes through the ASN.1 encoder or x509.CreateCertificate,
// which is deliberate: CreateCertificate refuses to sign with MD5 or SHA-1
// on modern Go toolchains, and these tests need exactly those algorithms.
func buildCert(t *testing.T, signer *rsa.PrivateKey, spec certSpec) *x509.Certificate {
	t.Helper()

	nextSerial++
	cert := &x509.Certificate{
		SerialNumber:       big.NewInt(nextSerial),
		Subject:            pkix.Name{CommonName: spec.subjectCN},
		Issuer:             pkix.Name{CommonName: spec.issuerCN},
		RawSubject:         []byte("DN:" + spec.subjectCN),
		RawIssuer:          []byte("DN:" + spec.issuerCN),
		NotBefore:          spec.notBefore,
		NotAfter:           spec.notAfter,
		PublicKey:          spec.pub,
		SignatureAlgorithm: spec.sigAlg,
		RawTBSCertificate:  []byte("tbs:" + spec.subjectCN + ":" + spec.issuerCN),
		DNSNames:           spec.dnsNames,
		PolicyIdentifiers:  spec.policies,
		SubjectKeyId:       spec.subjectKeyID,
		AuthorityKeyId:     spec.authorityKeyID,
	}

	var exts []pkix.Extension
	if spec.basicConstraints {
		cert.BasicConstraintsValid = true
		cert.IsCA = spec.isCA
		cert.MaxPathLen = -1
		if spec.pathLen != nil {
			if *spec.pathLen == 0 {
				cert.MaxPathLenZero = true
			} else {
				cert.MaxPathLen = *spec.pathLen
			}
		}
		exts = append(exts, pkix.Extension{Id: ext.OIDBasicConstraints, Critical: spec.bcCritical})
	}
	if spec.keyUsagePresent {
		cert.KeyUsage = spec.keyUsage
		exts = append(exts, pkix.Extension{Id: ext.OIDKeyUsage, Critical: spec.kuCritical})
	}
	if spec.extKeyUsagePresent {
		cert.ExtKeyUsage = spec.extKeyUsage
		exts = append(exts, pkix.Extension{Id: ext.OIDExtKeyUsage, Critical: spec.ekuCritical})
	}
	if spec.sanPresent {
		exts = append(exts, pkix.Extension{Id: ext.OIDSubjectAltName, Critical: spec.sanCritical})
	}
	if spec.policiesPresent {
		exts = append(exts, pkix.Extension{Id: ext.OIDCertificatePolicies, Critical: spec.policiesCritical})
	}
	if len(spec.subjectKeyID) > 0 {
		exts = append(exts, pkix.Extension{Id: ext.OIDSubjectKeyIdentifier, Critical: spec.skiCritical})
	}
	if len(spec.authorityKeyID) > 0 {
		exts = append(exts, pkix.Extension{Id: ext.OIDAuthorityKeyId, Critical: spec.akiCritical})
	}
	if spec.unknownCritical {
		exts = append(exts, pkix.Extension{
			Id:       asn1.ObjectIdentifier{1, 2, 3, 4, 5, 6},
			Critical: true,
		})
	}
	cert.Extensions = exts

	if signer != nil {
		alg, ok := primitives.SignatureHashAlgorithm(spec.sigAlg)
		require.True(t, ok, "test fixture must use a supported signature algorithm")
		a := primitives.New(nil)
		digest := a.Digest(alg, cert.RawTBSCertificate)
		sig, err := rsa.SignPKCS1v15(rand.Reader, signer, cryptoHashFor(alg), digest)
		require.NoError(t, err)
		if spec.tamperSig {
			sig[0] ^= 0xFF
		}
		cert.Signature = sig
	}

	return cert
}

func newRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func intPtr(v int) *int { return &v }
