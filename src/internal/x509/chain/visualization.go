// Copyright (c) 2026 The Certwalk Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

package x509chain

import (
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// roleOf describes a certificate's position in a chain, for diagnostic
// rendering only — it has no bearing on VerifyChain's outcome.
func roleOf(index, total int) string {
	switch {
	case total == 1:
		return "Self-Signed"
	case index == 0:
		return "Leaf"
	case index == total-1:
		return "Top-of-Chain"
	default:
		return "Intermediate"
	}
}

// RenderASCIITree renders chain as an indented tree, annotating each
// certificate with its role and, if outcomes is non-nil, the outcome
// recorded for it (keyed by serial number string).
func RenderASCIITree(chain []*x509.Certificate, outcomes map[string]error) string {
	if len(chain) == 0 {
		return "No certificates in chain"
	}

	var b strings.Builder
	for i, cert := range chain {
		connector := "├── "
		if i == len(chain)-1 {
			connector = "└── "
		}

		status := statusIcon(cert, outcomes)
		role := roleOf(i, len(chain))
		fmt.Fprintf(&b, "%s[%s] %s (%s)\n", connector, status, cert.Subject.CommonName, role)
	}
	return b.String()
}

func statusIcon(cert *x509.Certificate, outcomes map[string]error) string {
	if outcomes == nil {
		return "?"
	}
	err, known := outcomes[cert.SerialNumber.String()]
	switch {
	case !known:
		return "?"
	case err == nil:
		return "✓"
	default:
		return "✗"
	}
}

// RenderTable renders chain as a markdown table via tablewriter, showing
// role, subject, issuer, validity, key size, and outcome.
func RenderTable(chain []*x509.Certificate, outcomes map[string]error) string {
	if len(chain) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"#", "Role", "Subject", "Issuer", "Valid Until", "Key", "Outcome"})

	rows := make([][]string, 0, len(chain))
	for i, cert := range chain {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			roleOf(i, len(chain)),
			cert.Subject.CommonName,
			cert.Issuer.CommonName,
			cert.NotAfter.Format("2006-01-02"),
			keyDescription(cert),
			outcomeText(cert, outcomes),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

func keyDescription(cert *x509.Certificate) string {
	if rsaKey, ok := cert.PublicKey.(*rsa.PublicKey); ok {
		return fmt.Sprintf("%d-bit RSA", rsaKey.Size()*8)
	}
	return "unknown"
}

func outcomeText(cert *x509.Certificate, outcomes map[string]error) string {
	if outcomes == nil {
		return "pending"
	}
	err, known := outcomes[cert.SerialNumber.String()]
	switch {
	case !known:
		return "pending"
	case err == nil:
		return "Ok"
	default:
		return err.Error()
	}
}
