// Copyright (c) 2026 The Certwalk Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/certwalk/certwalk/src/internal/helper/posix"
	x509certs "github.com/certwalk/certwalk/src/internal/x509/certs"
	x509chain "github.com/certwalk/certwalk/src/internal/x509/chain"
	"github.com/certwalk/certwalk/src/internal/x509/primitives"
	"github.com/certwalk/certwalk/src/logger"
)

// ErrInputFileRequired is returned when no leaf certificate was given,
// either on the command line or through a config file.
var ErrInputFileRequired = errors.New("cli: leaf certificate file is required")

// OperationPerformed records whether Execute reached the point of running
// VerifyChain, so main can decide whether a closing log line makes sense
// even when the outcome itself is a failed chain rather than a CLI error.
var OperationPerformed bool

// OperationPerformedSuccessfully records whether the chain that was walked
// validated. It is only meaningful when OperationPerformed is true.
var OperationPerformedSuccessfully bool

// options holds everything a run of the verify command needs, whether it
// came from flags or from a --config YAML file. Flags always win over the
// file, so a config file is a set of defaults rather than a lock. A flag
// counts as given when it holds a non-empty string or true, so a boolean
// flag can switch an option on but cannot switch off one the file turns on.
type options struct {
	Leaf          string `yaml:"leaf"`
	Intermediates string `yaml:"intermediates"`
	Anchors       string `yaml:"anchors"`
	ServerName    string `yaml:"servername"`
	Tree          bool   `yaml:"tree"`
	Table         bool   `yaml:"table"`
	JSON          bool   `yaml:"json"`
}

func (o *options) loadConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cli: read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, o); err != nil {
		return fmt.Errorf("cli: parse config %s: %w", path, err)
	}
	return nil
}

var opts options
var configFile string

// Execute runs the verify command, handling any errors that occur during
// execution. log receives one structured trace line per hop the walker
// evaluates; it never affects the returned error.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	exe := posix.GetExecutableName()

	rootCmd := &cobra.Command{
		Use:     exe + " [flags]",
		Short:   "Validate an X.509 certificate chain against a set of trust anchors",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(ctx, log)
		},
	}

	rootCmd.Flags().StringVarP(&opts.Leaf, "leaf", "f", "", "leaf certificate file (PEM or DER) [required]")
	rootCmd.Flags().StringVarP(&opts.Intermediates, "intermediates", "i", "", "intermediate certificate bundle file")
	rootCmd.Flags().StringVarP(&opts.Anchors, "anchors", "a", "", "trust anchor bundle file")
	rootCmd.Flags().StringVarP(&opts.ServerName, "servername", "n", "", "expected server name (RFC 6125 match)")
	rootCmd.Flags().BoolVarP(&opts.Tree, "tree", "t", false, "display the chain as an ASCII tree")
	rootCmd.Flags().BoolVar(&opts.Table, "table", false, "display the chain as a markdown table")
	rootCmd.Flags().BoolVarP(&opts.JSON, "json", "j", false, "emit one JSON trace line per hop instead of CLI text")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML file supplying defaults for any of the above flags")

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return err
	}
	return nil
}

// runVerify loads the leaf, intermediates, and anchors, walks the chain,
// and renders the outcome. It implements spec.md §4.6's verify_chain
// pipeline end to end as a one-shot CLI invocation.
func runVerify(ctx context.Context, log logger.Logger) error {
	if configFile != "" {
		fromFlags := opts
		if err := opts.loadConfigFile(configFile); err != nil {
			return err
		}
		for dst, src := range map[*string]string{
			&opts.Leaf: fromFlags.Leaf, &opts.Intermediates: fromFlags.Intermediates,
			&opts.Anchors: fromFlags.Anchors, &opts.ServerName: fromFlags.ServerName,
		} {
			if src != "" {
				*dst = src
			}
		}
		opts.Tree = opts.Tree || fromFlags.Tree
		opts.Table = opts.Table || fromFlags.Table
		opts.JSON = opts.JSON || fromFlags.JSON
	}

	if opts.Leaf == "" {
		return ErrInputFileRequired
	}

	decoder := x509certs.New()

	leafCerts, err := decoder.LoadBundle(opts.Leaf)
	if err != nil {
		return fmt.Errorf("cli: loading leaf: %w", err)
	}
	if len(leafCerts) == 0 {
		return fmt.Errorf("cli: %s contains no certificates", opts.Leaf)
	}

	chain := []*x509.Certificate{leafCerts[0]}

	if opts.Intermediates != "" {
		intermediates, err := decoder.LoadBundle(opts.Intermediates)
		if err != nil {
			return fmt.Errorf("cli: loading intermediates: %w", err)
		}
		chain = append(chain, intermediates...)
	}

	var anchorCandidates []*x509.Certificate
	if opts.Anchors != "" {
		anchorCandidates, err = decoder.LoadBundle(opts.Anchors)
		if err != nil {
			return fmt.Errorf("cli: loading anchors: %w", err)
		}
	}

	if opts.JSON {
		log = logger.NewJSONLogger(os.Stdout, false)
	}

	prims := primitives.New(primitives.SystemClock)
	trace := x509chain.LoggerTrace(log)
	store := x509chain.NewStore(prims, anchorCandidates, trace)
	walker := x509chain.NewWalker(prims, store, trace)

	OperationPerformed = true
	verr := walker.VerifyChain(opts.ServerName, chain)
	OperationPerformedSuccessfully = verr == nil

	outcomes := outcomesFor(chain, verr)
	if opts.Tree {
		fmt.Println(x509chain.RenderASCIITree(chain, outcomes))
	}
	if opts.Table {
		fmt.Print(x509chain.RenderTable(chain, outcomes))
	}

	if verr != nil {
		var valErr *x509chain.ValidationError
		if errors.As(verr, &valErr) {
			log.Printf("verify: %s", valErr.Error())
		}
		return verr
	}

	if !opts.Tree && !opts.Table {
		log.Println("Ok")
	}
	return nil
}

// outcomesFor attributes the single error VerifyChain returns (if any) to
// the certificate it names, for RenderASCIITree/RenderTable. Every other
// certificate in the chain is left unattributed ("pending"/"?"), since
// spec.md §7 stops at the first failure rather than evaluating the rest.
func outcomesFor(chain []*x509.Certificate, verr error) map[string]error {
	if verr == nil {
		outcomes := make(map[string]error, len(chain))
		for _, c := range chain {
			outcomes[c.SerialNumber.String()] = nil
		}
		return outcomes
	}

	var valErr *x509chain.ValidationError
	if !errors.As(verr, &valErr) || valErr.Cert == nil {
		return nil
	}
	return map[string]error{valErr.Cert.SerialNumber.String(): verr}
}
