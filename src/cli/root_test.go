// Copyright (c) 2026 The Certwalk Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

package cli_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/certwalk/certwalk/src/cli"
	"github.com/certwalk/certwalk/src/logger"
)

const version = "1.3.3.7-testing"

func newTestLogger() logger.Logger {
	return logger.NewJSONLogger(nil, true)
}

func TestExecute_NoInputFile(t *testing.T) {
	ctx := context.Background()
	os.Args = []string{"certwalk"}

	err := cli.Execute(ctx, version, newTestLogger())
	if !errors.Is(err, cli.ErrInputFileRequired) {
		t.Errorf("expected ErrInputFileRequired, got %v", err)
	}
}

func TestExecute_InvalidLeafFile(t *testing.T) {
	ctx := context.Background()

	tmpFile := filepath.Join(t.TempDir(), "invalid.cer")
	if err := os.WriteFile(tmpFile, []byte("not a certificate"), 0o600); err != nil {
		t.Fatal(err)
	}

	os.Args = []string{"certwalk", "-f", tmpFile}
	err := cli.Execute(ctx, version, newTestLogger())
	if err == nil {
		t.Error("expected error for invalid leaf certificate file")
	}
}

func TestExecute_NonExistentLeafFile(t *testing.T) {
	ctx := context.Background()

	os.Args = []string{"certwalk", "-f", filepath.Join(t.TempDir(), "does-not-exist.cer")}
	err := cli.Execute(ctx, version, newTestLogger())
	if err == nil {
		t.Error("expected error for non-existent leaf certificate file")
	}
}

func TestExecute_UnreadableConfigFile(t *testing.T) {
	ctx := context.Background()

	os.Args = []string{"certwalk", "-c", filepath.Join(t.TempDir(), "missing-config.yaml")}
	err := cli.Execute(ctx, version, newTestLogger())
	if err == nil {
		t.Error("expected error for unreadable config file")
	}
}
