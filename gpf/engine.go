// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package gpf drives the external SAR toolbox's graph processing
// framework through its gpt executable. The toolbox owns all of the
// actual signal and geometry work; this package only assembles and runs
// its invocations.
package gpf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/venicegeo/bf-sar-correct/util"
)

// BEAMDIMAPFormat is the toolbox's native raster+metadata container format
const BEAMDIMAPFormat = "BEAM-DIMAP"

// Engine is the set of toolbox capabilities this application consumes
type Engine interface {
	ReadProduct(path string) (*Product, error)
	CreateProduct(operatorName string, parameters *Parameters, source *Product) (*Product, error)
	WriteProduct(ctx context.Context, product *Product, targetPath string, formatName string) error
}

// Toolbox is an Engine backed by a local toolbox installation
type Toolbox struct {
	gptPath string
	timeout time.Duration
	logCtx  util.LogContext
}

// NewToolbox binds a toolbox installation, locating its gpt executable.
// Binding fails fast if the executable is missing, rather than at the
// first product read.
func NewToolbox(installDir string, logCtx util.LogContext) (*Toolbox, error) {
	candidates := []string{
		filepath.Join(installDir, "bin", "gpt"),
		filepath.Join(installDir, "gpt"),
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return &Toolbox{gptPath: candidate, timeout: util.GetGptTimeout(), logCtx: logCtx}, nil
		}
	}
	return nil, fmt.Errorf("No gpt executable found under toolbox directory `%s`", installDir)
}

// ReadProduct opens a product from a manifest or data file path
func (t *Toolbox) ReadProduct(path string) (*Product, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err = os.Stat(absPath); err != nil {
		return nil, fmt.Errorf("Could not read product at `%s`: %v", absPath, err)
	}
	return NewProduct(absPath), nil
}

// CreateProduct derives a product by applying a named operator to a
// source product. The operator does not run here; it runs when the
// derived product is written.
func (t *Toolbox) CreateProduct(operatorName string, parameters *Parameters, source *Product) (*Product, error) {
	if operatorName == "" {
		return nil, fmt.Errorf("No operator name given")
	}
	if source == nil || source.Released() {
		return nil, fmt.Errorf("Source product for operator `%s` is nil or already released", operatorName)
	}
	return &Product{
		sourcePath: source.sourcePath,
		operator:   operatorName,
		parameters: parameters,
	}, nil
}

// WriteProduct materializes a derived product to the target path in the
// given format by running the toolbox. The invocation is bounded by the
// configured timeout on top of any deadline already on ctx.
func (t *Toolbox) WriteProduct(ctx context.Context, product *Product, targetPath string, formatName string) error {
	if product == nil || product.Released() {
		return fmt.Errorf("Cannot write a nil or released product")
	}
	if product.operator == "" {
		return fmt.Errorf("Cannot write a source product; no operator to run")
	}

	absTarget, err := filepath.Abs(targetPath)
	if err != nil {
		return err
	}

	args := []string{product.operator}
	if product.parameters != nil {
		args = append(args, product.parameters.CommandArgs()...)
	}
	args = append(args, "-t", absTarget, "-f", formatName, product.sourcePath)

	runCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	util.LogAudit(t.logCtx, util.LogAuditInput{Actor: "gpf/WriteProduct", Action: "exec", Actee: t.gptPath, Message: strings.Join(args, " "), Severity: util.INFO})

	command := exec.CommandContext(runCtx, t.gptPath, args...)
	var output bytes.Buffer
	command.Stdout = &output
	command.Stderr = &output

	if err = command.Run(); err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("Toolbox operator `%s` timed out after %v", product.operator, t.timeout)
		}
		return fmt.Errorf("Toolbox operator `%s` failed: %v\n%s", product.operator, err, tailOf(output.String()))
	}
	return nil
}

// tailOf keeps error messages readable when gpt dumps a long log
func tailOf(output string) string {
	const maxTail = 2000
	output = strings.TrimSpace(output)
	if len(output) > maxTail {
		return "..." + output[len(output)-maxTail:]
	}
	return output
}
