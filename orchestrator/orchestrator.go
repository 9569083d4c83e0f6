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

// Package orchestrator runs the ellipsoid-correction pipeline for one
// Sentinel-1 SAFE product: locate the manifest, derive the product
// identity from the directory name, and hand each polarization band to
// the toolbox's correction operator.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/venicegeo/bf-sar-correct/gpf"
	"github.com/venicegeo/bf-sar-correct/safe"
	"github.com/venicegeo/bf-sar-correct/util"
)

const correctionOperator = "Ellipsoid-Correction-GG"

// Polarizations are corrected in this fixed order
var Polarizations = []string{"VH", "VV"}

// Run corrects every polarization of the product in inv.ProductDir,
// writing one raster per polarization into inv.OutputDir. The process
// working directory is switched to inv.WorkingDir for the duration of
// the run and restored afterward; every path handed to the engine is
// absolute, so the switch only affects the engine's own relative-path
// resolution.
//
// Polarization failures are isolated: one band failing does not stop
// the other, and every outcome is reported in the result.
func Run(ctx context.Context, engine gpf.Engine, inv InvocationContext, logCtx util.LogContext) RunResult {
	result := RunResult{ProductName: filepath.Base(inv.ProductDir)}

	restoreWorkingDir, err := switchWorkingDir(inv.WorkingDir)
	if err != nil {
		result.State = Failed
		result.Failure = &Failure{Kind: FailureOther, Err: util.LogSimpleErr(logCtx, fmt.Sprintf("Could not switch working directory to `%s`.", inv.WorkingDir), err)}
		return result
	}
	defer restoreWorkingDir()

	if !safe.HasManifest(inv.ProductDir) {
		fmt.Println("Manifest not found for " + result.ProductName)
		fmt.Println("finished")
		result.State = Skipped
		return result
	}
	fmt.Println("Manifest found!   " + result.ProductName)

	identity, err := safe.ParseProductIdentity(result.ProductName)
	if err != nil {
		result.State = Failed
		result.Failure = &Failure{Kind: FailureIdentity, Err: util.LogSimpleErr(logCtx, "Could not derive product identity.", err)}
		return result
	}
	result.Identity = identity

	source, err := engine.ReadProduct(safe.ManifestPath(inv.ProductDir))
	if err != nil {
		result.State = Failed
		result.Failure = &Failure{Kind: FailureRead, Err: util.LogSimpleErr(logCtx, "Could not read product manifest.", err)}
		return result
	}
	defer source.Release()

	for _, polarization := range Polarizations {
		result.Polarizations = append(result.Polarizations, correctPolarization(ctx, engine, inv, identity, source, polarization, logCtx))
	}

	result.State = Done
	for _, polResult := range result.Polarizations {
		if polResult.Failure != nil {
			result.State = Failed
		}
	}

	if result.State == Done {
		fmt.Println("finished")
	}
	return result
}

func correctPolarization(ctx context.Context, engine gpf.Engine, inv InvocationContext, identity *safe.ProductIdentity, source *gpf.Product, polarization string, logCtx util.LogContext) PolarizationResult {
	polResult := PolarizationResult{
		Polarization: polarization,
		OutputPath:   filepath.Join(inv.OutputDir, identity.OutputBasename(polarization)),
	}

	parameters := gpf.NewParameters()
	parameters.Put("imgResamplingMethod", "BILINEAR_INTERPOLATION")
	parameters.Put("sourceBands", "Amplitude_"+polarization)
	parameters.Put("mapProjection", "AUTO:42001")

	corrected, err := engine.CreateProduct(correctionOperator, parameters, source)
	if err != nil {
		polResult.Failure = &Failure{Kind: FailureOperator, Err: util.LogSimpleErr(logCtx, fmt.Sprintf("Could not create %s product for %s.", correctionOperator, polarization), err)}
		return polResult
	}
	defer corrected.Release()

	if err = engine.WriteProduct(ctx, corrected, polResult.OutputPath, gpf.BEAMDIMAPFormat); err != nil {
		polResult.Failure = &Failure{Kind: FailureWrite, Err: util.LogSimpleErr(logCtx, fmt.Sprintf("Could not write %s output for %s.", polarization, identity.Name), err)}
		return polResult
	}

	util.LogInfo(logCtx, fmt.Sprintf("Wrote %s", polResult.OutputPath))
	return polResult
}

// switchWorkingDir changes the process working directory and returns a
// function restoring the previous one
func switchWorkingDir(workingDir string) (func(), error) {
	previousDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if err = os.Chdir(workingDir); err != nil {
		return nil, err
	}
	return func() { os.Chdir(previousDir) }, nil
}
