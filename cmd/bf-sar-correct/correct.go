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

package main

import (
	"context"
	"fmt"

	"github.com/venicegeo/bf-sar-correct/gpf"
	"github.com/venicegeo/bf-sar-correct/orchestrator"
	"github.com/venicegeo/bf-sar-correct/util"
	cli "gopkg.in/urfave/cli.v1"
)

// runCorrection is swapped out in tests
var runCorrection = orchestrator.Run

// correctAction runs one correction pass over a single SAFE product.
// Exit status: 0 for a completed or skipped run, otherwise the code of
// the worst failure encountered.
func correctAction(c *cli.Context) error {
	if c.NArg() != 4 {
		return cli.NewExitError("Usage: bf-sar-correct correct <toolboxDir> <productDir> <outputDir> <workingDir>", 1)
	}

	inv := orchestrator.InvocationContext{
		ToolboxDir: c.Args().Get(0),
		ProductDir: c.Args().Get(1),
		OutputDir:  c.Args().Get(2),
		WorkingDir: c.Args().Get(3),
	}

	fmt.Println("Toolbox Dir: " + inv.ToolboxDir)
	fmt.Println("Product Dir: " + inv.ProductDir)
	fmt.Println("Output Dir: " + inv.OutputDir)
	fmt.Println("Working Dir: " + inv.WorkingDir)

	logContext := &(util.BasicLogContext{})

	engine, err := gpf.NewToolbox(inv.ToolboxDir, logContext)
	if err != nil {
		return cli.NewExitError(util.LogSimpleErr(logContext, "Could not bind toolbox.", err).Error(), 1)
	}

	result := runCorrection(context.Background(), engine, inv, logContext)
	if failure := result.WorstFailure(); failure != nil {
		return cli.NewExitError(result.Summary(), failure.Kind.ExitCode())
	}
	return nil
}
