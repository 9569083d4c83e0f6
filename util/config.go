// Copyright 2016, RadiantBlue Technologies, Inc.
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

package util

import (
	"fmt"
	"os"
	"time"
)

// Environment variables
const (
	BF_TOOLBOX_DIR       = "BF_TOOLBOX_DIR"
	BF_GPT_TIMEOUT       = "BF_GPT_TIMEOUT"
	BF_SWEEP_INPUT_DIR   = "BF_SWEEP_INPUT_DIR"
	BF_SWEEP_OUTPUT_DIR  = "BF_SWEEP_OUTPUT_DIR"
	BF_SWEEP_WORKING_DIR = "BF_SWEEP_WORKING_DIR"
)

const defaultGptTimeout = 30 * time.Minute

// GetToolboxDir returns the toolbox installation directory for serve mode
func GetToolboxDir() string {
	toolboxDir, ok := os.LookupEnv(BF_TOOLBOX_DIR)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get toolbox directory from the environment. Correction will not be available.")
	}
	return toolboxDir
}

// GetGptTimeout returns the per-invocation timeout for the toolbox's
// graph processing tool, from the BF_GPT_TIMEOUT environment variable
// or a default if unset/invalid
func GetGptTimeout() time.Duration {
	timeoutStr, ok := os.LookupEnv(BF_GPT_TIMEOUT)
	if !ok {
		return defaultGptTimeout
	}
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		LogAlert(&BasicLogContext{}, fmt.Sprintf("Invalid %s value of `%s`. Using default of %v.", BF_GPT_TIMEOUT, timeoutStr, defaultGptTimeout))
		return defaultGptTimeout
	}
	return timeout
}

// GetSweepInputDir returns the directory scanned for SAFE products in serve mode
func GetSweepInputDir() string {
	inputDir, ok := os.LookupEnv(BF_SWEEP_INPUT_DIR)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get sweep input directory from the environment. Scheduled correction will not be available.")
	}
	return inputDir
}

// GetSweepOutputDir returns the directory corrected rasters are written to in serve mode
func GetSweepOutputDir() string {
	outputDir, ok := os.LookupEnv(BF_SWEEP_OUTPUT_DIR)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get sweep output directory from the environment. Scheduled correction will not be available.")
	}
	return outputDir
}

// GetSweepWorkingDir returns the working directory used during serve-mode
// correction runs, falling back to the process's current directory
func GetSweepWorkingDir() string {
	workingDir, ok := os.LookupEnv(BF_SWEEP_WORKING_DIR)
	if !ok {
		workingDir, _ = os.Getwd()
	}
	return workingDir
}
