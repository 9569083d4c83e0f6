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

package orchestrator

import (
	"fmt"

	"github.com/venicegeo/bf-sar-correct/safe"
)

// InvocationContext holds the four paths a run operates on. All fields
// are required and immutable for the duration of the run.
type InvocationContext struct {
	ToolboxDir string
	ProductDir string
	OutputDir  string
	WorkingDir string
}

// State is the terminal state of a run
type State string

// Terminal run states
const (
	Skipped State = "skipped"
	Done    State = "done"
	Failed  State = "failed"
)

// FailureKind categorizes fatal run failures; each maps to a distinct
// process exit code
type FailureKind int

// Failure categories
const (
	FailureNone FailureKind = iota
	FailureOther
	FailureIdentity
	FailureRead
	FailureOperator
	FailureWrite
)

// ExitCode maps a failure category to the process exit status
func (kind FailureKind) ExitCode() int {
	switch kind {
	case FailureNone:
		return 0
	case FailureIdentity:
		return 2
	case FailureRead:
		return 3
	case FailureOperator:
		return 4
	case FailureWrite:
		return 5
	}
	return 1
}

// Failure is a fatal run error tagged with its category
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	return f.Err.Error()
}

// PolarizationResult is the outcome of correcting a single polarization
type PolarizationResult struct {
	Polarization string
	OutputPath   string
	Failure      *Failure
}

// RunResult is the outcome of a full orchestration run. ProductName is
// always populated, even when the run is skipped or identity parsing
// fails; Identity is only populated once parsing succeeds.
type RunResult struct {
	ProductName   string
	State         State
	Identity      *safe.ProductIdentity
	Polarizations []PolarizationResult
	Failure       *Failure
}

// WorstFailure returns the run-level failure, or the most severe
// per-polarization failure, or nil on full success
func (r RunResult) WorstFailure() *Failure {
	worst := r.Failure
	for _, polResult := range r.Polarizations {
		if polResult.Failure == nil {
			continue
		}
		if worst == nil || polResult.Failure.Kind > worst.Kind {
			worst = polResult.Failure
		}
	}
	return worst
}

// Summary renders a one-line description of the run for status reporting
func (r RunResult) Summary() string {
	name := r.ProductName
	switch r.State {
	case Skipped:
		return fmt.Sprintf("%s: skipped (no manifest)", name)
	case Done:
		return fmt.Sprintf("%s: done (%d polarizations)", name, len(r.Polarizations))
	}
	if failure := r.WorstFailure(); failure != nil {
		return fmt.Sprintf("%s: failed: %v", name, failure)
	}
	return fmt.Sprintf("%s: failed", name)
}
