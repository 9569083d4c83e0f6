package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/bf-sar-correct/gpf"
	"github.com/venicegeo/bf-sar-correct/orchestrator"
	"github.com/venicegeo/bf-sar-correct/util"
	cli "gopkg.in/urfave/cli.v1"
)

func newCorrectContext(t *testing.T, args ...string) *cli.Context {
	set := flag.NewFlagSet("correct", 0)
	err := set.Parse(args)
	assert.Nil(t, err)
	return cli.NewContext(createCliApp(), set, nil)
}

func makeToolboxDir(t *testing.T) string {
	toolboxDir := t.TempDir()
	err := os.MkdirAll(filepath.Join(toolboxDir, "bin"), 0755)
	assert.Nil(t, err)
	err = os.WriteFile(filepath.Join(toolboxDir, "bin", "gpt"), []byte("#!/bin/sh\nexit 0\n"), 0755)
	assert.Nil(t, err)
	return toolboxDir
}

func TestCorrect_RejectsWrongArgCount(t *testing.T) {
	err := correctAction(newCorrectContext(t, "only", "three", "args"))

	assert.NotNil(t, err)
	exitErr, ok := err.(cli.ExitCoder)
	assert.True(t, ok)
	assert.Equal(t, 1, exitErr.ExitCode())
}

func TestCorrect_MissingToolbox(t *testing.T) {
	err := correctAction(newCorrectContext(t, t.TempDir(), t.TempDir(), t.TempDir(), t.TempDir()))

	assert.NotNil(t, err)
	exitErr, ok := err.(cli.ExitCoder)
	assert.True(t, ok)
	assert.Equal(t, 1, exitErr.ExitCode())
}

func TestCorrect_SkippedRunExitsZero(t *testing.T) {
	toolboxDir := makeToolboxDir(t)
	productDir := filepath.Join(t.TempDir(), "S1A_IW_GRDH_1SDV_20200615T055815_20200615T055840_032976_03D1C4_AA12.SAFE")
	err := os.MkdirAll(productDir, 0755)
	assert.Nil(t, err)

	// No manifest inside productDir, so the run is skipped, which is a success
	err = correctAction(newCorrectContext(t, toolboxDir, productDir, t.TempDir(), t.TempDir()))
	assert.Nil(t, err)
}

func TestCorrect_FailureExitCodes(t *testing.T) {
	defer func() { runCorrection = orchestrator.Run }()
	runCorrection = func(ctx context.Context, engine gpf.Engine, inv orchestrator.InvocationContext, logCtx util.LogContext) orchestrator.RunResult { // Mock
		return orchestrator.RunResult{
			ProductName: "S1A_TEST",
			State:       orchestrator.Failed,
			Polarizations: []orchestrator.PolarizationResult{
				{Polarization: "VH", Failure: &orchestrator.Failure{Kind: orchestrator.FailureWrite, Err: assert.AnError}},
			},
		}
	}

	err := correctAction(newCorrectContext(t, makeToolboxDir(t), t.TempDir(), t.TempDir(), t.TempDir()))

	assert.NotNil(t, err)
	exitErr, ok := err.(cli.ExitCoder)
	assert.True(t, ok)
	assert.Equal(t, 5, exitErr.ExitCode())
}
