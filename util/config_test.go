package util

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetGptTimeout_Default(t *testing.T) {
	os.Unsetenv(BF_GPT_TIMEOUT)
	assert.Equal(t, 30*time.Minute, GetGptTimeout())
}

func TestGetGptTimeout_FromEnvironment(t *testing.T) {
	os.Setenv(BF_GPT_TIMEOUT, "90s")
	defer os.Unsetenv(BF_GPT_TIMEOUT)
	assert.Equal(t, 90*time.Second, GetGptTimeout())
}

func TestGetGptTimeout_InvalidFallsBackToDefault(t *testing.T) {
	os.Setenv(BF_GPT_TIMEOUT, "not-a-duration")
	defer os.Unsetenv(BF_GPT_TIMEOUT)
	assert.Equal(t, 30*time.Minute, GetGptTimeout())

	os.Setenv(BF_GPT_TIMEOUT, "-5m")
	assert.Equal(t, 30*time.Minute, GetGptTimeout())
}

func TestGetSweepWorkingDir_FallsBackToCwd(t *testing.T) {
	os.Unsetenv(BF_SWEEP_WORKING_DIR)
	cwd, err := os.Getwd()
	assert.Nil(t, err)
	assert.Equal(t, cwd, GetSweepWorkingDir())
}
