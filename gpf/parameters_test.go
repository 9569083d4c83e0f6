package gpf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParameters_PutGet(t *testing.T) {
	parameters := NewParameters()
	parameters.Put("imgResamplingMethod", "BILINEAR_INTERPOLATION")
	parameters.Put("sourceBands", "Amplitude_VH")

	value, ok := parameters.Get("sourceBands")
	assert.True(t, ok)
	assert.Equal(t, "Amplitude_VH", value)

	_, ok = parameters.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 2, parameters.Len())
}

func TestParameters_CommandArgsPreserveOrder(t *testing.T) {
	parameters := NewParameters()
	parameters.Put("imgResamplingMethod", "BILINEAR_INTERPOLATION")
	parameters.Put("sourceBands", "Amplitude_VV")
	parameters.Put("mapProjection", "AUTO:42001")

	assert.Equal(t, []string{
		"-PimgResamplingMethod=BILINEAR_INTERPOLATION",
		"-PsourceBands=Amplitude_VV",
		"-PmapProjection=AUTO:42001",
	}, parameters.CommandArgs())
}

func TestParameters_PutOverwritesWithoutDuplicating(t *testing.T) {
	parameters := NewParameters()
	parameters.Put("sourceBands", "Amplitude_VH")
	parameters.Put("sourceBands", "Amplitude_VV")

	assert.Equal(t, 1, parameters.Len())
	assert.Equal(t, []string{"-PsourceBands=Amplitude_VV"}, parameters.CommandArgs())
}
