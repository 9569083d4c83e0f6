package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/geojson-go/geojson"
)

func TestGeoJSONFeature(t *testing.T) {
	footprint := geojson.NewPolygon([][][]float64{{
		{12.0, 41.0}, {12.5, 41.0}, {12.5, 41.5}, {12.0, 41.5}, {12.0, 41.0},
	}})
	job := CorrectionJob{
		ProductID:    "S1A_IW_GRDH_1SDV_20200615T055815_20200615T055840_032976_03D1C4_AA12",
		Polarization: "VH",
		OutputPath:   "/out/S1A_GRDH_2020167_projected_Amplitude_VH",
		State:        "done",
		StartedAt:    time.Date(2020, 6, 15, 6, 0, 0, 0, time.UTC),
		FinishedAt:   time.Date(2020, 6, 15, 6, 5, 0, 0, time.UTC),
		Footprint:    footprint,
	}

	feature, err := job.GeoJSONFeature()

	assert.Nil(t, err)
	assert.Equal(t, job.ProductID, feature.IDStr())
	assert.Equal(t, "VH", feature.PropertyString("polarization"))
	assert.Equal(t, "done", feature.PropertyString("state"))
	assert.NotEmpty(t, feature.Bbox)
}

func TestGeoJSONFeature_NoFootprint(t *testing.T) {
	job := CorrectionJob{ProductID: "S1A_TEST", Polarization: "VV", State: "failed", ErrorText: "write failed"}

	feature, err := job.GeoJSONFeature()

	assert.Nil(t, err)
	assert.Nil(t, feature.Geometry)
	assert.Equal(t, "write failed", feature.PropertyString("errorText"))
	assert.Empty(t, feature.Bbox)
}
