package jobs

import (
	"time"

	"github.com/venicegeo/geojson-go/geojson"
)

// CorrectionJob is one ledger entry: a single polarization of a single
// product run through the correction operator
type CorrectionJob struct {
	ID           int64
	ProductID    string
	Polarization string
	OutputPath   string
	State        string
	ErrorText    string
	StartedAt    time.Time
	FinishedAt   time.Time
	Footprint    *geojson.Polygon
}

// GeoJSONFeature renders the job as a GeoJSON feature for status endpoints
func (job CorrectionJob) GeoJSONFeature() (*geojson.Feature, error) {
	var geometry interface{}
	if job.Footprint != nil {
		geometry = job.Footprint
	}
	feature := geojson.NewFeature(geometry, job.ProductID, map[string]interface{}{
		"polarization": job.Polarization,
		"outputPath":   job.OutputPath,
		"state":        job.State,
		"errorText":    job.ErrorText,
		"startedAt":    job.StartedAt.Format(time.RFC3339),
		"finishedAt":   job.FinishedAt.Format(time.RFC3339),
	})
	if job.Footprint != nil {
		feature.Bbox = feature.ForceBbox()
	}
	return feature, nil
}
