package model

import (
	"github.com/venicegeo/geojson-go/geojson"
)

// MultiJobResult is a container type for bundling multiple job records
// together, e.g. as results from a status endpoint
type MultiJobResult struct {
	FeatureCreators []GeoJSONFeatureCreator
}

// GeoJSONFeatureCollection implements the GeoJSONFeatureCollectionCreator interface
func (result MultiJobResult) GeoJSONFeatureCollection() (*geojson.FeatureCollection, error) {
	var err error
	features := make([]*geojson.Feature, len(result.FeatureCreators))
	for i, creator := range result.FeatureCreators {
		features[i], err = creator.GeoJSONFeature()
		if err != nil {
			return nil, err
		}
	}

	return geojson.NewFeatureCollection(features), nil
}
