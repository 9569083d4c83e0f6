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

package safe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ManifestFilename identifies a SAFE product directory
const ManifestFilename = "manifest.safe"

// https://sentinels.copernicus.eu/web/sentinel/user-guides/sentinel-1-sar/naming-conventions
// The fields consumed here sit at fixed offsets: satellite (0:3),
// product type (7:11), acquisition date (17:25).
const minProductNameLength = 25

// ProductIdentity holds the naming fields extracted from a Sentinel-1
// SAFE product directory name
type ProductIdentity struct {
	Name              string
	SatelliteCode     string
	ProductType       string
	AcquiredDate      time.Time
	AcquiredDayOfYear string
}

// ParseProductIdentity extracts a ProductIdentity from the basename of a
// SAFE product directory. The acquisition day-of-year is reformatted as
// YYYYDDD for use in output naming.
func ParseProductIdentity(name string) (*ProductIdentity, error) {
	if len(name) < minProductNameLength {
		return nil, fmt.Errorf("Product name `%s` is too short to follow the Sentinel-1 SAFE naming convention", name)
	}
	if !strings.HasPrefix(name, "S1") {
		return nil, fmt.Errorf("Product name `%s` does not have a Sentinel-1 mission prefix", name)
	}

	dateStr := name[17:25]
	acquired, err := time.Parse("20060102", dateStr)
	if err != nil {
		return nil, fmt.Errorf("Acquisition date `%s` in product name `%s` could not be parsed as YYYYMMDD: %v", dateStr, name, err)
	}

	return &ProductIdentity{
		Name:              name,
		SatelliteCode:     name[0:3],
		ProductType:       name[7:11],
		AcquiredDate:      acquired,
		AcquiredDayOfYear: fmt.Sprintf("%d%03d", acquired.Year(), acquired.YearDay()),
	}, nil
}

// OutputBasename derives the output raster name for one polarization.
// Distinct (satellite, type, date, polarization) tuples map to distinct names.
func (identity *ProductIdentity) OutputBasename(polarization string) string {
	return identity.SatelliteCode + "_" + identity.ProductType + "_" + identity.AcquiredDayOfYear + "_projected_Amplitude_" + polarization
}

// ManifestPath returns the path of the manifest inside a product directory
func ManifestPath(productDir string) string {
	return filepath.Join(productDir, ManifestFilename)
}

// HasManifest reports whether the product directory contains a manifest file
func HasManifest(productDir string) bool {
	info, err := os.Stat(ManifestPath(productDir))
	return err == nil && !info.IsDir()
}
