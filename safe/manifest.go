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
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/venicegeo/geojson-go/geojson"
)

// ReadFootprint pulls the acquisition footprint out of a SAFE manifest.
// The manifest embeds the footprint as a single GML coordinates element
// holding space-separated "lat,lon" pairs; GeoJSON wants lon,lat and a
// closed ring.
func ReadFootprint(manifestPath string) (*geojson.Polygon, error) {
	file, err := os.Open(manifestPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := xml.NewDecoder(file)
	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("No footprint coordinates found in manifest %s", manifestPath)
		}
		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "coordinates" {
			continue
		}
		var coordinates string
		if err = decoder.DecodeElement(&coordinates, &start); err != nil {
			return nil, err
		}
		return footprintFromCoordinates(coordinates)
	}
}

func footprintFromCoordinates(coordinates string) (*geojson.Polygon, error) {
	ring := [][]float64{}
	for _, pair := range strings.Fields(coordinates) {
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("Malformed footprint coordinate pair `%s`", pair)
		}
		latitude, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, err
		}
		longitude, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, err
		}
		ring = append(ring, []float64{longitude, latitude})
	}
	if len(ring) < 3 {
		return nil, fmt.Errorf("Footprint has only %d coordinate pairs", len(ring))
	}

	first := ring[0]
	last := ring[len(ring)-1]
	if first[0] != last[0] || first[1] != last[1] {
		ring = append(ring, []float64{first[0], first[1]})
	}

	return geojson.NewPolygon([][][]float64{ring}), nil
}
