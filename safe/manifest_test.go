package safe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleManifestXML = `<?xml version="1.0" encoding="UTF-8"?>
<xfdu:XFDU xmlns:xfdu="urn:ccsds:schema:xfdu:1" xmlns:gml="http://www.opengis.net/gml">
  <metadataSection>
    <metadataObject ID="measurementFrameSet">
      <metadataWrap>
        <xmlData>
          <safe:frameSet xmlns:safe="http://www.esa.int/safe/sentinel-1.0">
            <safe:frame>
              <safe:footPrint srsName="http://www.opengis.net/gml/srs/epsg.xml#4326">
                <gml:coordinates>50.597488,11.768539 50.999958,8.213624 49.497928,7.845527 49.096924,11.288372</gml:coordinates>
              </safe:footPrint>
            </safe:frame>
          </safe:frameSet>
        </xmlData>
      </metadataWrap>
    </metadataObject>
  </metadataSection>
</xfdu:XFDU>`

func writeSampleManifest(t *testing.T, content string) string {
	manifestPath := filepath.Join(t.TempDir(), ManifestFilename)
	err := os.WriteFile(manifestPath, []byte(content), 0644)
	assert.Nil(t, err)
	return manifestPath
}

func TestReadFootprint(t *testing.T) {
	manifestPath := writeSampleManifest(t, sampleManifestXML)

	footprint, err := ReadFootprint(manifestPath)

	assert.Nil(t, err)
	assert.NotNil(t, footprint)
	assert.Len(t, footprint.Coordinates, 1)

	ring := footprint.Coordinates[0]
	// Ring is closed, so the four manifest pairs become five points
	assert.Len(t, ring, 5)
	assert.Equal(t, ring[0], ring[len(ring)-1])

	// GML is lat,lon; GeoJSON is lon,lat
	assert.Equal(t, 11.768539, ring[0][0])
	assert.Equal(t, 50.597488, ring[0][1])
}

func TestReadFootprint_NoCoordinates(t *testing.T) {
	manifestPath := writeSampleManifest(t, `<?xml version="1.0"?><xfdu:XFDU xmlns:xfdu="urn:ccsds:schema:xfdu:1"></xfdu:XFDU>`)

	_, err := ReadFootprint(manifestPath)
	assert.NotNil(t, err)
}

func TestReadFootprint_MalformedPair(t *testing.T) {
	manifestPath := writeSampleManifest(t, `<a><coordinates>50.5 51.0,8.2 49.4,7.8</coordinates></a>`)

	_, err := ReadFootprint(manifestPath)
	assert.NotNil(t, err)
}

func TestReadFootprint_MissingFile(t *testing.T) {
	_, err := ReadFootprint(filepath.Join(t.TempDir(), ManifestFilename))
	assert.NotNil(t, err)
}
