package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/bf-sar-correct/gpf"
	"github.com/venicegeo/bf-sar-correct/safe"
)

const testProductName = "S1A_IW_GRDH_1SDV_20200615T055815_20200615T055840_032976_03D1C4_AA12.SAFE"
const otherProductName = "S1B_IW_GRDH_1SDV_20200616T055815_20200616T055840_032976_03D1C4_AA12.SAFE"

type countingEngine struct {
	writes []string
}

func (e *countingEngine) ReadProduct(path string) (*gpf.Product, error) {
	return gpf.NewProduct(path), nil
}

func (e *countingEngine) CreateProduct(operatorName string, parameters *gpf.Parameters, source *gpf.Product) (*gpf.Product, error) {
	return gpf.NewProduct(source.SourcePath()), nil
}

func (e *countingEngine) WriteProduct(ctx context.Context, product *gpf.Product, targetPath string, formatName string) error {
	e.writes = append(e.writes, targetPath)
	return nil
}

func makeProductDir(t *testing.T, inputDir, name string, withManifest bool) {
	productDir := filepath.Join(inputDir, name)
	err := os.MkdirAll(productDir, 0755)
	assert.Nil(t, err)
	if withManifest {
		err = os.WriteFile(filepath.Join(productDir, safe.ManifestFilename), []byte("<xfdu:XFDU/>"), 0644)
		assert.Nil(t, err)
	}
}

func TestSweep_CorrectsEveryProductWithAManifest(t *testing.T) {
	inputDir := t.TempDir()
	makeProductDir(t, inputDir, testProductName, true)
	makeProductDir(t, inputDir, otherProductName, true)
	makeProductDir(t, inputDir, "not_a_safe_product", false)

	engine := &countingEngine{}
	processor := NewProcessor(inputDir, t.TempDir(), t.TempDir(), engine, nil)

	summary := processor.Sweep(nil)

	assert.Len(t, engine.writes, 4, "two products, two polarizations each")
	assert.Contains(t, summary, "2 products")
	assert.Contains(t, summary, testProductName)
	assert.Contains(t, summary, otherProductName)
	assert.NotContains(t, summary, "not_a_safe_product")
}

func TestSweep_EmptyInputDir(t *testing.T) {
	engine := &countingEngine{}
	processor := NewProcessor(t.TempDir(), t.TempDir(), t.TempDir(), engine, nil)

	summary := processor.Sweep(nil)

	assert.Empty(t, engine.writes)
	assert.Contains(t, summary, "0 products")
}

func TestSweep_AbortBetweenProducts(t *testing.T) {
	inputDir := t.TempDir()
	makeProductDir(t, inputDir, testProductName, true)
	makeProductDir(t, inputDir, otherProductName, true)

	messageChan := make(chan string, 1)
	messageChan <- AbortSweepMessage

	engine := &countingEngine{}
	processor := NewProcessor(inputDir, t.TempDir(), t.TempDir(), engine, nil)

	summary := processor.Sweep(messageChan)

	assert.Empty(t, engine.writes)
	assert.Contains(t, summary, "aborted")
}

func TestProcessWhile_StartMessageTriggersSweepAndStatusReports(t *testing.T) {
	inputDir := t.TempDir()
	makeProductDir(t, inputDir, testProductName, true)

	engine := &countingEngine{}
	processor := NewProcessor(inputDir, t.TempDir(), t.TempDir(), engine, nil)

	messageChan := make(chan string, 1)
	loopDone := make(chan bool)
	go func() {
		processor.ProcessWhile(messageChan, time.Hour)
		loopDone <- true
	}()

	messageChan <- BeginSweepMessage

	var status string
	for i := 0; i < 50; i++ {
		status = processor.GetStatus()
		if strings.Contains(status, testProductName) {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	assert.Contains(t, status, testProductName)
	assert.Len(t, engine.writes, 2)

	close(messageChan)
	select {
	case <-loopDone:
	case <-time.NewTimer(time.Second).C:
		assert.Fail(t, "ProcessWhile did not exit after message channel close")
	}
}
