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

// Package batch sweeps a directory of Sentinel-1 SAFE products through
// the correction orchestrator on a schedule.
package batch

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/venicegeo/bf-sar-correct/gpf"
	"github.com/venicegeo/bf-sar-correct/jobs"
	"github.com/venicegeo/bf-sar-correct/orchestrator"
	"github.com/venicegeo/bf-sar-correct/safe"
	"github.com/venicegeo/bf-sar-correct/util"
)

//BeginSweepMessage is sent on a channel to start a sweep.
const BeginSweepMessage = "start"

//AbortSweepMessage is sent on a channel to stop an in-progress sweep.
const AbortSweepMessage = "stop"

//Processor manages the state for a sweep job.
type Processor struct {
	inputDir       string
	outputDir      string
	workingDir     string
	engine         gpf.Engine
	dbConnProvider jobs.ConnectionProvider
	statusChan     chan chan string
	sessionID      string
}

//NewProcessor initializes a new processor. dbConnProvider may be nil, in
//which case sweep outcomes are not recorded in the job ledger.
func NewProcessor(
	inputDir string,
	outputDir string,
	workingDir string,
	engine gpf.Engine,
	dbConnProvider jobs.ConnectionProvider) *Processor {
	return &Processor{
		inputDir:       inputDir,
		outputDir:      outputDir,
		workingDir:     workingDir,
		engine:         engine,
		dbConnProvider: dbConnProvider,
		statusChan:     make(chan chan string, 10)}
}

// AppName returns the application name
func (p *Processor) AppName() string {
	return "bf-sar-correct"
}

// SessionID returns a session ID, creating one if needed
func (p *Processor) SessionID() string {
	if p.sessionID == "" {
		p.sessionID, _ = util.PsuUUID()
	}
	return p.sessionID
}

// LogRootDir returns an empty string
func (p *Processor) LogRootDir() string {
	return ""
}

//ProcessWhile performs the Sweep() task on a schedule and waits for a channel.
//Note: this is blocking
//The function will exit when messageChan is closed and any in-progress sweep completes.
//To close quickly, send AbortSweepMessage on messageChan before closing it.
func (p *Processor) ProcessWhile(messageChan <-chan string, maxTimeBetweenSweeps time.Duration) {
	log.Println("Sweep loop started with frequency", maxTimeBetweenSweeps)

	previousStatus := "\tNone"

	scheduleTimer := time.NewTimer(maxTimeBetweenSweeps)
	nextScheduledStartTime := time.Now().Add(maxTimeBetweenSweeps)

	var startSweep bool
	for {
		startSweep = false

		//Wait for a start message or the timer, and deal with status
		//requests while we wait.
		select {
		case <-scheduleTimer.C:
			log.Println("Maximum time between sweeps elapsed.")
			startSweep = true
		case msg, ok := <-messageChan:
			if !ok {
				return //The message channel has been closed. Exit.
			}
			switch msg {
			case BeginSweepMessage:
				log.Println("User requested sweep start.")
				startSweep = true
			default:
				//ignore this message. We only want ones for "start".
			}
		case respChan := <-p.statusChan:
			select {
			case respChan <- fmt.Sprintf("%v\nStatus: Sleeping until %v\nPrevious sweep:\n%v",
				time.Now().Format("Mon Jan _2 15:04:05 2006"),
				nextScheduledStartTime.Format("Mon Jan _2 15:04:05 2006"),
				previousStatus): //good
			default:
				//Could not send immediately. We'll ignore it.
			}
		}

		if startSweep {
			log.Println("Starting sweep.")
			previousStatus = p.Sweep(messageChan)

			scheduleTimer.Stop()
		TimerDrainLoop:
			for {
				select {
				case <-scheduleTimer.C: //good, discard
				default:
					break TimerDrainLoop
				}
			}
			scheduleTimer.Reset(maxTimeBetweenSweeps)
			nextScheduledStartTime = time.Now().Add(maxTimeBetweenSweeps)
		}
	}
}

//GetStatus is a thread safe way to get information about the sweep operation.
func (p *Processor) GetStatus() string {
	responseChan := make(chan string, 1) //Must have a buffer. The loop won't wait if it can't send.
	p.statusChan <- responseChan
	status := <-responseChan
	return status
}

//Sweep corrects every SAFE product currently in the input directory,
//checking for an abort message between products. Returns a human-readable
//summary of what happened.
func (p *Processor) Sweep(messageChan <-chan string) string {
	productDirs, err := p.findProductDirs()
	if err != nil {
		return util.LogSimpleErr(p, fmt.Sprintf("Could not scan input directory `%s`.", p.inputDir), err).Error()
	}

	sweepStart := time.Now()
	summary := fmt.Sprintf("Sweep of %s started %v: %d products", p.inputDir, sweepStart.Format("Mon Jan _2 15:04:05 2006"), len(productDirs))
	abortRequested := false

	for _, productDir := range productDirs {
		//Drain any pending control messages before each product.
		for !abortRequested {
			select {
			case msg, ok := <-messageChan:
				if !ok {
					abortRequested = true
				}
				abortRequested = abortRequested || (msg == AbortSweepMessage)
			default:
				goto ProcessProduct
			}
		}
	ProcessProduct:
		if abortRequested {
			summary += "\n\taborted by request"
			break
		}

		result := orchestrator.Run(context.Background(), p.engine, orchestrator.InvocationContext{
			ProductDir: productDir,
			OutputDir:  p.outputDir,
			WorkingDir: p.workingDir,
		}, p)
		recordSweepResult(result)
		p.recordInLedger(productDir, result)
		summary += "\n\t" + result.Summary()
	}

	summary += fmt.Sprintf("\n\tcompleted in %v", time.Since(sweepStart).Round(time.Second))
	return summary
}

//findProductDirs lists subdirectories of the input directory that look
//like SAFE products (they contain a manifest). Products without a
//manifest are left for the orchestrator to report as skipped only when
//named directly; during a sweep they are not interesting.
func (p *Processor) findProductDirs() ([]string, error) {
	entries, err := os.ReadDir(p.inputDir)
	if err != nil {
		return nil, err
	}
	productDirs := []string{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		productDir := filepath.Join(p.inputDir, entry.Name())
		if safe.HasManifest(productDir) {
			productDirs = append(productDirs, productDir)
		}
	}
	return productDirs, nil
}

//recordInLedger writes one ledger row per polarization outcome. A nil
//connection provider disables the ledger; a connection failure is logged
//and the sweep continues, since the rasters themselves are already safe
//on disk.
func (p *Processor) recordInLedger(productDir string, result orchestrator.RunResult) {
	if p.dbConnProvider == nil || result.Identity == nil {
		return
	}

	database, err := p.dbConnProvider(p)
	if err != nil {
		util.LogAlert(p, "Could not open database connection; sweep outcome not recorded: "+err.Error())
		return
	}
	defer database.Close()

	footprint, footprintErr := safe.ReadFootprint(safe.ManifestPath(productDir))
	if footprintErr != nil {
		util.LogInfo(p, "No footprint recorded for "+result.ProductName+": "+footprintErr.Error())
	}

	tx, err := database.Begin()
	if err != nil {
		util.LogAlert(p, "Could not begin DB transaction; sweep outcome not recorded: "+err.Error())
		return
	}

	for _, polResult := range result.Polarizations {
		job := jobs.CorrectionJob{
			ProductID:    result.Identity.Name,
			Polarization: polResult.Polarization,
			OutputPath:   polResult.OutputPath,
			State:        string(orchestrator.Done),
			StartedAt:    time.Now(),
			Footprint:    footprint,
		}
		errorText := ""
		if polResult.Failure != nil {
			job.State = string(orchestrator.Failed)
			errorText = polResult.Failure.Error()
		}

		id, insertErr := jobs.InsertJob(tx, job)
		if insertErr != nil {
			util.LogAlert(p, "Could not record job for "+job.ProductID+": "+insertErr.Error())
			tx.Rollback()
			return
		}
		if finishErr := jobs.FinishJob(tx, id, job.State, errorText, time.Now()); finishErr != nil {
			util.LogAlert(p, "Could not finish job record for "+job.ProductID+": "+finishErr.Error())
			tx.Rollback()
			return
		}
	}

	if err = tx.Commit(); err != nil {
		util.LogAlert(p, "Could not commit job records: "+err.Error())
	}
}

//RecentJobs loads the most recent ledger entries, for the status endpoint.
func (p *Processor) RecentJobs(limit int) ([]jobs.CorrectionJob, error) {
	if p.dbConnProvider == nil {
		return nil, sql.ErrConnDone
	}
	database, err := p.dbConnProvider(p)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	tx, err := database.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Commit()

	return jobs.GetRecentJobs(tx, limit)
}
