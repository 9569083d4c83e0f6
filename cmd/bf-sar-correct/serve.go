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

package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/venicegeo/bf-sar-correct/batch"
	"github.com/venicegeo/bf-sar-correct/gpf"
	"github.com/venicegeo/bf-sar-correct/jobs"
	"github.com/venicegeo/bf-sar-correct/model"
	"github.com/venicegeo/bf-sar-correct/util"

	_ "github.com/lib/pq"
	cli "gopkg.in/urfave/cli.v1"
)

const sweepFrequencyEnv = "BF_SWEEP_FREQUENCY"
const defaultSweepFrequency = 24 * time.Hour
const recentJobLimit = 50

func getPortStr() string {
	if port, ok := os.LookupEnv("PORT"); ok {
		return ":" + port
	}
	return ":8080"
}

//serveAction starts the sweep worker process and an http server
func serveAction(*cli.Context) {
	logContext := &(util.BasicLogContext{})

	portStr := getPortStr()

	engine, err := gpf.NewToolbox(util.GetToolboxDir(), logContext)
	if err != nil {
		util.LogSimpleErr(logContext, "Failed to bind toolbox: ", err)
		return
	}

	var connectionProvider jobs.ConnectionProvider
	if hasDbConfigured() {
		connectionProvider = jobs.ConnectionProvider(getDbConnectionFunc)
	} else {
		util.LogAlert(logContext, "No database configured; sweep outcomes will not be recorded")
	}

	processor := batch.NewProcessor(
		util.GetSweepInputDir(),
		util.GetSweepOutputDir(),
		util.GetSweepWorkingDir(),
		engine,
		connectionProvider)

	//Create the channel that sends the start/stop messages to the Processor.
	messageChan := make(chan string, 5) //small buffer.

	//Start the sleep/sweep loop.
	go processor.ProcessWhile(messageChan, getSweepFrequency())

	router := createRouter(processor, messageChan)
	launchServerFunc(portStr, router)
}

func createRouter(processor *batch.Processor, messageChan chan<- string) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte("OK"))
	})
	router.HandleFunc("/jobs/", func(resp http.ResponseWriter, req *http.Request) {
		handleSweepStatus(processor, resp, req)
	})
	router.HandleFunc("/jobs/start", func(resp http.ResponseWriter, req *http.Request) {
		handleForceStartSweep(processor, messageChan, resp, req)
	})
	router.HandleFunc("/jobs/cancel", func(resp http.ResponseWriter, req *http.Request) {
		handleCancelSweep(processor, messageChan, resp, req)
	})
	router.HandleFunc("/jobs/recent", func(resp http.ResponseWriter, req *http.Request) {
		handleRecentJobs(processor, resp, req)
	})
	router.Handle("/metrics", promhttp.Handler())
	return router
}

//handleSweepStatus requests the status from the processor and writes it out.
func handleSweepStatus(processor *batch.Processor, writer http.ResponseWriter, req *http.Request) {
	fmt.Fprintln(writer, processor.GetStatus())
}

//handleForceStartSweep sends a "begin" message to the processor and returns the new status to the user.
func handleForceStartSweep(processor *batch.Processor, messageChan chan<- string, writer http.ResponseWriter, req *http.Request) {
	select {
	case messageChan <- batch.BeginSweepMessage:
		fmt.Fprintln(writer, "Begin sweep request submitted.")
	default:
		fmt.Fprintln(writer, "Error submitting request.")
	}
	fmt.Fprintln(writer, processor.GetStatus())
}

//handleCancelSweep sends a "cancel" message to the processor and returns the new status to the user.
func handleCancelSweep(processor *batch.Processor, cancelChan chan<- string, writer http.ResponseWriter, req *http.Request) {
	select {
	case cancelChan <- batch.AbortSweepMessage:
		fmt.Fprintln(writer, "Cancel request submitted.")
	default:
		fmt.Fprintln(writer, "Error submitting cancel request.")
	}
	fmt.Fprintln(writer, processor.GetStatus())
}

//handleRecentJobs writes the most recent ledger entries as a GeoJSON FeatureCollection.
func handleRecentJobs(processor *batch.Processor, writer http.ResponseWriter, req *http.Request) {
	logContext := &(util.BasicLogContext{})

	recentJobs, err := processor.RecentJobs(recentJobLimit)
	if err != nil {
		message := fmt.Sprintf("Could not load recent jobs: %v", err)
		util.LogSimpleErr(logContext, message, err)
		util.HTTPError(req, writer, logContext, message, http.StatusServiceUnavailable)
		return
	}

	featureCreators := make([]model.GeoJSONFeatureCreator, len(recentJobs))
	for i, job := range recentJobs {
		featureCreators[i] = job
	}

	featureCollection, err := model.MultiJobResult{FeatureCreators: featureCreators}.GeoJSONFeatureCollection()
	if err != nil {
		message := fmt.Sprintf("Error converting to feature collection: %v", err)
		util.LogSimpleErr(logContext, message, err)
		util.HTTPError(req, writer, logContext, message, http.StatusInternalServerError)
		return
	}
	writer.Write([]byte(featureCollection.String()))
}

func getSweepFrequency() time.Duration {
	duration, _ := time.ParseDuration(os.Getenv(sweepFrequencyEnv))

	if duration < time.Minute {
		log.Printf("Specified sweep frequency of %v is too small. Setting to default.", duration)
		duration = defaultSweepFrequency
	}

	return duration
}

var launchServerFunc = launchServer

func launchServer(portStr string, router *mux.Router) {
	server := http.Server{
		Addr:    portStr,
		Handler: router,
	}

	log.Fatal(server.ListenAndServe())
}
