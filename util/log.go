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

package util

import (
	"crypto/rand"
	"fmt"
	"log"
	"net/http"
)

// Severity is a syslog-style severity level for audit records
type Severity int

// Severity levels, most severe first
const (
	EMERGENCY Severity = iota
	ALERT
	CRITICAL
	ERROR
	WARNING
	NOTICE
	INFO
	DEBUG
)

// LogContext is the interface for log context objects, providing
// identifying information to include with each log message
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is a minimal LogContext for code paths that have no
// richer operation context of their own
type BasicLogContext struct {
	sessionID string
}

// AppName returns the application name
func (c *BasicLogContext) AppName() string {
	return "bf-sar-correct"
}

// SessionID returns a session ID, creating one if needed
func (c *BasicLogContext) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *BasicLogContext) LogRootDir() string {
	return ""
}

func logMessage(ctx LogContext, severity Severity, message string) {
	log.Printf("[%s %s] <%d> %s", ctx.AppName(), ctx.SessionID(), severity, message)
}

// LogInfo logs an informational message
func LogInfo(ctx LogContext, message string) {
	logMessage(ctx, INFO, message)
}

// LogAlert logs a message that somebody ought to look at eventually,
// but that does not abort the current operation
func LogAlert(ctx LogContext, message string) {
	logMessage(ctx, ALERT, message)
}

// LogSimpleErr logs a message and its underlying error, and returns a
// single error combining the two for the caller to propagate
func LogSimpleErr(ctx LogContext, message string, err error) error {
	if err != nil {
		message = message + " " + err.Error()
	}
	logMessage(ctx, ERROR, message)
	return fmt.Errorf("%s", message)
}

// LogAuditInput is the set of fields for a LogAudit record
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity Severity
}

// LogAudit logs an audit record of the form "actor: action :: actee"
func LogAudit(ctx LogContext, input LogAuditInput) {
	logMessage(ctx, input.Severity, fmt.Sprintf("[audit] %s: %s :: %s :: %s", input.Actor, input.Action, input.Actee, input.Message))
}

// Error is a rich error with separate messages for the log and for
// whoever is on the other end of the request
type Error struct {
	LogMsg     string
	SimpleMsg  string
	Response   string
	URL        string
	HTTPStatus int
}

// Log logs the error with any additional message and returns an error
// carrying the simple message (falling back to the log message)
func (e Error) Log(ctx LogContext, message string) error {
	logMsg := e.LogMsg
	if message != "" {
		logMsg = message + ": " + logMsg
	}
	if e.URL != "" {
		logMsg += "\nURL: " + e.URL
	}
	if e.Response != "" {
		logMsg += "\nResponse: " + e.Response
	}
	logMessage(ctx, ERROR, logMsg)
	if e.SimpleMsg != "" {
		return fmt.Errorf("%s", e.SimpleMsg)
	}
	return fmt.Errorf("%s", e.LogMsg)
}

// HTTPErr is an error carrying an HTTP status code
type HTTPErr struct {
	Status  int
	Message string
}

func (e HTTPErr) Error() string {
	return e.Message
}

// HTTPError writes an error message and status to the given ResponseWriter
func HTTPError(r *http.Request, w http.ResponseWriter, ctx LogContext, message string, status int) {
	http.Error(w, message, status)
}

// PsuUUID makes a pseudo-UUID. It may not achieve cryptographic levels of
// randomness, and it will not respond correctly to standard ways of
// pulling data out of UUIDs, but it works just fine for generating
// a quick psuedorandom identifier
func PsuUUID() (string, error) {
	b := make([]byte, 16)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%X-%X-%X-%X-%X", b[0:4], b[4:6], b[6:8], b[8:10], b[10:]), nil
}
