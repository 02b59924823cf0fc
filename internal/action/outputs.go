// Package action assembles the step's structured outputs for the hosting
// workflow runner.
package action

import (
	"strconv"

	"github.com/sethvargo/go-githubactions"
)

// Outputs is the structured result of one invocation. It is a pure
// function of the orchestrator's outcome plus the descriptor's name and
// resolved scope; nothing here is read back from the catalog service.
type Outputs struct {
	DatabaseName  string
	DatabaseARN   string
	AlreadyExists bool
}

// Write publishes the outputs through the runner's output protocol.
func (o Outputs) Write(a *githubactions.Action) {
	a.SetOutput("database-name", o.DatabaseName)
	a.SetOutput("database-arn", o.DatabaseARN)
	a.SetOutput("already-exists", strconv.FormatBool(o.AlreadyExists))
}
