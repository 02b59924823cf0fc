// Package runinfo detects metadata about the hosting workflow run for
// diagnostic logs. The step usually runs inside GitHub Actions; a generic
// CI fallback covers everything else.
package runinfo

import (
	"fmt"
	"os"
	"strings"
)

// Info captures run metadata attached to diagnostic output.
type Info struct {
	CI         bool   `json:"ci,omitempty"`
	Provider   string `json:"provider,omitempty"`
	Repository string `json:"repository,omitempty"`
	Branch     string `json:"branch,omitempty"`
	Commit     string `json:"commit,omitempty"`
	Workflow   string `json:"workflow,omitempty"`
	Job        string `json:"job,omitempty"`
	RunID      string `json:"run_id,omitempty"`
	RunNumber  string `json:"run_number,omitempty"`
	Event      string `json:"event,omitempty"`
	Actor      string `json:"actor,omitempty"`
	BuildURL   string `json:"build_url,omitempty"`
}

// FromEnv builds run metadata from environment variables. Returns nil when
// nothing identifies a CI run.
func FromEnv() *Info {
	info := Info{}

	if isTruthy(env("GITHUB_ACTIONS")) {
		info.CI = true
		info.Provider = "github_actions"
		info.Repository = env("GITHUB_REPOSITORY")
		info.Branch = normalizeBranch(envFirst("GITHUB_HEAD_REF", "GITHUB_REF_NAME"))
		info.Commit = env("GITHUB_SHA")
		info.Workflow = env("GITHUB_WORKFLOW")
		info.Job = env("GITHUB_JOB")
		info.RunID = env("GITHUB_RUN_ID")
		info.RunNumber = env("GITHUB_RUN_NUMBER")
		info.Event = env("GITHUB_EVENT_NAME")
		info.Actor = env("GITHUB_ACTOR")
		serverURL := env("GITHUB_SERVER_URL")
		if serverURL == "" {
			serverURL = "https://github.com"
		}
		if info.Repository != "" && info.RunID != "" {
			info.BuildURL = strings.TrimRight(serverURL, "/") + "/" + info.Repository + "/actions/runs/" + info.RunID
		}
		return &info
	}

	if isTruthy(env("CI")) {
		info.CI = true
		info.Provider = "generic"
		info.Repository = envFirst("CI_PROJECT_PATH", "BUILD_REPOSITORY_NAME")
		info.Branch = normalizeBranch(envFirst("CI_COMMIT_REF_NAME", "BRANCH_NAME", "GIT_BRANCH"))
		info.Commit = envFirst("CI_COMMIT_SHA", "GIT_COMMIT", "BUILD_SOURCEVERSION")
		info.Job = envFirst("CI_JOB_NAME", "JOB_NAME")
		info.RunID = envFirst("CI_PIPELINE_ID", "BUILD_ID")
		info.BuildURL = envFirst("CI_JOB_URL", "BUILD_URL")
		return &info
	}

	return nil
}

// Summary renders a single log line worth of metadata.
func (i *Info) Summary() string {
	parts := []string{"provider=" + i.Provider}
	if i.Repository != "" {
		parts = append(parts, "repository="+i.Repository)
	}
	if i.Workflow != "" {
		parts = append(parts, "workflow="+i.Workflow)
	}
	if i.Job != "" {
		parts = append(parts, "job="+i.Job)
	}
	if i.RunID != "" {
		parts = append(parts, fmt.Sprintf("run_id=%s run_number=%s", i.RunID, i.RunNumber))
	}
	if i.Actor != "" {
		parts = append(parts, "actor="+i.Actor)
	}
	return strings.Join(parts, " ")
}

func normalizeBranch(branch string) string {
	branch = strings.TrimPrefix(branch, "refs/heads/")
	branch = strings.TrimPrefix(branch, "origin/")
	return branch
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envFirst(keys ...string) string {
	for _, key := range keys {
		if value := env(key); value != "" {
			return value
		}
	}
	return ""
}

func isTruthy(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
