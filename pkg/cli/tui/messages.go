package tui

import (
	"html-extract-go/pkg/extractor"
)

// extractDoneMsg is the single resolution of an extraction run.
type extractDoneMsg struct {
	runID  int
	markup string
	err    error
}

// extractProgressMsg reports a stage change of the running extraction.
type extractProgressMsg struct {
	runID   int
	stage   extractor.Stage
	message string
}

type copyDoneMsg struct {
	err error
}

type saveDoneMsg struct {
	path string
	err  error
}
