package main

import "time"

type model struct {
	width  int
	height int

	cfg   *Config
	st    Storage
	watch *watcher
	doc   Document
	exp   exporter
	pipe  renderPipeline

	// Editor buffer. The cursor is a byte offset.
	text      string
	cursor    int
	undoStack []editState
	redoStack []editState

	mode Mode

	// File input prompt state.
	fileOp            FileOperation
	filename          string
	promptErr         string
	fileList          []string
	selectedFileIndex int

	confirmAction ConfirmAction

	help       bool
	notice     notice
	noticeSeq  int
	splitWidth int

	// Saves within the last second are our own writes echoed back by
	// the file watcher, not external edits.
	lastSave time.Time
}
