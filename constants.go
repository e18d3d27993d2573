package main

import "time"

// Mode identifies which input handler is active.
type Mode int

const (
	ModeEdit Mode = iota
	ModeFileInput
	ModeConfirm
)

// FileOperation tags what the file input prompt is collecting a name for.
type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpOpen
	FileOpExport
)

// ConfirmAction tags what a y/n confirmation will run when accepted.
type ConfirmAction int

const (
	ConfirmOpen ConfirmAction = iota
	ConfirmNew
	ConfirmQuit
)

const (
	debounceWindow = 300 * time.Millisecond
	noticeDuration = 4 * time.Second

	defaultTextName  = "diagram.txt"
	defaultImageName = "diagram.png"
	textExt          = ".txt"
	imageExt         = ".png"

	defaultSplitWidth = 48
	minPaneWidth      = 20
)
