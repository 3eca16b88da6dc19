package main

type Mode int

const (
	ModeEdit Mode = iota
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpSavePNG
	FileOpOpen
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmCloseDocument
	ConfirmOverwriteFile
	ConfirmReplaceFromClipboard
)

const (
	appName    = "identic"
	pngSuffix  = ".png"
	scrollStep = 3
)
