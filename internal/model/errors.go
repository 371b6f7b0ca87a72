package model

import "errors"

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrGameNotFound   = errors.New("game not found")

	// Import errors
	ErrDuplicateGame  = errors.New("a game for this date has already been uploaded")
	ErrEmptyImport    = errors.New("CSV file is empty")
	ErrEmptyGame      = errors.New("game has no results")
	ErrUnresolvedRows = errors.New("import has unmatched players")
	ErrNoPendingRows  = errors.New("no unmatched rows left")
)
