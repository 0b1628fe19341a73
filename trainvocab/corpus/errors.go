package corpus

import "errors"

// Common error types returned while collecting the training corpus
var (
	ErrPathEmpty    = errors.New("path cannot be empty")
	ErrDirNotExist  = errors.New("input directory does not exist")
	ErrNotDirectory = errors.New("input path is not a directory")
	ErrEmptyCorpus  = errors.New("no training data found")
)
