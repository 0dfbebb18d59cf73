package export

import "errors"

// ErrBlankName is returned when the export base filename is empty after trimming.
var ErrBlankName = errors.New("export file name must not be blank")

// ErrUnknownFormat is returned for a selector with no registered renderer.
var ErrUnknownFormat = errors.New("unknown export format")
