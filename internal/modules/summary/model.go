package summary

import "errors"

// ErrDisabled is returned when no Gemini API key is configured.
var ErrDisabled = errors.New("summary generation disabled")
