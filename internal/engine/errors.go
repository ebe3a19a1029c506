package engine

import "errors"

// ErrBusy is returned by DrawNow while an animated draw is running.
var ErrBusy = errors.New("a draw is already running")
