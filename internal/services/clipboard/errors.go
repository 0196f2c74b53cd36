package clipboard

import "errors"

// ErrUnsupported is returned when the platform offers no clipboard utility.
var ErrUnsupported = errors.New("clipboard is not supported on this system")
