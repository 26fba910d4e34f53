package recommend

import "time"

// timeNow is a package-level variable for testability.
// Tests can override this to produce deterministic timestamps.
var timeNow = time.Now
