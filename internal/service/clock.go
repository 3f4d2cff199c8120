package service

import "time"

// timeNow is swapped in tests that assert on timestamps.
var timeNow = time.Now
