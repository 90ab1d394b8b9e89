package models

import "time"

// PollEvent records the outcome of one poll of the aircraft endpoint
type PollEvent struct {
	Timestamp     time.Time
	OK            bool
	AircraftCount int
	Changed       bool // payload differed from the previous snapshot
	Duration      time.Duration
	Error         string
}
