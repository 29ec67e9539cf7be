package constants

// InspectStatus is the canonical status for rows in the inspection catalog.
type InspectStatus string

// Stable values (store these exact strings in DB).
const (
	InspectStatusOK     InspectStatus = "OK"     // document opened and summarised
	InspectStatusFailed InspectStatus = "FAILED" // document could not be read
)
