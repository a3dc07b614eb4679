package constants

// RunStatus is the canonical status for rows in the runs history table.
type RunStatus string

// Stable values (store these exact strings in the DB).
const (
	RunStatusSucceeded   RunStatus = "SUCCEEDED"    // every page recognized, output written
	RunStatusPagesFailed RunStatus = "PAGES_FAILED" // output written but one or more pages carry error markers
	RunStatusFailed      RunStatus = "FAILED"       // terminal failure, no output delivered
)
