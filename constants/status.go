package constants

// JobStatus is the canonical status for an evidence import job.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusQueued    JobStatus = "QUEUED"     // queued for processing
	JobStatusRunning   JobStatus = "RUNNING"    // in progress
	JobStatusOCROK     JobStatus = "OCR_OK"     // stage 1 completed (text extracted)
	JobStatusEnriched  JobStatus = "ENRICH_OK"  // stage 2 completed (fields enriched)
	JobStatusConfirmed JobStatus = "CONFIRMED"  // user accepted the extraction
	JobStatusFailed    JobStatus = "FAILED"     // terminal failure
)
