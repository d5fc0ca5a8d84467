package models

// FileStatus is the outcome of converting one input file.
type FileStatus string

const (
	StatusOK     FileStatus = "OK"
	StatusFailed FileStatus = "FAILED"
)

// FileResult is one record of a batch report.
type FileResult struct {
	File   string     `json:"file"`
	Output string     `json:"output,omitempty"` // produced .STA file name
	Status FileStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
}

// Report is the outcome of a batch run, one record per processed file.
type Report struct {
	RunID   string       `json:"runId"`
	Dir     string       `json:"dir"`
	Results []FileResult `json:"results"`
}

// Failed returns how many files could not be converted.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Status != StatusOK {
			n++
		}
	}
	return n
}
