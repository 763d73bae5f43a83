package api

// infoResponse is the payload of the root endpoint
type infoResponse struct {
	Name      string         `json:"name"`
	Version   string         `json:"version"`
	Endpoints []endpointInfo `json:"endpoints"`
}

// endpointInfo describes one conversion endpoint
type endpointInfo struct {
	Path        string `json:"path"`
	Method      string `json:"method"`
	Description string `json:"description"`
}

// conversionResponse is the payload of a successful single conversion
type conversionResponse struct {
	JSONContent map[string]interface{} `json:"jsonContent"`
	Message     string                 `json:"message"`
}

// errorResponse is the payload of a failed conversion
type errorResponse struct {
	Detail string `json:"detail"`
}

// batchEntry is the per-file outcome inside a batch response. Exactly one
// of JSONContent or Error is set, matching Status.
type batchEntry struct {
	Filename    string                 `json:"filename"`
	Status      string                 `json:"status"`
	JSONContent map[string]interface{} `json:"jsonContent,omitempty"`
	Error       string                 `json:"error,omitempty"`
}

// batchResponse is the envelope of a batch conversion. The endpoint always
// answers 200: individual file failures are reported per entry, never as a
// transport-level failure.
type batchResponse struct {
	Results    []batchEntry `json:"results"`
	Successful int          `json:"successful"`
	Failed     int          `json:"failed"`
	Message    string       `json:"message"`
}

const (
	statusSuccess = "success"
	statusError   = "error"
)
