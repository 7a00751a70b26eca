package dto

// ImportResult reports the outcome of a bulk import.
type ImportResult struct {
	Imported  int  `json:"imported"`
	Persisted bool `json:"persisted"`
}

// ExportInfo describes a stored backup file reachable via signed URL.
type ExportInfo struct {
	Filename    string `json:"filename"`
	DownloadURL string `json:"downloadUrl"`
	ExpiresAt   string `json:"expiresAt"`
}
