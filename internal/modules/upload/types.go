package upload

// Kind describes one upload slot: the multipart field it reads, the asset
// category it stores under, and the per-file size ceiling.
type Kind struct {
	Field    string
	Category string
	MaxBytes int64
}

// File is the stored-file descriptor returned to the client.
type File struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
	Path         string `json:"path"`
}
