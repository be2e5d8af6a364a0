package models

// ExportResult is the encoded output of a single export call. Ownership
// passes to the caller; the pipeline keeps no reference.
type ExportResult struct {
	Format   string `json:"format"`
	Filename string `json:"filename"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	FileSize int64  `json:"file_size"`
	Data     []byte `json:"-"`
}
