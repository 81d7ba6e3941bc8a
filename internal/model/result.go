package model

import "os"

// ConversionResult holds the produced bytes of a successful conversion
// together with the metadata needed to save them. The result owns one
// releasable resource: the staged copy on disk used for Open/Reveal before
// the user saves. Release must be called when the result is superseded or
// discarded; it is not reclaimed automatically.
type ConversionResult struct {
	Data       []byte
	MIMEType   string
	FileName   string // derived output name, e.g. "clip.mp4"
	StagedPath string // temp copy on disk, removed on Release

	released bool
}

// Size returns the output size in bytes
func (cr *ConversionResult) Size() int64 {
	return int64(len(cr.Data))
}

// SizeString returns the output size in human readable form
func (cr *ConversionResult) SizeString() string {
	return formatBytes(cr.Size())
}

// Release frees the result: the staged file is removed and the byte buffer
// dropped. Calling Release again is a no-op.
func (cr *ConversionResult) Release() {
	if cr.released {
		return
	}
	cr.released = true
	if cr.StagedPath != "" {
		_ = os.Remove(cr.StagedPath)
		cr.StagedPath = ""
	}
	cr.Data = nil
}

// Released returns true once Release has been called
func (cr *ConversionResult) Released() bool {
	return cr.released
}
