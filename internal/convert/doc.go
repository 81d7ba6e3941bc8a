package convert

// Package convert implements the conversion pipeline built on top of the
// ffmpeg/ffprobe CLI. It manages task lifecycle, one-time mp3 encoder
// capability resolution, progress propagation to the UI, and in-memory
// collection of the muxed output.
