package platform

// Package platform contains OS/platform integration helpers: filesystem
// access, media file classification, audio tag reading, and OS open/reveal.
