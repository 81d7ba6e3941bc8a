package fetch

// Package fetch implements URL import built on top of yt-dlp (via
// github.com/lrstanley/go-ytdlp). It fetches remote media into local files,
// propagating progress to the UI; fetched files feed the conversion flow
// through the normal selection path.
