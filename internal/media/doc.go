package media

// Package media wraps the external ffmpeg toolchain: detecting whether ffmpeg
// is usable, probing finished files for a short summary, and tagging mp3
// output produced by the audio preset.
