package model

// Package model defines domain data structures used across the app: the
// download task snapshot, its status enum, and the fixed set of quality
// presets. Structures are plain values so the UI can render snapshots
// without holding service locks.
