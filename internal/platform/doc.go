package platform

// Package platform contains OS integration: default download locations,
// directory creation, revealing folders in the system file manager, and
// recognising YouTube URLs.
