package quill

import _ "embed"

// Version is the release of the library and the quill binary.
//
//go:embed VERSION
var Version string
