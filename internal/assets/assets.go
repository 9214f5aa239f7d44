package assets

import _ "embed"

// Embedded collector script, compiled into the binary at build time.

//go:embed collector.js
var CollectorJS []byte
