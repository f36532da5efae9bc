package descriptor

import (
	"embed"
	"io/fs"
)

//go:embed modules/*
var embeddedModules embed.FS

// EmbeddedFS returns the bundled module descriptors. Callers may pass this
// filesystem to LoadFS to compile the stock modules.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedModules, "modules")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}
