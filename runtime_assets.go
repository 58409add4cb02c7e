package promptgen

import (
	"io/fs"

	"github.com/goliatone/go-promptgen/pkg/renderers/preview"
)

// RuntimeAssetsFS exposes the preview stylesheet so Go applications can serve
// it next to rendered pages.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(promptgen.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return preview.AssetsFS()
}
