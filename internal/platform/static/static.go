// Package static serves the site's front-end assets under /static/.
package static

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
)

// Assets holds the stylesheets, scripts and small images compiled into the
// binary.
//
//go:embed assets
var Assets embed.FS

// Handler serves /static/*. Files under /static/wasm/ come from wasmDir;
// everything else comes from the embedded assets, then from mediaDir.
// Mount it at /static.
func Handler(wasmDir, mediaDir string) http.Handler {
	assets, err := fs.Sub(Assets, "assets")
	if err != nil {
		panic(err)
	}
	r := chi.NewRouter()
	r.Handle("/wasm/*", http.StripPrefix("/static/wasm/", http.FileServer(http.Dir(wasmDir))))
	r.Handle("/*", http.StripPrefix("/static/", http.FileServerFS(overlay{assets, os.DirFS(mediaDir)})))
	return r
}

// overlay opens names from the first file system that has them.
type overlay []fs.FS

func (o overlay) Open(name string) (fs.File, error) {
	var firstErr error
	for _, fsys := range o {
		f, err := fsys.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return nil, firstErr
}
