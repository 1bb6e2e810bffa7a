package server

import (
	"bytes"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

type asset struct {
	contentType string
	data        []byte
}

// assets serves the overlay page from memory, minified once at startup.
type assets struct {
	files   map[string]asset
	modTime time.Time
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	return m
}

func loadAssets(fsys fs.FS) (*assets, error) {
	m := newMinifier()
	a := &assets{files: make(map[string]asset), modTime: time.Now()}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		contentType := mime.TypeByExtension(filepath.Ext(p))
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}
		mediaType, _, _ := mime.ParseMediaType(contentType)
		if minified, err := m.Bytes(mediaType, data); err == nil {
			data = minified
		} else if !errors.Is(err, minify.ErrNotExist) {
			return errors.Wrapf(err, "minify %s", p)
		}
		a.files[p] = asset{contentType: contentType, data: data}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "load overlay assets")
	}
	return a, nil
}

func (a *assets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = "index.html"
	}
	f, ok := a.files[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", f.contentType)
	http.ServeContent(w, r, name, a.modTime, bytes.NewReader(f.data))
}
