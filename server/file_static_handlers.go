package server

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"net/http"
	"path"

	"github.com/pkg/errors"
)

//go:embed static/*.css
var staticFiles embed.FS

// staticTypes maps the extensions served under /static to their content type.
// Only stylesheets are shipped, every other name is unknown.
var staticTypes = map[string]string{
	".css": "text/css; charset=utf-8",
}

var errUnknownAsset = errors.New("unknown static asset")

// StaticAsset returns an embedded asset and its content type
func StaticAsset(name string) ([]byte, string, error) {
	ctype, ok := staticTypes[path.Ext(name)]
	if !ok {
		return nil, "", errors.Wrapf(errUnknownAsset, "StaticAsset %s", name)
	}
	data, err := staticFiles.ReadFile(path.Join("static", name))
	if err != nil {
		return nil, "", errors.Wrapf(err, "StaticAsset %s", name)
	}
	return data, ctype, nil
}

// StreamAsset writes an embedded asset tagged with a content hash and answers
// a matching If-None-Match with 304
func StreamAsset(w http.ResponseWriter, r *http.Request, name string) error {
	data, ctype, err := StaticAsset(name)
	if err != nil {
		return err
	}

	sum := sha256.Sum256(data)
	etag := `"` + hex.EncodeToString(sum[:8]) + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return nil
	}

	w.Header().Set("Content-Type", ctype)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if _, err := w.Write(data); err != nil {
		return errors.Wrapf(err, "StreamAsset %s", name)
	}
	return nil
}
