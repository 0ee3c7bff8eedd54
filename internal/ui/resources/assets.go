// Package resources provides static asset handling for the UI server.
package resources

import (
	"fmt"
	"path"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// StaticPath returns the URL path for a static asset.
func StaticPath(name string) string {
	return "/static/" + name
}

// loaderFor picks the esbuild loader for a file, or false when the file is
// served as-is.
func loaderFor(name string) (api.Loader, bool) {
	switch strings.ToLower(path.Ext(name)) {
	case ".css":
		return api.LoaderCSS, true
	case ".js":
		return api.LoaderJS, true
	}
	return api.LoaderNone, false
}

// Minify shrinks CSS and JS assets. Other files are returned unchanged.
func Minify(name string, src []byte) ([]byte, error) {
	loader, ok := loaderFor(name)
	if !ok {
		return src, nil
	}

	result := api.Transform(string(src), api.TransformOptions{
		Loader:            loader,
		Sourcefile:        name,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		Target:            api.ES2020,
		LogLevel:          api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		msgs := make([]string, len(result.Errors))
		for i, e := range result.Errors {
			msgs[i] = e.Text
		}
		return nil, fmt.Errorf("failed to minify %s: %s", name, strings.Join(msgs, "; "))
	}
	return result.Code, nil
}
