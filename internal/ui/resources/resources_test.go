package resources

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinify(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		src     string
		want    string
		wantErr bool
	}{
		{
			name: "css whitespace removed",
			file: "app.css",
			src:  "body {\n  color: red;\n}\n",
			want: "body{color:red}",
		},
		{
			name: "js minified",
			file: "app.js",
			src:  "function add(first, second) {\n  return first + second;\n}\nwindow.add = add;\n",
			want: "window.add=",
		},
		{
			name: "other files untouched",
			file: "logo.svg",
			src:  "<svg>\n</svg>",
			want: "<svg>\n</svg>",
		},
		{
			name:    "invalid js",
			file:    "broken.js",
			src:     "function (",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Minify(tt.file, []byte(tt.src))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, string(out), tt.want)
			assert.LessOrEqual(t, len(out), len(tt.src))
		})
	}
}

func TestHandler_ServesAssets(t *testing.T) {
	h := Handler()

	req := httptest.NewRequest(http.MethodGet, StaticPath("app.css"), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "--oslo-blue")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")

	req = httptest.NewRequest(http.MethodGet, StaticPath("missing.css"), nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaticPath(t *testing.T) {
	assert.Equal(t, "/static/app.js", StaticPath("app.js"))
}
