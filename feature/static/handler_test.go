package static

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"isoserve/core/server"
	"isoserve/core/storage"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func setupTestServer(t *testing.T, fs afero.Fs, rootDocument string) (*server.Server, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logg := zap.New(core)

	cfg := server.Config{Port: 8080, DocumentRoot: "/", RootDocument: rootDocument}
	srv := server.New(cfg, logg)
	require.NoError(t, NewFeature(fs, cfg, logg).Load(srv))
	return srv, logs
}

func do(t *testing.T, srv *server.Server, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func assertIsolated(t *testing.T, resp *http.Response) {
	t.Helper()
	assert.Equal(t, "same-origin", resp.Header.Get("Cross-Origin-Opener-Policy"))
	assert.Equal(t, "require-corp", resp.Header.Get("Cross-Origin-Embedder-Policy"))
}

func TestStages(t *testing.T) {
	srv, _ := setupTestServer(t, newMemFs(t), "index.html")

	assert.Equal(t, []string{
		"isolation", "rayid", "access-log",
		"root-document", "static-file", "not-found",
	}, srv.Stages())
}

func TestHandleStaticFile(t *testing.T) {
	srv, _ := setupTestServer(t, newMemFs(t), "index.html")

	resp, body := do(t, srv, httptest.NewRequest("GET", "/app.wasm", nil))

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "\x00asm\x01\x00\x00\x00", body)
	assert.Equal(t, "application/wasm", resp.Header.Get("Content-Type"))
	assert.Equal(t, "8", resp.Header.Get("Content-Length"))
	assert.NotEmpty(t, resp.Header.Get("Last-Modified"))
	assertIsolated(t, resp)
}

func TestHandleRootDocument(t *testing.T) {
	srv, _ := setupTestServer(t, newMemFs(t), "index.html")

	resp, body := do(t, srv, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "<html>game</html>", body)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assertIsolated(t, resp)
}

func TestHandleRootDocument_Disabled(t *testing.T) {
	srv, _ := setupTestServer(t, newMemFs(t), "")

	resp, _ := do(t, srv, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, 404, resp.StatusCode)
	assertIsolated(t, resp)
}

func TestHandleRootDocument_OnlyExactRoot(t *testing.T) {
	srv, _ := setupTestServer(t, newMemFs(t), "index.html")

	resp, _ := do(t, srv, httptest.NewRequest("GET", "/assets/", nil))

	assert.Equal(t, 404, resp.StatusCode, "directories other than / have no index")
}

func TestHandleRootDocument_Missing(t *testing.T) {
	srv, _ := setupTestServer(t, newMemFs(t), "start.html")

	resp, _ := do(t, srv, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, 404, resp.StatusCode)
	assertIsolated(t, resp)
}

func TestHandleStaticFile_TrailingSlash(t *testing.T) {
	srv, _ := setupTestServer(t, newMemFs(t), "index.html")

	for _, p := range []string{"/app.wasm/", "/index.html/"} {
		t.Run(p, func(t *testing.T) {
			resp, body := do(t, srv, httptest.NewRequest("GET", p, nil))

			assert.Equal(t, 404, resp.StatusCode)
			assert.Equal(t, "Not Found", body)
			assertIsolated(t, resp)
		})
	}
}

func TestHandleNotFound(t *testing.T) {
	srv, _ := setupTestServer(t, newMemFs(t), "index.html")

	resp, body := do(t, srv, httptest.NewRequest("GET", "/missing.wasm", nil))

	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "Not Found", body)
	assertIsolated(t, resp)
}

func TestHandleStaticFile_Methods(t *testing.T) {
	srv, _ := setupTestServer(t, newMemFs(t), "index.html")

	t.Run("HEAD", func(t *testing.T) {
		resp, body := do(t, srv, httptest.NewRequest("HEAD", "/app.wasm", nil))
		assert.Equal(t, 200, resp.StatusCode)
		assert.Empty(t, body)
		assert.Equal(t, "application/wasm", resp.Header.Get("Content-Type"))
		assertIsolated(t, resp)
	})

	t.Run("POST", func(t *testing.T) {
		resp, _ := do(t, srv, httptest.NewRequest("POST", "/app.wasm", nil))
		assert.Equal(t, 404, resp.StatusCode)
		assertIsolated(t, resp)
	})
}

func TestHandleStaticFile_NotModified(t *testing.T) {
	srv, _ := setupTestServer(t, newMemFs(t), "index.html")

	t.Run("Fresh", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/app.wasm", nil)
		req.Header.Set("If-Modified-Since", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))

		resp, body := do(t, srv, req)
		assert.Equal(t, 304, resp.StatusCode)
		assert.Empty(t, body)
		assertIsolated(t, resp)
	})

	t.Run("Stale", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/app.wasm", nil)
		req.Header.Set("If-Modified-Since", time.Unix(0, 0).UTC().Format(http.TimeFormat))

		resp, body := do(t, srv, req)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Len(t, body, 8)
	})
}

func TestHandleStaticFile_Traversal(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "build-emscripten")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("inside"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("outside"), 0o644))

	srv, logs := setupTestServer(t, storage.NewFS(root), "index.html")

	for _, p := range []string{
		"/../secret.txt",
		"/%2e%2e/secret.txt",
		"/assets/../../secret.txt",
		"/..%2fsecret.txt",
	} {
		t.Run(p, func(t *testing.T) {
			resp, body := do(t, srv, httptest.NewRequest("GET", p, nil))

			assert.Contains(t, []int{403, 404}, resp.StatusCode)
			assert.NotContains(t, body, "outside")
			assertIsolated(t, resp)
		})
	}

	assert.NotEmpty(t, logs.FilterMessage("Rejected path outside document root").All())
}

func TestHandleStaticFile_Symlinks(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "build-emscripten")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "js"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "js", "main.js"), []byte("inside"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("outside"), 0o644))

	links := map[string]string{
		"link.txt": "../secret.txt",
		"parent":   "..",
		"absolute": filepath.Join(parent, "secret.txt"),
		"js-alias": "js",
	}
	for name, target := range links {
		if err := os.Symlink(target, filepath.Join(root, name)); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
	}

	srv, logs := setupTestServer(t, storage.NewFS(root), "index.html")

	for _, p := range []string{"/link.txt", "/parent/secret.txt", "/absolute", "/js-alias/main.js"} {
		t.Run(p, func(t *testing.T) {
			resp, body := do(t, srv, httptest.NewRequest("GET", p, nil))

			assert.Equal(t, 403, resp.StatusCode)
			assert.NotContains(t, body, "outside")
			assertIsolated(t, resp)
		})
	}
	assert.Len(t, logs.FilterMessage("Rejected path outside document root").All(), 4)

	resp, body := do(t, srv, httptest.NewRequest("GET", "/js/main.js", nil))
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "inside", body)
}

func TestHandleStaticFile_OnDisk(t *testing.T) {
	root := t.TempDir()
	content := []byte("console.log('worker');\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "js"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "js", "worker.js"), content, 0o644))

	srv, _ := setupTestServer(t, storage.NewFS(root), "index.html")

	resp, body := do(t, srv, httptest.NewRequest("GET", "/js/worker.js", nil))
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, string(content), body)
	assertIsolated(t, resp)
}

func TestHandleStaticFile_InternalError(t *testing.T) {
	tests := []struct {
		name string
		fs   afero.Fs
	}{
		{"StatFails", &failingFs{Fs: afero.NewMemMapFs(), err: os.ErrPermission}},
		{"OpenFails", &failingFs{Fs: newMemFs(t), err: os.ErrPermission, statOK: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, logs := setupTestServer(t, tt.fs, "index.html")

			resp, body := do(t, srv, httptest.NewRequest("GET", "/app.wasm", nil))
			assert.Equal(t, 500, resp.StatusCode)
			assert.Equal(t, "Internal Server Error", body)
			assertIsolated(t, resp)
			assert.Len(t, logs.FilterMessage("Request failed").All(), 1)

			// The server keeps serving.
			resp, _ = do(t, srv, httptest.NewRequest("GET", "/missing", nil))
			assert.NotEqual(t, 0, resp.StatusCode)
		})
	}
}
