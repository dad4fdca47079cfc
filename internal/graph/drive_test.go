package graph

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"graphbox/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrivePrefix(t *testing.T) {
	tests := []struct {
		driveID string
		want    string
	}{
		{"", "/me/drive"},
		{"b!abc123", "/drives/b%21abc123"},
	}

	for _, tt := range tests {
		if got := drivePrefix(tt.driveID); got != tt.want {
			t.Errorf("drivePrefix(%q) = %q, want %q", tt.driveID, got, tt.want)
		}
	}
}

func TestEscapePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"Documents", "Documents"},
		{"Documents/Q1 Report.docx", "Documents/Q1%20Report.docx"},
		{"a#b/c?d", "a%23b/c%3Fd"},
	}

	for _, tt := range tests {
		if got := escapePath(tt.path); got != tt.want {
			t.Errorf("escapePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestRootWithChildren(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/drive/root", r.URL.Path)
		assert.Equal(t, "children", r.URL.Query().Get("$expand"))

		_, _ = w.Write([]byte(`{
			"id": "root-id",
			"name": "root",
			"folder": {"childCount": 3},
			"children": [
				{"id": "1", "name": "Documents", "folder": {"childCount": 2}},
				{"id": "2", "name": "track.mp3", "size": 4096, "audio": {"title": "Track"}, "video": {"duration": 10}},
				{"id": "3", "name": "notes.txt", "size": 12, "file": {"mimeType": "text/plain"}, "description": "scratch"}
			]
		}`))
	}))

	root, children, err := c.RootWithChildren(context.Background(), "")
	require.NoError(t, err)

	assert.True(t, root.IsFolder)
	assert.Equal(t, "root-id", root.ID)

	require.Len(t, children, 3)
	assert.True(t, children[0].IsFolder)
	assert.Equal(t, models.Facets{Audio: true, Video: true}, children[1].Facets)
	assert.Equal(t, int64(4096), children[1].Size)
	assert.Equal(t, "scratch", children[2].Description)
	assert.False(t, children[2].IsFolder)
}

func TestRootWithChildrenPagination(t *testing.T) {
	var srv *httptest.Server

	mux := http.NewServeMux()
	mux.HandleFunc("/me/drive/root", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"id": "root-id",
			"name": "root",
			"folder": {"childCount": 2},
			"children": [{"id": "1", "name": "first.txt", "size": 1, "file": {"mimeType": "text/plain"}}],
			"children@odata.nextLink": "` + srv.URL + `/root-page2"
		}`))
	})
	mux.HandleFunc("/root-page2", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"value": [{"id": "2", "name": "second.txt", "size": 2, "file": {"mimeType": "text/plain"}}]}`))
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewClientWithBaseURL(nil, srv.URL)

	// The expansion caps how many children come back inline; the rest must
	// be drained through the children nextLink or whole subtrees vanish
	// without an error.
	_, children, err := c.RootWithChildren(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, children, 2)
	assert.Equal(t, "first.txt", children[0].Name)
	assert.Equal(t, "second.txt", children[1].Name)
}

func TestChildrenAtPathPagination(t *testing.T) {
	var srv *httptest.Server

	mux := http.NewServeMux()
	mux.HandleFunc("/me/drive/root:/Documents:/children", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"value": [{"id": "1", "name": "a.txt", "size": 1, "file": {"mimeType": "text/plain"}}],
			"@odata.nextLink": "` + srv.URL + `/page2"
		}`))
	})
	mux.HandleFunc("/page2", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"value": [{"id": "2", "name": "b.txt", "size": 2, "file": {"mimeType": "text/plain"}}]}`))
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewClientWithBaseURL(nil, srv.URL)

	entries, err := c.ChildrenAtPath(context.Background(), "", "Documents")
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].Name)
	assert.Equal(t, "b.txt", entries[1].Name)
}

func TestChildrenAtPathEscapesSegments(t *testing.T) {
	var gotPath string

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"value": []}`))
	}))

	_, err := c.ChildrenAtPath(context.Background(), "", "My Files/Q1 Report")
	require.NoError(t, err)

	assert.Equal(t, "/me/drive/root:/My%20Files/Q1%20Report:/children", gotPath)
}

func TestDownload(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/drive/root:/notes.txt:/content", r.URL.Path)
		_, _ = w.Write([]byte("hello world"))
	}))

	body, err := c.Download(context.Background(), "", "notes.txt")
	require.NoError(t, err)

	defer func() {
		_ = body.Close()
	}()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestDownloadMissingFile(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"itemNotFound","message":"gone"}}`))
	}))

	_, err := c.Download(context.Background(), "", "gone.txt")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "itemNotFound", apiErr.Code)
}

func TestUpload(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/me/drive/root:/Documents/new.txt:/content", r.URL.Path)

		data, _ := io.ReadAll(r.Body)
		assert.Equal(t, "payload", string(data))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "new-id", "name": "new.txt", "size": 7, "file": {"mimeType": "text/plain"}}`))
	}))

	entry, err := c.Upload(context.Background(), "", "Documents/new.txt", strings.NewReader("payload"))
	require.NoError(t, err)

	assert.Equal(t, "new-id", entry.ID)
	assert.Equal(t, int64(7), entry.Size)
	assert.False(t, entry.IsFolder)
}
