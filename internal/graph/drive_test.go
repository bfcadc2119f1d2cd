package graph

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProcessUUID = "0c7f4a1e-1111-4e8a-9be2-3f13d77a0001"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDrive(t *testing.T, handler http.HandlerFunc) *DriveClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewDriveClient(DriveClientOptions{
		BaseURL:    srv.URL,
		Root:       "process_outputs",
		HTTPClient: srv.Client(),
		Logger:     testLogger(),
	})
}

func TestDriveClient_FindProcessVideo(t *testing.T) {
	t.Parallel()

	var requestedPath string
	client := newTestDrive(t, func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"value": [
				{"name": "thumbnail.png", "webUrl": "https://1drv/t.png", "id": "i1", "file": {}},
				{"name": "session.MP4", "webUrl": "https://1drv/session.mp4", "id": "i2", "file": {}},
				{"name": "metadata", "id": "i3", "folder": {}}
			]
		}`))
	})

	link, err := client.FindProcessVideo(context.Background(), "acme-key", testProcessUUID)

	require.NoError(t, err)
	assert.Equal(t, "https://1drv/session.mp4", link)
	assert.Equal(t, "/me/drive/root:/process_outputs/acme-key/"+testProcessUUID+":/children", requestedPath)
}

func TestDriveClient_FindProcessVideo_NoVideoFiles(t *testing.T) {
	t.Parallel()

	client := newTestDrive(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value": [{"name": "report.txt", "webUrl": "https://1drv/r.txt", "id": "i1", "file": {}}]}`))
	})

	link, err := client.FindProcessVideo(context.Background(), "acme-key", testProcessUUID)

	require.NoError(t, err)
	assert.Empty(t, link)
}

func TestDriveClient_FindProcessVideo_FolderMissingDegrades(t *testing.T) {
	t.Parallel()

	client := newTestDrive(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": "itemNotFound"}}`, http.StatusNotFound)
	})

	link, err := client.FindProcessVideo(context.Background(), "acme-key", testProcessUUID)

	require.NoError(t, err)
	assert.Empty(t, link)
}

func TestDriveClient_FindProcessVideo_ServerErrorDegrades(t *testing.T) {
	t.Parallel()

	client := newTestDrive(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	link, err := client.FindProcessVideo(context.Background(), "acme-key", testProcessUUID)

	require.NoError(t, err)
	assert.Empty(t, link)
}

func TestDriveClient_FindProcessVideo_MalformedUUIDRejected(t *testing.T) {
	t.Parallel()

	client := newTestDrive(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made for a malformed uuid")
	})

	_, err := client.FindProcessVideo(context.Background(), "acme-key", "../../secrets")

	require.Error(t, err)
}

func TestDriveClient_ListRecentFiles(t *testing.T) {
	t.Parallel()

	since := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)

	client := newTestDrive(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/me/drive/root:/process_outputs:/children":
			_, _ = w.Write([]byte(`{
				"value": [
					{"name": "old.mp4", "webUrl": "https://1drv/old.mp4", "id": "f1", "createdDateTime": "2026-02-01T00:00:00Z", "file": {}},
					{"name": "acme-key", "id": "folder-1", "folder": {}}
				]
			}`))
		case "/me/drive/items/folder-1/children":
			_, _ = w.Write([]byte(`{
				"value": [
					{"name": "fresh.mp4", "webUrl": "https://1drv/fresh.mp4", "id": "f2", "createdDateTime": "2026-02-06T12:00:00Z", "file": {}}
				]
			}`))
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
		}
	})

	items, err := client.ListRecentFiles(context.Background(), since)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "fresh.mp4", items[0].Name)
	assert.Equal(t, "https://1drv/fresh.mp4", items[0].URL)
}

func TestDriveClient_ListRecentFiles_SkipsUnreadableFolder(t *testing.T) {
	t.Parallel()

	client := newTestDrive(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/me/drive/root:/process_outputs:/children":
			_, _ = w.Write([]byte(`{
				"value": [
					{"name": "keep.mp4", "webUrl": "https://1drv/keep.mp4", "id": "f1", "createdDateTime": "2026-02-06T12:00:00Z", "file": {}},
					{"name": "broken", "id": "folder-broken", "folder": {}}
				]
			}`))
		default:
			http.Error(w, "denied", http.StatusForbidden)
		}
	})

	items, err := client.ListRecentFiles(context.Background(), time.Time{})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "keep.mp4", items[0].Name)
}

func TestHasVideoExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		want bool
	}{
		{name: "mp4", file: "session.mp4", want: true},
		{name: "uppercase extension", file: "SESSION.MKV", want: true},
		{name: "webm", file: "clip.webm", want: true},
		{name: "text file", file: "notes.txt", want: false},
		{name: "extension embedded in stem", file: "mp4_notes.txt", want: false},
		{name: "no extension", file: "README", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, hasVideoExtension(tt.file))
		})
	}
}
