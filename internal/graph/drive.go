package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	jmespath "github.com/jmespath-community/go-jmespath"
)

// videoExtensions is the fixed set of artifact file extensions recognized as
// process videos.
var videoExtensions = []string{".mp4", ".avi", ".mov", ".mkv", ".webm"}

// childrenQuery projects a drive children listing down to the fields the
// lookup needs. Folders have no "file" facet and are filtered out here.
const childrenQuery = `value[?file].{name: name, url: webUrl, id: id, created: createdDateTime}`

// foldersQuery lists the ids of folder children for recursive walks.
const foldersQuery = `value[?folder].id`

// DriveClient locates process video artifacts in cloud storage. Lookups are
// best-effort by contract: HTTP failures, including not-found, degrade to
// "no artifact" and never abort the report run.
type DriveClient struct {
	baseURL string
	root    string
	httpc   *http.Client
	logger  *slog.Logger
}

// DriveClientOptions holds the dependencies for creating a DriveClient.
type DriveClientOptions struct {
	// BaseURL is the Graph API endpoint.
	BaseURL string
	// Root is the drive folder containing per-tenant artifact folders.
	Root string
	// HTTPClient is the authenticated client from the session.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewDriveClient creates a DriveClient.
func NewDriveClient(opts DriveClientOptions) *DriveClient {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DriveClient{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		root:    strings.Trim(opts.Root, "/"),
		httpc:   opts.HTTPClient,
		logger:  logger,
	}
}

// DriveItem is the projected shape of one drive child.
type DriveItem struct {
	Name    string
	URL     string
	ID      string
	Created time.Time
}

// FindProcessVideo looks for the first video file under
// {root}/{apiKey}/{processUUID}/ and returns its shareable link, or empty
// string when none exists. Absence is a normal, reportable outcome.
func (c *DriveClient) FindProcessVideo(ctx context.Context, apiKey, processUUID string) (string, error) {
	// The UUID is interpolated into a drive path; refuse malformed input.
	if _, err := uuid.Parse(processUUID); err != nil {
		return "", fmt.Errorf("malformed process uuid %q: %w", processUUID, err)
	}

	folder := fmt.Sprintf("%s/%s/%s", c.root, apiKey, processUUID)
	items, err := c.listChildren(ctx, c.childrenURLByPath(folder))
	if err != nil {
		// Degrade to "not found": a missing folder or a transient Graph
		// error must not take the whole report down.
		c.logger.Warn("drive lookup failed",
			"folder", folder,
			"error", err,
		)
		return "", nil
	}

	for _, item := range items {
		if hasVideoExtension(item.Name) {
			c.logger.Info("found process video", "process_uuid", processUUID, "file", item.Name)
			return item.URL, nil
		}
	}
	c.logger.Info("no video artifact for process", "process_uuid", processUUID, "folder", folder)
	return "", nil
}

// ListRecentFiles walks the artifact tree under the root and returns files
// created after since. The walk is iterative; per-folder errors are skipped
// so one unreadable folder does not hide the rest.
func (c *DriveClient) ListRecentFiles(ctx context.Context, since time.Time) ([]DriveItem, error) {
	var recent []DriveItem

	stack := []string{c.childrenURLByPath(c.root)}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if ctx.Err() != nil {
			return recent, ctx.Err()
		}

		files, folders, err := c.listChildrenAndFolders(ctx, current)
		if err != nil {
			c.logger.Warn("skipping unreadable drive folder", "url", current, "error", err)
			continue
		}
		for _, f := range files {
			if !f.Created.Before(since) {
				recent = append(recent, f)
			}
		}
		for _, id := range folders {
			stack = append(stack, c.childrenURLByID(id))
		}
	}
	return recent, nil
}

func (c *DriveClient) childrenURLByPath(folder string) string {
	escaped := url.PathEscape(folder)
	// Graph path addressing keeps slashes as separators.
	escaped = strings.ReplaceAll(escaped, "%2F", "/")
	return fmt.Sprintf("%s/me/drive/root:/%s:/children", c.baseURL, escaped)
}

func (c *DriveClient) childrenURLByID(itemID string) string {
	return fmt.Sprintf("%s/me/drive/items/%s/children", c.baseURL, url.PathEscape(itemID))
}

// listChildren fetches one children listing and projects the file items.
func (c *DriveClient) listChildren(ctx context.Context, listingURL string) ([]DriveItem, error) {
	files, _, err := c.listChildrenAndFolders(ctx, listingURL)
	return files, err
}

func (c *DriveClient) listChildrenAndFolders(
	ctx context.Context,
	listingURL string,
) ([]DriveItem, []string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listingURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build children request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("list drive children: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil, fmt.Errorf("drive folder not found (404)")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("list drive children: unexpected status %d", resp.StatusCode)
	}

	var listing any
	if decodeErr := json.NewDecoder(resp.Body).Decode(&listing); decodeErr != nil {
		return nil, nil, fmt.Errorf("decode drive listing: %w", decodeErr)
	}

	files, err := projectFiles(listing)
	if err != nil {
		return nil, nil, err
	}
	folders, err := projectFolderIDs(listing)
	if err != nil {
		return nil, nil, err
	}
	return files, folders, nil
}

func projectFiles(listing any) ([]DriveItem, error) {
	result, err := jmespath.Search(childrenQuery, listing)
	if err != nil {
		return nil, fmt.Errorf("project drive listing: %w", err)
	}
	raw, ok := result.([]any)
	if !ok {
		return nil, nil
	}
	items := make([]DriveItem, 0, len(raw))
	for _, entry := range raw {
		m, entryOK := entry.(map[string]any)
		if !entryOK {
			continue
		}
		item := DriveItem{
			Name: stringField(m, "name"),
			URL:  stringField(m, "url"),
			ID:   stringField(m, "id"),
		}
		if created := stringField(m, "created"); created != "" {
			if t, parseErr := time.Parse(time.RFC3339, created); parseErr == nil {
				item.Created = t
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func projectFolderIDs(listing any) ([]string, error) {
	result, err := jmespath.Search(foldersQuery, listing)
	if err != nil {
		return nil, fmt.Errorf("project drive folders: %w", err)
	}
	raw, ok := result.([]any)
	if !ok {
		return nil, nil
	}
	ids := make([]string, 0, len(raw))
	for _, entry := range raw {
		if id, idOK := entry.(string); idOK && id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func stringField(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

func hasVideoExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range videoExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
