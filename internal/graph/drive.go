package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"graphbox/pkg/interfaces"
	"graphbox/pkg/models"
)

// drivePrefix returns the URL segment addressing a drive: the signed-in
// user's default drive when driveID is empty, a specific drive otherwise.
func drivePrefix(driveID string) string {
	if driveID == "" {
		return "/me/drive"
	}

	return "/drives/" + url.PathEscape(driveID)
}

// escapePath percent-encodes each segment of a root-relative path while
// keeping the separators intact.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}

	return strings.Join(segments, "/")
}

// itemPath addresses an item by root-relative path, e.g.
// "/me/drive/root:/Documents/report.docx".
func itemPath(driveID, p string) string {
	return drivePrefix(driveID) + "/root:/" + escapePath(p)
}

// RootWithChildren fetches the drive root with its children expanded in the
// same call, saving one round trip for the top level.
func (c *Client) RootWithChildren(ctx context.Context, driveID string) (*models.Entry, []models.Entry, error) {
	var root DriveItem

	err := c.getJSON(ctx, drivePrefix(driveID)+"/root", map[string]string{"$expand": "children"}, &root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get drive root: %w", err)
	}

	if root.ID == "" {
		return nil, nil, fmt.Errorf("drive root listing returned no item")
	}

	rootEntry := root.entry()

	children := make([]models.Entry, 0, len(root.Children))
	for i := range root.Children {
		children = append(children, root.Children[i].entry())
	}

	// The expansion only carries the first page of children; the rest
	// arrives through its own nextLink.
	children, err = c.drainChildren(ctx, children, root.ChildrenNextLink)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list drive root children: %w", err)
	}

	return &rootEntry, children, nil
}

// drainChildren follows a children nextLink chain, appending every page to
// entries.
func (c *Client) drainChildren(ctx context.Context, entries []models.Entry, next string) ([]models.Entry, error) {
	for next != "" {
		var page driveItemList
		if err := c.getJSON(ctx, next, nil, &page); err != nil {
			return nil, err
		}

		for i := range page.Value {
			entries = append(entries, page.Value[i].entry())
		}

		next = page.NextLink
	}

	return entries, nil
}

// ChildrenAtPath lists the children of a non-root path, following
// @odata.nextLink pagination. Graph only answers child queries below the
// root when the item is addressed by an explicit root-relative path, so the
// path is required here even though the root fetch needs none.
func (c *Client) ChildrenAtPath(ctx context.Context, driveID, path string) ([]models.Entry, error) {
	entries, err := c.drainChildren(ctx, nil, itemPath(driveID, path)+":/children")
	if err != nil {
		return nil, fmt.Errorf("failed to list children of %q: %w", path, err)
	}

	return entries, nil
}

// ItemByPath fetches a single item's metadata by root-relative path.
func (c *Client) ItemByPath(ctx context.Context, driveID, path string) (*DriveItem, error) {
	var item DriveItem
	if err := c.getJSON(ctx, itemPath(driveID, path), nil, &item); err != nil {
		return nil, fmt.Errorf("failed to get item %q: %w", path, err)
	}

	return &item, nil
}

// Download streams the content of a file addressed by path. The caller must
// close the returned reader.
func (c *Client) Download(ctx context.Context, driveID, path string) (io.ReadCloser, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(itemPath(driveID, path) + ":/content")
	if err != nil {
		return nil, fmt.Errorf("failed to download %q: %w", path, err)
	}

	if resp.StatusCode() >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.RawBody(), 4096))
		_ = resp.RawBody().Close()

		return nil, fmt.Errorf("failed to download %q: %w", path, apiError(resp.StatusCode(), body))
	}

	return resp.RawBody(), nil
}

// Upload writes content to the given path, replacing any existing file, and
// returns the resulting item. Suitable for files up to the simple-upload
// limit (4 MB); larger files need an upload session.
func (c *Client) Upload(ctx context.Context, driveID, path string, content io.Reader) (*models.Entry, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(content).
		Put(itemPath(driveID, path) + ":/content")
	if err != nil {
		return nil, fmt.Errorf("failed to upload %q: %w", path, err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to upload %q: %w", path, apiError(resp.StatusCode(), resp.Body()))
	}

	var item DriveItem
	if err := json.Unmarshal(resp.Body(), &item); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}

	entry := item.entry()

	return &entry, nil
}

// Ensure Client satisfies the walker's listing seam.
var _ interfaces.Lister = (*Client)(nil)
