package walker

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"graphbox/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLister serves a fixed tree keyed by root-relative path ("" is the
// root level) and can inject failures for specific paths.
type fakeLister struct {
	tree   map[string][]models.Entry
	failAt map[string]error
	noRoot bool
	calls  []string
}

func (f *fakeLister) RootWithChildren(_ context.Context, _ string) (*models.Entry, []models.Entry, error) {
	f.calls = append(f.calls, "root")

	if err := f.failAt["root"]; err != nil {
		return nil, nil, err
	}

	if f.noRoot {
		return nil, nil, nil
	}

	return &models.Entry{ID: "root", Name: "root", IsFolder: true}, f.tree[""], nil
}

func (f *fakeLister) ChildrenAtPath(_ context.Context, _ string, path string) ([]models.Entry, error) {
	f.calls = append(f.calls, path)

	if err := f.failAt[path]; err != nil {
		return nil, err
	}

	children, ok := f.tree[path]
	if !ok {
		return nil, fmt.Errorf("no such path: %s", path)
	}

	return children, nil
}

func folder(id, name string) models.Entry {
	return models.Entry{ID: id, Name: name, IsFolder: true}
}

func file(id, name string, size int64) models.Entry {
	return models.Entry{ID: id, Name: name, Size: size}
}

// sampleTree is root/{readme.txt, A/{song.mp3, B/{deep.bin}}, C/} with C
// empty and song.mp3 carrying overlapping audio+video facets.
func sampleTree() map[string][]models.Entry {
	song := file("f2", "song.mp3", 2048)
	song.Facets = models.Facets{Audio: true, Video: true}

	return map[string][]models.Entry{
		"":    {file("f1", "readme.txt", 10), folder("d1", "A"), folder("d3", "C")},
		"A":   {song, folder("d2", "B")},
		"A/B": {file("f3", "deep.bin", 1)},
		"C":   {},
	}
}

func TestEnumerateFlattensTree(t *testing.T) {
	w, err := New(&fakeLister{tree: sampleTree()}, Options{})
	require.NoError(t, err)

	items, err := w.Enumerate(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, items, 3)

	for _, item := range items {
		assert.False(t, item.IsFolder, "inventory must not contain folders: %+v", item)
	}

	assert.Equal(t, "readme.txt", items[0].Path)
	assert.Equal(t, "A/song.mp3", items[1].Path)
	assert.Equal(t, "A/B/deep.bin", items[2].Path)

	// Overlapping facets resolve by priority: audio wins over video.
	assert.Equal(t, models.KindAudio, items[1].Kind)
	assert.Equal(t, models.KindFile, items[0].Kind)
}

func TestEnumerateIsDeterministic(t *testing.T) {
	lister := &fakeLister{tree: sampleTree()}

	w, err := New(lister, Options{})
	require.NoError(t, err)

	first, err := w.Enumerate(context.Background(), "")
	require.NoError(t, err)

	second, err := w.Enumerate(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEnumerateEmptyFolder(t *testing.T) {
	tree := map[string][]models.Entry{
		"":      {folder("d1", "Empty")},
		"Empty": {},
	}

	w, err := New(&fakeLister{tree: tree}, Options{})
	require.NoError(t, err)

	items, err := w.Enumerate(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestEnumerateObserverSeesFolders(t *testing.T) {
	var visited []string

	w, err := New(&fakeLister{tree: sampleTree()}, Options{
		OnVisit: func(item models.Item) {
			marker := item.Path
			if item.IsFolder {
				marker += "/"
			}

			visited = append(visited, marker)
		},
	})
	require.NoError(t, err)

	_, err = w.Enumerate(context.Background(), "")
	require.NoError(t, err)

	// Pre-order: each entry in service order, folders descended into as
	// they are encountered.
	assert.Equal(t, []string{"readme.txt", "A/", "A/song.mp3", "A/B/", "A/B/deep.bin", "C/"}, visited)
}

func TestEnumerateFailFast(t *testing.T) {
	boom := errors.New("service unavailable")
	lister := &fakeLister{tree: sampleTree(), failAt: map[string]error{"A/B": boom}}

	w, err := New(lister, Options{})
	require.NoError(t, err)

	items, err := w.Enumerate(context.Background(), "")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `"A/B"`)
	assert.Nil(t, items, "a failed enumeration must not return a silently truncated inventory")
}

func TestEnumerateSkipFailedSubtrees(t *testing.T) {
	boom := errors.New("service unavailable")
	lister := &fakeLister{tree: sampleTree(), failAt: map[string]error{"A": boom}}

	w, err := New(lister, Options{SkipFailedSubtrees: true})
	require.NoError(t, err)

	items, err := w.Enumerate(context.Background(), "")
	require.NoError(t, err)

	// Everything under A is gone, the rest of the walk survives.
	require.Len(t, items, 1)
	assert.Equal(t, "readme.txt", items[0].Path)
}

func TestEnumerateRootFailure(t *testing.T) {
	boom := errors.New("unauthorized")

	w, err := New(&fakeLister{failAt: map[string]error{"root": boom}}, Options{})
	require.NoError(t, err)

	_, err = w.Enumerate(context.Background(), "")
	require.ErrorIs(t, err, boom)
}

func TestEnumerateMissingRoot(t *testing.T) {
	w, err := New(&fakeLister{noRoot: true}, Options{})
	require.NoError(t, err)

	_, err = w.Enumerate(context.Background(), "")
	require.ErrorIs(t, err, ErrListingUnavailable)
}

func TestEnumerateDuplicateSuppression(t *testing.T) {
	// The service reports the same child twice at one level.
	tree := map[string][]models.Entry{
		"": {file("f1", "twice.txt", 5), file("f1", "twice.txt", 5)},
	}

	w, err := New(&fakeLister{tree: tree}, Options{})
	require.NoError(t, err)

	items, err := w.Enumerate(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestEnumerateContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w, err := New(&fakeLister{tree: sampleTree()}, Options{})
	require.NoError(t, err)

	_, err = w.Enumerate(ctx, "")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewRequiresLister(t *testing.T) {
	_, err := New(nil, Options{})
	require.Error(t, err)
}
