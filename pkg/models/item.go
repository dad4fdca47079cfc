package models

// Kind classifies a drive file by the media facet the service set on it.
type Kind string

const (
	KindAudio  Kind = "audio"
	KindBundle Kind = "bundle"
	KindImage  Kind = "image"
	KindPhoto  Kind = "photo"
	KindVideo  Kind = "video"
	KindFile   Kind = "file"
)

// Facets records which optional media facets were present on a raw item.
// Facets overlap on the wire (a camera photo usually carries both the image
// and photo facets), so classification uses a fixed priority.
type Facets struct {
	Audio  bool `json:"audio,omitempty"`
	Bundle bool `json:"bundle,omitempty"`
	Image  bool `json:"image,omitempty"`
	Photo  bool `json:"photo,omitempty"`
	Video  bool `json:"video,omitempty"`
}

// Classify resolves overlapping facets into exactly one kind.
// Priority: audio > bundle > image > photo > video > file.
func (f Facets) Classify() Kind {
	switch {
	case f.Audio:
		return KindAudio
	case f.Bundle:
		return KindBundle
	case f.Image:
		return KindImage
	case f.Photo:
		return KindPhoto
	case f.Video:
		return KindVideo
	default:
		return KindFile
	}
}

// Entry is one raw child record as returned by the remote listing service,
// before classification. Entries are transient: the walker either turns them
// into inventory Items or recurses into them.
type Entry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	Description string `json:"description,omitempty"`
	IsFolder    bool   `json:"is_folder,omitempty"`
	Facets      Facets `json:"facets,omitempty"`
}

// Item is one entry of the enumeration inventory. Leaf items carry a Kind;
// folder items only ever reach observers, never the returned inventory.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	Description string `json:"description,omitempty"`
	Kind        Kind   `json:"kind,omitempty"`
	IsFolder    bool   `json:"is_folder,omitempty"`
}

// ChildPath joins a parent path and a child name with "/". The root's path
// is the empty string, so top-level children get bare names.
func ChildPath(parent, name string) string {
	if parent == "" {
		return name
	}

	return parent + "/" + name
}
