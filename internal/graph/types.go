package graph

import (
	"time"

	"graphbox/pkg/models"
)

// Wire types for the Graph v1.0 REST surface. Only fields the client reads
// are declared; the facet structs exist chiefly so presence can be tested.

type DriveItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Size        int64  `json:"size,omitempty"`
	Description string `json:"description,omitempty"`
	WebURL      string `json:"webUrl,omitempty"`
	DownloadURL string `json:"@microsoft.graph.downloadUrl,omitempty"`

	Folder *FolderFacet `json:"folder,omitempty"`
	File   *FileFacet   `json:"file,omitempty"`
	Audio  *AudioFacet  `json:"audio,omitempty"`
	Bundle *BundleFacet `json:"bundle,omitempty"`
	Image  *ImageFacet  `json:"image,omitempty"`
	Photo  *PhotoFacet  `json:"photo,omitempty"`
	Video  *VideoFacet  `json:"video,omitempty"`

	// Children is only populated when the item was requested with
	// $expand=children (the root fetch). The expansion itself paginates;
	// ChildrenNextLink carries the remainder.
	Children         []DriveItem `json:"children,omitempty"`
	ChildrenNextLink string      `json:"children@odata.nextLink,omitempty"`

	ParentReference *ItemReference `json:"parentReference,omitempty"`
}

type FolderFacet struct {
	ChildCount int64 `json:"childCount"`
}

type FileFacet struct {
	MimeType string `json:"mimeType"`
}

type AudioFacet struct {
	Title    string `json:"title,omitempty"`
	Artist   string `json:"artist,omitempty"`
	Duration int64  `json:"duration,omitempty"`
}

type BundleFacet struct {
	ChildCount int64 `json:"childCount"`
}

type ImageFacet struct {
	Width  int64 `json:"width,omitempty"`
	Height int64 `json:"height,omitempty"`
}

type PhotoFacet struct {
	TakenDateTime string `json:"takenDateTime,omitempty"`
}

type VideoFacet struct {
	Duration int64 `json:"duration,omitempty"`
	Width    int64 `json:"width,omitempty"`
	Height   int64 `json:"height,omitempty"`
}

type ItemReference struct {
	DriveID string `json:"driveId,omitempty"`
	ID      string `json:"id,omitempty"`
	Path    string `json:"path,omitempty"`
}

// entry converts a wire item into the transient listing record the walker
// consumes. Classification itself happens in the walker at discovery time.
func (d *DriveItem) entry() models.Entry {
	return models.Entry{
		ID:          d.ID,
		Name:        d.Name,
		Size:        d.Size,
		Description: d.Description,
		IsFolder:    d.Folder != nil,
		Facets: models.Facets{
			Audio:  d.Audio != nil,
			Bundle: d.Bundle != nil,
			Image:  d.Image != nil,
			Photo:  d.Photo != nil,
			Video:  d.Video != nil,
		},
	}
}

// driveItemList is one page of a children listing.
type driveItemList struct {
	Value    []DriveItem `json:"value"`
	NextLink string      `json:"@odata.nextLink,omitempty"`
}

type Message struct {
	ID               string      `json:"id,omitempty"`
	Subject          string      `json:"subject"`
	From             *Recipient  `json:"from,omitempty"`
	ToRecipients     []Recipient `json:"toRecipients,omitempty"`
	ReceivedDateTime time.Time   `json:"receivedDateTime,omitzero"`
	BodyPreview      string      `json:"bodyPreview,omitempty"`
	Body             *ItemBody   `json:"body,omitempty"`
	IsRead           bool        `json:"isRead,omitempty"`
}

type Recipient struct {
	EmailAddress EmailAddress `json:"emailAddress"`
}

type EmailAddress struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
}

type ItemBody struct {
	// ContentType is "Text" or "HTML".
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type messageList struct {
	Value    []Message `json:"value"`
	NextLink string    `json:"@odata.nextLink,omitempty"`
}

type sendMailRequest struct {
	Message         Message `json:"message"`
	SaveToSentItems bool    `json:"saveToSentItems"`
}

// User is the /me profile.
type User struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail,omitempty"`
	UserPrincipalName string `json:"userPrincipalName,omitempty"`
}
