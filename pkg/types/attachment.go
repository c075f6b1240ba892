package types

import (
	"encoding/json"

	"github.com/sparetrackhq/sparetrack-backend/pkg/enums"
)

// FileAttachment is one entry of the JSON array stored inside the UploadPhotos
// and Drawing columns.
type FileAttachment struct {
	Name string               `json:"name"`
	URL  string               `json:"url"`
	Type enums.AttachmentType `json:"type"`
}

// DecodeAttachments parses a JSON attachment column. A nil pointer, empty
// string, or unparseable payload all decode to an empty slice: legacy rows
// carry every one of those shapes.
func DecodeAttachments(column *string) []FileAttachment {
	if column == nil || *column == "" {
		return []FileAttachment{}
	}
	var attachments []FileAttachment
	if err := json.Unmarshal([]byte(*column), &attachments); err != nil {
		return []FileAttachment{}
	}
	if attachments == nil {
		return []FileAttachment{}
	}
	return attachments
}

// EncodeAttachments serializes the array back into column form.
func EncodeAttachments(attachments []FileAttachment) (string, error) {
	if attachments == nil {
		attachments = []FileAttachment{}
	}
	raw, err := json.Marshal(attachments)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
