package enums

// AttachmentType distinguishes the two attachment columns on an equipment row.
type AttachmentType string

const (
	AttachmentTypePhoto   AttachmentType = "photo"
	AttachmentTypeDrawing AttachmentType = "drawing"
)

func (t AttachmentType) IsValid() bool {
	switch t {
	case AttachmentTypePhoto, AttachmentTypeDrawing:
		return true
	}
	return false
}

// Column returns the EquipmentSpareData column holding this attachment list.
func (t AttachmentType) Column() string {
	if t == AttachmentTypeDrawing {
		return "Drawing"
	}
	return "UploadPhotos"
}

// Subdir returns the upload-store subdirectory for this attachment type.
func (t AttachmentType) Subdir() string {
	if t == AttachmentTypeDrawing {
		return "drawings"
	}
	return "photos"
}
