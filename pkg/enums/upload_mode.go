package enums

// UploadMode selects how new attachments combine with existing ones.
type UploadMode string

const (
	UploadModeAppend  UploadMode = "append"
	UploadModeReplace UploadMode = "replace"
)

func (m UploadMode) IsValid() bool {
	switch m {
	case UploadModeAppend, UploadModeReplace:
		return true
	}
	return false
}
