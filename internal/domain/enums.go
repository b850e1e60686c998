package domain

// FileType represents the source document formats the converter accepts.
type FileType string

const (
	FileTypeDocx FileType = "docx"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypeDocx: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"docx": FileTypeDocx,
}

// OutputExt is the extension of converted artifacts.
const OutputExt = ".json"
