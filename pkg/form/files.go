package form

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// MaxFileSize is the largest CV the form accepts.
const MaxFileSize int64 = 10 * 1024 * 1024

// File rejection messages.
const (
	MessageFileTooLarge    = "File must be smaller than 10MB."
	MessageUnsupportedType = "Unsupported file type."
)

// Accepted MIME types.
const (
	MIMETypePDF  = "application/pdf"
	MIMETypeDOC  = "application/msword"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMETypeJPEG = "image/jpeg"
	MIMETypeJPG  = "image/jpg"
	MIMETypePNG  = "image/png"
	MIMETypeText = "text/plain"
)

// extensionTypes maps accepted extensions to the MIME type sent for them.
//
//nolint:gochecknoglobals // fixed lookup table
var extensionTypes = map[string]string{
	".pdf":  MIMETypePDF,
	".doc":  MIMETypeDOC,
	".docx": MIMETypeDOCX,
	".jpg":  MIMETypeJPEG,
	".jpeg": MIMETypeJPEG,
	".png":  MIMETypePNG,
	".txt":  MIMETypeText,
}

//nolint:gochecknoglobals // fixed lookup table
var allowedTypes = map[string]bool{
	MIMETypePDF:  true,
	MIMETypeDOC:  true,
	MIMETypeDOCX: true,
	MIMETypeJPEG: true,
	MIMETypeJPG:  true,
	MIMETypePNG:  true,
	MIMETypeText: true,
}

// File is a CV picked for upload.
type File struct {
	Name     string
	Size     int64
	MIMEType string
	Data     []byte
}

// FileError explains why a selected file was rejected.
type FileError struct {
	Message string
}

func (e *FileError) Error() (msg string) {
	msg = e.Message
	return msg
}

// AcceptedExtensions lists the extensions offered when picking a file.
func AcceptedExtensions() (exts []string) {
	exts = make([]string, 0, len(extensionTypes))
	for ext := range extensionTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// MIMETypeFor returns the MIME type for a file name, or
// application/octet-stream for extensions outside the accepted set.
func MIMETypeFor(name string) (mimeType string) {
	mimeType = extensionTypes[strings.ToLower(filepath.Ext(name))]
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return mimeType
}

// IsAllowedType reports whether the MIME type may be uploaded.
func IsAllowedType(mimeType string) (allowed bool) {
	allowed = allowedTypes[strings.ToLower(mimeType)]
	return allowed
}

// ValidateFile checks the size limit and the MIME type of a selected file.
func ValidateFile(f File) (err error) {
	if f.Size > MaxFileSize {
		err = &FileError{Message: MessageFileTooLarge}
		return err
	}

	if !IsAllowedType(f.MIMEType) {
		err = &FileError{Message: MessageUnsupportedType}
		return err
	}

	return err
}

// LoadFile reads a file from disk for selection. Contents are only read
// when the file is within MaxFileSize; oversize files come back with their
// metadata so selection can reject them.
func LoadFile(path string) (f File, err error) {
	var info os.FileInfo
	info, err = os.Stat(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to stat file: %s", path)
		return f, err
	}

	if info.IsDir() {
		err = errors.Errorf("not a file: %s", path)
		return f, err
	}

	f = File{
		Name:     filepath.Base(path),
		Size:     info.Size(),
		MIMEType: MIMETypeFor(path),
	}

	if f.Size > MaxFileSize {
		return f, err
	}

	f.Data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return f, err
	}

	f.Size = int64(len(f.Data))

	return f, err
}
