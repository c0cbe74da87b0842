package state

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/five82/quill/internal/blogapi"
)

// MaxUploadSize is the largest image UploadAsset accepts.
const MaxUploadSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/webp": true,
}

func required(field, label, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: label + " is required"}
	}
	return nil
}

func validateCredentials(c blogapi.Credentials) error {
	if err := required("email", "Email", c.Email); err != nil {
		return err
	}
	return required("password", "Password", c.Password)
}

func validateRegistration(r blogapi.Registration) error {
	if err := required("username", "Username", r.Username); err != nil {
		return err
	}
	if err := required("email", "Email", r.Email); err != nil {
		return err
	}
	return required("password", "Password", r.Password)
}

func validateProfile(p blogapi.ProfileUpdate) error {
	if err := required("username", "Username", p.Username); err != nil {
		return err
	}
	return required("email", "Email", p.Email)
}

func validateNewBlog(in blogapi.BlogInput) error {
	if err := required("title", "Title", in.Title); err != nil {
		return err
	}
	if err := required("content", "Content", in.Content); err != nil {
		return err
	}
	if len(in.CategoryIDs) == 0 {
		return &ValidationError{Field: "categories", Message: "Please select at least one category"}
	}
	if strings.TrimSpace(in.Thumbnail) == "" {
		return &ValidationError{Field: "thumbnail", Message: "Please upload a thumbnail image"}
	}
	return nil
}

// validateImage checks size and type, sniffing the type from the bytes when
// none is given. It returns the content type to send.
func validateImage(file blogapi.File) (string, error) {
	if len(file.Data) == 0 {
		return "", &ValidationError{Field: "file", Message: "File is empty"}
	}
	if len(file.Data) > MaxUploadSize {
		return "", &ValidationError{Field: "file", Message: "Image size should be less than 5MB"}
	}
	contentType := strings.ToLower(strings.TrimSpace(file.ContentType))
	if contentType == "" {
		contentType = http.DetectContentType(file.Data)
	}
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if !allowedImageTypes[contentType] {
		return "", &ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("Please select a valid image file (PNG, JPEG, JPG, WEBP), got %s", contentType),
		}
	}
	return contentType, nil
}
