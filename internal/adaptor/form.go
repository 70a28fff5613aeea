package adaptor

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"user-account/pkg/utils"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temp files.
const multipartMemory = 1 << 20

// parseForm reads a multipart or urlencoded body, capped at limit bytes.
// Files above the image limit still fit so the service can answer them.
func parseForm(w http.ResponseWriter, r *http.Request, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(multipartMemory)
	} else {
		err = r.ParseForm()
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return utils.NewBadRequest("file too large", err)
	case err != nil:
		return utils.NewBadRequest("Invalid request body", err)
	}
	return nil
}

// formFile returns the first upload under key, or nil.
func formFile(r *http.Request, key string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[key]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

// optionalValue returns a pointer to the trimmed form value when key was
// sent at all.
func optionalValue(r *http.Request, key string) *string {
	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := strings.TrimSpace(values[0])
	return &v
}

func cleanupForm(r *http.Request) {
	if r.MultipartForm != nil {
		r.MultipartForm.RemoveAll()
	}
}

// uploadLimit leaves room for the other form fields and for an oversized
// image the service rejects with a proper message.
func uploadLimit(maxFileSize int64) int64 {
	return 2*maxFileSize + multipartMemory
}
