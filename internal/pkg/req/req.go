/*
Package req provides helper functions for HTTP request parsing and data binding.

BindJSON decodes strict JSON bodies for the /api endpoints; ParseForm bounds and parses
the URL-encoded form posts sent by the rendered pages.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"thinkle/internal/pkg/errs"
)

// MaxBodySize bounds every request body read by this package (64 KB).
const MaxBodySize int64 = 64 << 10

// BindJSON decodes the JSON request body into dst, refusing unknown fields and trailing data.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}

// ParseForm parses a URL-encoded form body of bounded size.
func ParseForm(w http.ResponseWriter, r *http.Request) *errs.CustomError {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	if err := r.ParseForm(); err != nil {
		return errs.NewError(errs.ErrFormParseFailed)
	}

	return nil
}

// FormValue returns the trimmed value of a parsed form field.
func FormValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}
