package handler

import (
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sakif/bookie/internal/apperror"
)

const maxBodyBytes = 1 << 20

// binder is implemented by every form in internal/form.
type binder interface {
	Bind(url.Values) error
}

// decode fills dst from a JSON body or an HTML form post, depending on the
// request's Content-Type.
func decode(w http.ResponseWriter, r *http.Request, dst binder) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return apperror.ValidationFailed("", "request body is not valid JSON")
		}
		return nil
	}

	if err := r.ParseForm(); err != nil {
		return apperror.ValidationFailed("", "request body is not a valid form")
	}
	return dst.Bind(r.PostForm)
}

// queryInt64 reads an optional integer query parameter. Absent means nil.
func queryInt64(q url.Values, name string) (*int64, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperror.ValidationFailed(name, name+" must be a whole number")
	}
	return &v, nil
}

func queryInt(q url.Values, name string) (*int, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperror.ValidationFailed(name, name+" must be a whole number")
	}
	return &v, nil
}

func pathInt64(raw, name string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.ValidationFailed(name, name+" must be a whole number")
	}
	return v, nil
}
