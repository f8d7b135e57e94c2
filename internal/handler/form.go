package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/winecellar/intake/internal/model"
)

// multipartMemory caps how much of a multipart body is held in memory;
// the remainder of file parts spills to temporary files.
const multipartMemory = 32 << 20

// parseSubmission decodes the request body into a flat field mapping.
//
// URL-encoded bodies are decoded leniently: a malformed escape is kept as
// literal text instead of dropping the pair.
// Every other content type, including a missing one, goes through the
// multipart decoder, which fails for bodies that are not multipart.
func parseSubmission(w http.ResponseWriter, r *http.Request, maxBytes int64) (model.Submission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	contentType := r.Header.Get("Content-Type")

	if strings.Contains(contentType, "application/x-www-form-urlencoded") {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		return parseURLEncoded(string(body)), nil
	}

	if err := r.ParseMultipartForm(min(maxBytes, multipartMemory)); err != nil {
		return nil, err
	}
	defer r.MultipartForm.RemoveAll()
	return fromValues(r.MultipartForm.Value), nil
}

// fromValues keeps the last value of repeated keys.
func fromValues(values map[string][]string) model.Submission {
	sub := make(model.Submission, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			sub[k] = vs[len(vs)-1]
		}
	}
	return sub
}

// parseURLEncoded splits on '&' only and on the first '=' of each pair.
// '+' means space; repeated keys keep the last value.
func parseURLEncoded(body string) model.Submission {
	sub := make(model.Submission)
	for _, pair := range strings.Split(body, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		sub[percentDecode(name)] = percentDecode(value)
	}
	return sub
}

// percentDecode replaces '+' with a space and decodes %XX sequences.
// A '%' not followed by two hex digits is left as-is.
func percentDecode(s string) string {
	s = strings.ReplaceAll(s, "+", " ")
	if !strings.Contains(s, "%") {
		return s
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			out = append(out, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
