package parser

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDataURI = errors.New("invalid data URI")

// DataURI is a decoded base64 data URI
type DataURI struct {
	MIMEType string
	Data     []byte
}

// ParseDataURI decodes "data:<mimetype>;base64,<payload>"
func ParseDataURI(uri string) (DataURI, error) {
	uri = strings.TrimSpace(uri)
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return DataURI{}, fmt.Errorf("%w: missing data: prefix", ErrInvalidDataURI)
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return DataURI{}, fmt.Errorf("%w: missing payload", ErrInvalidDataURI)
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return DataURI{}, fmt.Errorf("%w: only base64 encoding is supported", ErrInvalidDataURI)
	}
	mime = strings.ToLower(strings.TrimSpace(mime))
	if mime == "" || !strings.Contains(mime, "/") {
		return DataURI{}, fmt.Errorf("%w: missing MIME type", ErrInvalidDataURI)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return DataURI{}, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	if len(data) == 0 {
		return DataURI{}, fmt.Errorf("%w: empty payload", ErrInvalidDataURI)
	}
	return DataURI{MIMEType: mime, Data: data}, nil
}

// EncodeDataURI builds a base64 data URI
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
