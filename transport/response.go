package transport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"
)

// DecodeResponse reads and closes resp.Body. On 2xx it
// returns the decoded JSON body verbatim. Otherwise it
// returns an *APIError built from errors[0].message, or
// a *MalformedErrorBodyError when that field is absent.
func DecodeResponse(resp *http.Response) (Value, error) {
	const errCtx = "reading github response"

	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: %s: read body: %w",
			ErrTransport, errCtx, err,
		)
	}

	body, err := decodeValue(raw)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: %s: status %d: %w",
			ErrDecode, errCtx, resp.StatusCode, err,
		)
	}

	if isSuccess(resp.StatusCode) {
		return body, nil
	}

	msg, ok := Lookup(body, "errors", 0, "message").(string)
	if ok {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		encoded = raw
	}

	slog.Warn(
		"github error without message",
		"status", resp.StatusCode,
		"body", string(encoded),
	)

	return nil, &MalformedErrorBodyError{
		StatusCode: resp.StatusCode,
		Body:       string(encoded),
	}
}

// CheckStatus drains and closes resp.Body and returns a
// *StatusError unless the status is 2xx.
func CheckStatus(resp *http.Response) error {
	defer resp.Body.Close() //nolint:errcheck

	_, _ = io.Copy(io.Discard, resp.Body)

	if isSuccess(resp.StatusCode) {
		return nil
	}

	return &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}
}

// Lookup walks v along path, where string elements
// index objects and int elements index arrays. A
// missing key, an out-of-range index or a type mismatch
// yields nil, the same as an explicit JSON null.
func Lookup(v Value, path ...interface{}) Value {
	cur := v

	for _, step := range path {
		switch key := step.(type) {
		case string:
			obj, ok := cur.(map[string]interface{})
			if !ok {
				return nil
			}

			cur = obj[key]

		case int:
			arr, ok := cur.([]interface{})
			if !ok || key < 0 || key >= len(arr) {
				return nil
			}

			cur = arr[key]

		default:
			return nil
		}
	}

	return cur
}

func decodeValue(raw []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v Value
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	off := dec.InputOffset()
	if off < int64(len(raw)) &&
		len(bytes.TrimSpace(raw[off:])) > 0 {
		return nil, fmt.Errorf(
			"%w at offset %d", errTrailingData, off,
		)
	}

	return v, nil
}

var errTrailingData = errors.New("trailing data after json value")

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
