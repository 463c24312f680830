package transport

import (
	"net/url"
	"strings"

	"github.com/valyala/fasttemplate"
)

// Path substitutes {name} placeholders in tpl with
// params. Each "/"-separated segment of a value is
// path-escaped, so repository paths ("owner/repo") and
// reference paths ("heads/a/b") keep their slashes
// while "#", "?" and "%" in a name stay part of the
// path. Unknown placeholders are preserved as-is.
func Path(tpl string, params map[string]string) string {
	vals := make(map[string]interface{}, len(params))
	for key, val := range params {
		vals[key] = escapeSegments(val)
	}

	return fasttemplate.ExecuteStringStd(
		tpl, "{", "}", vals,
	)
}

// Query is like Path but query-escapes every value.
func Query(tpl string, params map[string]string) string {
	vals := make(map[string]interface{}, len(params))
	for key, val := range params {
		vals[key] = url.QueryEscape(val)
	}

	return fasttemplate.ExecuteStringStd(
		tpl, "{", "}", vals,
	)
}

func escapeSegments(val string) string {
	segs := strings.Split(val, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}

	return strings.Join(segs, "/")
}
