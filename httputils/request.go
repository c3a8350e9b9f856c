package httputils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// MaxBodySize limits request body size
const MaxBodySize = 10 << 20

// Request represents request values sources
type Request struct {
	PathVariables map[string]string
	QueryParams   url.Values
	Body          map[string]interface{}
}

// RequestOf reads request sources, body is decoded from JSON or form payload
func RequestOf(r *http.Request, pathVariables map[string]string) (*Request, error) {
	ret := &Request{
		PathVariables: pathVariables,
		QueryParams:   r.URL.Query(),
	}
	if ret.PathVariables == nil {
		ret.PathVariables = map[string]string{}
	}
	body, err := readBody(r)
	if err != nil {
		return nil, NewError(http.StatusBadRequest, err.Error(), WithError(err))
	}
	ret.Body = body
	return ret, nil
}

func (r *Request) QueryParam(name string) string {
	return r.QueryParams.Get(name)
}

func (r *Request) HasQuery(name string) bool {
	return r.QueryParams.Has(name)
}

func (r *Request) PathVariable(name string) string {
	return r.PathVariables[name]
}

// Values merges path, query and body values, body takes precedence over query, query over path
func (r *Request) Values() map[string]interface{} {
	result := make(map[string]interface{}, len(r.PathVariables)+len(r.QueryParams)+len(r.Body))
	for k, v := range r.PathVariables {
		result[k] = v
	}
	for k, v := range r.QueryParams {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	for k, v := range r.Body {
		result[k] = v
	}
	return result
}

func readBody(r *http.Request) (map[string]interface{}, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	r.Body = io.NopCloser(bytes.NewReader(data))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == ContentTypeForm {
		values, err := url.ParseQuery(string(data))
		if err != nil {
			return nil, fmt.Errorf("invalid form body: %w", err)
		}
		result := make(map[string]interface{}, len(values))
		for k, v := range values {
			if len(v) > 0 {
				result[k] = v[0]
			}
		}
		return result, nil
	}
	if mediaType != "" && mediaType != ContentTypeJSON && !strings.HasSuffix(mediaType, "+json") {
		return nil, nil
	}
	result := map[string]interface{}{}
	if err = json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("invalid JSON body, expected object: %w", err)
	}
	return result, nil
}
