package http

import "net/http"

// apiKeyTransport injects an API key into every request, either as a named
// header (e.g. x-goog-api-key) or as a query parameter when headerName is
// empty and paramName is set.
type apiKeyTransport struct {
	headerName string
	paramName  string
	key        string
	transport  http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.key == "" {
		return t.transport.RoundTrip(req)
	}

	reqCopy := req.Clone(req.Context())

	if t.headerName != "" {
		reqCopy.Header.Set(t.headerName, t.key)
	} else if t.paramName != "" {
		q := reqCopy.URL.Query()
		q.Set(t.paramName, t.key)
		reqCopy.URL.RawQuery = q.Encode()
	}

	return t.transport.RoundTrip(reqCopy)
}

// WithAPIKeyHeader adds the key as a request header on every call.
func WithAPIKeyHeader(header, key string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &apiKeyTransport{
			headerName: header,
			key:        key,
			transport:  rt,
		}
	})
}

// WithAPIKeyParam adds the key as a query parameter on every call.
func WithAPIKeyParam(param, key string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &apiKeyTransport{
			paramName: param,
			key:       key,
			transport: rt,
		}
	})
}
