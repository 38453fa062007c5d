package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/RassulYunussov/rwsclient/internal/common"
)

type httpTransport struct {
	client *http.Client
}

// Single attempt sender: one round trip, body fully read before returning
func CreateHttpTransport(client *http.Client) common.Sender {
	if client == nil {
		client = &http.Client{}
	}
	return &httpTransport{client: client}
}

func (t *httpTransport) Send(ctx context.Context, resource string, r *common.Request) (*common.Response, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	request, err := newHttpRequest(ctx, r)
	if err != nil {
		return nil, err
	}
	resp, err := t.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &common.Response{
		StatusCode:  resp.StatusCode,
		Body:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		Header:      resp.Header,
	}, nil
}

func newHttpRequest(ctx context.Context, r *common.Request) (*http.Request, error) {
	var body io.Reader
	if len(r.Body) > 0 {
		body = bytes.NewReader(r.Body)
	}
	request, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
	if err != nil {
		return nil, err
	}
	for key, values := range r.Header {
		for _, v := range values {
			request.Header.Add(key, v)
		}
	}
	if r.ContentType != "" {
		request.Header.Set("Content-Type", r.ContentType)
	}
	if r.Auth != nil {
		request.SetBasicAuth(r.Auth.Username, r.Auth.Password)
	}
	return request, nil
}
