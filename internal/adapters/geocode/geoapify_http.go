package geocode

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (g *GeoapifyGeocoder) newRequest(ctx context.Context, method string, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	// Geoapify authenticates via query parameter rather than a header.
	q := req.URL.Query()
	q.Set("apiKey", g.apiKey)
	req.URL.RawQuery = q.Encode()

	return req, nil
}

func (g *GeoapifyGeocoder) do(req *http.Request) (*http.Response, error) {
	resp, err := g.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}
