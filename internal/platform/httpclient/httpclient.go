// Package httpclient envuelve *http.Client para hablar con la app como lo
// haría un navegador: cookie jar compartido, formularios url-encoded y
// acceso al HTML crudo. Lo usan la suite e2e y los tests de router.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

const DefaultTimeout = 10 * time.Second

type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// Response condensa lo que las aserciones necesitan de una respuesta HTML.
type Response struct {
	StatusCode int
	Body       string
	// FinalURL es la URL después de seguir redirects.
	FinalURL string
	// RedirectedTo trae el header Location cuando el client NO sigue
	// redirects (ver NewNoRedirect).
	RedirectedTo string
}

// New crea un Client con cookie jar (sesión persistente entre requests) que
// sigue redirects, como un navegador.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	return newClient(baseURL, timeout, true)
}

// NewNoRedirect crea un Client que corta en el primer redirect, para poder
// asertar sobre el 303 y su Location.
func NewNoRedirect(baseURL string, timeout time.Duration) (*Client, error) {
	return newClient(baseURL, timeout, false)
}

func newClient(baseURL string, timeout time.Duration, followRedirects bool) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL != "" {
		if _, err := url.ParseRequestURI(baseURL); err != nil {
			return nil, fmt.Errorf("invalid base url: %w", err)
		}
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		HTTP: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		BaseURL: baseURL,
	}
	if !followRedirects {
		c.HTTP.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return c, nil
}

// Get hace GET y retorna status + body.
func (c *Client) Get(ctx context.Context, path string) (Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// PostForm envía un formulario application/x-www-form-urlencoded.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) (Response, error) {
	return c.do(ctx, http.MethodPost, path, strings.NewReader(form.Encode()))
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (Response, error) {
	if c == nil || c.HTTP == nil {
		return Response{}, errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(path)
	if err != nil {
		return Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return Response{}, fmt.Errorf("httpclient: new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := readAtMost(resp.Body, 1<<20) // 1MB max

	out := Response{
		StatusCode:   resp.StatusCode,
		Body:         string(raw),
		RedirectedTo: resp.Header.Get("Location"),
	}
	if resp.Request != nil && resp.Request.URL != nil {
		out.FinalURL = resp.Request.URL.String()
	}
	return out, nil
}

func (c *Client) resolveURL(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("httpclient: empty url")
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path, nil
	}

	if c.BaseURL == "" {
		return "", errors.New("httpclient: relative path requires BaseURL")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path, nil
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = 1 << 20
	}
	return io.ReadAll(io.LimitReader(r, max))
}
