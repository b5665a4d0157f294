// Package api is the HTTP client of the superhero API used by the CLI.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"herovault/internal/model"
	"herovault/internal/service"
)

// Error is a non-2xx response. Messages is the server's message list and
// Message joins it with ", ".
type Error struct {
	Status   int
	Message  string
	Messages []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) ListHeroes(ctx context.Context, page, limit int) (*model.Page[model.SuperheroPreview], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	var out model.Page[model.SuperheroPreview]
	if err := c.doJSON(ctx, http.MethodGet, "/api/superheroes?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetHero(ctx context.Context, id string) (*model.Superhero, error) {
	var out model.Superhero
	if err := c.doJSON(ctx, http.MethodGet, "/api/superheroes/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateHero(ctx context.Context, in service.CreateSuperheroInput) (*model.Superhero, error) {
	var out model.Superhero
	if err := c.doJSON(ctx, http.MethodPost, "/api/superheroes", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateHero(ctx context.Context, id string, in service.UpdateSuperheroInput) (*model.Superhero, error) {
	var out model.Superhero
	if err := c.doJSON(ctx, http.MethodPatch, "/api/superheroes/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteHero(ctx context.Context, id string) (*model.Superhero, error) {
	var out model.Superhero
	if err := c.doJSON(ctx, http.MethodDelete, "/api/superheroes/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadImage sends data as the "image" field of a multipart form.
func (c *Client) UploadImage(ctx context.Context, filename, contentType string, data []byte) (*model.Image, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/images/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	var out model.Image
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError reads the {message, error, statusCode} envelope. message may
// be a string or a list of strings.
func decodeError(status int, body []byte) *Error {
	var env struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	var list []string
	if err := json.Unmarshal(body, &env); err == nil {
		var one string
		switch {
		case json.Unmarshal(env.Message, &list) == nil && len(list) > 0:
		case json.Unmarshal(env.Message, &one) == nil && one != "":
			list = []string{one}
		case env.Error != "":
			list = []string{env.Error}
		default:
			list = nil
		}
	}
	if len(list) == 0 {
		if text := strings.TrimSpace(string(body)); text != "" {
			list = []string{text}
		} else {
			list = []string{http.StatusText(status)}
		}
	}
	return &Error{Status: status, Message: strings.Join(list, ", "), Messages: list}
}
