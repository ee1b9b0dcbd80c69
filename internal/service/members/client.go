package members

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

	"github.com/memberdesk/memberdesk/internal/pagination"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// Client implements Service against the remote member store's REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the static X-Api-Key header for all requests.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// NewClient creates a member store client. The base URL comes from
// configuration; it is never hardcoded.
func NewClient(httpClient *http.Client, baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{cause: fmt.Errorf("%w: %v", ErrTransport, err)}
	}
	return resp, nil
}

// transportError classifies a non-success store response.
func transportError(resp *http.Response) *TransportError {
	return &TransportError{Status: resp.StatusCode, cause: ErrTransport}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func (c *Client) ListMembers(ctx context.Context, page, limit int) (*pagination.Page[Member], error) {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	q := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	resp, err := c.doJSON(ctx, http.MethodGet, "/members", q, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching members: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return nil, transportError(resp)
	}

	var result pagination.Page[Member]
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding members page: %w", err)
	}
	return &result, nil
}

func (c *Client) GetMember(ctx context.Context, id string) (*Member, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/members/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching member: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &TransportError{Status: resp.StatusCode, cause: ErrNotFound}
	}
	if !isSuccess(resp.StatusCode) {
		return nil, transportError(resp)
	}

	var m Member
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding member: %w", err)
	}
	return &m, nil
}

// CreateMember submits a create payload. Inputs must already have passed
// ValidateCreate; the client does not re-validate.
func (c *Client) CreateMember(ctx context.Context, input CreateMemberInput) (*Member, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/members", nil, input)
	if err != nil {
		return nil, fmt.Errorf("creating member: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return nil, transportError(resp)
	}

	var m Member
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding created member: %w", err)
	}
	return &m, nil
}

// UpdateMember submits a partial update. Inputs must already have passed
// ValidateUpdate.
func (c *Client) UpdateMember(ctx context.Context, id string, input UpdateMemberInput) (*Member, error) {
	resp, err := c.doJSON(ctx, http.MethodPatch, "/members/"+url.PathEscape(id), nil, input)
	if err != nil {
		return nil, fmt.Errorf("updating member: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return nil, transportError(resp)
	}

	var m Member
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding updated member: %w", err)
	}
	return &m, nil
}

func (c *Client) DeleteMember(ctx context.Context, id string) error {
	resp, err := c.doJSON(ctx, http.MethodDelete, "/members/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return transportError(resp)
	}
	return nil
}

// UploadPhoto transmits a photo as a multipart body under the form field
// "file". The store enforces its own size limit; an oversize upload surfaces
// as an ordinary transport failure.
func (c *Client) UploadPhoto(ctx context.Context, id string, photo io.Reader, mimeType string) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, photoFilename(mimeType)))
	if mimeType != "" {
		header.Set("Content-Type", mimeType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("creating multipart body: %w", err)
	}
	if _, err := io.Copy(part, photo); err != nil {
		return fmt.Errorf("reading photo: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalizing multipart body: %w", err)
	}

	u := c.baseURL + "/members/" + url.PathEscape(id) + "/photo"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, &buf)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	// The multipart writer supplies the boundary; no JSON content type here.
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("uploading photo: %w", &TransportError{cause: fmt.Errorf("%w: %v", ErrTransport, err)})
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return transportError(resp)
	}
	return nil
}

func photoFilename(mimeType string) string {
	if ext, ok := strings.CutPrefix(mimeType, "image/"); ok && ext != "" {
		return "photo." + ext
	}
	return "photo"
}

// Compile-time interface check
var _ Service = (*Client)(nil)
