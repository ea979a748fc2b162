package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
)

// Upload is an optional file part for a multipart create/update. A nil
// *Upload means "no new file chosen": the field is omitted entirely so the
// backend leaves the stored file unchanged, rather than receiving an empty
// part and clearing it.
type Upload struct {
	Field    string
	Filename string
	Content  io.Reader
}

// CreateMultipart posts a new record whose form carries a file field.
// Scalar fields go in as form values; list-valued fields (features,
// requirements) are repeated under the same key.
func (c *Client) CreateMultipart(ctx context.Context, resource string, fields map[string][]string, file *Upload) (Item, error) {
	return c.sendMultipart(ctx, http.MethodPost, c.adminURL(resource, nil), fields, file)
}

// UpdateMultipart replaces a record via a file-bearing form.
func (c *Client) UpdateMultipart(ctx context.Context, resource, id string, fields map[string][]string, file *Upload) (Item, error) {
	return c.sendMultipart(ctx, http.MethodPut, c.adminURL(resource+"/"+id, nil), fields, file)
}

func (c *Client) sendMultipart(ctx context.Context, method, rawURL string, fields map[string][]string, file *Upload) (Item, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for key, vals := range fields {
		for _, v := range vals {
			if err := mw.WriteField(key, v); err != nil {
				return nil, fmt.Errorf("write form field %q: %w", key, err)
			}
		}
	}

	if file != nil {
		name := file.Filename
		if name == "" {
			name = uuid.NewString()
		}
		part, err := mw.CreateFormFile(file.Field, name)
		if err != nil {
			return nil, fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, fmt.Errorf("copy file content: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	env, err := c.send(req)
	if err != nil {
		return nil, err
	}
	var item Item
	if err := decodeData(env, &item); err != nil {
		return nil, err
	}
	return item, nil
}
