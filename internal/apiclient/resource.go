package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListQuery carries the filter state a list fetch is issued with. Zero-value
// fields are omitted from the query string.
type ListQuery struct {
	Search   string
	Category string
	Status   string
	Page     int
	PageSize int
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("limit", strconv.Itoa(q.PageSize))
	}
	return v
}

// List fetches one page of a resource collection. The returned pagination is
// recomputed by the backend on every fetch and must not be cached across
// filter changes.
func (c *Client) List(ctx context.Context, resource string, q ListQuery) ([]Item, Pagination, error) {
	env, err := c.Do(ctx, http.MethodGet, c.adminURL(resource, q.values()), nil)
	if err != nil {
		return nil, Pagination{}, err
	}
	var items []Item
	if err := decodeData(env, &items); err != nil {
		return nil, Pagination{}, err
	}
	pag := Pagination{}
	if env.Pagination != nil {
		pag = *env.Pagination
	}
	return items, pag, nil
}

// Get fetches a single record by id.
func (c *Client) Get(ctx context.Context, resource, id string) (Item, error) {
	env, err := c.Do(ctx, http.MethodGet, c.adminURL(resource+"/"+id, nil), nil)
	if err != nil {
		return nil, err
	}
	var item Item
	if err := decodeData(env, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// Create posts a new record. The payload always carries the full required
// field set, never a partial diff.
func (c *Client) Create(ctx context.Context, resource string, payload map[string]any) (Item, error) {
	env, err := c.Do(ctx, http.MethodPost, c.adminURL(resource, nil), payload)
	if err != nil {
		return nil, err
	}
	var item Item
	if err := decodeData(env, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update replaces a record's mutable fields. Like Create, the payload is the
// full field set; the backend owns merge semantics.
func (c *Client) Update(ctx context.Context, resource, id string, payload map[string]any) (Item, error) {
	env, err := c.Do(ctx, http.MethodPut, c.adminURL(resource+"/"+id, nil), payload)
	if err != nil {
		return nil, err
	}
	var item Item
	if err := decodeData(env, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// Ping probes backend reachability for the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Do(ctx, http.MethodGet, c.publicURL("health", nil), nil)
	return err
}

// PublicList fetches records from the unauthenticated public API, used by
// the marketing pages. Only active/published records come back.
func (c *Client) PublicList(ctx context.Context, resource string, limit int) ([]Item, error) {
	v := url.Values{}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	env, err := c.Do(ctx, http.MethodGet, c.publicURL(resource, v), nil)
	if err != nil {
		return nil, err
	}
	var items []Item
	if err := decodeData(env, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetSingle fetches a singleton resource (site settings) that lives at the
// collection path itself rather than under an id.
func (c *Client) GetSingle(ctx context.Context, resource string) (Item, error) {
	env, err := c.Do(ctx, http.MethodGet, c.adminURL(resource, nil), nil)
	if err != nil {
		return nil, err
	}
	var item Item
	if err := decodeData(env, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateSingle replaces a singleton resource's fields.
func (c *Client) UpdateSingle(ctx context.Context, resource string, payload map[string]any) (Item, error) {
	env, err := c.Do(ctx, http.MethodPut, c.adminURL(resource, nil), payload)
	if err != nil {
		return nil, err
	}
	var item Item
	if err := decodeData(env, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a record. Callers must have obtained explicit confirmation
// before issuing this.
func (c *Client) Delete(ctx context.Context, resource, id string) error {
	_, err := c.Do(ctx, http.MethodDelete, c.adminURL(resource+"/"+id, nil), nil)
	return err
}
