package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Upload stores an object under bucket/key. Keys may contain slashes; they
// are kept verbatim so callers control the folder layout inside the bucket.
func (c *Client) Upload(ctx context.Context, token, bucket, key, contentType string, body io.Reader) error {
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/storage/v1/object/"+bucket+"/"+key, body)
	if err != nil {
		return fmt.Errorf("build upload %s/%s: %w", bucket, key, err)
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.do(ctx, "backend.storage.upload", req, token)
	if err != nil {
		return fmt.Errorf("upload %s/%s: %w", bucket, key, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("upload %s/%s: %w", bucket, key, decodeError(resp))
	}
	return nil
}

// PublicURL returns the public download URL for an object in a public bucket.
// The URL is stored as a plain string and never re-validated afterwards.
func (c *Client) PublicURL(bucket, key string) string {
	return c.baseURL + "/storage/v1/object/public/" + bucket + "/" + key
}
