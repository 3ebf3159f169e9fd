// Package storage uploads content files to the external blob storage HTTP
// API and returns the public URL stored on content items.
package storage

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// Client talks to the storage endpoint configured via STORAGE_API_URL.
type Client struct {
	http   *resty.Client
	apiKey string
}

type uploadResponse struct {
	URL string `json:"url"`
}

func NewClient(baseURL, apiKey string) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)
	return &Client{http: http, apiKey: apiKey}
}

// Upload sends the file bytes under a generated object name and returns the
// public URL. The original filename only contributes its extension.
func (c *Client) Upload(filename string, data []byte) (string, error) {
	objectName := uuid.NewString() + filepath.Ext(filename)

	var result uploadResponse
	resp, err := c.http.R().
		SetAuthToken(c.apiKey).
		SetFileReader("file", objectName, bytes.NewReader(data)).
		SetResult(&result).
		Post("/upload")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("storage upload failed: %s", resp.Status())
	}
	if result.URL == "" {
		return "", fmt.Errorf("storage upload returned no url")
	}
	return result.URL, nil
}
