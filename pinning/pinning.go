// Package pinning uploads image bytes to a Pinata-compatible content
// pinning endpoint and turns the returned content identifiers into stable
// gateway URLs.
package pinning

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrUploadFailed wraps every provider-side failure so callers can map the
// whole class to one response without inspecting transport details.
var ErrUploadFailed = errors.New("upload failed")

// File is an in-memory upload candidate that already passed MIME and size
// filtering.
type File struct {
	Name string
	Data []byte
}

// Client talks to the pinning provider. One Client is constructed at startup
// and shared by all requests.
type Client struct {
	endpoint string
	gateway  string
	jwt      string
	http     *http.Client
}

func NewClient(endpoint, gateway, jwt string) *Client {
	return &Client{
		endpoint: endpoint,
		gateway:  gateway,
		jwt:      jwt,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// PinFile uploads a single file and returns its public gateway URL of the
// form https://<gateway>/ipfs/<cid>.
func (c *Client) PinFile(ctx context.Context, file File) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	// The provider requires a unique pin name; the original filename is not
	// guaranteed to be one.
	metadata, _ := json.Marshal(map[string]string{"name": uuid.NewString()})
	if err := writer.WriteField("pinataMetadata", string(metadata)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.jwt)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: provider returned %d: %s", ErrUploadFailed, resp.StatusCode, detail)
	}

	var pinned pinResponse
	if err := json.NewDecoder(resp.Body).Decode(&pinned); err != nil {
		return "", fmt.Errorf("%w: decoding provider response: %v", ErrUploadFailed, err)
	}
	if pinned.IpfsHash == "" {
		return "", fmt.Errorf("%w: provider returned no content id", ErrUploadFailed)
	}

	return fmt.Sprintf("https://%s/ipfs/%s", c.gateway, pinned.IpfsHash), nil
}

// PinAll uploads every file concurrently and returns the gateway URLs in
// input order. The first failure fails the batch; files pinned before the
// failure are not unpinned.
func (c *Client) PinAll(ctx context.Context, files []File) ([]string, error) {
	urls := make([]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			url, err := c.PinFile(ctx, file)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}
