package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultBaseURL = "https://api.cloudinary.com"

// uploads can be large, so the upload client gets a longer timeout
const (
	uploadTimeout  = 60 * time.Second
	destroyTimeout = 15 * time.Second
)

// CloudinaryClient talks to the Cloudinary unsigned upload API. Uploads use a
// fixed upload preset; deletes derive the public_id from the stored URL.
type CloudinaryClient struct {
	baseURL       string
	cloudName     string
	uploadPreset  string
	uploadClient  *http.Client
	destroyClient *http.Client
	log           *logrus.Logger
}

// NewCloudinaryClient creates a client for the given cloud and preset.
func NewCloudinaryClient(cloudName, uploadPreset string, log *logrus.Logger) *CloudinaryClient {
	return &CloudinaryClient{
		baseURL:       defaultBaseURL,
		cloudName:     cloudName,
		uploadPreset:  uploadPreset,
		uploadClient:  &http.Client{Timeout: uploadTimeout},
		destroyClient: &http.Client{Timeout: destroyTimeout},
		log:           log,
	}
}

// NewCloudinaryClientWithBaseURL is used by tests to point at a local server.
func NewCloudinaryClientWithBaseURL(baseURL, cloudName, uploadPreset string, log *logrus.Logger) *CloudinaryClient {
	c := NewCloudinaryClient(cloudName, uploadPreset, log)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload posts the file as a multipart form together with the upload preset
// and returns the secure URL verbatim.
func (c *CloudinaryClient) Upload(ctx context.Context, f File) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", f.Name)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f.Reader); err != nil {
		return "", fmt.Errorf("copy file: %w", err)
	}
	if err := w.WriteField("upload_preset", c.uploadPreset); err != nil {
		return "", fmt.Errorf("write preset field: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1_1/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to upload image to Cloudinary: status %d", resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if parsed.SecureURL == "" {
		return "", fmt.Errorf("upload response missing secure_url")
	}
	return parsed.SecureURL, nil
}

type destroyRequest struct {
	PublicID     string `json:"public_id"`
	UploadPreset string `json:"upload_preset"`
}

// Delete removes the image behind imageURL. A non-2xx response is logged and
// reported as an error; callers that treat deletion as best-effort decide what
// to do with it.
func (c *CloudinaryClient) Delete(ctx context.Context, imageURL string) error {
	publicID, err := PublicIDFromURL(imageURL)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(destroyRequest{
		PublicID:     publicID,
		UploadPreset: c.uploadPreset,
	})
	if err != nil {
		return fmt.Errorf("marshal destroy request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1_1/%s/image/destroy", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.destroyClient.Do(req)
	if err != nil {
		return fmt.Errorf("destroy image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warnf("cloudinary destroy returned status %d for public_id=%s", resp.StatusCode, publicID)
		return fmt.Errorf("destroy image: status %d", resp.StatusCode)
	}
	return nil
}

// PublicIDFromURL derives the Cloudinary public_id from a stored image URL:
// the last two path segments (folder + filename) with the extension stripped.
func PublicIDFromURL(imageURL string) (string, error) {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("parse image url: %w", err)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 {
		return "", fmt.Errorf("image url has no public id: %s", imageURL)
	}

	publicID := segments[len(segments)-2] + "/" + segments[len(segments)-1]
	if i := strings.LastIndex(publicID, "."); i > strings.LastIndex(publicID, "/") {
		publicID = publicID[:i]
	}
	return publicID, nil
}
