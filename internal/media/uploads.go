package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadFolder holds operator-uploaded venue photos.
const UploadFolder = "venues/photos"

var (
	ErrNotConfigured = errors.New("cloudinary is not configured")
	ErrForeignURL    = errors.New("url does not point at an uploaded venue photo")
)

// Uploads stores venue photos in Cloudinary.
type Uploads struct {
	cld *cloudinary.Cloudinary
}

func NewUploads(cld *cloudinary.Cloudinary) *Uploads {
	return &Uploads{cld: cld}
}

// Upload stores file under a public id derived from the venue id and returns
// its secure delivery URL.
func (u *Uploads) Upload(ctx context.Context, file io.Reader, venueID string) (string, error) {
	if u.cld == nil {
		return "", ErrNotConfigured
	}

	publicID := fmt.Sprintf("venue_%s_%d", venueID, time.Now().UnixNano())
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:    UploadFolder,
		PublicID:  publicID,
		Overwrite: api.Bool(false),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// Destroy deletes a photo previously returned by Upload. URLs outside the
// upload folder, such as placeholders, are refused with ErrForeignURL.
func (u *Uploads) Destroy(ctx context.Context, photoURL string) error {
	if u.cld == nil {
		return ErrNotConfigured
	}
	publicID, err := PublicIDFromURL(photoURL)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(publicID, UploadFolder+"/") {
		return ErrForeignURL
	}

	if _, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete photo from cloudinary: %w", err)
	}
	return nil
}

// PublicIDFromURL extracts the public id from a Cloudinary delivery URL,
// dropping the version segment and the file extension.
func PublicIDFromURL(photoURL string) (string, error) {
	parsed, err := url.Parse(photoURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i, part := range parts {
		if part != "upload" || i+1 >= len(parts) {
			continue
		}
		rest := parts[i+1:]
		if isVersion(rest[0]) && len(rest) > 1 {
			rest = rest[1:]
		}
		id := strings.Join(rest, "/")
		return strings.TrimSuffix(id, path.Ext(id)), nil
	}

	return "", errors.New("failed to extract public ID from URL")
}

func isVersion(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	_, err := strconv.ParseUint(segment[1:], 10, 64)
	return err == nil
}
