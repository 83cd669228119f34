package service

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"net/http"

	"taskhub/internal/models"
	"taskhub/internal/repository"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
)

const (
	// MaxAvatarBytes caps avatar uploads at 1 MB.
	MaxAvatarBytes = 1 << 20
	avatarSize     = 250
)

// AvatarService normalizes uploaded profile images and stores them as an
// opaque PNG blob on the user record.
type AvatarService struct {
	users repository.UserRepository
}

// NewAvatarService returns a new AvatarService.
func NewAvatarService(users repository.UserRepository) *AvatarService {
	return &AvatarService{users: users}
}

// Upload validates, normalizes (center-crop + resize to 250x250 PNG), and
// stores the avatar.
func (s *AvatarService) Upload(ctx context.Context, userID uint, content []byte) error {
	blob, err := normalizeAvatar(content)
	if err != nil {
		return err
	}
	return s.users.SetAvatar(ctx, userID, blob)
}

// Remove clears the stored avatar.
func (s *AvatarService) Remove(ctx context.Context, userID uint) error {
	return s.users.SetAvatar(ctx, userID, nil)
}

// Get returns the stored PNG bytes, or NOT_FOUND when the user has no avatar.
func (s *AvatarService) Get(ctx context.Context, userID uint) ([]byte, error) {
	return s.users.GetAvatar(ctx, userID)
}

// normalizeAvatar decodes a JPEG, PNG, or WebP payload and produces a
// 250x250 PNG: center square crop, then CatmullRom downscale.
func normalizeAvatar(content []byte) ([]byte, error) {
	if len(content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if len(content) > MaxAvatarBytes {
		return nil, models.NewValidationError("File too large (max 1MB)")
	}

	var (
		decoded image.Image
		err     error
	)
	switch http.DetectContentType(content) {
	case "image/webp":
		decoded, err = webp.Decode(bytes.NewReader(content))
	case "image/jpeg", "image/png":
		decoded, _, err = image.Decode(bytes.NewReader(content))
	default:
		return nil, models.NewValidationError("Avatar must be a JPEG, PNG, or WebP image")
	}
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	b := decoded.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	if side == 0 {
		return nil, models.NewValidationError("Invalid image file")
	}
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	crop := image.Rect(x0, y0, x0+side, y0+side)

	dst := image.NewRGBA(image.Rect(0, 0, avatarSize, avatarSize))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), decoded, crop, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, models.NewInternalError(err)
	}
	return buf.Bytes(), nil
}
