// Package texload decodes images and uploads them as 2D textures through
// a glcheck facade.
//
// PNG, JPEG, GIF, BMP, TIFF and WebP sources are recognized. Images are
// converted to straight-alpha RGBA, flipped so that the first row is the
// bottom of the image, and resized when the context cannot sample them
// as they are.
package texload

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"math/bits"
	"os"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gputypes"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/glcheck"
)

// Uploader is the subset of a facade that creates textures. Every
// glcheck facade implements it.
type Uploader interface {
	Version() glcheck.Version
	Logger() *slog.Logger
	TextureMaximumSize() int
	Texture2DAllocate(desc glcheck.Texture2DDescriptor) (*glcheck.Texture2D, error)
	Texture2DUpdate(t *glcheck.Texture2D, data []byte) error
	Texture2DDelete(t *glcheck.Texture2D) error
}

var (
	_ Uploader = (*glcheck.Embedded)(nil)
	_ Uploader = (*glcheck.Legacy)(nil)
	_ Uploader = (*glcheck.Modern)(nil)
)

// Options controls how an image becomes a texture.
type Options struct {
	// KeepOrientation uploads rows top to bottom as decoded.
	KeepOrientation bool
	// SRGB selects an sRGB texture format.
	SRGB bool

	WrapS, WrapT gputypes.AddressMode
	MinFilter    gputypes.FilterMode
	MipmapFilter gputypes.MipmapFilterMode
	MagFilter    gputypes.FilterMode
}

// DefaultOptions returns linear filtering with clamped edges and no
// mipmaps.
func DefaultOptions() Options {
	return Options{
		WrapS:     gputypes.AddressModeClampToEdge,
		WrapT:     gputypes.AddressModeClampToEdge,
		MinFilter: gputypes.FilterModeLinear,
		MagFilter: gputypes.FilterModeLinear,
	}
}

func (o Options) format() gputypes.TextureFormat {
	if o.SRGB {
		return gputypes.TextureFormatRGBA8UnormSrgb
	}
	return gputypes.TextureFormatRGBA8Unorm
}

// needsPowerOfTwo reports whether a context of version v can only sample
// the texture described by o at power of two sizes. OpenGL ES 2.0 limits
// non power of two textures to clamped edges without mipmaps.
func (o Options) needsPowerOfTwo(v glcheck.Version) bool {
	if v.Tier != glcheck.TierEmbedded || v.Major >= 3 {
		return false
	}
	return o.MipmapFilter != gputypes.MipmapFilterModeUndefined ||
		o.WrapS != gputypes.AddressModeClampToEdge ||
		o.WrapT != gputypes.AddressModeClampToEdge
}

// Decode decodes an image in any of the registered formats.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("texload: decode: %w", err)
	}
	return img, format, nil
}

// Prepare converts img to the pixel layout uploaded for a context of
// version v with maximum texture size maxSize.
func Prepare(img image.Image, v glcheck.Version, maxSize int, o Options) *image.NRGBA {
	dst := imaging.Clone(img)
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()

	if w > maxSize || h > maxSize {
		dst = imaging.Fit(dst, maxSize, maxSize, imaging.Lanczos)
		w, h = dst.Bounds().Dx(), dst.Bounds().Dy()
	}
	if o.needsPowerOfTwo(v) && (!isPowerOfTwo(w) || !isPowerOfTwo(h)) {
		pw, ph := min(nextPowerOfTwo(w), maxSize), min(nextPowerOfTwo(h), maxSize)
		dst = imaging.Resize(dst, pw, ph, imaging.Lanczos)
	}
	if !o.KeepOrientation {
		dst = imaging.FlipV(dst)
	}
	return dst
}

// Upload creates a texture holding img.
func Upload(c Uploader, img image.Image, o Options) (*glcheck.Texture2D, error) {
	src := img.Bounds()
	if src.Empty() {
		return nil, fmt.Errorf("texload: empty image")
	}
	pix := Prepare(img, c.Version(), c.TextureMaximumSize(), o)
	w, h := pix.Bounds().Dx(), pix.Bounds().Dy()

	t, err := c.Texture2DAllocate(glcheck.Texture2DDescriptor{
		Width:        w,
		Height:       h,
		Format:       o.format(),
		WrapS:        o.WrapS,
		WrapT:        o.WrapT,
		MinFilter:    o.MinFilter,
		MipmapFilter: o.MipmapFilter,
		MagFilter:    o.MagFilter,
	})
	if err != nil {
		return nil, err
	}
	if err := c.Texture2DUpdate(t, packed(pix)); err != nil {
		_ = c.Texture2DDelete(t)
		return nil, err
	}

	log := c.Logger()
	if log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("texload: uploaded",
			"id", t.NativeID(),
			"source", fmt.Sprintf("%dx%d", src.Dx(), src.Dy()),
			"texture", fmt.Sprintf("%dx%d", w, h),
			"format", t.Format().String())
	}
	return t, nil
}

// Load decodes an image from r and uploads it.
func Load(c Uploader, r io.Reader, o Options) (*glcheck.Texture2D, error) {
	img, _, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return Upload(c, img, o)
}

// LoadFile decodes the image at path and uploads it.
func LoadFile(c Uploader, path string, o Options) (*glcheck.Texture2D, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texload: %w", err)
	}
	defer f.Close()
	return Load(c, f, o)
}

// packed returns the pixels of img without row padding.
func packed(img *image.NRGBA) []byte {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if img.Stride == w*4 {
		return img.Pix[:w*h*4]
	}
	out := make([]byte, 0, w*h*4)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		out = append(out, row[:w*4]...)
	}
	return out
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
