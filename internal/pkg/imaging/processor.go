package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// MaxFileSize is the largest accepted upload (5MB).
const MaxFileSize int64 = 5 << 20

var (
	ErrUndecodable = errors.New("image cannot be decoded")
	ErrTooSmall    = errors.New("image is smaller than the minimum size")
	ErrTooLarge    = errors.New("image dimensions exceed the limit")
)

// Profile is a square JPEG ready to store.
type Profile struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

type Config struct {
	Size      int // square edge in pixels
	MinEdge   int // shorter source edge must be at least this
	MaxPixels int // width*height limit checked before a full decode
	Quality   int // JPEG quality 1-100
}

func DefaultConfig() Config {
	return Config{Size: 512, MinEdge: 128, MaxPixels: 40_000_000, Quality: 85}
}

type Processor struct {
	cfg Config
}

func NewProcessor(cfg Config) *Processor {
	def := DefaultConfig()
	if cfg.Size <= 0 {
		cfg.Size = def.Size
	}
	if cfg.MinEdge < 0 {
		cfg.MinEdge = 0
	}
	if cfg.MaxPixels <= 0 {
		cfg.MaxPixels = def.MaxPixels
	}
	if cfg.Quality <= 0 || cfg.Quality > 100 {
		cfg.Quality = def.Quality
	}
	return &Processor{cfg: cfg}
}

// ProcessProfile validates the dimensions from the header, then applies EXIF
// orientation, center-crops to a square and re-encodes as JPEG.
func (p *Processor) ProcessProfile(data []byte) (*Profile, error) {
	hdr, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	if hdr.Width*hdr.Height > p.cfg.MaxPixels {
		return nil, ErrTooLarge
	}
	if min(hdr.Width, hdr.Height) < p.cfg.MinEdge {
		return nil, ErrTooSmall
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	square := imaging.Fill(img, p.cfg.Size, p.cfg.Size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, square, imaging.JPEG, imaging.JPEGQuality(p.cfg.Quality)); err != nil {
		return nil, fmt.Errorf("encode profile image: %w", err)
	}

	b := square.Bounds()
	return &Profile{
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
		Width:       b.Dx(),
		Height:      b.Dy(),
	}, nil
}
