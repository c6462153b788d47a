package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// FormatVersion is bumped whenever Record changes incompatibly
const FormatVersion = 1

var (
	ErrNotFound  = errors.New("save not found")
	ErrInvalidID = errors.New("invalid save id")
	ErrVersion   = errors.New("unsupported save version")
)

// Record is the flat save of one session: the world grid and the player state.
type Record struct {
	Version int       `json:"version"`
	ID      string    `json:"id"`
	SavedAt time.Time `json:"saved_at"`

	Width  int   `json:"width"`
	Height int   `json:"height"`
	Depth  int   `json:"depth"`
	Seed   int64 `json:"seed"`
	// Blocks is the raw x-major grid, one byte per cell
	Blocks []byte `json:"blocks"`

	Player PlayerRecord `json:"player"`
}

type PlayerRecord struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	TargetZ   int     `json:"target_z"`
	VelocityY float64 `json:"velocity_y"`
	OnGround  bool    `json:"on_ground"`
	Facing    int     `json:"facing"`
	SpawnX    float64 `json:"spawn_x"`
	SpawnY    float64 `json:"spawn_y"`
	SpawnZ    float64 `json:"spawn_z"`
}

// NewID returns a fresh random save id
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id can be used as a file name and a key
func ValidID(id string) bool {
	if id == "" || len(id) > 128 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// codec turns records into zstd-compressed JSON and back.
// Encoder and decoder are safe for concurrent EncodeAll/DecodeAll calls.
type codec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newCodec() (*codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &codec{enc: enc, dec: dec}, nil
}

func (c *codec) encode(r *Record) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return c.enc.EncodeAll(data, nil), nil
}

func (c *codec) decode(data []byte) (*Record, error) {
	raw, err := c.dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress record: %w", err)
	}
	var r Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	if r.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, r.Version)
	}
	return &r, nil
}

func (c *codec) close() {
	c.enc.Close()
	c.dec.Close()
}

// stamp fills in the bookkeeping fields before a save
func stamp(id string, r *Record) *Record {
	out := *r
	out.ID = id
	out.Version = FormatVersion
	if out.SavedAt.IsZero() {
		out.SavedAt = time.Now().UTC()
	}
	return &out
}
