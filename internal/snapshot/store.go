// Package snapshot exports a single rendered frame to disk: the image as
// PNG and the viewport it was rendered from as JSON, so the view can be
// reproduced later with the snapshot command.
package snapshot

import (
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/san-kum/mandelview/internal/frame"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Metadata describes how a snapshot was rendered.
type Metadata struct {
	Name          string    `json:"name"`
	Timestamp     time.Time `json:"timestamp"`
	Seq           uint64    `json:"seq"`
	CenterX       float64   `json:"center_x"`
	CenterY       float64   `json:"center_y"`
	Scale         float64   `json:"scale"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	MaxIterations uint32    `json:"max_iterations"`
	Palette       string    `json:"palette"`
	Backend       string    `json:"backend"`
	RenderMs      float64   `json:"render_ms"`
}

// Info is what the caller knows about a frame beyond the frame itself.
type Info struct {
	MaxIterations uint32
	Palette       string
	Backend       string
}

// Save writes <name>.png and <name>.json. An empty name is derived from the
// current time. It returns the paths written.
func (s *Store) Save(name string, f *frame.Frame, info Info) (pngPath, metaPath string, err error) {
	if f == nil || f.Image == nil {
		return "", "", fmt.Errorf("snapshot: no frame to save")
	}
	if name == "" {
		name = fmt.Sprintf("mandelview_%d", time.Now().Unix())
	}
	if strings.ContainsAny(name, `/\`) {
		return "", "", fmt.Errorf("snapshot: invalid name %q", name)
	}

	pngPath = filepath.Join(s.baseDir, name+".png")
	metaPath = filepath.Join(s.baseDir, name+".json")

	imgFile, err := os.Create(pngPath)
	if err != nil {
		return "", "", err
	}
	defer imgFile.Close()
	if err := png.Encode(imgFile, f.Image); err != nil {
		return "", "", err
	}

	b := f.Image.Bounds()
	meta := Metadata{
		Name:          name,
		Timestamp:     time.Now(),
		Seq:           f.Seq,
		CenterX:       f.Viewport.CenterX,
		CenterY:       f.Viewport.CenterY,
		Scale:         f.Viewport.Scale,
		Width:         b.Dx(),
		Height:        b.Dy(),
		MaxIterations: info.MaxIterations,
		Palette:       info.Palette,
		Backend:       info.Backend,
		RenderMs:      float64(f.RenderTime) / float64(time.Millisecond),
	}

	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", "", err
	}
	return pngPath, metaPath, nil
}

func (s *Store) Load(name string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, name+".json"))
	if err != nil {
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
