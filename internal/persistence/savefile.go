package persistence

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/talgya/tenement/internal/config"
	"github.com/talgya/tenement/internal/engine"
)

// SaveVersion is the save file format written by this build.
const SaveVersion = 1

// Stateless block coders for the database blobs; both are safe for
// concurrent use.
var (
	blobEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	blobDecoder, _ = zstd.NewReader(nil)
)

func compress(b []byte) []byte {
	return blobEncoder.EncodeAll(b, make([]byte, 0, len(b)/4))
}

func decompress(b []byte) ([]byte, error) {
	return blobDecoder.DecodeAll(b, nil)
}

// SaveFile is the on-disk envelope of a campaign.
type SaveFile struct {
	Version int                `json:"version"`
	SavedAt time.Time          `json:"saved_at"`
	Name    string             `json:"name,omitempty"`
	Sim     *engine.Simulation `json:"simulation"`
}

// compressed reports whether path names a zstd save.
func compressed(path string) bool {
	return strings.HasSuffix(path, ".zst")
}

// WriteSave writes sim to path as JSON, zstd-compressed when the path ends in
// .zst. The file is written beside the target and renamed over it, so a
// crash never leaves a torn save.
func WriteSave(path, name string, sim *engine.Simulation) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if err := encodeSave(f, compressed(path), SaveFile{Version: SaveVersion, SavedAt: time.Now().UTC(), Name: name, Sim: sim}); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func encodeSave(w io.Writer, zst bool, save SaveFile) error {
	if !zst {
		bw := bufio.NewWriter(w)
		enc := json.NewEncoder(bw)
		enc.SetIndent("", "  ")
		if err := enc.Encode(save); err != nil {
			return err
		}
		return bw.Flush()
	}

	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := json.NewEncoder(zw).Encode(save); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// ReadSave loads a save file and reattaches cfg.
func ReadSave(path string, cfg *config.Config) (*SaveFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if compressed(path) {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		r = dec
	}

	var save SaveFile
	if err := json.NewDecoder(r).Decode(&save); err != nil {
		return nil, fmt.Errorf("decode save %s: %w", path, err)
	}
	if save.Version > SaveVersion {
		return nil, fmt.Errorf("save %s has version %d, this build reads up to %d", path, save.Version, SaveVersion)
	}
	if save.Sim == nil {
		return nil, fmt.Errorf("save %s holds no simulation", path)
	}
	save.Sim.Restore(cfg)
	return &save, nil
}
