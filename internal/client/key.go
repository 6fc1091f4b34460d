package client

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tidwall/jsonc"
	"github.com/zeebo/blake3"
)

type keyFile struct {
	ID string `json:"id"`
}

// LoadKey reads the host id from a JSON key file, which may contain
// comments. A missing file yields an empty id.
func LoadKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	var kf keyFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &kf); err != nil {
		return nil, fmt.Errorf("decode key file %s: %w", path, err)
	}
	if kf.ID == "" {
		return nil, nil
	}
	id, err := base64.StdEncoding.DecodeString(kf.ID)
	if err != nil {
		return nil, fmt.Errorf("decode key id: %w", err)
	}
	return id, nil
}

// Fingerprint is a short blake3 digest of id for display and handshakes.
func Fingerprint(id []byte) string {
	if len(id) == 0 {
		return ""
	}
	sum := blake3.Sum256(id)
	return hex.EncodeToString(sum[:8])
}
