package manifest

import (
	"bytes"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/agentx-labs/putup/internal/apperrors"
	"github.com/agentx-labs/putup/internal/fsops"
)

// Encode renders m as YAML.
func Encode(m Metadata) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse validates data against the metadata schema and decodes it.
// Schema violations are reported as a single configuration error listing
// every issue.
func Parse(data []byte) (*Metadata, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindConfiguration, "validate metadata", err)
	}
	if !result.Valid {
		msgs := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			msgs = append(msgs, issue.String())
		}
		return nil, apperrors.New(apperrors.KindConfiguration, "invalid metadata: %s", strings.Join(msgs, "; "))
	}

	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, apperrors.Wrap(apperrors.KindConfiguration, "decode metadata", err)
	}
	return &m, nil
}

// Load reads and parses the metadata file at path. ok is false when the
// file does not exist.
func Load(fs fsops.FS, path string) (m *Metadata, ok bool, err error) {
	exists, err := fs.Exists(path)
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.KindFileSystem, "stat "+path, err)
	}
	if !exists {
		return nil, false, nil
	}
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.KindFileSystem, "read "+path, err)
	}
	m, err = Parse(data)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}
	return m, true, nil
}
