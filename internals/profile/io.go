package profile

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// ReadDocument reads a JSON document from disk into v. Absent optional
// fields stay at their declared zero value.
func ReadDocument(fs afero.Fs, path string, v interface{}) error {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}
	return nil
}

// WriteDocument serializes v as indented JSON, the layout of every
// profile/package/index document this tool publishes
func WriteDocument(fs afero.Fs, path string, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fs, path, raw, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// ReadFile reads and validates a profile document
func ReadFile(fs afero.Fs, path string) (*Profile, error) {
	p := &Profile{}
	if err := ReadDocument(fs, path, p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid profile %s", path)
	}
	p.SyncArguments()
	return p, nil
}

// FromJSON parses and validates a profile from a raw document
func FromJSON(raw []byte) (*Profile, error) {
	p := &Profile{}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.SyncArguments()
	return p, nil
}

// WriteFile serializes the profile to disk
func (p *Profile) WriteFile(fs afero.Fs, path string) error {
	return WriteDocument(fs, path, p)
}
