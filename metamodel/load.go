package metamodel

import (
	"encoding/json"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/peergen/errors"
)

// Load reads and decodes a protocol description from a JSON file.
func Load(path string) (*MetaModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening model file %s", path)
	}
	defer f.Close()

	model, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading model from %s", path)
	}
	return model, nil
}

// Decode reads a protocol description from r. Unknown top-level and
// per-entity JSON fields are tolerated; an unknown type kind is not.
func Decode(r io.Reader) (*MetaModel, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading model")
	}

	var model MetaModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, errors.Wrap(err, "decoding model")
	}
	return &model, nil
}

// CheckVersion verifies the model's protocol version against a semver
// constraint (e.g. ">= 3.16, < 4"). An empty constraint disables the check,
// the way plugin registries treat an absent compatibility requirement.
func (m *MetaModel) CheckVersion(constraint string) error {
	if constraint == "" {
		return nil
	}

	ver, err := semver.NewVersion(m.MetaData.Version)
	if err != nil {
		return errors.Wrapf(err, "model version %q is not semver", m.MetaData.Version)
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(err, "invalid protocol version constraint %q", constraint)
	}

	if !c.Check(ver) {
		return errors.Newf("model declares protocol %s, but this build requires %s",
			m.MetaData.Version, constraint)
	}
	return nil
}
