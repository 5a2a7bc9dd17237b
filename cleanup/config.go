package cleanup

import (
	"io"
	"os"

	"github.com/osuushi/planar/algorithm"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Edges shorter than this may be reversed to settle a pseudo node whose
	// neighbours disagree. Zero disables it.
	AutoFixLength float64 `yaml:"auto_fix_length"`
	// Segments shorter than this are reported.
	MinSegmentLength float64 `yaml:"min_segment_length"`
	// Angle in degrees above which a vertex counts as straight.
	StraightAngle float64 `yaml:"straight_angle"`
	// How close a node must be to an edge to be split or snapped to. Zero
	// disables the intersecting node pass.
	SnapTolerance float64 `yaml:"snap_tolerance"`
	// Candidate nodes closer together than this are treated as one.
	DedupDistance float64 `yaml:"dedup_distance"`
	// Attributes that must match for edges to merge or be deduplicated. Empty
	// means all of them.
	CompareAttributes []string `yaml:"compare_attributes"`
	// Feature types to clean. Empty means all.
	FeatureTypes []string `yaml:"feature_types"`
	// Grid that new coordinates are snapped to, as in algorithm.Fixed. Zero
	// keeps full precision.
	PrecisionScale float64 `yaml:"precision_scale"`
}

func DefaultConfig() Config {
	return Config{
		MinSegmentLength: 1,
		StraightAngle:    160,
		SnapTolerance:    1,
		DedupDistance:    2,
	}
}

// LoadConfig reads YAML over the defaults. Unknown keys are an error.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "decoding cleanup config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "opening cleanup config")
	}
	defer f.Close()
	cfg, err := LoadConfig(f)
	return cfg, errors.Wrapf(err, "in %s", path)
}

func (c Config) Validate() error {
	switch {
	case c.StraightAngle <= 0 || c.StraightAngle > 180:
		return errors.Errorf("straight_angle must be in (0, 180], got %g", c.StraightAngle)
	case c.AutoFixLength < 0:
		return errors.Errorf("auto_fix_length must not be negative, got %g", c.AutoFixLength)
	case c.MinSegmentLength < 0:
		return errors.Errorf("min_segment_length must not be negative, got %g", c.MinSegmentLength)
	case c.SnapTolerance < 0:
		return errors.Errorf("snap_tolerance must not be negative, got %g", c.SnapTolerance)
	case c.DedupDistance < 0:
		return errors.Errorf("dedup_distance must not be negative, got %g", c.DedupDistance)
	case c.PrecisionScale < 0:
		return errors.Errorf("precision_scale must not be negative, got %g", c.PrecisionScale)
	}
	return nil
}

func (c Config) Factory() algorithm.Factory {
	return algorithm.NewFactory(algorithm.Fixed(c.PrecisionScale))
}

func (c Config) includesType(typ string) bool {
	if len(c.FeatureTypes) == 0 {
		return true
	}
	for _, t := range c.FeatureTypes {
		if t == typ {
			return true
		}
	}
	return false
}
