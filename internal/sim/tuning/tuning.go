package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"minebot.ai/internal/planning/temporal"
)

// Tuning holds the scheduling knobs for one deployment. The same tuning must
// be used by every process that hashes states, or digests will diverge.
type Tuning struct {
	BucketSizeTicks int     `yaml:"bucket_size_ticks"`
	HorizonBuckets  int     `yaml:"horizon_buckets"`
	MaxWaitBuckets  int     `yaml:"max_wait_buckets"`
	BatchThreshold  int     `yaml:"batch_threshold"`
	TimeWeight      float64 `yaml:"time_weight"`
}

func Defaults() Tuning {
	return Tuning{
		BucketSizeTicks: 100,
		HorizonBuckets:  100,
		MaxWaitBuckets:  100,
		BatchThreshold:  8,
		TimeWeight:      0.3,
	}
}

// Load reads path over the defaults, so a partial file only overrides the
// keys it names.
func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func (t Tuning) Validate() error {
	if t.BucketSizeTicks <= 0 {
		return fmt.Errorf("bucket_size_ticks must be > 0")
	}
	if t.HorizonBuckets < 0 {
		return fmt.Errorf("horizon_buckets must be >= 0")
	}
	if t.MaxWaitBuckets <= 0 {
		return fmt.Errorf("max_wait_buckets must be > 0")
	}
	if t.BatchThreshold <= 0 {
		return fmt.Errorf("batch_threshold must be > 0")
	}
	if t.TimeWeight < 0 || t.TimeWeight > 1 {
		return fmt.Errorf("time_weight must be within [0,1]")
	}
	return nil
}

// ApplyStateDefaults fills a zero bucket size or horizon from t, so every
// process sharing a tuning file builds identical states.
func (t Tuning) ApplyStateDefaults(in temporal.StateInput) temporal.StateInput {
	if in.BucketSizeTicks == 0 {
		in.BucketSizeTicks = t.BucketSizeTicks
	}
	if in.HorizonBuckets == 0 {
		in.HorizonBuckets = t.HorizonBuckets
	}
	return in
}
