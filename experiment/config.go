package experiment

import (
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sw965/kbandit"
	"github.com/sw965/kbandit/algorithm"
	"github.com/sw965/kbandit/arm"
	"github.com/sw965/kbandit/mathx/randx"
	"gopkg.in/yaml.v3"
)

const (
	FamilyBernoulli = "bernoulli"
	FamilyBinomial  = "binomial"
	FamilyNormal    = "normal"
)

// Config describes one comparative experiment.
// A nil Seed draws a fresh experiment from the global random source.
type Config struct {
	K          int               `yaml:"k"`
	Steps      int               `yaml:"steps"`
	Runs       int               `yaml:"runs"`
	Seed       *uint64           `yaml:"seed"`
	Arms       ArmsConfig        `yaml:"arms"`
	Algorithms []AlgorithmConfig `yaml:"algorithms"`
}

// ArmsConfig selects the arm family and the range its parameters are drawn from.
type ArmsConfig struct {
	Family string  `yaml:"family"`
	NMin   int     `yaml:"n_min"`
	NMax   int     `yaml:"n_max"`
	MuMin  float64 `yaml:"mu_min"`
	MuMax  float64 `yaml:"mu_max"`
	Sigma  float64 `yaml:"sigma"`
}

// AlgorithmConfig names a policy and its key hyperparameter.
type AlgorithmConfig struct {
	Name  string  `yaml:"name"`
	Param float64 `yaml:"param"`
}

func DefaultConfig() Config {
	return Config{
		K:     10,
		Steps: 500,
		Runs:  200,
		Arms: ArmsConfig{
			Family: FamilyNormal,
			NMin:   arm.DefaultBinomialNMin,
			NMax:   arm.DefaultBinomialNMax,
			MuMin:  arm.DefaultNormalMuMin,
			MuMax:  arm.DefaultNormalMuMax,
			Sigma:  arm.DefaultNormalSigma,
		},
		Algorithms: []AlgorithmConfig{
			{Name: "ucb1", Param: 1.0},
		},
	}
}

// ParseConfig overlays YAML data on DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse experiment config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read experiment config %s", path)
	}
	return ParseConfig(data)
}

func (c Config) Validate() error {
	if c.K <= 0 {
		return errors.Wrapf(kbandit.ErrInvalidParameter, "k=%d must be > 0", c.K)
	}
	if c.Steps <= 0 {
		return errors.Wrapf(kbandit.ErrInvalidParameter, "steps=%d must be > 0", c.Steps)
	}
	if c.Runs <= 0 {
		return errors.Wrapf(kbandit.ErrInvalidParameter, "runs=%d must be > 0", c.Runs)
	}
	switch strings.ToLower(c.Arms.Family) {
	case FamilyBernoulli, FamilyBinomial, FamilyNormal:
	default:
		return errors.Wrapf(kbandit.ErrInvalidParameter, "unknown arm family %q", c.Arms.Family)
	}
	if len(c.Algorithms) == 0 {
		return errors.Wrap(kbandit.ErrInvalidParameter, "no algorithms configured")
	}
	for _, a := range c.Algorithms {
		if _, err := algorithm.ParseKind(a.Name); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) buildArms(rng *rand.Rand) (arm.Arms, error) {
	switch strings.ToLower(c.Arms.Family) {
	case FamilyBernoulli:
		return arm.GenerateBernoullis(c.K, rng)
	case FamilyBinomial:
		return arm.GenerateBinomials(c.K, c.Arms.NMin, c.Arms.NMax, rng)
	case FamilyNormal:
		return arm.GenerateNormals(c.K, c.Arms.MuMin, c.Arms.MuMax, c.Arms.Sigma, rng)
	}
	return nil, errors.Wrapf(kbandit.ErrInvalidParameter, "unknown arm family %q", c.Arms.Family)
}

func (c Config) rng() *rand.Rand {
	if c.Seed == nil {
		return randx.NewFromGlobalSeed()
	}
	return randx.New(*c.Seed)
}

// Build generates the arm set and the policies. Every random source is
// derived from one root generator, so a Config with a Seed always yields
// the same experiment.
func (c Config) Build() (arm.Arms, []algorithm.Policy, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	rng := c.rng()
	arms, err := c.buildArms(randx.Child(rng))
	if err != nil {
		return nil, nil, err
	}

	policies := make([]algorithm.Policy, len(c.Algorithms))
	for i, a := range c.Algorithms {
		kind, err := algorithm.ParseKind(a.Name)
		if err != nil {
			return nil, nil, err
		}
		p, err := algorithm.New(kind, c.K, a.Param, randx.Child(rng))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "algorithm %d (%s)", i, a.Name)
		}
		policies[i] = p
	}
	return arms, policies, nil
}

func (c Config) Runner(logger *slog.Logger) (*Runner, error) {
	arms, policies, err := c.Build()
	if err != nil {
		return nil, err
	}
	return &Runner{
		Arms:     arms,
		Policies: policies,
		Steps:    c.Steps,
		Runs:     c.Runs,
		Logger:   logger,
	}, nil
}
