package generation

import "fmt"

// Attempt is a prepared provider call.
type Attempt struct {
	Strategy string
	Provider Provider
	Call     Call
}

// Strategy is one step of the fallback chain. The router asks each strategy
// how many attempts it makes for a request and then prepares them one by one,
// so side effects such as credential rotation only happen for attempts that
// are actually reached.
type Strategy interface {
	// Name labels the strategy in logs
	Name() string

	// Attempts returns how many calls the strategy makes for req; zero skips it
	Attempts(req Request) int

	// Prepare builds attempt n (0-based) for req
	Prepare(req Request, n int) (Attempt, error)
}

// ModelStrategy makes a single call to a provider with a model chosen per request.
type ModelStrategy struct {
	Label    string
	Provider Provider

	// Skip excludes the strategy for a request; nil never skips
	Skip func(req Request) bool

	// Model picks the model identifier for a request
	Model func(req Request) string
}

// Name implements Strategy.
func (s *ModelStrategy) Name() string { return s.Label }

// Attempts implements Strategy.
func (s *ModelStrategy) Attempts(req Request) int {
	if s.Skip != nil && s.Skip(req) {
		return 0
	}
	return 1
}

// Prepare implements Strategy.
func (s *ModelStrategy) Prepare(req Request, _ int) (Attempt, error) {
	return Attempt{
		Strategy: s.Label,
		Provider: s.Provider,
		Call: Call{
			Model:      s.Model(req),
			Prompt:     req.Prompt,
			Attachment: req.Attachment,
		},
	}, nil
}

// RotationStrategy calls a provider once per credential in its pool, taking
// the next credential from the shared cursor on every attempt. An empty pool
// still yields one attempt, which fails fast with ErrNoCredentials.
type RotationStrategy struct {
	Label    string
	Provider Provider
	Pool     *CredentialPool
	Model    string
}

// Name implements Strategy.
func (s *RotationStrategy) Name() string { return s.Label }

// Attempts implements Strategy.
func (s *RotationStrategy) Attempts(Request) int {
	return max(s.Pool.Size(), 1)
}

// Prepare implements Strategy.
func (s *RotationStrategy) Prepare(req Request, _ int) (Attempt, error) {
	credential, err := s.Pool.Next()
	if err != nil {
		return Attempt{}, fmt.Errorf("%s: %w", s.Provider.Name(), err)
	}
	return Attempt{
		Strategy: s.Label,
		Provider: s.Provider,
		Call: Call{
			Model:      s.Model,
			Credential: credential,
			Prompt:     req.Prompt,
			Attachment: req.Attachment,
		},
	}, nil
}

// ChainConfig names the models used by the default chain.
type ChainConfig struct {
	Selector    *ModelSelector
	StableModel string
	VisionModel string
	RobustModel string
}

// DefaultChainConfig returns the models used in production.
func DefaultChainConfig() ChainConfig {
	return ChainConfig{
		Selector:    DefaultModelSelector(),
		StableModel: ModelGeneral,
		VisionModel: ModelVision,
		RobustModel: ModelRobust,
	}
}

// preferredModel is the subject-optimized fast model, ignoring attachments.
func (c ChainConfig) preferredModel(req Request) string {
	if req.SubjectHint == "" {
		return c.StableModel
	}
	return c.Selector.Select(req.SubjectHint)
}

// fastModel applies the vision override on top of model.
func (c ChainConfig) fastModel(req Request, model string) string {
	if req.Attachment.IsImage() {
		return c.VisionModel
	}
	return model
}

// skipFast reports whether the fast provider should be bypassed.
func skipFast(req Request) bool {
	return req.Attachment.IsDocument()
}

// DefaultStrategies builds the fast-preferred, fast-stable, robust-rotation chain.
func DefaultStrategies(fast, robust Provider, pool *CredentialPool, cfg ChainConfig) []Strategy {
	return []Strategy{
		&ModelStrategy{
			Label:    "fast/preferred",
			Provider: fast,
			Skip:     skipFast,
			Model: func(req Request) string {
				return cfg.fastModel(req, cfg.preferredModel(req))
			},
		},
		&ModelStrategy{
			Label:    "fast/stable",
			Provider: fast,
			Skip: func(req Request) bool {
				return skipFast(req) || cfg.preferredModel(req) == cfg.StableModel
			},
			Model: func(req Request) string {
				return cfg.fastModel(req, cfg.StableModel)
			},
		},
		&RotationStrategy{
			Label:    "robust/rotation",
			Provider: robust,
			Pool:     pool,
			Model:    cfg.RobustModel,
		},
	}
}
