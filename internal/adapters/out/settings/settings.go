// Package settings serves the application settings read by the workflow from static
// configuration, resolving notification templates by name.
package settings

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/message"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"github.com/patrickmn/go-cache"
)

var _ ports.AppSettings = (*AppSettings)(nil)

const maxScale = 10

const (
	DefaultNbDecimalDigitForUnitPrice = 2
	DefaultNbDecimalDigitForBomQty    = 3
	DefaultTemplateCacheTTL           = time.Minute
)

// Config is the static part of the settings, usually filled from the environment.
type Config struct {
	NbDecimalDigitForUnitPrice int32
	NbDecimalDigitForBomQty    int32

	SupplychainEnabled              bool
	FinishMoAutomaticEmail          bool
	FinishMoMessageTemplateName     string
	PartFinishMoAutomaticEmail      bool
	PartFinishMoMessageTemplateName string

	// TemplateCacheTTL bounds how long a resolved template is reused. Zero means
	// DefaultTemplateCacheTTL.
	TemplateCacheTTL time.Duration
}

type AppSettings struct {
	cfg       Config
	templates ports.MessageRepository
	cache     *cache.Cache
}

func NewAppSettings(cfg Config, templates ports.MessageRepository) (*AppSettings, error) {
	if templates == nil {
		return nil, errs.NewValueIsRequiredError("templates")
	}
	if err := errors.Join(
		checkScale("nbDecimalDigitForUnitPrice", cfg.NbDecimalDigitForUnitPrice),
		checkScale("nbDecimalDigitForBomQty", cfg.NbDecimalDigitForBomQty),
	); err != nil {
		return nil, err
	}
	ttl := cfg.TemplateCacheTTL
	if ttl <= 0 {
		ttl = DefaultTemplateCacheTTL
	}
	return &AppSettings{cfg: cfg, templates: templates, cache: cache.New(ttl, 2*ttl)}, nil
}

func (s *AppSettings) NbDecimalDigitForUnitPrice(context.Context) int32 {
	return s.cfg.NbDecimalDigitForUnitPrice
}

func (s *AppSettings) NbDecimalDigitForBomQty(context.Context) int32 {
	return s.cfg.NbDecimalDigitForBomQty
}

// Supplychain returns nil when the supply chain application is disabled. A template name
// that is blank or unknown leaves the template nil.
func (s *AppSettings) Supplychain(ctx context.Context) (*ports.SupplychainSettings, error) {
	if !s.cfg.SupplychainEnabled {
		return nil, nil
	}

	sc := &ports.SupplychainSettings{
		FinishMoAutomaticEmail:     s.cfg.FinishMoAutomaticEmail,
		PartFinishMoAutomaticEmail: s.cfg.PartFinishMoAutomaticEmail,
	}

	// Templates are only looked up for the notifications that are switched on.
	var err error
	if sc.FinishMoAutomaticEmail {
		if sc.FinishMoMessageTemplate, err = s.template(ctx, s.cfg.FinishMoMessageTemplateName); err != nil {
			return nil, err
		}
	}
	if sc.PartFinishMoAutomaticEmail {
		if sc.PartFinishMoMessageTemplate, err = s.template(ctx, s.cfg.PartFinishMoMessageTemplateName); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

// template resolves a template by name. Found templates are cached; misses are not, so a
// template created later is picked up on the next call.
func (s *AppSettings) template(ctx context.Context, name string) (*message.Template, error) {
	if name == "" {
		return nil, nil
	}
	if cached, ok := s.cache.Get(name); ok {
		tpl := cached.(message.Template)
		return &tpl, nil
	}

	tpl, err := s.templates.GetTemplate(ctx, name)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}
	s.cache.SetDefault(name, tpl)
	return &tpl, nil
}

func checkScale(name string, scale int32) error {
	if scale < 0 || scale > maxScale {
		return errs.NewValueIsOutOfRangeError(name, scale, 0, maxScale)
	}
	return nil
}
