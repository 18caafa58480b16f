package carousel

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/s0up4200/trendcarousel/page"
)

// EngineOptions is the Swiper configuration passed to the constructor
type EngineOptions struct {
	// SlidesPerView is "auto" or a number
	SlidesPerView  string
	CenteredSlides bool
	SpaceBetween   int
	// AutoplayDelay in milliseconds, 0 disables autoplay
	AutoplayDelay        int
	DisableOnInteraction bool
}

// DefaultEngineOptions returns the stock carousel behaviour
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{
		SlidesPerView:        "auto",
		CenteredSlides:       false,
		SpaceBetween:         30,
		AutoplayDelay:        2500,
		DisableOnInteraction: false,
	}
}

type swiperAutoplay struct {
	Delay                int  `json:"delay"`
	DisableOnInteraction bool `json:"disableOnInteraction"`
}

type swiperConfig struct {
	SlidesPerView  any             `json:"slidesPerView"`
	CenteredSlides bool            `json:"centeredSlides"`
	Autoplay       *swiperAutoplay `json:"autoplay,omitempty"`
	SpaceBetween   int             `json:"spaceBetween"`
}

// MarshalJSON encodes the options in Swiper's format
func (o EngineOptions) MarshalJSON() ([]byte, error) {
	cfg := swiperConfig{
		SlidesPerView:  "auto",
		CenteredSlides: o.CenteredSlides,
		SpaceBetween:   o.SpaceBetween,
	}
	if o.SlidesPerView != "" && o.SlidesPerView != "auto" {
		n, err := strconv.ParseFloat(o.SlidesPerView, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid slidesPerView %q: %w", o.SlidesPerView, err)
		}
		cfg.SlidesPerView = n
	}
	if o.AutoplayDelay > 0 {
		cfg.Autoplay = &swiperAutoplay{
			Delay:                o.AutoplayDelay,
			DisableOnInteraction: o.DisableOnInteraction,
		}
	}
	return json.Marshal(cfg)
}

// initScript constructs the engine for one wrapper. When the engine script
// has not executed yet, construction waits for its load event.
func initScript(id string, opts EngineOptions) (string, error) {
	selector, err := json.Marshal(wrapperSelector(id))
	if err != nil {
		return "", err
	}
	config, err := json.Marshal(opts)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`<script data-carousel-init="%s">(function(){`+
		`var init=function(){new Swiper(%s,%s);};`+
		`if(window.Swiper){init();return;}`+
		`var s=document.querySelector(%q);`+
		`if(s){s.addEventListener("load",init);}`+
		`})();</script>`, id, selector, config, engineScriptSelector), nil
}

// Activate injects the init script after the widget's wrapper once the
// engine assets are ready. It fails with ErrNotInjected when the wrapper is
// not inside target.
func Activate(ctx context.Context, target *page.Element, id string, assets *AssetHandle, opts EngineOptions) error {
	if target == nil {
		return ErrPlacementNotFound
	}
	if target.Count(wrapperSelector(id)) == 0 {
		return ErrNotInjected
	}

	if err := assets.Wait(ctx); err != nil {
		return fmt.Errorf("failed to activate carousel %s: %w", id, err)
	}

	script, err := initScript(id, opts)
	if err != nil {
		return fmt.Errorf("failed to build init script: %w", err)
	}

	target.ReplaceOrAppend(fmt.Sprintf(`script[data-carousel-init="%s"]`, id), script)
	return nil
}
