// Package api provides the HTTP API for the application
package api

import (
	stdctx "context"

	wsfeed "foodscan/internal/adapters/capture/wsfeed"
	offclient "foodscan/internal/adapters/product/off"
	"foodscan/internal/capture"
	core "foodscan/internal/core/lookup"
	"foodscan/internal/platform/config"
	"foodscan/internal/platform/logger"
	phttp "foodscan/internal/platform/net/http"
	"foodscan/internal/platform/store"

	"foodscan/internal/modkit"
	"foodscan/internal/modkit/httpkit"
	"foodscan/internal/modkit/module"
	"foodscan/internal/modkit/swaggerkit"

	capturemod "foodscan/internal/services/api/capture/module"
	lookupmod "foodscan/internal/services/api/lookup/module"
	metamod "foodscan/internal/services/api/meta/module"
	prefsmod "foodscan/internal/services/api/prefs/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger

	// Fetcher overrides the product source, tests mostly
	Fetcher core.Fetcher

	EnableSwagger bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	fetch := opt.Fetcher
	if fetch == nil {
		off := opt.Config.Prefix("OFF_")
		fetch = offclient.NewClient(offclient.Options{
			BaseURL:   off.MayString("BASE_URL", ""),
			UserAgent: off.MayString("USER_AGENT", ""),
			Timeout:   off.MayDuration("TIMEOUT", 0),
		})
	}

	// both entry paths converge on one coordinator: manual entry through the
	// lookup module, decoded codes through the capture sink
	coord := core.New(fetch)
	mgr := capture.NewManager(func(ctx stdctx.Context, code string) {
		coord.SubmitFromCapture(ctx, code)
	})

	mods := []module.Module{
		metamod.New(deps),
		lookupmod.New(deps, coord),
		capturemod.New(deps, mgr),
		prefsmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	// the decode feed is long-lived so it mounts outside the versioned stack
	// where the request timeout middleware would cut the connection
	r.Get("/api/v1/capture/{id}/events", wsfeed.New(mgr).ServeHTTP)
}
