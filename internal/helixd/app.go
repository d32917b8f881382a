package helixd

import (
	"github.com/MakeNowJust/heredoc/v2"

	"github.com/kiosk404/helix/internal/helixd/config"
	"github.com/kiosk404/helix/internal/helixd/options"
	"github.com/kiosk404/helix/pkg/app"
	"github.com/kiosk404/helix/pkg/logger"
)

// NewApp creates the helixd application with its options, description and
// run callback wired together.
func NewApp(basename string) *app.App {
	opts := options.NewOptions()
	application := app.NewApp("helixd",
		basename,
		app.WithOptions(opts),
		app.WithDescription(heredoc.Doc(`
			helixd serves natural-language search over a user's private
			document archive. Each request fans out to category-scoped
			agents that drive sandboxed file tools, then merges and
			summarizes what they found.`)),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(run(opts)),
	)
	return application
}

func run(opts *options.Options) app.RunFunc {
	return func(basename string) error {
		logger.SetLevel(opts.LogOptions.Level)
		logger.SetFormat(opts.LogOptions.Format)
		if err := logger.InitLog(opts.LogOptions.File); err != nil {
			return err
		}
		defer logger.FlushLog()

		cfg, err := config.CreateConfigFromOptions(opts)
		if err != nil {
			return err
		}

		return Run(cfg)
	}
}
