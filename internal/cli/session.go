package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/amytools-labs/amytools/internal/amytools"
	"github.com/amytools-labs/amytools/internal/branding"
	"github.com/amytools-labs/amytools/internal/config"
	"github.com/amytools-labs/amytools/internal/host"
	"github.com/amytools-labs/amytools/internal/metrics"
	"github.com/amytools-labs/amytools/internal/password"
	"github.com/amytools-labs/amytools/internal/plugin"
	"github.com/amytools-labs/amytools/internal/ui"
	"go.uber.org/zap"
)

// session is one activation of the bundled extension over the vault.
type session struct {
	host    *host.Host
	manager *plugin.Manager
}

type sessionOptions struct {
	presenter ui.Presenter
	notices   io.Writer
	file      string
	metrics   *metrics.Metrics
	password  password.Options
}

// openSession resolves the vault, activates the extension and opens file
// when one is given. A partial activation is logged and reported on w but
// does not stop the command.
func openSession(ctx context.Context, opts sessionOptions, w io.Writer) (*session, error) {
	vault, err := config.VaultRoot()
	if err != nil {
		return nil, err
	}

	ext, err := amytools.New(amytools.Options{
		Interval: config.HooksInterval(),
		Password: opts.password,
	})
	if err != nil {
		return nil, err
	}

	h := host.New(vault,
		host.WithPresenter(opts.presenter),
		host.WithNoticeWriter(opts.notices),
		host.WithLogger(appLog.Logger),
	)
	if opts.file != "" {
		if err := h.OpenFile(opts.file); err != nil {
			return nil, err
		}
	}

	m := plugin.NewManager(ext, h,
		plugin.WithHostVersion(branding.HostVersion()),
		plugin.WithLogger(appLog.Logger),
		plugin.WithMetrics(opts.metrics),
	)
	if err := m.Activate(ctx); err != nil {
		if !errors.Is(err, plugin.ErrPartialActivation) {
			return nil, err
		}
		fmt.Fprintf(w, "warning: %v\n", err)
	}
	appLog.Debug("session open", zap.String("vault", vault))
	return &session{host: h, manager: m}, nil
}

// close deactivates the extension.
func (s *session) close(ctx context.Context) error {
	if err := s.manager.Deactivate(ctx); err != nil {
		return fmt.Errorf("deactivating: %w", err)
	}
	return nil
}
