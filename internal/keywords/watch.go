package keywords

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Provider hands out the current Registry and can hot-swap it when the
// keyword files change on disk. Get is safe for concurrent use.
type Provider struct {
	dir     string
	current atomic.Pointer[Registry]
	logger  *zap.Logger
}

// NewProvider loads the registry once from dir.
func NewProvider(dir string, logger *zap.Logger) (*Provider, error) {
	reg, err := Load(dir)
	if err != nil {
		return nil, err
	}
	p := &Provider{dir: dir, logger: logger}
	p.current.Store(reg)
	return p, nil
}

// NewStaticProvider wraps an already-built registry; used by tests.
func NewStaticProvider(reg *Registry, logger *zap.Logger) *Provider {
	p := &Provider{logger: logger}
	p.current.Store(reg)
	return p
}

// Get returns the current immutable registry.
func (p *Provider) Get() *Registry {
	return p.current.Load()
}

// Watch reloads the registry whenever a .yml file under the config directory
// is written. Reload failures keep the previous registry. Blocks until ctx is
// cancelled.
func (p *Provider) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(p.dir); err != nil {
		return err
	}

	// Editors fire several events per save; debounce with a short timer.
	var pending *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".yml") && !strings.HasSuffix(ev.Name, ".yaml") {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(200*time.Millisecond, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.logger.Warn("keyword watcher error", zap.Error(err))

		case <-reload:
			reg, err := Load(p.dir)
			if err != nil {
				p.logger.Error("keyword reload failed, keeping previous registry", zap.Error(err))
				continue
			}
			p.current.Store(reg)
			p.logger.Info("keyword registry reloaded", zap.String("dir", p.dir))
		}
	}
}
