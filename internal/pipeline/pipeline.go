package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aiflow-labs/relbuild/internal/branding"
	"github.com/aiflow-labs/relbuild/internal/buildenv"
	"github.com/aiflow-labs/relbuild/internal/frontend"
	"github.com/aiflow-labs/relbuild/internal/gobuild"
	"github.com/aiflow-labs/relbuild/internal/platform"
	"github.com/aiflow-labs/relbuild/internal/release"
	"github.com/aiflow-labs/relbuild/internal/resource"
	"github.com/aiflow-labs/relbuild/internal/stage"
)

// Options select what a single run builds.
type Options struct {
	Platforms    []string // keys or the all/current tokens; empty means the host
	SkipFrontend bool
	CGO          bool
}

// Pipeline wires the build components together. All fields except BaseEnv,
// Host and Logger are required.
type Pipeline struct {
	Catalog  *platform.Catalog
	Composer *buildenv.Composer
	Frontend *frontend.Builder
	Stager   *stage.Stager
	Release  *release.Coordinator
	Embedder *resource.Embedder
	Compiler *gobuild.Compiler

	BaseEnv buildenv.Env // environment every target derives from, the process environment if nil
	Host    string       // host platform key, platform.HostKey() if empty
	Dist    string       // frontend artifact directory
	Binary  string       // release binary base name, branding.BinaryName() if empty
	Logger  *log.Logger
}

// Run executes the pipeline. The report is returned whenever the platform
// loop was reached, including when some platforms failed.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Report, error) {
	defer p.Stager.Cleanup()

	logger := p.logger()

	keys, err := p.Catalog.ResolveRequested(opts.Platforms, p.host())
	if err != nil {
		return nil, err
	}
	logger.Info("target platforms", "platforms", strings.Join(keys, ", "), "cgo", opts.CGO)

	if opts.SkipFrontend {
		logger.Info("skipping frontend build")
	} else if err := p.Frontend.Build(ctx); err != nil {
		return nil, err
	}

	if err := stage.CheckSource(p.Dist); err != nil {
		return nil, err
	}

	staged, err := p.Stager.Prepare(p.Dist)
	if err != nil {
		return nil, err
	}

	if err := p.Release.Prepare(); err != nil {
		return nil, err
	}

	report := &Report{
		Version:   p.Compiler.Version,
		CGO:       opts.CGO,
		StartedAt: time.Now().UTC(),
	}

	base := p.BaseEnv
	if base == nil {
		base = buildenv.FromEnviron(os.Environ())
	}

	for i, key := range keys {
		logger.Info(fmt.Sprintf("[%d/%d] building %s", i+1, len(keys), key))
		res := p.buildPlatform(ctx, base, key, staged, opts.CGO)
		if res.Success {
			logger.Info("build succeeded", "platform", key, "output", res.Output)
		} else {
			logger.Error("build failed", "platform", key, "err", res.Error)
		}
		report.Results = append(report.Results, res)
	}

	summary := fmt.Sprintf("%d/%d platforms succeeded", report.Succeeded(), len(report.Results))
	if report.OK() {
		logger.Info(summary)
	} else {
		logger.Error(summary)
	}

	if err := p.Release.WriteReport(report); err != nil {
		logger.Warn("cannot write build report", "err", err)
	}

	if !report.OK() {
		return report, fmt.Errorf("%w: %s", ErrPlatformsFailed, summary)
	}
	return report, nil
}

// buildPlatform compiles a single target and never returns an error; the
// failure is carried in the Result.
func (p *Pipeline) buildPlatform(ctx context.Context, base buildenv.Env, key, staged string, cgo bool) Result {
	start := time.Now()
	res := Result{Platform: key}
	fail := func(err error) Result {
		res.Error = err.Error()
		res.Duration = time.Since(start).Round(time.Millisecond).String()
		return res
	}

	spec, err := p.Catalog.Resolve(key)
	if err != nil {
		return fail(err)
	}

	dir, err := p.Release.PlatformDir(key)
	if err != nil {
		return fail(err)
	}
	output := filepath.Join(dir, p.binary()+spec.Ext)

	env := p.Composer.Compose(base, key, spec, cgo)

	// An earlier build may have clobbered the embedded assets.
	if err := stage.CheckSource(staged); err != nil {
		return fail(err)
	}

	build := func(ctx context.Context) error {
		return p.Compiler.Build(ctx, env, spec, output)
	}

	if spec.OS == platform.Windows && p.Embedder != nil {
		res.Icon, err = p.Embedder.Embed(ctx, spec.Arch, build)
	} else {
		err = build(ctx)
	}
	if err != nil {
		res.Icon = false
		return fail(err)
	}

	p.Release.Package(dir)

	res.Success = true
	res.Output = output
	res.Duration = time.Since(start).Round(time.Millisecond).String()
	return res
}

func (p *Pipeline) host() string {
	if p.Host != "" {
		return p.Host
	}
	return platform.HostKey()
}

func (p *Pipeline) binary() string {
	if p.Binary != "" {
		return p.Binary
	}
	return branding.BinaryName()
}

func (p *Pipeline) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.Default()
}
