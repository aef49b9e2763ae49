package runner

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/aethermark/pkg/fsutil"
	"github.com/yaklabco/aethermark/pkg/markdown"
)

// Runner parses files with a pool of workers. Each worker owns its parser
// because a Markdown value is not safe for concurrent use.
type Runner struct {
	logger *log.Logger
}

// New creates a Runner. A nil logger discards output.
func New(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{logger: logger}
}

// Run discovers files under opts.Paths and parses them concurrently.
// Outcomes are returned in path order whatever order workers finish in.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	// Build every parser up front so configuration errors surface once.
	parsers := make([]*markdown.Markdown, jobs)
	for i := range parsers {
		parsers[i], err = NewParser(opts.Config, r.logger)
		if err != nil {
			return nil, fmt.Errorf("build parser: %w", err)
		}
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	inline := opts.Config != nil && opts.Config.Inline

	var wg sync.WaitGroup
	for _, md := range parsers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, md, inline, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Runner) worker(ctx context.Context, md *markdown.Markdown, inline bool, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := ParseFile(ctx, md, path, inline)
		if outcome.Error != nil {
			r.logger.Debug("parse failed", "path", path, "error", outcome.Error)
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ParseFile reads and parses a single file.
func ParseFile(ctx context.Context, md *markdown.Markdown, path string, inline bool) FileOutcome {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return FileOutcome{Path: path, Error: err}
	}

	outcome := ParseSource(md, path, string(content), inline)
	outcome.Info = info
	return outcome
}

// ParseSource parses already loaded source. inline selects ParseInline.
func ParseSource(md *markdown.Markdown, path, src string, inline bool) FileOutcome {
	env := markdown.NewEnv()
	parse := md.Parse
	if inline {
		parse = md.ParseInline
	}

	tokens, err := parse(src, env)
	if err != nil {
		return FileOutcome{Path: path, Env: env, Error: fmt.Errorf("%s: %w", path, err)}
	}
	return FileOutcome{Path: path, Tokens: tokens, Env: env}
}
