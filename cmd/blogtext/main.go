package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/blogtext"
	"github.com/fwojciec/blogtext/goquery"
	"github.com/fwojciec/blogtext/htmltomarkdown"
	bthttp "github.com/fwojciec/blogtext/http"
	"github.com/fwojciec/blogtext/pipeline"
	btprom "github.com/fwojciec/blogtext/prometheus"
	"github.com/fwojciec/blogtext/readability"
	btslog "github.com/fwojciec/blogtext/slog"
	"github.com/fwojciec/blogtext/trafilatura"
	"github.com/fwojciec/blogtext/yaml"
	prom "github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Transport replaces the network round tripper. Set before calling
	// Run(); used by end-to-end tests.
	Transport http.RoundTripper
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("blogtext"),
		kong.Description("Extract the authored body text of blog posts"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'blogtext --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	rules := blogtext.DefaultRules()
	if cli.Rules != "" {
		if rules, err = yaml.LoadRules(cli.Rules); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", blogtext.ErrorMessage(err))
			return err
		}
	}
	deps.Normalizer = blogtext.NewNormalizer(rules.Platform)

	if strings.HasPrefix(kongCtx.Command(), "extract") {
		var metrics *btprom.Metrics
		registry := prom.NewRegistry()
		if cli.MetricsFile != "" {
			if metrics, err = btprom.NewMetrics(registry); err != nil {
				return fmt.Errorf("failed to register metrics: %w", err)
			}
		}

		extractor, err := m.wire(cli, rules, deps.Normalizer, deps.Logger, metrics)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", blogtext.ErrorMessage(err))
			return err
		}
		deps.Extractor = extractor

		runErr := kongCtx.Run(deps)
		if cli.MetricsFile != "" {
			if err := prom.WriteToTextfile(cli.MetricsFile, registry); err != nil {
				fmt.Fprintf(stderr, "error writing metrics: %v\n", err)
			}
		}
		return runErr
	}

	return kongCtx.Run(deps)
}

// wire builds the extraction pipeline from the flags and rules.
func (m *Main) wire(cli *CLI, rules blogtext.Rules, normalizer *blogtext.Normalizer, logger *slog.Logger, metrics *btprom.Metrics) (blogtext.Extractor, error) {
	opts := []bthttp.Option{
		bthttp.WithTimeout(cli.Timeout),
		bthttp.WithMinBodyBytes(rules.MinBodyBytes),
		bthttp.WithRandomUserAgents(cli.RandomAgents),
	}
	if cli.RPS > 0 {
		opts = append(opts, bthttp.WithRateLimiter(bthttp.NewDomainLimiter(cli.RPS)))
	}
	if m.Transport != nil {
		opts = append(opts, bthttp.WithTransport(m.Transport))
	}

	var fetcher blogtext.Fetcher = bthttp.NewFetcher(opts...)
	if metrics != nil {
		fetcher = btprom.NewFetcher(fetcher, metrics)
	}
	if cli.Verbose {
		fetcher = btslog.NewLoggingFetcher(fetcher, logger)
	}

	var locator blogtext.ContentLocator = goquery.NewLocator(
		goquery.PlatformStrategies(rules, fetcher),
		goquery.GenericStrategies(rules,
			goquery.NewArticleStrategy("readability", readability.NewExtractor(), rules.MinChars),
			goquery.NewArticleStrategy("trafilatura", trafilatura.NewExtractor(), rules.MinChars),
		),
		goquery.WithLogger(logger),
	)
	if cli.Verbose {
		locator = btslog.NewLoggingLocator(locator, logger)
	}

	sanitizerOpts := []goquery.SanitizerOption{goquery.WithOrganic(cli.Extract.Organic)}
	if cli.Extract.Format == formatMarkdown {
		sanitizerOpts = append(sanitizerOpts, goquery.WithConverter(htmltomarkdown.NewConverter()))
	}
	sanitizer, err := goquery.NewSanitizer(rules, sanitizerOpts...)
	if err != nil {
		return nil, err
	}

	var extractor blogtext.Extractor = &pipeline.Pipeline{
		Normalizer: normalizer,
		Fetcher:    fetcher,
		Locator:    locator,
		Sanitizer:  sanitizer,
		Logger:     logger,
	}
	if metrics != nil {
		extractor = btprom.NewExtractor(extractor, metrics)
	}
	if cli.Verbose {
		extractor = btslog.NewLoggingExtractor(extractor, logger)
	}
	return extractor, nil
}
