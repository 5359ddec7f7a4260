package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/blogtext"
)

// Output formats for extracted text.
const (
	formatText     = "text"
	formatMarkdown = "markdown"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Normalizer *blogtext.Normalizer
	Extractor  blogtext.Extractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Rules        string        `type:"path" env:"BLOGTEXT_RULES" help:"YAML file extending the built-in extraction rules"`
	Timeout      time.Duration `short:"t" default:"15s" env:"BLOGTEXT_TIMEOUT" help:"Timeout per HTTP attempt"`
	RPS          float64       `name:"rps" default:"0" env:"BLOGTEXT_RPS" help:"Requests per second per host (0 disables limiting)"`
	RandomAgents bool          `name:"random-agents" env:"BLOGTEXT_RANDOM_AGENTS" help:"Use random browser user agents on retries"`
	MetricsFile  string        `name:"metrics-file" type:"path" env:"BLOGTEXT_METRICS_FILE" help:"Write Prometheus metrics to this file on exit"`
	Verbose      bool          `short:"v" env:"BLOGTEXT_VERBOSE" help:"Log every fetch, strategy and extraction to stderr"`

	Extract   ExtractCmd   `cmd:"" help:"Extract the body text of one or more pages"`
	Normalize NormalizeCmd `cmd:"" help:"Print the canonical form of one or more URLs"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URLs        []string `arg:"" name:"url" help:"Page URLs"`
	JSON        bool     `short:"j" name:"json" help:"Write one JSON object per URL"`
	Format      string   `short:"f" enum:"text,markdown" default:"text" help:"Text rendering (text or markdown)"`
	Organic     bool     `help:"Drop sponsorship and ad-disclosure lines"`
	Out         string   `short:"o" type:"path" help:"Write results as files under this directory instead of stdout"`
	Concurrency int      `short:"c" default:"4" env:"BLOGTEXT_CONCURRENCY" help:"Concurrent extraction limit"`
}

// NormalizeCmd is the "normalize" subcommand.
type NormalizeCmd struct {
	URLs []string `arg:"" name:"url" help:"URLs to normalize"`
	JSON bool     `short:"j" name:"json" help:"Write one JSON object per URL"`
}
