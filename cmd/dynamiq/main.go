package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	dynamiq "github.com/mutablelogic/go-dynamiq"
	httpclient "github.com/mutablelogic/go-dynamiq/pkg/broker/httpclient"
	global "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debug option
	Debug   bool             `name:"debug" help:"Enable request tracing"`
	Version kong.VersionFlag `name:"version" help:"Print version and exit"`

	// Broker options
	URL     string        `name:"url" env:"DYNAMIQ_URL" help:"Broker URL" default:"http://localhost:8081"`
	Timeout time.Duration `name:"timeout" help:"Request timeout" default:"2s"`
	Retry   uint          `name:"retry" help:"Retries after the first attempt" default:"2"`

	// Private fields
	ctx    context.Context
	cancel context.CancelFunc
	tracer trace.Tracer
}

type CLI struct {
	Globals
	TopicCommands
	QueueCommands
	MessageCommands
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func main() {
	cli := new(CLI)
	ctx := kong.Parse(cli,
		kong.Name("dynamiq"),
		kong.Description("dynamiq command line interface"),
		kong.Vars{
			"version": VersionJSON(),
		},
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	// Create the context and cancel function
	cli.Globals.ctx, cli.Globals.cancel = signal.NotifyContext(context.Background(), os.Interrupt)
	defer cli.Globals.cancel()

	// Tracer for command spans
	cli.Globals.tracer = global.Tracer("dynamiq")

	// Call the Run() method of the selected parsed command.
	if err := ctx.Run(&cli.Globals); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (g *Globals) Client() (*httpclient.Client, error) {
	// Client options
	opts := []dynamiq.Opt{
		dynamiq.OptTimeout(g.Timeout),
		dynamiq.OptRetryCount(g.Retry),
	}
	if g.Debug {
		opts = append(opts, dynamiq.OptTrace(func(_ context.Context, method, url string, status int, err error) {
			fmt.Fprintln(os.Stderr, "DYNAMIQ TRACE:", method, url, status, err)
		}))
	}

	// Create a client for the broker endpoint
	return httpclient.New(g.URL, opts...)
}

func (g *Globals) StartSpan(name string) (context.Context, func(error)) {
	return otel.StartSpan(g.tracer, g.ctx, name)
}
