package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/estudai/estudai/internal/api"
	"github.com/estudai/estudai/internal/cli"
	"github.com/estudai/estudai/internal/constants"
)

type ServeCmd struct {
	Addr      string `help:"Address to listen on. Defaults to the configured api.addr."`
	RateLimit int    `help:"Requests per minute allowed per client IP. Defaults to the configured limit." name:"rate-limit"`
}

func (c *ServeCmd) options(ctx *cli.Context) api.Options {
	opts := api.Options{
		Addr:               c.Addr,
		RateLimitPerMinute: c.RateLimit,
		Location:           ctx.Loc(),
		Now:                ctx.Now,
	}
	if ctx.Config != nil {
		if opts.Addr == "" {
			opts.Addr = ctx.Config.API.Addr
		}
		if opts.RateLimitPerMinute == 0 {
			opts.RateLimitPerMinute = ctx.Config.API.RateLimitPerMinute
		}
	}
	if opts.RateLimitPerMinute == 0 {
		opts.RateLimitPerMinute = constants.DefaultRateLimitPerMin
	}
	return opts
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	opts := c.options(ctx)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving estudai API on http://%s\n", opts.Addr)
	return api.New(ctx.Store, opts).Run(sigCtx)
}
