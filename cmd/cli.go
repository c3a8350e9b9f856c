package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/viant/crudly/cmd/options"
	"github.com/viant/crudly/config"
	"github.com/viant/crudly/gateway"
)

// New parses command line arguments and starts standalone server
func New(version string, args []string) error {
	opts, err := buildOptions(args)
	if err != nil || opts == nil {
		return err
	}
	if opts.Version {
		fmt.Printf("crudly: version: %v\n", version)
		return nil
	}
	ctx := context.Background()
	cfg, err := loadConfig(ctx, opts)
	if err != nil {
		return err
	}
	cfg.Version = version
	server, err := gateway.NewServer(ctx, cfg)
	if err != nil {
		return err
	}
	return server.ListenAndServe()
}

func buildOptions(args []string) (*options.Options, error) {
	opts := &options.Options{}
	if _, err := flags.ParseArgs(opts, args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, err
	}
	return opts, opts.Init()
}

func loadConfig(ctx context.Context, opts *options.Options) (*config.Config, error) {
	cfg, err := config.NewFromURL(ctx, opts.ConfigURL)
	if err != nil {
		return nil, err
	}
	if opts.Port != 0 {
		cfg.Endpoint.Port = opts.Port
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = strings.ToUpper(opts.LogLevel)
		if err = cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
