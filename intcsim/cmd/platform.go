package cmd

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/sarchlab/irqhal/irq"
	"github.com/sarchlab/irqhal/platform"
)

func bringUp(logger logr.Logger, opts ...platform.Option) (*irq.Registry, error) {
	path := envOr(platformPath, envPlatform)
	if path == "" {
		return nil, errors.New("no machine description, use --platform")
	}

	cfg, err := platform.Load(path)
	if err != nil {
		return nil, err
	}

	opts = append([]platform.Option{platform.WithLogger(logger)}, opts...)

	r, err := platform.BringUp(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("bringing up %s: %w", path, err)
	}

	if err := irq.SetDefaultRegistry(r); err != nil {
		return nil, err
	}

	return r, nil
}
