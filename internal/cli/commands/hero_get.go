package commands

import (
	"context"

	"herovault/internal/config"
)

type heroGetCmd struct{}

func (heroGetCmd) Name() string        { return "hero" }
func (heroGetCmd) Description() string { return "Show a superhero with all images" }
func (heroGetCmd) Usage() string       { return "hero <id>" }

func (heroGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	hero, err := newClient(cfg).GetHero(ctx, args[0])
	if err != nil {
		return err
	}
	printHero(hero)
	return nil
}

func init() { RegisterCmd(heroGetCmd{}) }
