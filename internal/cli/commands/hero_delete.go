package commands

import (
	"context"
	"fmt"

	"herovault/internal/config"
)

type heroDeleteCmd struct{}

func (heroDeleteCmd) Name() string        { return "hero-delete" }
func (heroDeleteCmd) Description() string { return "Delete a superhero, its images stay stored" }
func (heroDeleteCmd) Usage() string       { return "hero-delete <id>" }

func (heroDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	hero, err := newClient(cfg).DeleteHero(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Deleted %s (%s)\n", hero.Nickname, hero.ID)
	return nil
}

func init() { RegisterCmd(heroDeleteCmd{}) }
