package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"herovault/internal/config"
	"herovault/internal/service"
)

type heroAddCmd struct{}

func (heroAddCmd) Name() string        { return "hero-add" }
func (heroAddCmd) Description() string { return "Create a superhero" }
func (heroAddCmd) Usage() string {
	return "hero-add -nickname <n> -real-name <n> -origin <text> -phrase <text> [-power <p>]... [-image <id|path>]..."
}

func (heroAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("hero-add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var in service.CreateSuperheroInput
	var powers, images stringList
	fs.StringVar(&in.Nickname, "nickname", "", "")
	fs.StringVar(&in.RealName, "real-name", "", "")
	fs.StringVar(&in.OriginDescription, "origin", "", "")
	fs.StringVar(&in.CatchPhrase, "phrase", "", "")
	fs.Var(&powers, "power", "")
	fs.Var(&images, "image", "")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}
	if in.Nickname == "" {
		return ErrUsage
	}
	in.Superpowers = powers
	in.Images = imageRefs(images)

	hero, err := newClient(cfg).CreateHero(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Created %s (%s)\n", hero.Nickname, hero.ID)
	return nil
}

func init() { RegisterCmd(heroAddCmd{}) }
