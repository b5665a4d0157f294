package commands

import (
	"context"
	"flag"
	"io"

	"herovault/internal/config"
	"herovault/internal/service"
)

type heroEditCmd struct{}

func (heroEditCmd) Name() string        { return "hero-edit" }
func (heroEditCmd) Description() string { return "Change fields of a superhero" }
func (heroEditCmd) Usage() string {
	return "hero-edit <id> [-nickname <n>] [-real-name <n>] [-origin <text>] [-phrase <text>] [-power <p>]... [-image <id|path>]... [-clear-images]"
}

func (heroEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	id := args[0]

	fs := flag.NewFlagSet("hero-edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var nickname, realName, origin, phrase string
	var powers, images stringList
	var clearImages bool
	fs.StringVar(&nickname, "nickname", "", "")
	fs.StringVar(&realName, "real-name", "", "")
	fs.StringVar(&origin, "origin", "", "")
	fs.StringVar(&phrase, "phrase", "", "")
	fs.Var(&powers, "power", "")
	fs.Var(&images, "image", "")
	fs.BoolVar(&clearImages, "clear-images", false, "")
	if err := fs.Parse(args[1:]); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}
	if clearImages && len(images) > 0 {
		return ErrUsage
	}

	var in service.UpdateSuperheroInput
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "nickname":
			in.Nickname = &nickname
		case "real-name":
			in.RealName = &realName
		case "origin":
			in.OriginDescription = &origin
		case "phrase":
			in.CatchPhrase = &phrase
		}
	})
	if len(powers) > 0 {
		p := []string(powers)
		in.Superpowers = &p
	}
	if len(images) > 0 || clearImages {
		refs := imageRefs(images)
		in.Images = &refs
	}
	if in == (service.UpdateSuperheroInput{}) {
		return ErrUsage
	}

	hero, err := newClient(cfg).UpdateHero(ctx, id, in)
	if err != nil {
		return err
	}
	printHero(hero)
	return nil
}

func init() { RegisterCmd(heroEditCmd{}) }
