package commands

import (
	"context"
	"fmt"
	"strconv"

	"herovault/internal/config"
	"herovault/internal/service"
)

type heroesCmd struct{}

func (heroesCmd) Name() string        { return "heroes" }
func (heroesCmd) Description() string { return "List superheroes page by page" }
func (heroesCmd) Usage() string       { return "heroes [page] [limit]" }

func (heroesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 2 {
		return ErrUsage
	}
	page, limit := service.DefaultPage, service.DefaultLimit
	var err error
	if len(args) > 0 {
		if page, err = strconv.Atoi(args[0]); err != nil {
			return ErrUsage
		}
	}
	if len(args) > 1 {
		if limit, err = strconv.Atoi(args[1]); err != nil {
			return ErrUsage
		}
	}

	res, err := newClient(cfg).ListHeroes(ctx, page, limit)
	if err != nil {
		return err
	}
	if len(res.Data) == 0 {
		fmt.Fprintln(Out, "No superheroes")
	}
	for _, h := range res.Data {
		img := "-"
		if len(h.Images) > 0 {
			img = h.Images[0].ImagePath
		}
		fmt.Fprintf(Out, "- %s  %s  %s\n", h.ID, h.Nickname, img)
	}
	fmt.Fprintf(Out, "Page %d of %d, total: %d\n", res.Page, res.LastPage, res.Total)
	return nil
}

func init() { RegisterCmd(heroesCmd{}) }
