package commands

import (
	"fmt"
	"strings"

	"herovault/internal/cli/api"
	"herovault/internal/config"
	"herovault/internal/model"
)

// newClient builds the API client for cfg. Tests replace it.
var newClient = func(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.ServerURL)
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// imageRefs turns -image values into refs: values starting with "/" or a
// URL scheme are paths of new images, everything else is an image id.
func imageRefs(values []string) []model.ImageRef {
	refs := make([]model.ImageRef, 0, len(values))
	for _, v := range values {
		if strings.HasPrefix(v, "/") || strings.Contains(v, "://") {
			refs = append(refs, model.ImageRef{ImagePath: v})
			continue
		}
		refs = append(refs, model.ImageRef{ID: v})
	}
	return refs
}

func printHero(h *model.Superhero) {
	fmt.Fprintf(Out, "ID: %s\n", h.ID)
	fmt.Fprintf(Out, "Nickname: %s\n", h.Nickname)
	fmt.Fprintf(Out, "Real name: %s\n", h.RealName)
	fmt.Fprintf(Out, "Origin: %s\n", h.OriginDescription)
	fmt.Fprintf(Out, "Catch phrase: %s\n", h.CatchPhrase)
	fmt.Fprintf(Out, "Superpowers: %s\n", strings.Join(h.Superpowers, ", "))
	if len(h.Images) == 0 {
		fmt.Fprintln(Out, "Images: none")
		return
	}
	fmt.Fprintln(Out, "Images:")
	for _, img := range h.Images {
		fmt.Fprintf(Out, "  - %s  %s\n", img.ID, img.ImagePath)
	}
}
