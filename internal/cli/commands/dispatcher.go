package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"herovault/internal/cli/api"
	"herovault/internal/config"
)

// Dispatch runs the command named by args[0] and returns the process exit
// code. Server rejections print every message of the error envelope.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	switch args[0] {
	case "help", "-h", "--help":
		return help(args[1:])
	}

	c, ok := Get(args[0])
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", args[0])
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}
	return report(c, c.Run(ctx, cfg, args[1:]))
}

func help(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitOK
	}
	c, ok := Get(args[0])
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", args[0])
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}
	fmt.Fprintf(Out, "%s\n\nUsage: %s\n", c.Description(), c.Usage())
	return ExitOK
}

func report(c Command, err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, ErrUsage) {
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return ExitUsage
	}

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		fmt.Fprintf(Out, "%s error: %v\n", c.Name(), err)
		return ExitFailure
	}
	fmt.Fprintf(Out, "%s rejected (%d %s):\n", c.Name(), apiErr.Status, http.StatusText(apiErr.Status))
	for _, m := range apiErr.Messages {
		fmt.Fprintf(Out, "  - %s\n", m)
	}
	// 400 means the arguments produced an invalid request
	if apiErr.Status == http.StatusBadRequest {
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
	}
	return ExitRejected
}
