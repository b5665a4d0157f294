package commands

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"herovault/internal/config"
)

type imageUploadCmd struct{}

func (imageUploadCmd) Name() string        { return "image-upload" }
func (imageUploadCmd) Description() string { return "Upload an image and print its id" }
func (imageUploadCmd) Usage() string       { return "image-upload <file>" }

func (imageUploadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = http.DetectContentType(data)
	}

	img, err := newClient(cfg).UploadImage(ctx, filepath.Base(path), ct, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Uploaded %s\nID: %s\n", img.ImagePath, img.ID)
	return nil
}

func init() { RegisterCmd(imageUploadCmd{}) }
