// Command fat32sh opens a FAT32 disk image and drives an interactive shell
// against it.
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/gofat32/shell/internal/repl"
	"github.com/gofat32/shell/internal/shellstate"
	"github.com/gofat32/shell/internal/volume"
)

func main() {
	app := cli.App{
		Name:      "fat32sh",
		Usage:     "Interactively browse and edit a FAT32 disk image",
		ArgsUsage: "IMAGE_FILE",
		Action:    run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func run(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit("This shell takes exactly one argument: the image name.\nUsage: fat32sh <image_name>", 1)
	}
	imagePath := c.Args().Get(0)

	image, err := os.OpenFile(imagePath, os.O_RDWR, 0)
	if err != nil {
		return cli.Exit("Failed to open image file '"+imagePath+"': "+err.Error(), 1)
	}
	defer image.Close()

	info, err := image.Stat()
	if err != nil {
		return cli.Exit("Failed to stat image file '"+imagePath+"': "+err.Error(), 1)
	}

	vol, err := volume.Open(image, info.Size())
	if err != nil {
		return cli.Exit("Failed to parse FAT32 volume: "+err.Error(), 1)
	}

	core := shellstate.New(vol)
	session := repl.New(core, imagePath, os.Stdin, os.Stdout, os.Stderr)
	session.Run()
	return nil
}
