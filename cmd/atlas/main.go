package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/atlas"
	"github.com/bodgit/atlas/manifest"
	"github.com/bodgit/atlas/texture"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"
)

const defaultOutput = "atlas"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func loadConfig(c *cli.Context) (atlas.Config, error) {
	config := atlas.DefaultConfig()

	if file := c.String("config"); file != "" {
		if err := atlas.LoadConfig(file, &config); err != nil {
			return config, err
		}
	}

	if c.IsSet("size") {
		config.MaxSide = c.Int("size")
	}
	if c.IsSet("workers") {
		config.Workers = c.Int("workers")
	}
	if c.Bool("disable-rotate") {
		config.Rotate = false
	}
	if c.Bool("disable-trim") {
		config.Trim = false
	}
	if c.Bool("disable-dedup") {
		config.Dedup = false
	}
	if c.Bool("enable-split") {
		config.Split = true
	}

	return config, nil
}

// inputs expands a single directory argument into the images it contains,
// which are then named relative to it. Anything else is a list of files.
func inputs(args []string, recursive bool) ([]string, string, error) {
	if len(args) == 1 {
		info, err := os.Stat(args[0])
		if err != nil {
			return nil, "", err
		}
		if info.IsDir() {
			files, err := atlas.Scan(args[0], recursive)
			if err != nil {
				return nil, "", err
			}
			return files, args[0], nil
		}
	}
	return args, "", nil
}

func pack(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	logger := newLogger(c.App.ErrWriter, c.Bool("verbose"))

	config, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	format, err := manifest.ParseFormat(c.String("format"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	compression, err := manifest.ParseCompression(c.String("compress"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	if format == manifest.SQLite {
		compression = manifest.None
	}
	imageFormat, err := texture.ParseFormat(c.String("image-format"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	imageOptions := texture.Options{Format: imageFormat, Colors: c.Int("colors")}
	if err := imageOptions.Validate(); err != nil {
		return cli.Exit(err, 1)
	}

	files, base, err := inputs(c.Args().Slice(), c.Bool("recursive"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	logger.Debug("found images", "count", len(files))

	a, err := atlas.New(config, nil, logger).Pack(files)
	if err != nil {
		return cli.Exit(err, 1)
	}

	output := c.String("output")
	imageFile := output + imageFormat.Extension()

	if err := texture.WriteFile(imageFile, a.Canvas, imageOptions); err != nil {
		return cli.Exit(err, 1)
	}

	manifestFile := output + format.Extension() + compression.Extension()
	if err := manifest.WriteFile(manifestFile, a.Manifest(base, filepath.Base(imageFile)), format, compression); err != nil {
		return cli.Exit(err, 1)
	}

	if c.Bool("list") {
		for _, s := range a.Sprites {
			fmt.Fprintln(c.App.Writer, s.Name)
			for _, alias := range s.Aliases {
				fmt.Fprintln(c.App.Writer, alias)
			}
		}
	}

	logger.Info("wrote atlas", "image", imageFile, "manifest", manifestFile, "width", a.Canvas.Rect.Dx(), "height", a.Canvas.Rect.Dy())

	return nil
}

func bounds(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	logger := newLogger(c.App.ErrWriter, c.Bool("verbose"))

	config := atlas.DefaultConfig()
	if c.Bool("disable-trim") {
		config.Trim = false
	}
	p := atlas.New(config, nil, logger)

	for _, file := range c.Args().Slice() {
		size, r, err := p.Bounds(file)
		if err != nil {
			logger.Warn("failed to load image", "file", file, "err", err)
			continue
		}
		fmt.Fprintf(c.App.Writer, "%s\t%dx%d\t[%d,%d,%d,%d]\n", file, size.X, size.Y, r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	}

	return nil
}

func packFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			EnvVars: []string{"ATLAS_CONFIG"},
			Usage:   "read settings from a TOML or YAML `FILE`",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   defaultOutput,
			Usage:   "output file name without extension",
		},
		&cli.IntFlag{
			Name:    "size",
			Aliases: []string{"s"},
			Value:   atlas.DefaultMaxSide,
			Usage:   "ignore images whose trimmed area exceeds this value squared",
		},
		&cli.BoolFlag{
			Name:  "recursive",
			Usage: "include images in subdirectories",
		},
		&cli.BoolFlag{
			Name:  "disable-rotate",
			Usage: "never rotate images",
		},
		&cli.BoolFlag{
			Name:  "disable-trim",
			Usage: "keep transparent borders",
		},
		&cli.BoolFlag{
			Name:  "disable-dedup",
			Usage: "pack identical images separately",
		},
		&cli.BoolFlag{
			Name:  "enable-split",
			Usage: "allow long images to be split (reserved)",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: string(manifest.JSON),
			Usage: "manifest format: json, yaml, toml, cbor or sqlite",
		},
		&cli.StringFlag{
			Name:  "compress",
			Value: string(manifest.None),
			Usage: "manifest compression: none, zstd or lz4",
		},
		&cli.StringFlag{
			Name:  "image-format",
			Value: string(texture.PNG),
			Usage: "canvas format: png, bmp or tiff",
		},
		&cli.IntFlag{
			Name:  "colors",
			Usage: "reduce the canvas to a palette of this many colors",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "number of concurrent workers, 0 uses one per spare CPU",
		},
		&cli.BoolFlag{
			Name:  "list",
			Usage: "print the names of the packed images",
		},
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "atlas"
	app.Usage = "Texture atlas packing utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "pack",
			Usage:       "Pack images into a texture atlas",
			Description: "Packs every image in DIRECTORY, or each FILE given, into a single canvas image and writes a manifest alongside it.",
			ArgsUsage:   "DIRECTORY | FILE...",
			Flags:       packFlags(),
			Action:      pack,
		},
		{
			Name:      "bounds",
			Usage:     "Print the trimmed bounds of images",
			ArgsUsage: "FILE...",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "disable-trim",
					Usage: "keep transparent borders",
				},
			},
			Action: bounds,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
