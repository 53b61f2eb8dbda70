package main

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/atlas"
	"github.com/bodgit/atlas/manifest"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestInputs(t *testing.T) {
	dir := t.TempDir()
	for _, file := range []string{"b.png", "a.png", "sub/c.png"} {
		file = filepath.Join(dir, file)
		require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
		require.NoError(t, os.WriteFile(file, nil, 0o644))
	}

	files, base, err := inputs([]string{dir}, false)
	require.NoError(t, err)
	assert.Equal(t, dir, base)
	assert.Equal(t, []string{filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")}, files)

	files, _, err = inputs([]string{dir}, true)
	require.NoError(t, err)
	assert.Len(t, files, 3)

	single := filepath.Join(dir, "b.png")
	files, base, err = inputs([]string{single}, false)
	require.NoError(t, err)
	assert.Empty(t, base)
	assert.Equal(t, []string{single}, files)

	// Several arguments are taken as they are
	files, base, err = inputs([]string{"x.png", "y.png"}, false)
	require.NoError(t, err)
	assert.Empty(t, base)
	assert.Equal(t, []string{"x.png", "y.png"}, files)

	_, _, err = inputs([]string{filepath.Join(dir, "missing")}, false)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	b := new(bytes.Buffer)

	logger := newLogger(b, false)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
	logger.Debug("hidden")
	assert.Zero(t, b.Len())

	logger = newLogger(b, true)
	assert.Equal(t, log.DebugLevel, logger.GetLevel())
	logger.Debug("shown", "file", "a.png")
	assert.Contains(t, b.String(), "shown")
	assert.Contains(t, b.String(), "a.png")
}

func writePNG(t *testing.T, file string, w, h int) {
	t.Helper()

	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range m.Pix {
		m.Pix[i] = 0xff
	}

	f, err := os.Create(file)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, m))
	require.NoError(t, f.Close())
}

func writeConfig(t *testing.T) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), "atlas.toml")
	require.NoError(t, os.WriteFile(file, []byte("rotate = false\nworkers = 3\n"), 0o644))
	return file
}

func testApp(app *cli.App) (*cli.App, *bytes.Buffer) {
	b := new(bytes.Buffer)
	app.Writer = b
	app.ErrWriter = io.Discard
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app, b
}

func TestLoadConfig(t *testing.T) {
	file := writeConfig(t)

	fromFile := atlas.DefaultConfig()
	fromFile.Rotate = false
	fromFile.Workers = 3

	tests := []struct {
		name string
		env  string
		args []string
		want atlas.Config
	}{
		{
			name: "defaults",
			want: atlas.DefaultConfig(),
		},
		{
			name: "file",
			args: []string{"-c", file},
			want: fromFile,
		},
		{
			name: "environment",
			env:  file,
			want: fromFile,
		},
		{
			name: "flags override file",
			args: []string{"-c", file, "-s", "64", "--disable-dedup", "--workers", "0"},
			want: atlas.Config{
				MaxSide: 64,
				Trim:    true,
			},
		},
		{
			name: "flags without file",
			args: []string{"--disable-rotate", "--disable-trim", "--enable-split"},
			want: atlas.Config{
				MaxSide: atlas.DefaultMaxSide,
				Dedup:   true,
				Split:   true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ATLAS_CONFIG", tt.env)

			var got atlas.Config
			app, _ := testApp(&cli.App{
				Commands: []*cli.Command{
					{
						Name:  "pack",
						Flags: packFlags(),
						Action: func(c *cli.Context) (err error) {
							got, err = loadConfig(c)
							return err
						},
					},
				},
			})

			require.NoError(t, app.Run(append([]string{"atlas", "pack"}, tt.args...)))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	app, _ := testApp(&cli.App{
		Commands: []*cli.Command{
			{
				Name:  "pack",
				Flags: packFlags(),
				Action: func(c *cli.Context) error {
					_, err := loadConfig(c)
					return err
				},
			},
		},
	})

	t.Setenv("ATLAS_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, app.Run([]string{"atlas", "pack"}))
}

func TestPack(t *testing.T) {
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "a.png"), 8, 16)
	writePNG(t, filepath.Join(in, "b.png"), 8, 16)
	writePNG(t, filepath.Join(in, "big.png"), 80, 80)

	config := writeConfig(t)

	type entry struct {
		name    string
		aliases []string
	}

	tests := []struct {
		name    string
		args    []string
		list    []string
		sprites []entry
	}{
		{
			name:    "config",
			args:    []string{"-c", config},
			list:    []string{"a.png", "b.png", "big.png"},
			sprites: []entry{{"a.png", []string{"b.png"}}, {"big.png", nil}},
		},
		{
			name:    "flags",
			args:    []string{"-c", config, "-s", "64", "--disable-dedup"},
			list:    []string{"a.png", "b.png"},
			sprites: []entry{{"a.png", nil}, {"b.png", nil}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ATLAS_CONFIG", "")

			output := filepath.Join(t.TempDir(), "out")
			app, b := testApp(newApp())

			args := append([]string{"atlas", "pack", "-o", output, "--list"}, tt.args...)
			require.NoError(t, app.Run(append(args, in)))

			var list []string
			for _, file := range tt.list {
				list = append(list, filepath.Join(in, file))
			}
			assert.Equal(t, strings.Join(list, "\n")+"\n", b.String())

			m, err := manifest.ReadFile(output+".json", manifest.JSON, manifest.None)
			require.NoError(t, err)
			assert.Equal(t, "out.png", m.Image)

			var sprites []entry
			for _, s := range m.Sprites {
				// Rotation is disabled by the config file
				assert.False(t, s.Rotated, s.Name)
				sprites = append(sprites, entry{s.Name, s.Aliases})
			}
			assert.Equal(t, tt.sprites, sprites)

			f, err := os.Open(output + ".png")
			require.NoError(t, err)
			defer f.Close()
			ic, format, err := image.DecodeConfig(f)
			require.NoError(t, err)
			assert.Equal(t, "png", format)
			assert.Equal(t, m.Width, ic.Width)
			assert.Equal(t, m.Height, ic.Height)
		})
	}
}

func TestPackInvalidImageOptions(t *testing.T) {
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "a.png"), 8, 8)

	t.Setenv("ATLAS_CONFIG", "")

	output := filepath.Join(t.TempDir(), "out")
	app, _ := testApp(newApp())

	err := app.Run([]string{"atlas", "pack", "-o", output, "--image-format", "bmp", "--colors", "16", in})
	assert.Error(t, err)
	assert.NoFileExists(t, output+".bmp")
	assert.NoFileExists(t, output+".json")
}

func TestBounds(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.png")
	writePNG(t, file, 8, 16)

	app, b := testApp(newApp())
	require.NoError(t, app.Run([]string{"atlas", "bounds", file, filepath.Join(t.TempDir(), "missing.png")}))
	assert.Equal(t, file+"\t8x16\t[0,0,8,16]\n", b.String())
}
