// maptool is a CLI utility for working with emaki map containers.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"strconv"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/karuta-dev/emaki/internal/engine/bitmap"
	"github.com/karuta-dev/emaki/internal/engine/softdraw"
	"github.com/karuta-dev/emaki/internal/engine/tile"
	"github.com/karuta-dev/emaki/internal/engine/tilemap"
	"github.com/karuta-dev/emaki/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "flags":
		cmdFlags(args)
	case "snapshot", "snap":
		cmdSnapshot(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`maptool - emaki map container utility

Usage:
  maptool <command> [options]

Commands:
  info <file.emap>                          Show map information
  flags <file.eflg> [tile-id]               Show flag table information
  snapshot -tileset <t.yaml> [options] <file.emap>
                                            Render the full map to a PNG

Snapshot options:
  -o <file.png>   Output path (default: map name with .png)
  -scale <f>      Output scale factor (default 1)

Examples:
  maptool info maps/town.emap
  maptool flags tilesets/town.eflg 2816
  maptool snapshot -tileset tilesets/town.yaml -scale 0.5 maps/town.emap`)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: maptool info <file.emap>")
		os.Exit(1)
	}

	m, err := formats.ParseEMAPFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Map:     %s\n", args[0])
	fmt.Printf("Version: %s\n", m.Version)
	fmt.Printf("Size:    %dx%d tiles\n", m.Width, m.Height)
	fmt.Printf("Wrap:    horizontal=%v vertical=%v\n", m.HorizontalWrap, m.VerticalWrap)

	counts := m.CountByPlane()
	names := [formats.PlaneCount]string{
		"ground", "ground deco", "overlay", "overlay deco", "shadow",
	}
	total := 0
	for plane, n := range counts {
		fmt.Printf("Plane %d (%s): %d non-empty cells\n", plane, names[plane], n)
		total += n
	}
	fmt.Printf("Total:   %d non-empty cells\n", total)
}

func cmdFlags(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: maptool flags <file.eflg> [tile-id]")
		os.Exit(1)
	}

	f, err := formats.ParseEFLGFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	flags := tile.Flags(f.Flags)

	if len(args) >= 2 {
		id, err := strconv.Atoi(args[1])
		if err != nil || id < 0 {
			fmt.Fprintf(os.Stderr, "Invalid tile id: %s\n", args[1])
			os.Exit(1)
		}
		fmt.Printf("Tile %d: flags 0x%04x\n", id, flags.Get(id))
		fmt.Printf("  higher: %v\n", flags.IsHigher(id))
		fmt.Printf("  table:  %v\n", flags.IsTable(id))
		return
	}

	higher, table := 0, 0
	for id := range f.Flags {
		if flags.IsHigher(id) {
			higher++
		}
		if flags.IsTable(id) {
			table++
		}
	}
	fmt.Printf("Flag table: %s\n", args[0])
	fmt.Printf("Version:    %s\n", f.Version)
	fmt.Printf("Entries:    %d\n", len(f.Flags))
	fmt.Printf("Higher:     %d\n", higher)
	fmt.Printf("Table:      %d\n", table)
}

func cmdSnapshot(args []string) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	tilesetPath := fs.String("tileset", "", "Path to tileset manifest")
	output := fs.String("o", "", "Output PNG path")
	scale := fs.Float64("scale", 1, "Output scale factor")
	fs.Parse(args)

	if *tilesetPath == "" || fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: maptool snapshot -tileset <t.yaml> [-o out.png] [-scale f] <file.emap>")
		os.Exit(1)
	}
	mapPath := fs.Arg(0)

	m, err := formats.ParseEMAPFile(mapPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	manifest, err := formats.ParseManifestFile(*tilesetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var loader bitmap.Loader
	bitmaps := make([]*bitmap.Resource, formats.BankCount)
	for set := 0; set < formats.BankCount; set++ {
		path := manifest.BankPath(set)
		if path == "" {
			continue
		}
		res := bitmap.New(path)
		if err := loader.LoadSync(res); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", path, err)
			os.Exit(1)
		}
		bitmaps[set] = res
	}

	ts := manifest.TileSize
	pixelW := int(m.Width) * ts
	pixelH := int(m.Height) * ts

	lower := &tilemap.RectLayer{}
	upper := &tilemap.RectLayer{}
	tm := tilemap.New(tilemap.Config{
		ScreenWidth:  pixelW,
		ScreenHeight: pixelH,
		TileWidth:    ts,
		TileHeight:   ts,
		Lower:        lower,
		Upper:        upper,
	})
	tm.SetData(int(m.Width), int(m.Height), m.Tiles)
	tm.SetWrap(m.HorizontalWrap, m.VerticalWrap)
	if fp := manifest.FlagPath(); fp != "" {
		f, err := formats.ParseEFLGFile(fp)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		tm.SetFlags(tile.Flags(f.Flags))
	}
	tm.SetBitmaps(bitmaps)
	tm.Paint()

	img := image.NewRGBA(image.Rect(0, 0, pixelW, pixelH))
	comp := softdraw.New(bitmaps)
	ox, oy := tm.LayerOffset()
	comp.Compose(img, lower.Rects(), int(ox), int(oy))
	comp.Compose(img, upper.Rects(), int(ox), int(oy))

	if *scale != 1 {
		sw := int(float64(pixelW) * *scale)
		sh := int(float64(pixelH) * *scale)
		if sw < 1 || sh < 1 {
			fmt.Fprintf(os.Stderr, "Invalid scale: %g\n", *scale)
			os.Exit(1)
		}
		scaled := image.NewRGBA(image.Rect(0, 0, sw, sh))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = scaled
	}

	outPath := *output
	if outPath == "" {
		outPath = strings.TrimSuffix(mapPath, ".emap") + ".png"
	}
	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%dx%d)\n", outPath, img.Bounds().Dx(), img.Bounds().Dy())
}
