package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/kr/pretty"
	"github.com/logrusorgru/aurora"
	"github.com/osuushi/planar"
	"github.com/osuushi/planar/algorithm"
	"github.com/osuushi/planar/cleanup"
	"github.com/osuushi/planar/feature"
	"github.com/osuushi/planar/validity"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app     = kingpin.New("planar", "Planar topology tools.")
	verbose = app.Flag("verbose", "Log decisions as they're made.").Short('v').Bool()
	scale   = app.Flag("precision", "Round computed coordinates to multiples of 1/scale. 0 keeps full precision.").Default("0").Float64()

	validateCmd       = app.Command("validate", "Check a WKT geometry for validity.")
	validateAll       = validateCmd.Flag("all", "List every problem instead of stopping at the first.").Bool()
	selfTouchingHoles = validateCmd.Flag("self-touching-holes", "Accept rings that touch themselves to form a hole.").Bool()
	validateFile      = validateCmd.Arg("file", "WKT file, or - for stdin.").Default("-").String()

	nodeCmd  = app.Command("node", "Node a WKT geometry into a planar graph.")
	nodeDraw = nodeCmd.Flag("draw", "Draw the graph to a PNG file, or - to show it in the terminal.").String()
	nodeSize = nodeCmd.Flag("size", "Size of the drawing in pixels.").Default("800").Int()
	nodeDump = nodeCmd.Flag("dump", "Print the whole graph structure.").Bool()
	nodeFile = nodeCmd.Arg("file", "WKT file, or - for stdin.").Default("-").String()

	cleanCmd      = app.Command("clean", "Clean up a GeoJSON feature collection of lines.")
	cleanConfig   = cleanCmd.Flag("config", "YAML cleanup config.").ExistingFile()
	cleanTypeKey  = cleanCmd.Flag("type-key", "Property holding each feature's type.").Default("type").String()
	cleanTypes    = cleanCmd.Flag("type", "Only clean features of this type. Repeatable.").Strings()
	cleanSnap     = cleanCmd.Flag("snap-tolerance", "Override the config's snap tolerance.").Default("-1").Float64()
	cleanIn       = cleanCmd.Arg("in", "GeoJSON input.").Required().ExistingFile()
	cleanOut      = cleanCmd.Arg("out", "GeoJSON output. Defaults to stdout.").String()
	cleanFailures = cleanCmd.Flag("fail-on-review", "Exit with status 1 if anything needs review.").Bool()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	planar.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	pm := algorithm.Fixed(*scale)

	var err error
	switch command {
	case validateCmd.FullCommand():
		err = runValidate(pm)
	case nodeCmd.FullCommand():
		err = runNode(pm)
	case cleanCmd.FullCommand():
		err = runClean()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(err.Error()))
		os.Exit(1)
	}
}

func readWKT(path string) (orb.Geometry, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading geometry")
	}
	g, err := wkt.Unmarshal(string(data))
	return g, errors.Wrap(err, "parsing WKT")
}

func runValidate(pm algorithm.PrecisionModel) error {
	g, err := readWKT(*validateFile)
	if err != nil {
		return err
	}
	opts := validity.Options{
		ShortCircuit:                     !*validateAll,
		SelfTouchingRingFormingHoleValid: *selfTouchingHoles,
		Precision:                        pm,
	}
	problems, err := planar.Validate(g, opts)
	if err != nil {
		return err
	}
	if len(problems) == 0 {
		fmt.Println(aurora.Green("valid"))
		return nil
	}
	for _, p := range problems {
		fmt.Println(aurora.Yellow(p.Error()))
	}
	return errors.Errorf("%d problem(s) found", len(problems))
}

func runNode(pm algorithm.PrecisionModel) error {
	g, err := readWKT(*nodeFile)
	if err != nil {
		return err
	}
	pg, err := planar.Node(g, pm)
	if err != nil {
		return err
	}

	if *nodeDump {
		pretty.Println(pg)
	} else {
		fmt.Print(pg)
	}
	switch *nodeDraw {
	case "":
	case "-":
		return pg.Cat(*nodeSize)
	default:
		return pg.SavePNG(*nodeDraw, *nodeSize)
	}
	return nil
}

func runClean() error {
	cfg := cleanup.DefaultConfig()
	if *cleanConfig != "" {
		var err error
		if cfg, err = cleanup.LoadConfigFile(*cleanConfig); err != nil {
			return err
		}
	}
	if *cleanSnap >= 0 {
		cfg.SnapTolerance = *cleanSnap
	}
	if len(*cleanTypes) > 0 {
		cfg.FeatureTypes = *cleanTypes
	}

	data, err := os.ReadFile(*cleanIn)
	if err != nil {
		return errors.Wrap(err, "reading features")
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return errors.Wrapf(err, "parsing %s", *cleanIn)
	}
	g, err := feature.FromGeoJSON(fc, *cleanTypeKey, cfg.Factory())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	events := cleanup.ReporterFunc(func(e cleanup.Event) {
		fmt.Fprintln(os.Stderr, aurora.Yellow(e.String()))
	})
	stats, err := cleanup.Run(ctx, g, cfg, events)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, aurora.Green(stats.String()))

	out, err := g.ToGeoJSON().MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "encoding features")
	}
	if *cleanOut == "" {
		_, err = os.Stdout.Write(append(out, '\n'))
	} else {
		err = os.WriteFile(*cleanOut, out, 0o644)
	}
	if err != nil {
		return errors.Wrap(err, "writing features")
	}
	if *cleanFailures && stats.Reviewed > 0 {
		return errors.Errorf("%d spot(s) need review", stats.Reviewed)
	}
	return nil
}
