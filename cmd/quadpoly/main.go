package main

import (
	"io"
	"os"

	"github.com/kr/pretty"
	"github.com/osuushi/quadpoly"
	"github.com/osuushi/quadpoly/geo2d"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v3"
)

var (
	app          = kingpin.New("quadpoly", "Intersect polygons made of segments and arcs of circle.")
	configPath   = app.Flag("config", "YAML settings file.").String()
	precision    = app.Flag("precision", "Distance under which two points are the same.").Float64()
	arcPrecision = app.Flag("arc-precision", "Tolerance of the colinear and concentric tests.").Float64()
	abs          = app.Flag("abs", "Compute in the frame where both polygons fit a unit box.").Bool()
	pngPath      = app.Flag("png", "Render the operands and the result to this PNG file.").String()
	imgcat       = app.Flag("imgcat", "Display the rendering in the terminal (iTerm only).").Bool()
	xfigPath     = app.Flag("xfig", "Dump the first two polygons, split against each other, to this Xfig file.").String()
	logLevel     = app.Flag("log-level", "Log level on stderr.").String()
	verbose      = app.Flag("verbose", "Dump the report on stderr.").Short('v').Bool()
	inputPath    = app.Flag("input", "Polygons file, stdin when unset.").Short('i').String()

	areaCmd      = app.Command("area", "Area and barycenter of the intersection of the first two polygons.")
	perimeterCmd = app.Command("perimeter", "Split of the boundaries of the first two polygons.")
	polygonsCmd  = app.Command("polygons", "Polygons of the intersection of the first two polygons.")
	butterflyCmd = app.Command("butterfly", "Self intersection check of every polygon.")
)

// Polygons are read on stdin, see readPolygons for the format. The report is
// written as YAML on stdout.
func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))
	s, err := loadSettings(*configPath)
	app.FatalIfError(err, "")
	s = applyFlags(s)
	c, err := s.geometryConfig()
	app.FatalIfError(err, "")

	in := io.Reader(os.Stdin)
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		app.FatalIfError(err, "")
		defer f.Close()
		in = f
	}
	inputs, err := readPolygons(in)
	app.FatalIfError(err, "")
	polys := make([]*geo2d.QuadraticPolygon, len(inputs))
	for i, ip := range inputs {
		polys[i], err = ip.build(c)
		app.FatalIfError(err, "")
	}
	c.Log().Debugf("read %d polygons", len(polys))

	r, results, err := run(cmd, c, s, polys)
	app.FatalIfError(err, "")
	if *verbose {
		pretty.Fprintf(os.Stderr, "%# v\n", r)
	}
	app.FatalIfError(writeOutputs(c, s, polys, results), "")
	app.FatalIfError(yaml.NewEncoder(os.Stdout).Encode(r), "")
}

func applyFlags(s settings) settings {
	if *precision != 0 {
		s.Precision = *precision
	}
	if *arcPrecision != 0 {
		s.ArcPrecision = *arcPrecision
	}
	if *abs {
		s.Abs = true
	}
	if *logLevel != "" {
		s.LogLevel = *logLevel
	}
	if *pngPath != "" {
		s.PNG = *pngPath
	}
	if *xfigPath != "" {
		s.Xfig = *xfigPath
	}
	return s
}

func operands(polys []*geo2d.QuadraticPolygon) (*geo2d.QuadraticPolygon, *geo2d.QuadraticPolygon, error) {
	if len(polys) < 2 {
		return nil, nil, errors.Errorf("need two polygons, got %d", len(polys))
	}
	return polys[0], polys[1], nil
}

// run computes the report of cmd, and the polygons to render.
func run(cmd string, c *geo2d.Config, s settings, polys []*geo2d.QuadraticPolygon) (*report, []*geo2d.QuadraticPolygon, error) {
	r := &report{Command: cmd}
	if cmd == butterflyCmd.FullCommand() {
		for i, p := range polys {
			butterfly, err := quadpoly.IsButterfly(c, p)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "polygon %d", i)
			}
			r.Butterfly = append(r.Butterfly, butterfly)
		}
		return r, nil, nil
	}
	p1, p2, err := operands(polys)
	if err != nil {
		return nil, nil, err
	}
	switch cmd {
	case areaCmd.FullCommand():
		intersectBarycenter := quadpoly.IntersectBarycenter
		if s.Abs {
			intersectBarycenter = quadpoly.IntersectBarycenterAbs
		}
		area, x, y, err := intersectBarycenter(c, p1, p2)
		if err != nil {
			return nil, nil, err
		}
		r.Area = &area
		r.Barycenter = []float64{x, y}
		return r, nil, nil
	case perimeterCmd.FullCommand():
		split, err := quadpoly.IntersectPerimeter(c, p1, p2)
		if err != nil {
			return nil, nil, err
		}
		r.Perimeter = perimeterReportOf(split)
		return r, nil, nil
	case polygonsCmd.FullCommand():
		results, err := quadpoly.Intersect(c, p1, p2)
		if err != nil {
			return nil, nil, err
		}
		for _, p := range results {
			r.Polygons = append(r.Polygons, polygonReportOf(p))
		}
		return r, results, nil
	}
	return nil, nil, errors.Errorf("unknown command %q", cmd)
}

func writeOutputs(c *geo2d.Config, s settings, polys, results []*geo2d.QuadraticPolygon) error {
	drawn := append(append([]*geo2d.QuadraticPolygon{}, polys...), results...)
	if s.PNG != "" {
		if err := geo2d.SavePNG(s.PNG, s.PNGScale, drawn...); err != nil {
			return errors.Wrap(err, "writing png")
		}
	}
	if *imgcat {
		geo2d.DbgDraw(s.PNGScale, drawn...)
	}
	if s.Xfig != "" && len(polys) >= 2 {
		f, err := os.Create(s.Xfig)
		if err != nil {
			return errors.Wrap(err, "writing xfig")
		}
		defer f.Close()
		if err := dumpSplitPair(f, c, polys[0], polys[1]); err != nil {
			return errors.Wrap(err, "writing xfig")
		}
	}
	return nil
}
