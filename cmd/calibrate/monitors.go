package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/cynageos/calibrate/internal/canvas"
	"github.com/cynageos/calibrate/internal/display"
	"github.com/cynageos/calibrate/internal/hyprconf"
)

// moveArg is one --move NAME=X,Y.
type moveArg struct {
	name string
	x, y int
}

// moveFlags collects repeated --move flags.
type moveFlags []moveArg

func (f *moveFlags) String() string {
	parts := make([]string, 0, len(*f))
	for _, m := range *f {
		parts = append(parts, fmt.Sprintf("%s=%d,%d", m.name, m.x, m.y))
	}
	return strings.Join(parts, " ")
}

func (f *moveFlags) Set(value string) error {
	m, err := parseMove(value)
	if err != nil {
		return err
	}
	*f = append(*f, m)
	return nil
}

func parseMove(value string) (moveArg, error) {
	name, pos, ok := strings.Cut(value, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return moveArg{}, fmt.Errorf("move %q: expected NAME=X,Y", value)
	}
	xs, ys, ok := strings.Cut(pos, ",")
	if !ok {
		return moveArg{}, fmt.Errorf("move %q: expected NAME=X,Y", value)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return moveArg{}, fmt.Errorf("move %q: bad x: %w", value, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return moveArg{}, fmt.Errorf("move %q: bad y: %w", value, err)
	}
	return moveArg{name: name, x: x, y: y}, nil
}

// stringList collects repeated string flags.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("empty value")
	}
	*l = append(*l, value)
	return nil
}

func printMonitorsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  calibrate monitors list [--path PATH] [--json]")
	fmt.Fprintln(w, "  calibrate monitors save [--path PATH] [--output FILE] [--yes] [--dry-run] [--legacy]")
	fmt.Fprintln(w, "                          [--move NAME=X,Y]... [--rotate NAME]...")
}

func runMonitors(args []string) int {
	if len(args) == 0 {
		printMonitorsUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "list":
		return runMonitorsList(args[1:])
	case "save":
		return runMonitorsSave(args[1:])
	case "help", "-h", "--help":
		printMonitorsUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown monitors command: %s\n\n", args[0])
		printMonitorsUsage(os.Stderr)
		return 2
	}
}

type monitorJSON struct {
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Rotation int    `json:"rotation"`
	Line     string `json:"line"`
}

func runMonitorsList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/calibrate/config.yaml)")
	jsonOut := fs.Bool("json", false, "Output as JSON")
	verbose := fs.Bool("v", false, "Debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config
	logger := newLogger(os.Stderr, cfg, *verbose)

	backend, err := newBackend(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	records, err := backend.Monitors(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	reg := display.NewRegistry(records)
	format := cfg.Format()

	if *jsonOut {
		out := make([]monitorJSON, 0, reg.Len())
		for _, rec := range reg.Records() {
			out = append(out, monitorJSON{
				Name:     rec.Name,
				Width:    rec.Width,
				Height:   rec.Height,
				X:        rec.X,
				Y:        rec.Y,
				Rotation: rec.Rotation.Degrees(),
				Line:     format.Line(rec),
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	if reg.Len() == 0 {
		fmt.Println("No displays reported")
		return 0
	}
	fmt.Printf("Backend: %s\n\n", backend.Name())
	for _, rec := range reg.Records() {
		fmt.Printf("  %-12s %5dx%-5d at %6d,%-6d %s\n", rec.Name, rec.Width, rec.Height, rec.X, rec.Y, rec.Rotation)
	}
	return 0
}

// applyEdits runs --move and --rotate through the canvas model so the
// result obeys the same clamping as the editor.
func applyEdits(m *canvas.Model, moves moveFlags, rotations stringList) error {
	for _, mv := range moves {
		if _, err := m.PlaceReal(mv.name, mv.x, mv.y); err != nil {
			return fmt.Errorf("move %s: %w", mv.name, err)
		}
	}
	for _, name := range rotations {
		if _, err := m.RotateNext(name); err != nil {
			return fmt.Errorf("rotate %s: %w", name, err)
		}
	}
	return nil
}

// confirmWrite asks before overwriting. It is replaced in tests.
var confirmWrite = func(p hyprconf.Preview) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errors.New("refusing to write without --yes on a non-interactive terminal")
	}
	ok := false
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Overwrite %s?", p.Path)).
		Description("The compositor will be asked to reload afterwards.").
		Affirmative("Write").
		Negative("Cancel").
		Value(&ok).
		Run()
	return ok, err
}

func runMonitorsSave(args []string) int {
	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/calibrate/config.yaml)")
	output := fs.String("output", "", "Monitor config to write (default: monitor_config)")
	yes := fs.Bool("yes", false, "Write without asking")
	dryRun := fs.Bool("dry-run", false, "Print the monitor lines and exit")
	legacy := fs.Bool("legacy", false, "Omit the transform field")
	verbose := fs.Bool("v", false, "Debug logging")
	var moves moveFlags
	var rotations stringList
	fs.Var(&moves, "move", "Place a display at real coordinates: NAME=X,Y (repeatable)")
	fs.Var(&rotations, "rotate", "Rotate a display by 90° (repeatable)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config
	logger := newLogger(os.Stderr, cfg, *verbose)

	backend, err := newBackend(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	ctx := context.Background()
	records, err := backend.Monitors(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	m := canvas.New(cfg.Geometry(), display.NewRegistry(records))
	if err := applyEdits(m, moves, rotations); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	saver, cleanup, err := newSaver(cfg, backend, *output, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cleanup()
	if *legacy {
		saver.Format = hyprconf.Legacy()
	}

	preview, err := saver.Preview(m.Snapshot())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("# %s\n", preview.Path)
	fmt.Print(preview.Next)
	if !preview.Changed() {
		fmt.Println("# unchanged")
	}
	if *dryRun {
		return 0
	}

	if !*yes {
		ok, err := confirmWrite(preview)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if !ok {
			fmt.Println("Cancelled")
			return 0
		}
	}

	result, err := saver.Commit(ctx, preview.Next)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(result.String())

	if err := saver.Reload(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: reload failed: %v\n", err)
	}
	return 0
}
