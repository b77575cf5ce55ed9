package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/laserpunk/internal/laser"
	"github.com/vovakirdan/laserpunk/internal/rooms"
	"github.com/vovakirdan/laserpunk/internal/watch"
)

var (
	flagRotate []string
	flagToggle []string
	flagWatch  bool
	flagPlain  bool
)

var traceCmd = &cobra.Command{
	Use:   "trace <room>",
	Short: "Print a room with its beam",
	Long: `Build a room, trace its laser and print the grid with the beam drawn
over the floor, followed by every beam run and door.

--rotate x,y turns the redirector at (x,y) clockwise; append :left to turn
it the other way. --toggle x,y raises or lowers a blocker. Rotations are
applied in order, then toggles. With --watch the room is printed again
whenever a file under --levels changes.

Examples:
  laserpunk trace room_1
  laserpunk trace room_1 --rotate 5,3 --rotate 5,3:left
  laserpunk trace lobby --levels ./my-rooms --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

func init() {
	traceCmd.Flags().StringArrayVar(&flagRotate, "rotate", nil, "Rotate the redirector at x,y[:left]")
	traceCmd.Flags().StringArrayVar(&flagToggle, "toggle", nil, "Toggle the blocker at x,y")
	traceCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reprint when room files change (needs --levels)")
	traceCmd.Flags().BoolVar(&flagPlain, "plain", false, "Disable colours")
}

// roomOp is one player manipulation given on the command line.
type roomOp struct {
	at     laser.Coord
	toggle bool
	left   bool
}

func parseCoord(s string) (laser.Coord, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return laser.Coord{}, fmt.Errorf("bad coordinate %q, want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return laser.Coord{}, fmt.Errorf("bad coordinate %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return laser.Coord{}, fmt.Errorf("bad coordinate %q: %w", s, err)
	}
	return laser.C(x, y), nil
}

func parseOps(rotate, toggle []string) ([]roomOp, error) {
	ops := make([]roomOp, 0, len(rotate)+len(toggle))
	for _, s := range rotate {
		coord, dir, _ := strings.Cut(s, ":")
		c, err := parseCoord(coord)
		if err != nil {
			return nil, err
		}
		var left bool
		switch strings.ToLower(dir) {
		case "", "right", "r":
		case "left", "l":
			left = true
		default:
			return nil, fmt.Errorf("bad rotation %q, want left or right", dir)
		}
		ops = append(ops, roomOp{at: c, left: left})
	}
	for _, s := range toggle {
		c, err := parseCoord(s)
		if err != nil {
			return nil, err
		}
		ops = append(ops, roomOp{at: c, toggle: true})
	}
	return ops, nil
}

// traceRoom builds def, applies ops and prints the result.
func traceRoom(w io.Writer, def *rooms.Definition, ops []roomOp, d *dumper) error {
	room, err := def.Build()
	if err != nil {
		return err
	}
	for _, op := range ops {
		if op.toggle {
			_, err = room.Toggle(op.at)
		} else {
			_, err = room.Rotate(op.at, op.left)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", op.at, err)
		}
	}
	d.Room(w, room)
	return nil
}

func runTrace(_ *cobra.Command, args []string) error {
	roomID := args[0]
	ops, err := parseOps(flagRotate, flagToggle)
	if err != nil {
		return err
	}
	camp, err := openCampaign()
	if err != nil {
		return err
	}
	d := newDumper(flagPlain)

	load := func() (*rooms.Definition, error) {
		if camp.loader != nil {
			// Other broken rooms should not hide this one.
			return camp.loader.LoadByID(roomID)
		}
		return camp.catalog.Definition(roomID)
	}

	def, err := load()
	if err != nil {
		return err
	}
	if err := traceRoom(os.Stdout, def, ops, d); err != nil {
		return err
	}
	if !flagWatch {
		return nil
	}
	if camp.dir == "" {
		return errors.New("--watch needs a --levels directory")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(os.Stderr, "watching", camp.dir, "- press Ctrl+C to stop")
	return watch.Dir(ctx, camp.dir, func(path string) {
		camp.loader.Reload()
		fmt.Printf("\n--- %s changed ---\n", filepath.Base(path))
		def, err := load()
		if err == nil {
			err = traceRoom(os.Stdout, def, ops, d)
		}
		if err != nil {
			fmt.Println(d.paint(d.colorBeam, err.Error()))
		}
	}, logger)
}
