package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/hailam/chesscore/internal/analysis"
	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/render"
	"github.com/hailam/chesscore/internal/storage"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	placement  = flag.String("placement", board.StartPlacement, "FEN piece placement to start from")
	moves      = flag.String("moves", "", "space separated moves given as tile pairs, e.g. \"e2e4 e7e5\"")
	pngPath    = flag.String("png", "", "write a PNG of the final position to this file")
	squareSize = flag.Int("square", 64, fmt.Sprintf("square size in pixels for -png (%d to %d)", render.MinSquareSize, render.MaxSquareSize))
	flip       = flag.Bool("flip", false, "draw the PNG from Black's side")
	dbDir      = flag.String("db", "", "badger database directory (\"default\" for the platform data dir)")
	saveName   = flag.String("save", "", "store the final position under this snapshot name")
	loadName   = flag.String("load", "", "start from a stored snapshot instead of -placement")
	list       = flag.Bool("list", false, "list stored snapshots and exit")
	verbose    = flag.Bool("verbose", false, "log database internals")
	trace      = flag.Bool("trace", false, "log check status after every accepted move")
)

func main() {
	flag.Parse()
	os.Exit(realMain())
}

// realMain runs the command and returns the process exit code. Deferred
// cleanup, such as flushing the CPU profile, completes before main exits.
func realMain() int {
	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Print("could not create CPU profile: ", err)
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Print("could not start CPU profile: ", err)
			return 1
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	if err := run(); err != nil {
		log.Printf("error: %v", err)
		return 1
	}
	return 0
}

func run() error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	if *list {
		return listSnapshots(store)
	}

	b, err := startingBoard(store)
	if err != nil {
		return err
	}

	var tracer analysis.Analyzer
	if *trace {
		cached := analysis.NewCached(analysis.Direct{}, 4096)
		defer func() { log.Printf("trace cache hit rate %.1f%%", cached.HitRate()) }()
		tracer = cached
	}

	result, last, err := applyMoves(b, *moves, tracer)
	if err != nil {
		return err
	}

	fmt.Print(b)
	fmt.Println()
	status := analysis.Direct{}.Analyze(b)
	for _, p := range []board.Player{board.White, board.Black} {
		s := status[p]
		if s.InCheck {
			result.InCheck = append(result.InCheck, p)
		}
		if s.Checkmate {
			result.Checkmate = append(result.Checkmate, p)
		}
		fmt.Printf("%s: check=%v checkmate=%v stalemate=%v legal moves=%d\n", p, s.InCheck, s.Checkmate, s.Stalemate(), s.LegalMoves)
	}

	if *pngPath != "" {
		if err := writePNG(b, last); err != nil {
			return err
		}
		log.Printf("wrote %s", *pngPath)
	}

	if store == nil {
		return nil
	}
	if *saveName != "" {
		if err := store.SaveSnapshot(*saveName, b); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		log.Printf("saved snapshot %q", *saveName)
	}
	return store.RecordResult(result)
}

// openStorage opens the database selected by -db, or returns nil when
// persistence was not requested.
func openStorage() (*storage.Storage, error) {
	switch {
	case *dbDir == "default":
		return storage.NewStorage(*verbose)
	case *dbDir != "":
		return storage.Open(*dbDir, *verbose)
	case *saveName != "" || *loadName != "" || *list:
		return nil, fmt.Errorf("-save, -load and -list require -db")
	}
	return nil, nil
}

func listSnapshots(store *storage.Storage) error {
	names, err := store.ListSnapshots()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func startingBoard(store *storage.Storage) (*board.Board, error) {
	if *loadName != "" {
		b, err := store.LoadSnapshot(*loadName)
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		return b, nil
	}

	b, err := board.ParsePlacement(*placement)
	if err != nil {
		return nil, fmt.Errorf("parse placement: %w", err)
	}
	return b, nil
}

// applyMoves plays each tile pair on b in order. Moves the board rejects are
// logged and skipped. It returns the tiles of the last accepted move. When
// tracer is non-nil the position is analysed after every accepted move.
func applyMoves(b *board.Board, list string, tracer analysis.Analyzer) (storage.Result, []board.Tile, error) {
	var result storage.Result
	var last []board.Tile

	for _, field := range strings.Fields(list) {
		if len(field) != 4 {
			return result, nil, fmt.Errorf("malformed move %q: want two tile names such as e2e4", field)
		}
		from, err := board.ParseTile(field[:2])
		if err != nil {
			return result, nil, err
		}
		to, err := board.ParseTile(field[2:])
		if err != nil {
			return result, nil, err
		}

		if !b.Move(from, to) {
			log.Printf("rejected move %s", field)
			result.Rejected++
			continue
		}
		result.MovesMade++
		last = []board.Tile{from, to}

		if tracer != nil {
			s := tracer.Analyze(b)
			log.Printf("%s: white check=%v mate=%v, black check=%v mate=%v", field,
				s[board.White].InCheck, s[board.White].Checkmate,
				s[board.Black].InCheck, s[board.Black].Checkmate)
		}
	}

	return result, last, nil
}

func writePNG(b *board.Board, highlight []board.Tile) error {
	r, err := render.NewRenderer(*squareSize)
	if err != nil {
		return err
	}
	defer r.Close()

	f, err := os.Create(*pngPath)
	if err != nil {
		return err
	}

	opts := render.Options{
		Flip:      *flip,
		Labels:    true,
		ShowCheck: true,
		Highlight: highlight,
	}
	if err := r.WritePNG(f, b, opts); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
