// uci.go implements the UCI line protocol, dispatching to the search
// engine on its own goroutine. Grounded on the teacher's zurichess/uci.go
// for the command dispatch shape and the idle-channel discipline that
// keeps info/bestmove lines from interleaving; pondering is dropped since
// it is an explicit non-goal.
package main

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"silverfish/engine"
)

// ErrQuit is returned by Execute for the "quit" command.
var ErrQuit = errors.New("quit")

// uciLogger formats engine.Stats/PV into `info` lines and writes them
// through the shared stdout writer.
type uciLogger struct {
	start time.Time
}

func (l *uciLogger) BeginSearch() { l.start = time.Now() }
func (l *uciLogger) EndSearch()   {}

func (l *uciLogger) PrintPV(stats engine.Stats, scoreCP int, pv []engine.Move) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "info depth %d nodes %d", stats.Depth, stats.Nodes)
	if stats.TTHits > 0 {
		fmt.Fprintf(&sb, " tt %d", stats.TTHits)
	}
	if stats.TBHits > 0 {
		fmt.Fprintf(&sb, " tb %d", stats.TBHits)
	}
	millis := stats.Elapsed.Milliseconds()
	best := "0000"
	if len(pv) > 0 {
		best = pv[0].UCI()
	}
	fmt.Fprintf(&sb, " time %d bestmove %s cp %d pv", millis, best, scoreCP)
	for _, m := range pv {
		fmt.Fprintf(&sb, " %s", m.UCI())
	}
	writeLine(sb.String())
}

// UCI owns the engine, the current position and the time control for an
// in-flight search.
type UCI struct {
	Engine *engine.Engine
	tt     *engine.HashTable
	state  engine.State
	tc     *engine.TimeControl

	// idle has capacity 1; filled while a search is running.
	idle chan struct{}
}

// NewUCI builds a ready-to-use UCI front-end. tbDir is the -t/--syzygy
// directory, or "" to disable tablebase probing.
func NewUCI(tbDir string) *UCI {
	tt := engine.NewHashTable(0)
	u := &UCI{
		tt:    tt,
		state: engine.NewState(),
		idle:  make(chan struct{}, 1),
	}
	e := engine.NewEngine(tt, &uciLogger{})
	e.Book = engine.BuildBook()
	if tbDir != "" {
		e.Options.Tablebase = engine.NewFileTablebase(tbDir)
	}
	u.Engine = e
	return u
}

var reCmd = regexp.MustCompile(`^[[:word:]]+`)

// Execute dispatches a single protocol line. It never panics on malformed
// input; an unknown or malformed command is silently ignored, per
// spec.md's forgiving-protocol philosophy.
func (u *UCI) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cmd := reCmd.FindString(line)
	if cmd == "" {
		return nil
	}

	switch cmd {
	case "uci":
		return u.uci()
	case "isready":
		return u.isready()
	case "quit":
		return ErrQuit
	case "stop":
		return u.stop()
	}

	// The remaining commands expect the engine to be idle.
	u.idle <- struct{}{}
	<-u.idle

	switch cmd {
	case "ucinewgame":
		return u.ucinewgame()
	case "position":
		return u.position(line)
	case "go":
		return u.goCmd(line)
	case "perft":
		return u.perft(line)
	case "eval":
		return u.eval()
	case "print":
		return u.print()
	case "setoption":
		return u.setoption(line)
	}
	return nil
}

func (u *UCI) uci() error {
	writeLine("id name silverfish")
	writeLine("id author silverfish contributors")
	writeLine("")
	writeLine("option name Hash type spin default 64 min 1 max 65536")
	writeLine("uciok")
	return nil
}

func (u *UCI) isready() error {
	writeLine("readyok")
	return nil
}

func (u *UCI) ucinewgame() error {
	u.state = engine.NewState()
	u.tt.Clear()
	return nil
}

func (u *UCI) position(line string) error {
	args := strings.Fields(line)[1:]
	if len(args) == 0 {
		return nil
	}

	var state engine.State
	var err error
	i := 0
	switch args[0] {
	case "startpos":
		state = engine.NewState()
		i = 1
	case "fen":
		i = 1
		for i < len(args) && args[i] != "moves" {
			i++
		}
		state, err = engine.FromFEN(strings.Join(args[1:i], " "))
	default:
		return nil
	}
	if err != nil {
		// InvalidFen: silently ignore the position command.
		return nil
	}

	if i < len(args) && args[i] == "moves" {
		for _, uciMove := range args[i+1:] {
			from, to, promo, perr := engine.ParseUCIMove(uciMove)
			if perr != nil {
				break
			}
			var ml engine.MoveList
			engine.GenerateMoves(&state, &ml)
			m, ok := findMove(&ml, from, to, promo)
			if !ok {
				break
			}
			child := state.Clone()
			if !child.MakeMove(m) {
				break
			}
			state = child
		}
	}

	u.state = state
	return nil
}

func findMove(ml *engine.MoveList, from, to engine.Square, promo engine.Figure) (engine.Move, bool) {
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		if m.From() == from && m.To() == to && m.Promotion() == promo {
			return m, true
		}
	}
	return engine.NoMove, false
}

func (u *UCI) goCmd(line string) error {
	args := strings.Fields(line)[1:]
	depth, movetime, wtime, btime, winc, binc := 0, 0, 0, 0, 0, 0
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			i++
			depth, _ = strconv.Atoi(args[i])
		case "movetime":
			i++
			movetime, _ = strconv.Atoi(args[i])
		case "wtime":
			i++
			wtime, _ = strconv.Atoi(args[i])
		case "btime":
			i++
			btime, _ = strconv.Atoi(args[i])
		case "winc":
			i++
			winc, _ = strconv.Atoi(args[i])
		case "binc":
			i++
			binc, _ = strconv.Atoi(args[i])
		}
	}

	remaining, inc := wtime, winc
	if u.state.ToMove == engine.Black {
		remaining, inc = btime, binc
	}
	u.tc = engine.NewTimeControl(depth, movetime, remaining, inc)

	u.idle <- struct{}{}
	go u.play()
	return nil
}

func (u *UCI) play() {
	best := u.Engine.Search(u.state, u.tc)
	writeLine(fmt.Sprintf("bestmove %s", best.UCI()))
	<-u.idle
}

func (u *UCI) stop() error {
	if u.tc != nil {
		u.tc.Stop()
	}
	u.idle <- struct{}{}
	<-u.idle
	return nil
}

func (u *UCI) perft(line string) error {
	args := strings.Fields(line)
	if len(args) < 2 {
		return nil
	}
	depth, err := strconv.Atoi(args[1])
	if err != nil || depth < 0 {
		return nil
	}
	moves, counts, total := engine.PerftDivide(&u.state, depth)
	for i, m := range moves {
		writeLine(fmt.Sprintf("%s: %d", m.UCI(), counts[i]))
	}
	writeLine(fmt.Sprintf("total: %d", total))
	return nil
}

func (u *UCI) eval() error {
	writeLine(fmt.Sprintf("cp %d", engine.RelativeEval(&u.state)))
	return nil
}

func (u *UCI) print() error {
	writeLine(u.state.FEN())
	for rank := 7; rank >= 0; rank-- {
		var sb strings.Builder
		for file := 0; file <= 7; file++ {
			p := u.state.PieceAt(engine.RankFile(rank, file))
			sb.WriteString(p.String())
			sb.WriteByte(' ')
		}
		writeLine(sb.String())
	}
	return nil
}

var reOption = regexp.MustCompile(`^setoption\s+name\s+(.+?)(\s+value\s+(.*))?$`)

func (u *UCI) setoption(line string) error {
	m := reOption.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	switch m[1] {
	case "Clear Hash":
		u.tt.Clear()
	case "Hash":
		if len(m) >= 4 {
			if sizeMB, err := strconv.Atoi(m[3]); err == nil {
				u.tt = engine.NewHashTable(sizeMB * 1024)
				u.Engine.TT = u.tt
			}
		}
	}
	return nil
}
