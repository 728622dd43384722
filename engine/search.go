// search.go is the iterative-deepening PVS negamax search: quiescence,
// transposition table, killer/history ordering, PV following and
// cooperative time/stop control. Grounded on the teacher's engine/engine.go
// for the Engine/Options/Stats/Logger shape and its stop-channel polling
// idiom, but the search algorithm itself follows spec.md's simpler,
// explicitly fixed contract — no null-move pruning, no late-move
// reductions, no aspiration windows, no futility pruning. Those are
// features of the teacher's searchTree that this design's contract does
// not specify, so they are intentionally not carried; the closest pack
// grounding for this simpler shape is algerbrex-Blunder's
// core/search.go, whose negamax/quiescence/TT/killer/history loop has the
// same silhouette as the one below.
package engine

import "time"

// MATE must be comfortably larger than any plausible material+PST
// evaluation so alpha-beta never mistakes a deep eval for a mate score.
const MATE = 30000

// nodeCheckInterval is how often (in nodes) the search polls the clock
// and stop flag.
const nodeCheckInterval = 2048

// Options configures a search.
type Options struct {
	// MaxDepth bounds iterative deepening; 0 (or >MaxPly) means MaxPly.
	MaxDepth int
	// Tablebase is consulted whenever <=MaxTablebasePieces remain on the
	// board. NullTablebase{} (the zero value of the interface is nil,
	// which ShouldProbe also treats as disabled) disables probing.
	Tablebase Tablebase
}

// Stats reports search progress to the Logger.
type Stats struct {
	Nodes   int64
	TTHits  int64
	TBHits  int64
	Depth   int
	Elapsed time.Duration
}

// Logger receives search progress. The core never writes to stdout
// directly; the UCI layer supplies a concrete Logger that formats `info`
// lines.
type Logger interface {
	BeginSearch()
	EndSearch()
	PrintPV(stats Stats, scoreCP int, pv []Move)
}

// NulLogger discards everything, used by callers (tests, perft) that do
// not want search progress reported.
type NulLogger struct{}

func (NulLogger) BeginSearch()               {}
func (NulLogger) EndSearch()                 {}
func (NulLogger) PrintPV(Stats, int, []Move) {}

// Engine owns the transposition table, move-ordering heuristics and
// per-search state. One Engine can run many searches sequentially; it is
// not safe for concurrent Search calls.
type Engine struct {
	Options Options
	Log     Logger
	TT      *HashTable
	Book    *Book

	Stats Stats

	history      History
	killers      Killers
	tc           *TimeControl
	depthDone    int
	tbRootMove   Move
	tbRootActive bool
}

// NewEngine returns an Engine backed by tt, reporting progress through log.
// A nil log is replaced with NulLogger.
func NewEngine(tt *HashTable, log Logger) *Engine {
	if log == nil {
		log = NulLogger{}
	}
	return &Engine{TT: tt, Log: log, Options: Options{Tablebase: NullTablebase{}}}
}

// Search runs iterative deepening from root under tc and returns the best
// move found. It always returns some legal move once at least one ply has
// completed (or the book/tablebase short-circuits immediately).
func (e *Engine) Search(root State, tc *TimeControl) Move {
	if e.Book != nil {
		if m, ok := e.Book.Lookup(&root); ok {
			return m
		}
	}

	e.tc = tc
	e.Stats = Stats{}
	e.history = History{}
	e.killers = Killers{}
	e.depthDone = 0
	e.tbRootMove = NoMove
	e.tbRootActive = false

	maxDepth := e.Options.MaxDepth
	if maxDepth <= 0 || maxDepth > MaxPly {
		maxDepth = MaxPly
	}
	if tc.Depth > 0 && tc.Depth < maxDepth {
		maxDepth = tc.Depth
	}

	start := time.Now()
	e.Log.BeginSearch()
	defer e.Log.EndSearch()

	var best Move
	var bestPV PVLine
	for depth := 1; depth <= maxDepth; depth++ {
		var pv PVLine
		score := e.negamax(&root, -MATE, MATE, depth, 0, true, &bestPV, &pv)

		if e.tbRootActive {
			return e.tbRootMove
		}
		if tc.Stopped() && e.depthDone > 0 {
			break
		}
		e.depthDone = depth

		if pv.Best() != NoMove {
			best = pv.Best()
			bestPV = pv
		}

		e.Stats.Depth = depth
		e.Stats.Elapsed = time.Since(start)
		e.Log.PrintPV(e.Stats, score, bestPV.Moves())

		if score >= MATE-100 || score <= -MATE+100 {
			break
		}
		if tc.Stopped() {
			break
		}
	}
	return best
}

func (e *Engine) shouldStop() bool {
	return e.Stats.Nodes%nodeCheckInterval == 0 && e.tc.Stopped() && e.depthDone > 0
}

// negamax implements the contract of spec.md §4.9. priorPV/onPV carry the
// previous iteration's principal variation down the tree for move
// ordering and ply-local PV tracking; pv is filled with this node's own
// line before returning.
func (e *Engine) negamax(s *State, alpha, beta, depth, ply int, onPV bool, priorPV *PVLine, pv *PVLine) int {
	if e.shouldStop() {
		return alpha
	}
	if ply >= MaxPly {
		return RelativeEval(s)
	}

	if s.IsInCheck(s.ToMove) {
		depth++
	}

	if entry, ok := e.TT.Get(s.Hash); ok && entry.depth >= depth {
		e.Stats.TTHits++
		switch entry.bound {
		case Exact:
			return entry.score
		case LowerBound:
			if entry.score > alpha {
				alpha = entry.score
			}
		case UpperBound:
			if entry.score < beta {
				beta = entry.score
			}
		}
		if alpha >= beta {
			return entry.score
		}
	}

	if ShouldProbe(e.Options.Tablebase, s) {
		if from, to, promo, dtz, err := e.Options.Tablebase.Probe(s); err == nil {
			e.Stats.TBHits++
			score := tablebaseScore(ply, dtz)
			move := NewTablebaseMove(from, to, promo)
			e.TT.Put(s.Hash, score, MaxPly, Exact, move)
			if ply == 0 {
				e.tbRootMove = move
				e.tbRootActive = true
			}
			return score
		}
	}

	if depth == 0 {
		return e.quiescence(s, alpha, beta, ply)
	}

	e.Stats.Nodes++
	if ply > 0 && ply%2 == 0 && s.IsRepetition() {
		return 0
	}

	var ml MoveList
	GenerateMoves(s, &ml)

	pvMove := NoMove
	if onPV && priorPV != nil && ply < priorPV.Len() {
		pvMove = priorPV.At(ply)
	}
	OrderMoves(s, &ml, pvMove, &e.killers, ply, &e.history)

	origAlpha := alpha
	legal := 0
	var best Move

	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		child := s.Clone()
		if !child.MakeMove(m) {
			continue
		}
		legal++
		childOnPV := onPV && pvMove != NoMove && m == pvMove

		var childPV PVLine
		var score int
		if legal == 1 {
			score = -e.negamax(&child, -beta, -alpha, depth-1, ply+1, childOnPV, priorPV, &childPV)
		} else {
			score = -e.negamax(&child, -alpha-1, -alpha, depth-1, ply+1, childOnPV, priorPV, &childPV)
			if score > alpha && score < beta {
				childPV.Clear()
				score = -e.negamax(&child, -beta, -alpha, depth-1, ply+1, childOnPV, priorPV, &childPV)
			}
		}

		if score >= beta {
			if !m.IsCapture() {
				e.killers.Add(ply, m)
			}
			e.TT.Put(s.Hash, beta, depth, LowerBound, m)
			return beta
		}
		if score > alpha {
			if !m.IsCapture() {
				e.history.Add(s.ToMove, m, depth)
			}
			pv.Set(m, &childPV)
			best = m
			alpha = score
		}
	}

	if legal == 0 {
		if s.IsInCheck(s.ToMove) {
			return -MATE + ply
		}
		return 0
	}

	bound := Exact
	if alpha == origAlpha {
		bound = UpperBound
	}
	e.TT.Put(s.Hash, alpha, depth, bound, best)
	return alpha
}

// quiescence resolves tactical noise at the search horizon: stand-pat plus
// captures only, no TT writes, no mate detection (the full search already
// handles mates one ply up).
func (e *Engine) quiescence(s *State, alpha, beta, ply int) int {
	if e.shouldStop() {
		return alpha
	}
	if ply >= MaxPly {
		return RelativeEval(s)
	}
	if ShouldProbe(e.Options.Tablebase, s) {
		if _, _, _, dtz, err := e.Options.Tablebase.Probe(s); err == nil {
			e.Stats.TBHits++
			return tablebaseScore(ply, dtz)
		}
	}

	e.Stats.Nodes++
	standPat := RelativeEval(s)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	var ml MoveList
	GenerateMoves(s, &ml)
	OrderMoves(s, &ml, NoMove, &e.killers, min(ply, MaxPly-1), &e.history)

	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		if !m.IsCapture() {
			continue
		}
		child := s.Clone()
		if !child.MakeMove(m) {
			continue
		}
		score := -e.quiescence(&child, -beta, -alpha, ply+1)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func tablebaseScore(ply, dtz int) int {
	switch {
	case dtz > 0:
		return -MATE + ply + dtz
	case dtz < 0:
		return MATE - ply + dtz
	default:
		return 0
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
