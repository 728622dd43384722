// Command silverfish is a UCI chess engine. It reads commands on stdin
// and writes responses on stdout. Grounded on the teacher's
// zurichess/main.go: flag parsing, a buffered stdin line loop, and
// log configured to prefix every diagnostic line with "info string " so
// it is itself valid, ignorable UCI output.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
)

var (
	buildVersion = "(devel)"
	buildTime    = "(unknown)"

	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	version    = flag.Bool("version", false, "print version and exit")
	tbDir      = flag.String("t", "", "endgame tablebase directory")
)

func main() {
	flag.StringVar(tbDir, "syzygy", "", "endgame tablebase directory (alias of -t)")
	flag.Parse()

	fmt.Printf("silverfish %s, built with %s at %s, running on %s\n",
		buildVersion, runtime.Version(), buildTime, runtime.GOARCH)
	if *version {
		return
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	log.SetOutput(os.Stdout)
	log.SetPrefix("info string ")
	log.SetFlags(log.Lshortfile)

	u := NewUCI(*tbDir)
	reader := bufio.NewReader(os.Stdin)
	for {
		line, _, err := reader.ReadLine()
		if err != nil {
			log.Println("error:", err)
			return
		}
		if err := u.Execute(string(line)); err != nil {
			if err == ErrQuit {
				return
			}
			log.Println("error:", err)
		}
	}
}
