package main

import (
	"flag"
	"log"
	"time"
)

func main() {
	levelName := flag.String("level", "arena", "level name in levels/ (basename, .json optional)")
	ticks := flag.Int("ticks", 600, "number of fixed ticks to simulate; 0 runs until interrupted")
	dt := flag.Float64("dt", 0, "tick length in seconds (default 1/tick_rate from engine.yaml)")
	watch := flag.Bool("watch", false, "reload prefabs/ specs and scripts while running")
	realtime := flag.Bool("realtime", false, "pace ticks to wall-clock time")
	debug := flag.Bool("debug", false, "enable debug mode")
	flag.Parse()

	log.SetPrefix("raysweep: ")
	if *ticks == 0 && !*realtime {
		*realtime = true
	}

	game, err := NewGame(*levelName, *dt, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	var pace *time.Ticker
	if *realtime {
		pace = time.NewTicker(time.Duration(game.dt * float64(time.Second)))
		defer pace.Stop()
	}

	for i := 0; *ticks == 0 || i < *ticks; i++ {
		if err := game.Update(); err != nil {
			game.Report()
			log.Fatal(err)
		}
		if pace != nil {
			<-pace.C
		}
	}
	game.Report()
}
