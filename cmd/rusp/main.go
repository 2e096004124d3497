package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/deosjr/rusp/lisp"
	"github.com/deosjr/rusp/prelude"
	"github.com/deosjr/rusp/repl"
)

func main() {
	configPath := flag.String("config", "~/.rusp.yaml", "path to the YAML config file")
	verbose := flag.Bool("v", false, "print extra information")
	maxDepth := flag.Int("max-depth", -1, "maximum evaluation depth, 0 disables the limit (overrides config)")
	noPrelude := flag.Bool("no-prelude", false, "do not load the list and number prelude")
	writeConfig := flag.String("write-config", "", "write the effective config to this path and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] [file ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	cfg, err := repl.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(level)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if *maxDepth >= 0 {
		cfg.MaxDepth = *maxDepth
	}
	if *writeConfig != "" {
		if err := repl.WriteConfig(cfg, *writeConfig); err != nil {
			log.Fatal(err)
		}
		return
	}
	log.WithFields(logrus.Fields{"config": *configPath, "max_depth": cfg.MaxDepth}).Debug("starting")

	l := lisp.New(lisp.WithLogger(log), lisp.WithMaxDepth(cfg.MaxDepth))
	if !*noPrelude {
		if err := prelude.Load(l); err != nil {
			log.Fatal(err)
		}
	}
	if flag.NArg() > 0 {
		for _, filename := range flag.Args() {
			if err := l.LoadFile(filename); err != nil {
				log.WithField("file", filename).Error(err)
				os.Exit(1)
			}
		}
		return
	}
	if err := repl.NewShell(l, cfg, log, os.Stdout).Run(); err != nil {
		log.Fatal(err)
	}
}
