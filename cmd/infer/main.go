// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Command infer reads a module fixture, infers the type of every expression reachable from the entry
// definition, and writes the typed module.
//
//	infer [-config infer.yaml] [-env .env] [-o out.yaml] [-prune] [-dump] [-watch] module.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/wdamron/infer/internal/config"
	"github.com/wdamron/infer/internal/report"
)

var (
	configPath = flag.String("config", "", "configuration file (default "+config.DefaultFile+", if present)")
	envFile    = flag.String("env", "", "environment file (default "+config.DefaultEnvFile+", if present)")
	outPath    = flag.String("o", "", "write the typed module to this file instead of stdout")
	prune      = flag.Bool("prune", false, "delete definitions unreachable from the entry before inference")
	dump       = flag.Bool("dump", false, "dump the typed module's Go representation to stderr")
	watch      = flag.Bool("watch", false, "infer again whenever the module file changes")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] module.yaml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.PruneUnused = cfg.PruneUnused || *prune
	cfg.Dump = cfg.Dump || *dump

	level, _ := cfg.Level()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	rep := report.New(os.Stderr, cfg.Color)
	rep.SetVerbose(level <= slog.LevelDebug)

	r := &runner{cfg: cfg, log: log, rep: rep, out: os.Stdout, dump: os.Stderr}
	if *outPath != "" {
		r.out = nil
		r.outPath = *outPath
	}

	path := flag.Arg(0)
	if !*watch {
		if err := r.run(path); err != nil {
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := watchFile(ctx, path, log, func() { _ = r.run(path) }); err != nil {
		rep.Report(err)
		os.Exit(1)
	}
}
