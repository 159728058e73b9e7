package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kingrea/windscout/internal/config"
	"github.com/kingrea/windscout/internal/pipeline"
	"github.com/kingrea/windscout/internal/report"
	"github.com/kingrea/windscout/internal/scenario"
	"github.com/kingrea/windscout/internal/site"
	"github.com/kingrea/windscout/internal/stage"
	"github.com/kingrea/windscout/internal/stages"
)

func main() {
	stageID := flag.String("stage", "", "stage identifier to execute (e.g. imagery)")
	siteName := flag.String("site", "", "candidate site name (defaults to the first configured site)")
	projectDir := flag.String("project", "", "path to the project directory (defaults to cwd)")
	all := flag.Bool("all", false, "run the full pipeline for both sites and print the report")
	flag.Parse()

	project := *projectDir
	if project == "" {
		cwd, err := os.Getwd()
		if err != nil {
			die("determine working directory: %v", err)
		}
		project = cwd
	}
	project, err := filepath.Abs(project)
	if err != nil {
		die("resolve project dir: %v", err)
	}
	if err := config.InitProjectDir(project); err != nil {
		die("init .windscout: %v", err)
	}
	cfg, err := config.NewConfig(project)
	if err != nil {
		die("load config: %v", err)
	}
	set, err := scenario.Collaborators(cfg)
	if err != nil {
		die("load scenario: %v", err)
	}
	reg := stage.NewRegistry()
	stages.RegisterBuiltins(reg)

	if *all {
		runner, err := pipeline.New(reg)
		if err != nil {
			die("wire pipeline: %v", err)
		}
		run, err := runner.Run(context.Background(), pipeline.Request{
			Config:        cfg,
			Collaborators: set,
			Sites:         cfg.SiteNames(),
		})
		if err != nil {
			die("run pipeline: %v", err)
		}
		if err := pipeline.SaveLatest(cfg, run); err != nil {
			die("persist run: %v", err)
		}
		fmt.Println(report.RenderRun(run))
		return
	}

	if strings.TrimSpace(*stageID) == "" {
		die("--stage is required (or pass --all)")
	}
	name := strings.TrimSpace(*siteName)
	if name == "" {
		names := cfg.SiteNames()
		if len(names) == 0 {
			die("no candidate sites configured")
		}
		name = names[0]
	}
	candidate, err := site.New(name)
	if err != nil {
		die("invalid site: %v", err)
	}

	sctx := stage.NewContext(context.Background(), cfg, candidate, set, nil)
	// Run the canonical prefix so the requested stage sees its inputs
	// (imagery, land and grid all need coordinates from geocode).
	for _, id := range prefixThrough(*stageID) {
		s, err := reg.Resolve(id)
		if err != nil {
			die("resolve stage: %v", err)
		}
		result, err := s.Run(sctx)
		if err != nil {
			die("run %s: %v", id, err)
		}
		fmt.Printf("%-12s %-10s %s\n", id, result.Status, result.Message)
	}
	fmt.Println()
	fmt.Println(report.RenderAssessment(sctx.Assessment))
}

// prefixThrough returns the canonical stage order up to and including id.
// An unknown id falls through to the registry, which reports it properly.
func prefixThrough(id string) []string {
	for i, known := range stages.Order {
		if known == id {
			return stages.Order[:i+1]
		}
	}
	return []string{id}
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
