package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftplan/internal/localstore"
	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/program"
)

// liftplan-gen generates workout programs offline, without a server or a
// Postgres instance. Programs go to stdout (or a file) as JSON, and can
// optionally be saved to a local SQLite store.
func main() {
	list := flag.Bool("list", false, "list available archetypes and exit")
	archetype := flag.String("archetype", "", "archetype to generate (required unless -list)")
	owner := flag.String("owner", "local", "owner id recorded on the program")
	deload := flag.Bool("deload", false, "also generate the deload variant")
	output := flag.String("o", "", "write JSON to this file instead of stdout")
	storeDir := flag.String("store", "", "save to the SQLite store in this directory")
	activate := flag.Bool("activate", false, "mark the saved program active (requires -store)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	registry, err := program.DefaultRegistry()
	if err != nil {
		log.Error("failed to load archetypes", "error", err)
		os.Exit(1)
	}

	if *list {
		for _, info := range registry.Archetypes() {
			deloadMark := ""
			if info.IncludesDeload {
				deloadMark = " (+deload)"
			}
			fmt.Printf("%-28s %s/%s, %s, %d days%s\n",
				info.Name, info.Goal, info.Level, info.Split, info.Days, deloadMark)
		}
		return
	}

	if *archetype == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftplan-gen -archetype NAME [-owner ID] [-deload] [-o out.json] [-store DIR [-activate]]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *activate && *storeDir == "" {
		log.Error("-activate requires -store")
		os.Exit(1)
	}

	composer := program.NewComposer(registry)

	p, err := composer.Build(*archetype, *owner)
	if err != nil {
		log.Error("generation failed", "archetype", *archetype, "error", err)
		os.Exit(1)
	}

	programs := []models.WorkoutProgram{p}
	if *deload {
		dp, err := composer.BuildDeloadVariant(*archetype, *owner)
		if err != nil {
			log.Error("deload generation failed", "archetype", *archetype, "error", err)
			os.Exit(1)
		}
		programs = append(programs, dp)
	}

	if *storeDir != "" {
		if err := saveAll(programs, *storeDir, *activate, log); err != nil {
			os.Exit(1)
		}
	}

	if err := writeJSON(programs, *output); err != nil {
		log.Error("write failed", "error", err)
		os.Exit(1)
	}
}

func saveAll(programs []models.WorkoutProgram, dir string, activate bool, log *slog.Logger) error {
	store, err := localstore.Open(dir)
	if err != nil {
		log.Error("failed to open local store", "dir", dir, "error", err)
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	for i, p := range programs {
		id, err := store.SaveProgram(ctx, p)
		if err != nil {
			log.Error("save failed", "program", p.Name, "error", err)
			return err
		}
		log.Info("program saved", "id", id, "name", p.Name, "days", len(p.Days))

		// Only the main program is eligible for activation, never the deload.
		if activate && i == 0 {
			if err := store.ActivateProgram(ctx, id, p.OwnerID); err != nil {
				log.Error("activate failed", "id", id, "error", err)
				return err
			}
			log.Info("program activated", "id", id)
		}
	}
	return nil
}

func writeJSON(programs []models.WorkoutProgram, path string) error {
	var v any = programs
	if len(programs) == 1 {
		v = programs[0]
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
