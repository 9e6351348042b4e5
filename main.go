package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/example/vocabtrain/internal/config"
	"github.com/example/vocabtrain/internal/importer"
	"github.com/example/vocabtrain/internal/progress"
	"github.com/example/vocabtrain/internal/reminder"
	"github.com/example/vocabtrain/internal/session"
	"github.com/example/vocabtrain/internal/srs"
	"github.com/example/vocabtrain/internal/storage"
	"github.com/example/vocabtrain/internal/vocab"
	"github.com/example/vocabtrain/pkg/models"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cmd := &cli.Command{
		Name:  "vocabtrain",
		Usage: "Spaced-repetition vocabulary trainer with durable per-set learning progress",
		Commands: []*cli.Command{
			reviewCommand(logger),
			importCommand(logger),
			exportCommand(logger),
			statsCommand(logger),
			resetCommand(logger),
			remindCommand(logger),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

// openStore wires configuration, backend and progress store for one run.
func openStore(ctx context.Context, logger *zap.Logger) (*progress.Store, storage.Backend, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, nil, err
	}
	backend, err := storage.Connect(cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	store := progress.NewStore(cfg.UserID, backend, logger)
	store.LoadAggregate(ctx)
	return store, backend, nil
}

func reviewCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "review",
		Usage: "Run an interactive review session over a vocabulary set",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "set", Aliases: []string{"s"}, Usage: "Path to the vocabulary set JSON file", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String("set")
			set, err := vocab.Load(path)
			if err != nil {
				return err
			}
			store, backend, err := openStore(ctx, logger)
			if err != nil {
				return err
			}
			defer backend.Close()

			store.LoadForPath(ctx, path)
			store.BindAlias(set.ID, path)

			sess := session.New(srs.NewEngine(), store, set)
			return runReviewLoop(ctx, sess, set)
		},
	}
}

func runReviewLoop(ctx context.Context, sess *session.Session, set *models.VocabularySet) error {
	scanner := bufio.NewScanner(os.Stdin)
	word, err := sess.NextWord()
	if err != nil {
		return err
	}
	for word != nil {
		fmt.Printf("\n%s", word.Target)
		if word.Transliteration != "" {
			fmt.Printf(" [%s]", word.Transliteration)
		}
		fmt.Print("\nPress Enter to reveal the answer...")
		if !scanner.Scan() {
			return nil // stdin closed, keep whatever progress was saved
		}
		if err := sess.ShowAnswer(); err != nil {
			return err
		}
		fmt.Printf("= %s\n", word.Native)
		for _, example := range word.Examples {
			fmt.Printf("  %s\n", example)
		}
		fmt.Print("Did you know it? [y/n/q]: ")
		if !scanner.Scan() {
			return nil
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if answer == "q" || answer == "quit" {
			break
		}
		word, err = sess.MarkAnswer(ctx, answer == "y" || answer == "yes")
		if err != nil {
			return err
		}
	}
	if sess.State() == session.StateComplete {
		fmt.Printf("\nNothing left to review in %q right now.\n", set.Name)
	}
	return nil
}

func importCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import a spreadsheet (xlsx or csv) word list into a vocabulary set",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Path to the xlsx or csv file", Required: true},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output set JSON path", Required: true},
			&cli.StringFlag{Name: "name", Usage: "Display name of the set"},
			&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Usage: "Language code of the target words", Value: "en"},
			&cli.StringFlag{Name: "sheet", Usage: "Sheet name (xlsx only)", Value: "Sheet1"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := importer.DefaultConfig(cmd.String("file"))
			cfg.SetName = cmd.String("name")
			cfg.Language = cmd.String("language")
			cfg.SheetName = cmd.String("sheet")

			set, result, err := importer.Import(cfg)
			if err != nil {
				return err
			}
			if err := vocab.ExportToFile(set, cmd.String("out")); err != nil {
				return err
			}
			fmt.Printf("Imported %d of %d rows into %q (%s)\n",
				result.Imported, result.TotalProcessed, set.Name, cmd.String("out"))
			for _, e := range result.Errors {
				fmt.Printf("  skipped: %s\n", e)
			}
			return nil
		},
	}
}

func exportCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Re-export a vocabulary set without review history",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "set", Aliases: []string{"s"}, Usage: "Path to the vocabulary set JSON file", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			set, err := vocab.Load(cmd.String("set"))
			if err != nil {
				return err
			}
			data, err := vocab.Export(set)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func statsCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show aggregate learning statistics",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "set", Aliases: []string{"s"}, Usage: "Set file(s) to show per-set learned counts for"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			store, backend, err := openStore(ctx, logger)
			if err != nil {
				return err
			}
			defer backend.Close()

			agg := store.Aggregate()
			fmt.Printf("Attempts: %d  Correct: %d  Accuracy: %.1f%%  Words learned: %d\n",
				agg.TotalAttempts, agg.CorrectAttempts, agg.Accuracy(), agg.WordsLearned)

			paths := cmd.StringSlice("set")
			for _, path := range paths {
				store.LoadForPath(ctx, path)
				fmt.Printf("  %s: %d learned\n", path, len(store.LearnedIDs(path)))
			}
			if len(paths) > 0 {
				fmt.Printf("Total across listed sets: %d\n", store.TotalLearned())
			}
			return nil
		},
	}
}

func resetCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Erase all learning progress for the configured user",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			store, backend, err := openStore(ctx, logger)
			if err != nil {
				return err
			}
			defer backend.Close()

			if store.ResetAll(ctx) {
				fmt.Println("Progress reset.")
			} else {
				fmt.Println("Progress reset with errors; see log.")
			}
			return nil
		},
	}
}

func remindCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "remind",
		Usage: "Watch vocabulary sets and log a reminder when words come due",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "set", Aliases: []string{"s"}, Usage: "Set file(s) to watch", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var sets []*models.VocabularySet
			for _, path := range cmd.StringSlice("set") {
				set, err := vocab.Load(path)
				if err != nil {
					return err
				}
				sets = append(sets, set)
			}

			sched := reminder.New(&reminder.LogNotifier{Logger: logger}, logger, sets...)
			sched.Start()
			defer sched.Stop()
			sched.RunManualCheck()

			// Ждем сигнала завершения
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			select {
			case sig := <-sigChan:
				logger.Info("received signal, stopping", zap.String("signal", sig.String()))
			case <-ctx.Done():
			}
			return nil
		},
	}
}
