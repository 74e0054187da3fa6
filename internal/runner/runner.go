package runner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ecooper/dp-headlines/internal/config"
	"github.com/ecooper/dp-headlines/internal/extractor"
	"github.com/ecooper/dp-headlines/internal/fetcher"
	"github.com/ecooper/dp-headlines/internal/logger"
	"github.com/ecooper/dp-headlines/internal/monitor"
)

// treeIgnore lists directory names excluded from the diagnostic tree dump.
var treeIgnore = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// Run executes one scrape: fetch, extract, record, persist, diagnose.
//
// Errors returned here are the unrecoverable ones: a data directory that
// cannot be created, an unknown variant, or a failed save. A failed or empty
// extraction is not an error; it completes the run with the store unchanged.
func Run(cfg *config.Config, log *logger.Logger) error {
	metrics := logger.NewMetrics()

	log.Info("Creating data directory if it does not exist", logger.Fields{"dir": cfg.DataDir})
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Error("Failed to create data directory", logger.Fields{"dir": cfg.DataDir}, err)
		return fmt.Errorf("creating data directory: %w", err)
	}

	log.Info("Loading daily event monitor", logger.Fields{"path": cfg.DataPath()})
	mon := monitor.Load(cfg.DataPath(), log)

	ext, err := extractor.New(cfg.Variant, cfg.SiteURL, cfg.FeedURL)
	if err != nil {
		return err
	}
	client := fetcher.New(cfg.Timeout())

	log.Info("Starting scrape", logger.Fields{"variant": ext.Name()})
	metrics.IncrCounter("extract.attempts")
	start := time.Now()
	res := safeExtract(ext, client, log)
	metrics.RecordTiming("extract."+ext.Name(), time.Since(start))

	if res.OK() {
		metrics.IncrCounter("extract.success")
		if mon.AddToday(res.Headline) {
			if err := mon.Save(); err != nil {
				log.Error("Failed to save daily event monitor", logger.Fields{"path": mon.Path()}, err)
				return fmt.Errorf("saving daily event monitor: %w", err)
			}
			log.Info("Saved daily event monitor", logger.Fields{
				"path":    mon.Path(),
				"entries": mon.Len(),
			})
		}
	} else {
		metrics.IncrCounter("extract.miss")
		log.Info("No headline produced, store unchanged", logger.Fields{
			"reason": string(res.Reason),
			"detail": res.Detail,
		})
	}

	logTree(log, ".")
	dumpDataFile(log, mon.Path())
	log.Info("Run metrics", logger.Fields{"metrics": metrics.Snapshot()})
	log.Info("Scrape complete", nil)

	return nil
}

// safeExtract guards the extraction step against panics, which are logged
// and demoted to "no headline produced" so a brittle parse can never crash
// the run.
func safeExtract(ext extractor.Extractor, client *fetcher.Client, log *logger.Logger) (res extractor.Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Extractor panicked", logger.Fields{
				"variant": ext.Name(),
				"panic":   fmt.Sprint(r),
			}, nil)
			res = extractor.Result{Reason: extractor.ReasonUnexpected, Detail: fmt.Sprint(r)}
		}
	}()
	return ext.Extract(client, log)
}

// logTree logs a directory listing of the working tree, skipping VCS and
// cache directories. Operator visibility only.
func logTree(log *logger.Logger, root string) {
	log.Info("Printing tree of files", logger.Fields{"root": root})

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("Could not walk path", logger.Fields{"path": path, "error": err.Error()})
			return nil
		}
		if d.IsDir() && treeIgnore[d.Name()] {
			return filepath.SkipDir
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			log.Info("+--"+filepath.Base(root)+"/", nil)
			return nil
		}

		depth := strings.Count(rel, string(os.PathSeparator)) + 1
		name := d.Name()
		if d.IsDir() {
			name += "/"
		}
		log.Info(strings.Repeat("    ", depth)+"+--"+name, nil)
		return nil
	})
}

// dumpDataFile logs the persisted file's contents verbatim so each run's log
// carries the full record as of that run.
func dumpDataFile(log *logger.Logger, path string) {
	log.Info("Printing contents of data file", logger.Fields{"path": path})

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Could not read data file", logger.Fields{"path": path, "error": err.Error()})
		return
	}
	log.Info(string(data), nil)
}
