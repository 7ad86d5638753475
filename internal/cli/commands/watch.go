package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/trialtrim/internal/cli/config"
)

// watchDebounce coalesces the burst of events a single download or save
// produces into one rerun.
const watchDebounce = 250 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rerun jobs when their input files change",
		Long: `Watch the input file of every configured job and rerun the matching job
when the file is written. Useful while exports are still being downloaded
or re-exported. Jobs run one at a time, in config order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd)
		},
	}
}

func runWatch(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)

	if len(cc.Cfg.Jobs) == 0 {
		cc.Renderer.Muted("No jobs configured. Add a jobs list to trialtrim.yaml.")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the containing directories: editors and downloads replace
	// files rather than writing in place, which drops the watch when the
	// file itself is registered.
	jobsByInput := make(map[string][]*config.Job)
	dirs := make(map[string]struct{})
	for i := range cc.Cfg.Jobs {
		job := &cc.Cfg.Jobs[i]
		abs, err := filepath.Abs(job.Input)
		if err != nil {
			abs = filepath.Clean(job.Input)
		}
		jobsByInput[abs] = append(jobsByInput[abs], job)
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cc.Logger.Info("watching inputs", "dirs", len(dirs), "jobs", len(cc.Cfg.Jobs))
	cc.Renderer.Println(fmt.Sprintf("Watching %d input files. Press Ctrl-C to stop.", len(jobsByInput)))

	pending := make(map[string]struct{})
	var timer *time.Timer
	timerC := func() <-chan time.Time {
		if timer == nil {
			return nil
		}
		return timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if _, watched := jobsByInput[abs]; !watched {
				continue
			}
			pending[abs] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cc.Logger.Error("watch error", "error", err)

		case <-timerC():
			timer = nil
			for i := range cc.Cfg.Jobs {
				job := &cc.Cfg.Jobs[i]
				abs, _ := filepath.Abs(job.Input)
				if _, changed := pending[abs]; !changed {
					continue
				}
				result := runJob(cc, job)
				if result.Error != "" {
					cc.Renderer.Errorf("%s: %s", result.Name, result.Error)
					continue
				}
				cc.Renderer.Success(fmt.Sprintf("%s: %d of %d rows -> %s",
					result.Name, result.RowsKept, result.RowsRead, result.Output))
			}
			pending = make(map[string]struct{})
		}
	}
}
