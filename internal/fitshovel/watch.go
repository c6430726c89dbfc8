package fitshovel

import (
	"os"
	"path/filepath"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/sirupsen/logrus"
)

// FileSource is a common interface for things that emit file paths to
// decode, mirroring opensciencegrid-xrootd-monitoring-shoveler/input's
// PacketSource interface (Start/Stop/a receive channel), with a path in
// place of a raw packet.
type FileSource interface {
	Start() error
	Stop() error
	Paths() <-chan string
}

// DirWatcher polls WatchDir for files matching FilePattern and emits each
// path once, using a ttlcache-backed seen-set so a file already forwarded
// isn't re-emitted if it's still present on a later poll. Seen entries
// expire after 24 hours; a file still present after that is emitted again —
// opensciencegrid-xrootd-monitoring-shoveler's go.mod pulls in ttlcache as a
// transitive dependency but no retrieved file in that repo calls it; this
// is the job we give it.
type DirWatcher struct {
	dir      string
	pattern  string
	interval time.Duration

	seen   *ttlcache.Cache[string, struct{}]
	paths  chan string
	stop   chan struct{}
	logger *logrus.Logger
}

// NewDirWatcher builds a DirWatcher over dir, matching pattern (a
// filepath.Match shell pattern) every interval.
func NewDirWatcher(dir, pattern string, interval time.Duration, logger *logrus.Logger) *DirWatcher {
	if logger == nil {
		logger = logrus.New()
	}
	seen := ttlcache.New[string, struct{}](
		ttlcache.WithTTL[string, struct{}](24 * time.Hour),
	)
	return &DirWatcher{
		dir:      dir,
		pattern:  pattern,
		interval: interval,
		seen:     seen,
		paths:    make(chan string, 64),
		stop:     make(chan struct{}),
		logger:   logger,
	}
}

// Paths returns the channel of newly discovered file paths.
func (w *DirWatcher) Paths() <-chan string { return w.paths }

// Start begins polling in a goroutine.
func (w *DirWatcher) Start() error {
	go w.seen.Start()
	go w.pollLoop()
	return nil
}

// Stop halts polling and closes the output channel.
func (w *DirWatcher) Stop() error {
	close(w.stop)
	w.seen.Stop()
	return nil
}

func (w *DirWatcher) pollLoop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.scanOnce()
	for {
		select {
		case <-w.stop:
			close(w.paths)
			return
		case <-ticker.C:
			w.scanOnce()
		}
	}
}

func (w *DirWatcher) scanOnce() {
	matches, err := filepath.Glob(filepath.Join(w.dir, w.pattern))
	if err != nil {
		w.logger.Errorln("fitshovel: failed to glob watch dir:", err)
		return
	}
	for _, path := range matches {
		if w.seen.Has(path) {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		w.seen.Set(path, struct{}{}, ttlcache.DefaultTTL)
		select {
		case w.paths <- path:
			w.logger.Debugln("fitshovel: discovered new file:", path)
		case <-w.stop:
			return
		}
	}
}
