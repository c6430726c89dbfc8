package fitshovel

import (
	"container/list"
	"errors"
	"path"
	"sync"
	"time"

	"github.com/joncrlsn/dque"
	"github.com/sirupsen/logrus"
)

// recordMessage is one queued, already-JSON-encoded decoded record batch.
type recordMessage struct {
	Payload []byte
}

func recordMessageBuilder() interface{} {
	return &recordMessage{}
}

// ErrQueueEmpty is returned by a non-blocking dequeue attempt.
var ErrQueueEmpty = errors.New("fitshovel: queue is empty")

// maxInMemory bounds the fast-path in-memory ring before messages spill to
// the on-disk dque segment, mirroring
// opensciencegrid-xrootd-monitoring-shoveler/queue.go's MaxInMemory.
const maxInMemory = 256

// ConfirmationQueue is a durable FIFO of encoded record batches: a fast
// in-memory ring backed by an on-disk dque once that ring fills, so the
// daemon can absorb a forwarding outage without losing decoded data.
// Adapted from opensciencegrid-xrootd-monitoring-shoveler/queue.go, sized in
// decoded-record batches instead of raw UDP datagrams.
type ConfirmationQueue struct {
	disk      *dque.DQue
	mutex     sync.Mutex
	nonEmpty  *sync.Cond
	inMemory  *list.List
	logger    *logrus.Logger
}

// NewConfirmationQueue opens (or creates) the on-disk overflow segment
// under dir and returns a ready queue.
func NewConfirmationQueue(dir string, logger *logrus.Logger) (*ConfirmationQueue, error) {
	if logger == nil {
		logger = logrus.New()
	}
	qName := path.Base(dir)
	qDir := path.Dir(dir)

	disk, err := dque.NewOrOpen(qName, qDir, 10000, recordMessageBuilder)
	if err != nil {
		return nil, err
	}
	if err := disk.TurboOn(); err != nil {
		logger.Warnln("fitshovel: failed to enable dque turbo mode, queue will be slower but safer:", err)
	}

	cq := &ConfirmationQueue{
		disk:     disk,
		inMemory: list.New(),
		logger:   logger,
	}
	cq.nonEmpty = sync.NewCond(&cq.mutex)
	return cq, nil
}

// Size reports the total number of queued messages, in memory plus on disk.
func (cq *ConfirmationQueue) Size() int {
	cq.mutex.Lock()
	defer cq.mutex.Unlock()
	return cq.inMemory.Len() + cq.disk.SizeUnsafe()
}

// Enqueue adds payload to the queue, spilling to disk once the in-memory
// ring is full.
func (cq *ConfirmationQueue) Enqueue(payload []byte) {
	cq.mutex.Lock()
	defer cq.mutex.Unlock()

	if cq.inMemory.Len() < maxInMemory {
		cq.inMemory.PushBack(payload)
	} else if err := cq.disk.Enqueue(&recordMessage{Payload: payload}); err != nil {
		cq.logger.Errorln("fitshovel: failed to enqueue to disk overflow:", err)
	}
	cq.nonEmpty.Broadcast()
}

func (cq *ConfirmationQueue) dequeueLocked() ([]byte, error) {
	if cq.inMemory.Len() == 0 {
		return nil, ErrQueueEmpty
	}
	payload := cq.inMemory.Remove(cq.inMemory.Front()).([]byte)

	for cq.inMemory.Len() < maxInMemory {
		msg, err := cq.disk.Dequeue()
		if err == dque.ErrEmpty {
			break
		}
		if err != nil {
			cq.logger.Errorln("fitshovel: failed to dequeue from disk overflow:", err)
			break
		}
		cq.inMemory.PushBack(msg.(*recordMessage).Payload)
	}
	return payload, nil
}

// Dequeue blocks until a message is available.
func (cq *ConfirmationQueue) Dequeue() ([]byte, error) {
	cq.mutex.Lock()
	defer cq.mutex.Unlock()
	for {
		payload, err := cq.dequeueLocked()
		if err == ErrQueueEmpty {
			cq.nonEmpty.Wait()
			continue
		}
		return payload, err
	}
}

// Close releases the on-disk overflow segment's file handles.
func (cq *ConfirmationQueue) Close() error {
	cq.mutex.Lock()
	defer cq.mutex.Unlock()
	return cq.disk.Close()
}

// reportSize periodically pushes the current size into the queueSize gauge.
// Intended to run in its own goroutine for the daemon's lifetime.
func (cq *ConfirmationQueue) reportSize(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for range ticker.C {
		queueSize.Set(float64(cq.Size()))
	}
}
