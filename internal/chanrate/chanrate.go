// Package chanrate measures hand-off throughput and per-operation latency of
// an unbuffered channel between one sender and one receiver.
package chanrate

import (
	"sync"
	"time"

	"github.com/violenttestpen/syscost/internal/mono"
)

const (
	DefaultWindow = time.Second
	DefaultRuns   = 10
)

// Stats of one run. Latencies are per-message averages.
type Stats struct {
	Messages    int64
	SendLatency time.Duration
	RecvLatency time.Duration
}

// Measure sends 1s until the window has elapsed, then a terminating 0 that
// is counted as a message too.
func Measure(window time.Duration) Stats {
	var (
		ch        = make(chan int)
		wg        sync.WaitGroup
		count     int64
		totalSend time.Duration
		totalRecv time.Duration
		deadline  = mono.NewDeadline(window)
	)
	wg.Add(2)

	go func() {
		defer wg.Done()
		for {
			start := mono.Start()
			v := <-ch
			totalRecv += mono.Since(start)
			if v == 0 {
				return
			}
		}
	}()

	go func() {
		defer wg.Done()
		for !deadline.Passed() {
			start := mono.Start()
			ch <- 1
			totalSend += mono.Since(start)
			count++
		}
		start := mono.Start()
		ch <- 0
		totalSend += mono.Since(start)
		count++
	}()

	wg.Wait()
	return Stats{
		Messages:    count,
		SendLatency: totalSend / time.Duration(count),
		RecvLatency: totalRecv / time.Duration(count),
	}
}

// Average reduces runs to their mean. Zero runs give zero Stats.
func Average(runs []Stats) Stats {
	if len(runs) == 0 {
		return Stats{}
	}
	var total Stats
	for _, s := range runs {
		total.Messages += s.Messages
		total.SendLatency += s.SendLatency
		total.RecvLatency += s.RecvLatency
	}
	n := int64(len(runs))
	return Stats{
		Messages:    total.Messages / n,
		SendLatency: total.SendLatency / time.Duration(n),
		RecvLatency: total.RecvLatency / time.Duration(n),
	}
}

// Micros converts d to fractional microseconds.
func Micros(d time.Duration) float64 { return float64(d.Nanoseconds()) / 1e3 }
