package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/alert"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/domain"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/metrics"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/recommendation"
)

type groupStore interface {
	ListGroups() ([]domain.SocketGroup, error)
	GroupByName(name string) (domain.SocketGroup, error)
}

// Archive stores evaluation reports, e.g. in S3.
type Archive interface {
	UploadDataFile(key string, data []byte) error
}

type GroupLoad struct {
	Name         string  `json:"name"`
	TotalCurrent float64 `json:"total_current"`
	Overloaded   bool    `json:"overloaded"`
}

// Report describes one evaluation pass and the messages it produced.
type Report struct {
	EvaluatedAt time.Time    `json:"evaluated_at"`
	Groups      []GroupLoad  `json:"groups"`
	House       domain.House `json:"house"`
	Messages    []string     `json:"messages"`
}

// BatchNotifier delivers all messages of one cycle as a single notification.
type BatchNotifier interface {
	SendBatchAlerts(alerts []string) error
}

// AdvisorService owns one engine for its lifetime. Evaluations are serialized
// so that the messages of one call reach the shared sink as a contiguous
// block and can be collected into that call's result.
type AdvisorService struct {
	groups    groupStore
	sink      recommendation.AlertSink
	engine    *recommendation.Engine
	mainLimit float64
	metrics   *metrics.Metrics
	now       func() time.Time

	mu      sync.Mutex
	collect *[]string // guarded by mu

	// Archive is optional; when set every full cycle report is uploaded.
	Archive Archive
	// Notifier is optional; when set every cycle that produced messages is
	// pushed as one batch.
	Notifier BatchNotifier
}

func NewAdvisorService(groups groupStore, sink recommendation.AlertSink, mainLimit float64, m *metrics.Metrics) *AdvisorService {
	s := &AdvisorService{
		groups:    groups,
		sink:      alert.Counting{Next: sink, Counter: m.AlertsTotal},
		mainLimit: mainLimit,
		metrics:   m,
		now:       time.Now,
	}
	s.engine = recommendation.NewEngine(recommendation.AlertFunc(s.dispatch))
	return s
}

// dispatch forwards to the shared sink and records into the current call's
// collector. Called only while mu is held.
func (s *AdvisorService) dispatch(message string) {
	if s.collect != nil {
		*s.collect = append(*s.collect, message)
	}
	s.sink.Alert(message)
}

// EvaluateAll runs the group check for every socket group and then the
// whole-house check. Cancellation is honoured only before the cycle starts;
// once messages are being delivered the cycle runs to completion.
func (s *AdvisorService) EvaluateAll(ctx context.Context) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := s.now()
	groups, err := s.groups.ListGroups()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	report := &Report{EvaluatedAt: start, Groups: make([]GroupLoad, 0, len(groups)), Messages: []string{}}

	s.mu.Lock()
	s.collect = &report.Messages
	for _, g := range groups {
		report.Groups = append(report.Groups, s.groupLoad(g))
		s.engine.EvaluateGroupLoad(g)
	}
	report.House = domain.NewHouse(groups, s.mainLimit)
	s.engine.EvaluateHouseLoad(report.House)
	s.collect = nil
	s.mu.Unlock()

	s.metrics.HouseCurrent.Set(report.House.TotalCurrent)
	s.metrics.EvaluationDuration.Observe(s.now().Sub(start).Seconds())

	log.Info().
		Int("groups", len(groups)).
		Float64("house_current", report.House.TotalCurrent).
		Int("messages", len(report.Messages)).
		Msg("evaluation cycle done")

	if s.Notifier != nil && len(report.Messages) > 0 {
		if err := s.Notifier.SendBatchAlerts(report.Messages); err != nil {
			log.Error().Err(err).Msg("batch notification failed")
		}
	}
	if s.Archive != nil {
		if err := s.archive(report); err != nil {
			log.Error().Err(err).Msg("report archive failed")
		}
	}
	return report, nil
}

// EvaluateGroup runs the group check for a single named group.
func (s *AdvisorService) EvaluateGroup(name string) (GroupLoad, []string, error) {
	g, err := s.groups.GroupByName(name)
	if err != nil {
		return GroupLoad{}, nil, err
	}
	messages := []string{}

	s.mu.Lock()
	s.collect = &messages
	s.engine.EvaluateGroupLoad(g)
	s.collect = nil
	s.mu.Unlock()

	return s.groupLoad(g), messages, nil
}

// Run evaluates on every tick until ctx is cancelled.
func (s *AdvisorService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.EvaluateAll(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("evaluation cycle failed")
			}
		}
	}
}

func (s *AdvisorService) groupLoad(g domain.SocketGroup) GroupLoad {
	total := g.TotalCurrent()
	overloaded := total > recommendation.GroupLimit
	if overloaded {
		s.metrics.OverloadedGroups.Inc()
	}
	return GroupLoad{Name: g.Name, TotalCurrent: total, Overloaded: overloaded}
}

func (s *AdvisorService) archive(r *Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return s.Archive.UploadDataFile(fmt.Sprintf("reports/%d.json", r.EvaluatedAt.Unix()), data)
}
