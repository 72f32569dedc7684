package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/config"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/domain"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/metrics"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/recommendation"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/repository"
)

var ErrInvalidReading = errors.New("invalid appliance reading")

type Services struct {
	Repos    *repository.Repos
	Readings *ReadingService
	Advisor  *AdvisorService
}

func New(db *sqlx.DB, sink recommendation.AlertSink, m *metrics.Metrics) *Services {
	repos := repository.New(db)
	return &Services{
		Repos:    repos,
		Readings: &ReadingService{store: repos},
		Advisor:  NewAdvisorService(repos, sink, config.HouseMainLimit(), m),
	}
}

type readingStore interface {
	UpsertAppliance(rd *domain.ApplianceReading) error
}

type ReadingService struct {
	store readingStore
}

func NewReadingService(store readingStore) *ReadingService {
	return &ReadingService{store: store}
}

// FromMQTT decodes one appliance reading and stores it as the appliance's
// latest snapshot.
func (s *ReadingService) FromMQTT(topic string, payload []byte) error {
	var rd domain.ApplianceReading
	if err := json.Unmarshal(payload, &rd); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidReading, topic, err)
	}
	if rd.Group == "" || rd.Appliance == "" {
		return fmt.Errorf("%w: %s: group and appliance are required", ErrInvalidReading, topic)
	}
	return s.store.UpsertAppliance(&rd)
}
