package service

import (
	"context"

	"golang-stock-sentinel/internal/dashboard/config"
	"golang-stock-sentinel/pkg/logger"
	"golang-stock-sentinel/pkg/telegram"
)

// DigestService pushes a scheduled sentiment digest of the configured
// watchlist to Telegram.
type DigestService interface {
	SendWatchlistDigest(ctx context.Context) error
}

type digestService struct {
	cfg          *config.Config
	log          *logger.Logger
	dashboardSvc DashboardService
	notifier     telegram.Notifier
}

// NewDigestService creates a DigestService.
func NewDigestService(cfg *config.Config, log *logger.Logger, dashboardSvc DashboardService, notifier telegram.Notifier) DigestService {
	return &digestService{
		cfg:          cfg,
		log:          log,
		dashboardSvc: dashboardSvc,
		notifier:     notifier,
	}
}

// SendWatchlistDigest builds a snapshot for the watchlist and sends the
// formatted digest. Individual send failures abort the digest but not the
// process; cron will retry on the next tick.
func (s *digestService) SendWatchlistDigest(ctx context.Context) error {
	snapshot, err := s.dashboardSvc.BuildSnapshot(ctx, s.cfg.Dashboard.Watchlist)
	if err != nil {
		s.log.Error("Failed to build watchlist snapshot", logger.ErrorField(err))
		return err
	}

	for _, message := range telegram.FormatSentimentDigest(snapshot) {
		if err := s.notifier.SendMessage(message); err != nil {
			s.log.Error("Failed to send digest message", logger.ErrorField(err))
			return err
		}
	}

	s.log.Info("Watchlist digest sent", logger.IntField("tickers", len(snapshot.Sentiment)))
	return nil
}
