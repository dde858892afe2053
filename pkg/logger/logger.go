package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// InitLogger initializes the structured logger from LOG_LEVEL/LOG_FORMAT.
func InitLogger() *logrus.Logger {
	log := logrus.New()

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	if level, err := logrus.ParseLevel(strings.ToLower(logLevel)); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", logLevel).Warn("Invalid LOG_LEVEL, using INFO")
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	log.SetOutput(os.Stdout)
	Logger = log
	return log
}

func GetLogger() *logrus.Logger {
	if Logger == nil {
		return InitLogger()
	}
	return Logger
}

// WithGameContext creates a logger scoped to a single simulated game.
func WithGameContext(gameID, homeTeamID, awayTeamID string) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"game_id": gameID, "home_team_id": homeTeamID, "away_team_id": awayTeamID,
	})
}

// WithSeasonContext creates a logger scoped to a season/phase ingest.
func WithSeasonContext(seasonID, phase string) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{"season_id": seasonID, "phase": phase})
}

// WithRequestContext creates a logger scoped to an inbound HTTP request.
func WithRequestContext(requestID string) *logrus.Entry {
	return GetLogger().WithField("request_id", requestID)
}
