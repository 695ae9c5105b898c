package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/cyclesense/internal/logger"
	"github.com/terraincognita07/cyclesense/internal/models"
)

var ErrAnalysisRecordsUnavailable = errors.New("analysis records unavailable")

const (
	analysisResultComputed    = "computed"
	analysisResultPlaceholder = "placeholder"
	analysisResultFallback    = "fallback"
)

var (
	analysisTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cyclesense_analysis_total",
		Help: "Cycle analyses served by result",
	}, []string{"result"})

	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cyclesense_analysis_duration_seconds",
		Help:    "Cycle analysis computation time in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
	})
)

type CycleRecordReader interface {
	ListByProfile(profileID uint) ([]models.CycleRecord, error)
}

type SymptomRecordReader interface {
	ListByProfile(profileID uint) ([]models.SymptomRecord, error)
}

type DailyNoteReader interface {
	ListByProfile(profileID uint) ([]models.DailyNote, error)
}

type AnalysisService struct {
	analyzer *CycleAnalyzer
	cycles   CycleRecordReader
	symptoms SymptomRecordReader
	notes    DailyNoteReader
}

func NewAnalysisService(analyzer *CycleAnalyzer, cycles CycleRecordReader, symptoms SymptomRecordReader, notes DailyNoteReader) *AnalysisService {
	if analyzer == nil {
		analyzer = DefaultCycleAnalyzer()
	}
	return &AnalysisService{
		analyzer: analyzer,
		cycles:   cycles,
		symptoms: symptoms,
		notes:    notes,
	}
}

// AnalyzeProfile loads the profile's records and analyzes them. Storage
// failures are returned; analysis failures degrade to the placeholder.
func (service *AnalysisService) AnalyzeProfile(profile models.Profile, now time.Time) (CycleAnalysis, error) {
	input, err := service.loadInput(profile)
	if err != nil {
		return CycleAnalysis{}, err
	}

	if len(input.Cycles) == 0 && len(input.Symptoms) == 0 && len(input.Notes) == 0 {
		analysisTotal.WithLabelValues(analysisResultPlaceholder).Inc()
		return service.analyzer.PlaceholderAnalysis(now), nil
	}

	started := time.Now()
	analysis, err := service.analyzer.Analyze(input, now)
	analysisDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		analysisTotal.WithLabelValues(analysisResultFallback).Inc()
		logger.Log.WithFields(logrus.Fields{
			"profile_id": profile.ID,
			"cycles":     len(input.Cycles),
			"symptoms":   len(input.Symptoms),
			"notes":      len(input.Notes),
		}).WithError(err).Warn("cycle analysis failed, serving placeholder")
		return service.analyzer.PlaceholderAnalysis(now), nil
	}

	analysisTotal.WithLabelValues(analysisResultComputed).Inc()
	logger.Log.WithFields(logrus.Fields{
		"profile_id": profile.ID,
		"phase":      analysis.Current.Phase,
		"confidence": analysis.NextPeriod.Confidence,
	}).Debug("cycle analysis computed")
	return analysis, nil
}

func (service *AnalysisService) loadInput(profile models.Profile) (AnalysisInput, error) {
	cycles, err := service.cycles.ListByProfile(profile.ID)
	if err != nil {
		return AnalysisInput{}, fmt.Errorf("%w: cycles: %v", ErrAnalysisRecordsUnavailable, err)
	}
	symptoms, err := service.symptoms.ListByProfile(profile.ID)
	if err != nil {
		return AnalysisInput{}, fmt.Errorf("%w: symptoms: %v", ErrAnalysisRecordsUnavailable, err)
	}
	notes, err := service.notes.ListByProfile(profile.ID)
	if err != nil {
		return AnalysisInput{}, fmt.Errorf("%w: notes: %v", ErrAnalysisRecordsUnavailable, err)
	}

	return AnalysisInput{
		Cycles:   cycles,
		Symptoms: symptoms,
		Notes:    notes,
		Settings: AnalysisSettings{AverageCycleLength: profile.AverageCycleLength},
	}, nil
}
