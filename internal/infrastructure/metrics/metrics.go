// Package metrics содержит метрики библиотеки плейлистов на базе Prometheus.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"go.uber.org/zap"
)

const namespace = "playlistbox"

// Metrics собирает метрики в собственный реестр Prometheus
type Metrics struct {
	registry *prometheus.Registry
	logger   *zap.Logger

	playlistsCreated prometheus.Counter
	playlistsDeleted prometheus.Counter
	itemsAdded       *prometheus.CounterVec
	itemsRemoved     prometheus.Counter
	exports          *prometheus.CounterVec
	imports          *prometheus.CounterVec
	playlists        prometheus.Gauge
	errors           *prometheus.CounterVec
}

var _ Interface = (*Metrics)(nil)

// NewMetrics создает метрики в новом реестре
func NewMetrics(logger *zap.Logger) *Metrics {
	return NewMetricsWithRegistry(prometheus.NewRegistry(), logger)
}

// NewMetricsWithRegistry создает метрики в переданном реестре
func NewMetricsWithRegistry(registry *prometheus.Registry, logger *zap.Logger) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		logger:   logger,
		playlistsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playlists_created_total",
			Help:      "Total number of playlists created",
		}),
		playlistsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playlists_deleted_total",
			Help:      "Total number of playlists deleted",
		}),
		itemsAdded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_added_total",
			Help:      "Total number of items added to playlists",
		}, []string{"kind"}),
		itemsRemoved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_removed_total",
			Help:      "Total number of items removed from playlists",
		}),
		exports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Total number of playlist exports",
		}, []string{"status"}),
		imports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "Total number of playlist imports",
		}, []string{"status"}),
		playlists: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "playlists",
			Help:      "Number of registered playlists",
		}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total number of failed operations",
		}, []string{"operation"}),
	}
}

// RecordPlaylistCreated записывает создание плейлиста
func (m *Metrics) RecordPlaylistCreated() {
	m.playlistsCreated.Inc()
}

// RecordPlaylistDeleted записывает удаление плейлиста
func (m *Metrics) RecordPlaylistDeleted() {
	m.playlistsDeleted.Inc()
}

// RecordItemAdded записывает добавление элемента
func (m *Metrics) RecordItemAdded(kind string) {
	m.itemsAdded.WithLabelValues(kind).Inc()
}

// RecordItemRemoved записывает удаление элемента
func (m *Metrics) RecordItemRemoved() {
	m.itemsRemoved.Inc()
}

// RecordExport записывает выгрузку плейлиста
func (m *Metrics) RecordExport(status string) {
	m.exports.WithLabelValues(status).Inc()
}

// RecordImport записывает загрузку плейлиста
func (m *Metrics) RecordImport(status string) {
	m.imports.WithLabelValues(status).Inc()
}

// SetPlaylists устанавливает количество плейлистов
func (m *Metrics) SetPlaylists(count int) {
	m.playlists.Set(float64(count))
}

// RecordError записывает ошибку операции
func (m *Metrics) RecordError(operation string) {
	m.errors.WithLabelValues(operation).Inc()
}

// Registry возвращает реестр Prometheus
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// GetStats возвращает сумму значений каждой метрики
func (m *Metrics) GetStats() map[string]interface{} {
	stats := make(map[string]interface{})

	families, err := m.registry.Gather()
	if err != nil {
		m.logger.Error("Failed to gather metrics", zap.Error(err))
		return stats
	}

	for _, family := range families {
		var total float64
		for _, metric := range family.GetMetric() {
			total += metricValue(family.GetType(), metric)
		}
		stats[family.GetName()] = total
	}
	return stats
}

func metricValue(kind dto.MetricType, metric *dto.Metric) float64 {
	switch kind {
	case dto.MetricType_COUNTER:
		return metric.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return metric.GetGauge().GetValue()
	default:
		return 0
	}
}

// WriteTextfile сохраняет метрики в формате textfile-коллектора node_exporter
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}

	m.logger.Debug("Metrics written", zap.String("path", path))
	return nil
}
