// Package metrics exposes Prometheus collectors for the realtime layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConnectionsOpen tracks currently open websocket connections.
	ConnectionsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "helpmate_connections_open",
		Help: "Number of live websocket connections.",
	})

	// ChannelsActive tracks channels with at least one subscriber.
	ChannelsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "helpmate_channels_active",
		Help: "Number of channels with at least one live connection.",
	})

	// BroadcastsTotal counts broadcasts issued against the registry.
	BroadcastsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "helpmate_broadcasts_total",
		Help: "Total broadcasts issued.",
	})

	// DeliveriesFailedTotal counts per-connection delivery failures.
	DeliveriesFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "helpmate_deliveries_failed_total",
		Help: "Total per-connection delivery failures during broadcast.",
	})

	// FramesInboundTotal counts inbound frames by type.
	FramesInboundTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "helpmate_frames_inbound_total",
		Help: "Total inbound websocket frames by frame type.",
	}, []string{"type"})
)
