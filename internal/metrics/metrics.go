// Package metrics registers the server's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PlaylistPolls counts playlist resolutions served to displays,
	// labelled by outcome (ok, empty, unknown_device, unpaired).
	PlaylistPolls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "signage_playlist_polls_total",
		Help: "Playlist poll requests from displays.",
	}, []string{"outcome"})

	// Heartbeats counts device heartbeats, labelled by outcome.
	Heartbeats = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "signage_heartbeats_total",
		Help: "Heartbeat reports from displays.",
	}, []string{"outcome"})

	// EligibleItems records how many items survived rule filtering on the
	// most recent poll per device.
	EligibleItems = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "signage_eligible_items",
		Help: "Eligible playlist items served on the last poll.",
	}, []string{"device_id"})

	// PairingRegistrations counts device pairing-code registrations.
	PairingRegistrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signage_pairing_registrations_total",
		Help: "Pairing codes registered by devices.",
	})
)
