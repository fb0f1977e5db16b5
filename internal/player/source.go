package player

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/http/api/tv/packets"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/model"
)

// HTTPSource fetches the display's resolved playlist and posts heartbeats
// against the CMS TV API.
type HTTPSource struct {
	baseURL  string
	deviceID string
	client   *http.Client
}

func NewHTTPSource(baseURL, deviceID string) *HTTPSource {
	return &HTTPSource{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		deviceID: deviceID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch retrieves the eligible list resolved by the server at its current
// instant. No assignment and an empty list both come back as an empty
// snapshot; the controller renders idle for either.
func (s *HTTPSource) Fetch(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tv/playlist", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Device-ID", s.deviceID)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("playlist fetch: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent, http.StatusNotFound:
		return &Snapshot{}, nil
	default:
		return nil, fmt.Errorf("playlist fetch: unexpected status %d", resp.StatusCode)
	}

	var payload packets.TVPlaylistResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("playlist fetch: decode: %w", err)
	}
	return snapshotFromPayload(payload), nil
}

// snapshotFromPayload maps wire items into slides, resolving legacy
// transition strings once here rather than on every advance.
func snapshotFromPayload(payload packets.TVPlaylistResponse) *Snapshot {
	snap := &Snapshot{
		PlaylistName: payload.PlaylistName,
		Slides:       make([]Slide, 0, len(payload.Items)),
	}
	for _, it := range payload.Items {
		hold := it.Duration
		if hold <= 0 {
			hold = model.DefaultItemDuration
		}
		legacy := model.PlaylistItem{
			Transition:       it.Transition,
			TransitionMS:     it.TransitionMS,
			TransitionEasing: it.TransitionEasing,
		}
		snap.Slides = append(snap.Slides, Slide{
			ContentID:   it.ContentID,
			URL:         it.URL,
			ContentType: it.Type,
			Position:    it.Position,
			HoldSeconds: hold,
			Transition:  model.ResolveTransition(legacy),
		})
	}
	return snap
}

// RegisterPairingCode announces a pairing code for this device. The
// server rejects it once the device is paired.
func (s *HTTPSource) RegisterPairingCode(ctx context.Context, code string) error {
	body, err := json.Marshal(packets.RegisterPairingCodeRequest{PairingCode: code, DeviceID: s.deviceID})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/tv/register", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("pairing registration: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pairing registration: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Heartbeat reports liveness; the server updates the display's last-seen
// timestamp. It carries no authority over what is shown.
func (s *HTTPSource) Heartbeat(ctx context.Context) error {
	body, err := json.Marshal(packets.HeartbeatRequest{DeviceID: s.deviceID})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/tv/heartbeat", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("heartbeat: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("heartbeat: unexpected status %d", resp.StatusCode)
	}
	return nil
}
