package packets

// REQUESTS FOR /api/tv/*

type RegisterPairingCodeRequest struct {
	PairingCode string `json:"code" binding:"required"`
	DeviceID    string `json:"device_id" binding:"required"`
}

type HeartbeatRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
}
