package service

import (
	"context"
	"net/http"
)

// Range is a min/max bound pair.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Thresholds are the alerting bounds configured per device.
type Thresholds struct {
	Temperature Range `json:"temperature_threshold"`
	Humidity    Range `json:"humidity_threshold"`
}

type thresholdsRequest struct {
	DeviceID string `json:"device_id"`
}

type updateThresholdsRequest struct {
	DeviceID    string `json:"device_id"`
	Temperature Range  `json:"temperature_threshold"`
	Humidity    Range  `json:"humidity_threshold"`
}

// FetchThresholds reads the thresholds for a device. The backend's GET
// endpoint takes its parameters in the request body.
func (c *Client) FetchThresholds(ctx context.Context, deviceID string) (*Thresholds, error) {
	var thresholds Thresholds
	if err := c.do(ctx, http.MethodGet, "/thresholds", thresholdsRequest{DeviceID: deviceID}, &thresholds); err != nil {
		return nil, err
	}
	return &thresholds, nil
}

// UpdateThresholds replaces the thresholds for a device.
func (c *Client) UpdateThresholds(ctx context.Context, deviceID string, thresholds Thresholds) (*Thresholds, error) {
	var updated Thresholds
	request := updateThresholdsRequest{
		DeviceID:    deviceID,
		Temperature: thresholds.Temperature,
		Humidity:    thresholds.Humidity,
	}
	if err := c.do(ctx, http.MethodPost, "/thresholds", request, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
