package service

import (
	"context"
	"net/http"
)

// Device is a managed device record.
type Device struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	SerialNumber string `json:"serialNumber"`
	Password     string `json:"password"`
}

type deleteDevicesRequest struct {
	IDs []string `json:"ids"`
}

// UpdateDevice bulk-updates a single device; the backend's endpoint takes a
// sequence, so the device is wrapped in a one-element slice.
func (c *Client) UpdateDevice(ctx context.Context, device Device) (*Device, error) {
	var updated Device
	if err := c.do(ctx, http.MethodPut, "/devices", []Device{device}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteDevice removes a device by ID.
func (c *Client) DeleteDevice(ctx context.Context, deviceID string) error {
	return c.do(ctx, http.MethodDelete, "/devices", deleteDevicesRequest{IDs: []string{deviceID}}, nil)
}
