package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/devicepulse/console/service"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type loginData struct {
	Authorization string   `json:"Authorization"`
	UserID        string   `json:"userId"`
	Permissions   []string `json:"permissions"`
}

// backend holds the stub's in-memory state: issued tokens, devices, and
// per-device thresholds.
type backend struct {
	lock       sync.Mutex
	tokens     map[string]string
	devices    map[string]service.Device
	thresholds map[string]service.Thresholds
}

func newBackend() *backend {
	return &backend{
		tokens:     make(map[string]string),
		devices:    make(map[string]service.Device),
		thresholds: make(map[string]service.Thresholds),
	}
}

func (b *backend) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")
	r.HandleFunc("/login", b.loginHandler).Methods("POST")
	r.HandleFunc("/devices", b.authenticated(b.updateDevicesHandler)).Methods("PUT")
	r.HandleFunc("/devices", b.authenticated(b.deleteDevicesHandler)).Methods("DELETE")
	r.HandleFunc("/thresholds", b.authenticated(b.getThresholdsHandler)).Methods("GET")
	r.HandleFunc("/thresholds", b.authenticated(b.setThresholdsHandler)).Methods("POST")
	return r
}

// authenticated rejects requests whose Authorization header is not a token
// this stub issued.
func (b *backend) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.lock.Lock()
		_, ok := b.tokens[r.Header.Get("Authorization")]
		b.lock.Unlock()
		if !ok {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (b *backend) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, envelope{Status: 0, Message: "malformed request"})
		return
	}

	// Any non-empty password logs in; "locked" simulates a rejection.
	if req.UserName == "" || req.Password == "" || req.Password == "locked" {
		writeEnvelope(w, envelope{Status: 0, Message: "bad credentials"})
		return
	}

	token := uuid.New().String()
	b.lock.Lock()
	b.tokens[token] = req.UserName
	b.lock.Unlock()

	log.Info().Str("user", req.UserName).Msg("issued token")
	writeEnvelope(w, envelope{Status: 1, Data: loginData{
		Authorization: token,
		UserID:        "u-" + req.UserName,
		Permissions:   []string{"superadmin"},
	}})
}

func (b *backend) updateDevicesHandler(w http.ResponseWriter, r *http.Request) {
	var devices []service.Device
	if err := json.NewDecoder(r.Body).Decode(&devices); err != nil || len(devices) == 0 {
		writeEnvelope(w, envelope{Status: 0, Message: "malformed device payload"})
		return
	}

	device := devices[0]
	b.lock.Lock()
	b.devices[device.ID] = device
	b.lock.Unlock()

	writeEnvelope(w, envelope{Status: 1, Data: device})
}

func (b *backend) deleteDevicesHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, envelope{Status: 0, Message: "malformed delete payload"})
		return
	}

	b.lock.Lock()
	for _, id := range req.IDs {
		delete(b.devices, id)
		delete(b.thresholds, id)
	}
	b.lock.Unlock()

	writeEnvelope(w, envelope{Status: 1})
}

func (b *backend) getThresholdsHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeviceID string `json:"device_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DeviceID == "" {
		writeEnvelope(w, envelope{Status: 0, Message: "device_id is required"})
		return
	}

	b.lock.Lock()
	thresholds := b.thresholds[req.DeviceID]
	b.lock.Unlock()

	writeEnvelope(w, envelope{Status: 1, Data: thresholds})
}

func (b *backend) setThresholdsHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeviceID    string        `json:"device_id"`
		Temperature service.Range `json:"temperature_threshold"`
		Humidity    service.Range `json:"humidity_threshold"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DeviceID == "" {
		writeEnvelope(w, envelope{Status: 0, Message: "device_id is required"})
		return
	}

	thresholds := service.Thresholds{Temperature: req.Temperature, Humidity: req.Humidity}
	b.lock.Lock()
	b.thresholds[req.DeviceID] = thresholds
	b.lock.Unlock()

	writeEnvelope(w, envelope{Status: 1, Data: thresholds})
}

func writeEnvelope(w http.ResponseWriter, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Err(err).Msg("encode envelope")
	}
}
