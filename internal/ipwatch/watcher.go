// Package ipwatch polls a public-IP echo service and sends a mail
// notification whenever the observed address changes between polls.
package ipwatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"graphbox/pkg/interfaces"

	"github.com/go-resty/resty/v2"
)

const lookupTimeout = 15 * time.Second

// Config controls one watcher.
type Config struct {
	// LookupURL is the echo service. JSON ({"ip": "..."}) and plain-text
	// responses are both accepted.
	LookupURL string

	// StateFile records the last observed address between runs.
	StateFile string

	// Recipient receives the change notification.
	Recipient string

	// Interval between polls in Run.
	Interval time.Duration
}

// Watcher polls the lookup service and notifies through a Mailer.
type Watcher struct {
	cfg    Config
	http   *resty.Client
	mailer interfaces.Mailer
}

// New validates the config and builds a watcher.
func New(cfg Config, mailer interfaces.Mailer) (*Watcher, error) {
	if cfg.LookupURL == "" {
		return nil, fmt.Errorf("lookup URL is required")
	}

	if cfg.StateFile == "" {
		return nil, fmt.Errorf("state file path is required")
	}

	if cfg.Recipient == "" {
		return nil, fmt.Errorf("notification recipient is required")
	}

	if mailer == nil {
		return nil, fmt.Errorf("mailer is required")
	}

	hc := resty.New()
	hc.SetDisableWarn(true)
	hc.SetTimeout(lookupTimeout)

	return &Watcher{cfg: cfg, http: hc, mailer: mailer}, nil
}

// CurrentIP asks the lookup service for the caller's public address.
func (w *Watcher) CurrentIP(ctx context.Context) (string, error) {
	resp, err := w.http.R().SetContext(ctx).Get(w.cfg.LookupURL)
	if err != nil {
		return "", fmt.Errorf("ip lookup failed: %w", err)
	}

	if !resp.IsSuccess() {
		return "", fmt.Errorf("ip lookup failed: status %d", resp.StatusCode())
	}

	var body struct {
		IP string `json:"ip"`
	}

	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.IP != "" {
		return body.IP, nil
	}

	// Plain-text services answer with the bare address.
	ip := strings.TrimSpace(string(resp.Body()))
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("ip lookup returned %q, which is not an address", ip)
	}

	return ip, nil
}

// CheckOnce performs one poll cycle and returns the current address along
// with whether it differed from the recorded one. The first ever run only
// records the address; there is no previous value to notify about.
func (w *Watcher) CheckOnce(ctx context.Context) (string, bool, error) {
	ip, err := w.CurrentIP(ctx)
	if err != nil {
		return "", false, err
	}

	last := w.lastIP()
	if last == ip {
		return ip, false, nil
	}

	changed := false

	if last != "" {
		subject := fmt.Sprintf("Public IP changed: %s", ip)
		body := fmt.Sprintf("Public address changed from %s to %s at %s.", last, ip, time.Now().Format(time.RFC1123))

		if err := w.mailer.SendMail(ctx, []string{w.cfg.Recipient}, subject, body); err != nil {
			// Leave the state file untouched so the change is reported on
			// the next successful cycle.
			return ip, true, fmt.Errorf("failed to send change notification: %w", err)
		}

		changed = true
	}

	if err := w.saveIP(ip); err != nil {
		return ip, changed, fmt.Errorf("failed to record address: %w", err)
	}

	return ip, changed, nil
}

// Run checks immediately and then keeps polling on the configured interval
// until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w.cfg.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", w.cfg.Interval)
	}

	w.checkAndLog(ctx)

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.checkAndLog(ctx)
		}
	}
}

func (w *Watcher) checkAndLog(ctx context.Context) {
	ip, changed, err := w.CheckOnce(ctx)
	if err != nil {
		slog.Warn("ip check failed", "error", err)

		return
	}

	if changed {
		slog.Info("public ip changed", "ip", ip, "recipient", w.cfg.Recipient)
	} else {
		slog.Debug("ip check complete", "ip", ip)
	}
}

func (w *Watcher) lastIP() string {
	data, err := os.ReadFile(w.cfg.StateFile)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(data))
}

func (w *Watcher) saveIP(ip string) error {
	if err := os.MkdirAll(filepath.Dir(w.cfg.StateFile), 0755); err != nil {
		return err
	}

	return os.WriteFile(w.cfg.StateFile, []byte(ip+"\n"), 0644)
}
