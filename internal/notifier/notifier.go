// Package notifier delivers desktop notifications through the estudai tray
// process. The tray advertises itself with a lockfile of the form
// "port|pid|secret" and accepts JSON posts on 127.0.0.1.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/estudai/estudai/internal/constants"
)

const secretHeader = "X-Estudai-Secret"

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess

	ErrTrayNotRunning = errors.New(constants.TrayAppExecutable + " is not running")
)

type Notifier struct {
	client *http.Client
}

type WebhookPayload struct {
	Title      string `json:"title,omitempty"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func New() *Notifier {
	return &Notifier{client: &http.Client{Timeout: 5 * time.Second}}
}

// Notify posts text to the running tray process.
func (n *Notifier) Notify(ctx context.Context, title, text string) error {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	tray, err := findTray(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	return n.send(ctx, tray, WebhookPayload{
		Title:      title,
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	})
}

// GetTrayAppConfigDir returns where the tray keeps its lockfile. The tray's
// settings.json may point it somewhere else with lockfile_dir.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayDir, "settings.json"))
	if err != nil {
		return trayDir, nil
	}
	var doc struct {
		Settings struct {
			LockfileDir string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if json.Unmarshal(data, &doc) == nil && doc.Settings.LockfileDir != "" {
		return doc.Settings.LockfileDir, nil
	}
	return trayDir, nil
}

// trayEndpoint is the parsed lockfile of a live tray process.
type trayEndpoint struct {
	port   int
	secret string
}

func (t trayEndpoint) url() string {
	return "http://127.0.0.1:" + strconv.Itoa(t.port)
}

func parseLockfile(content string) (port, pid int, secret string, err error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return 0, 0, "", errors.New("lockfile is malformed")
	}

	if strings.TrimSpace(parts[0]) == "" {
		return 0, 0, "", errors.New("port in lockfile is empty")
	}
	port, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, "", errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return 0, 0, "", fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}

	pid, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, "", errors.New("invalid process ID in lockfile")
	}

	secret = strings.TrimSpace(parts[2])
	if secret == "" {
		return 0, 0, "", errors.New("secret in lockfile is empty")
	}
	return port, pid, secret, nil
}

// findTray reads the lockfile and checks that its pid still belongs to the
// tray executable, so a stale lockfile cannot route the secret elsewhere.
func findTray(lockfilePath string) (trayEndpoint, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return trayEndpoint{}, ErrTrayNotRunning
	}

	port, pid, secret, err := parseLockfile(string(content))
	if err != nil {
		return trayEndpoint{}, err
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return trayEndpoint{}, ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayAppExecutable) {
		return trayEndpoint{}, fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayAppExecutable, process.Executable())
	}

	return trayEndpoint{port: port, secret: secret}, nil
}

func (n *Notifier) send(ctx context.Context, tray trayEndpoint, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tray.url(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(secretHeader, tray.secret)

	res, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
}
