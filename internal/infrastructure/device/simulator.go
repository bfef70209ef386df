// Package device simulates the smart-home device fleet that approved
// commands execute against.
package device

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/iotguard/iotguard/internal/ports"
)

// Simulator tracks an in-memory device fleet and mutates it in response to
// the supported commands. Unknown commands never change state.
type Simulator struct {
	users ports.UserStore

	mu     sync.Mutex
	states map[string]string
}

// NewSimulator returns the fleet in its initial state: door locked, camera
// on, speakers off.
func NewSimulator(users ports.UserStore) *Simulator {
	return &Simulator{
		users: users,
		states: map[string]string{
			"door1":    "locked",
			"camera1":  "on",
			"speakers": "off",
		},
	}
}

// Devices lists the device names in stable order.
func (s *Simulator) Devices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.states))
	for name := range s.states {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Status renders the fleet state as "name - state" pairs.
func (s *Simulator) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.states))
	for name := range s.states {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s - %s", name, s.states[name]))
	}
	return strings.Join(parts, ", ")
}

// Execute runs the command against the fleet. The PIN travels with the call
// for parity with the execution surface but permissions are keyed by user.
// Targeting a device the user has no permission for, or one that does not
// exist, returns the denial message without touching state.
func (s *Simulator) Execute(command, userID, _, device string) (string, error) {
	if device != "" {
		perms, err := s.users.Permissions(userID)
		if err != nil {
			return "", err
		}
		if !contains(perms, device) {
			return fmt.Sprintf("Permission denied: You do not have access to device %s", device), nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if device != "" {
		if _, ok := s.states[device]; !ok {
			return fmt.Sprintf("Device %s not found", device), nil
		}
	}

	lower := strings.ToLower(command)
	switch {
	case strings.Contains(lower, "unlock door") && targets(device, "door1"):
		s.states["door1"] = "unlocked"
		return "Door unlocked successfully", nil
	case strings.Contains(lower, "lock door") && targets(device, "door1"):
		s.states["door1"] = "locked"
		return "Door locked successfully", nil
	case strings.Contains(lower, "play music") && targets(device, "speakers"):
		s.states["speakers"] = "on"
		return "Music playing on speakers", nil
	case strings.Contains(lower, "stop music") && targets(device, "speakers"):
		s.states["speakers"] = "off"
		return "Music stopped on speakers", nil
	default:
		return "Unsupported command", nil
	}
}

func targets(device, want string) bool {
	return device == "" || device == want
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

var _ ports.DeviceController = (*Simulator)(nil)
