// Package export publishes side assignments on the session bus so other
// processes (binding resolvers, overlays) can query which stick is which.
package export

import (
	"fmt"
	"log"

	"github.com/godbus/dbus/v5"

	"hosas/internal/side"
)

const (
	busName    = "io.hosas.Handedness"
	objectPath = "/io/hosas/Handedness"
	ifaceName  = "io.hosas.Handedness1"
)

// ConnectSessionBus is a hook for tests to override D-Bus connection behavior.
var ConnectSessionBus = dbus.ConnectSessionBus

// Service owns the bus connection and the exported object.
type Service struct {
	conn  *dbus.Conn
	store *side.Store
}

// Start connects to the session bus, claims the well-known name and
// exports the query surface.
func Start(store *side.Store) (*Service, error) {
	conn, err := ConnectSessionBus()
	if err != nil {
		return nil, err
	}

	reply, err := conn.RequestName(busName, dbus.NameFlagDoNotQueue)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		_ = conn.Close()
		return nil, fmt.Errorf("bus name %s already owned", busName)
	}

	srv := &Service{conn: conn, store: store}
	if err := conn.Export(srv, objectPath, ifaceName); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return srv, nil
}

// GetSide returns "left", "right" or "unassigned" for a stick identity.
func (s *Service) GetSide(id string) (string, *dbus.Error) {
	v, _ := s.store.Side(id)
	return v.String(), nil
}

// Sides returns every known assignment.
func (s *Service) Sides() (map[string]string, *dbus.Error) {
	out := make(map[string]string)
	for id, v := range s.store.Assignments() {
		out[id] = v.String()
	}
	return out, nil
}

// NotifySideChanged emits the SideChanged signal. Wire it into the side
// store's notifier.
func (s *Service) NotifySideChanged(id string, v side.Side) {
	err := s.conn.Emit(dbus.ObjectPath(objectPath), ifaceName+".SideChanged", id, v.String())
	if err != nil {
		log.Default().Println("Error emitting SideChanged:", err)
	}
}

// Close releases the bus name and connection.
func (s *Service) Close() {
	if _, err := s.conn.ReleaseName(busName); err != nil {
		log.Default().Println("Error releasing bus name:", err)
	}
	if err := s.conn.Close(); err != nil {
		log.Default().Println("Error closing D-Bus connection:", err)
	}
}
