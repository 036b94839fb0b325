package cloud

import (
	"strconv"
	"strings"
)

const (
	DisplayPin = 14

	statusOnline  = "online"
	statusOffline = "offline"
)

// Topics builds the broker topics under a single prefix such as "home".
type Topics struct {
	Prefix string
}

func (t Topics) Command() string    { return t.Prefix + "/vpin/+/set" }
func (t Topics) Pin(pin int) string { return t.Prefix + "/vpin/" + strconv.Itoa(pin) }
func (t Topics) Sync() string       { return t.Prefix + "/sync" }
func (t Topics) Status() string     { return t.Prefix + "/status" }

// PinFromTopic extracts the virtual pin from "<prefix>/vpin/{n}/set".
func (t Topics) PinFromTopic(topic string) (int, bool) {
	rest, ok := strings.CutPrefix(topic, t.Prefix+"/")
	if !ok {
		return 0, false
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[0] != "vpin" || parts[2] != "set" {
		return 0, false
	}
	pin, err := strconv.Atoi(parts[1])
	if err != nil || pin < 0 {
		return 0, false
	}
	return pin, true
}

// SyncPayload renders a resync request, "0,1,2".
func SyncPayload(pins []int) string {
	parts := make([]string, len(pins))
	for i, p := range pins {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}
