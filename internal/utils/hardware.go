package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"strings"
)

// TerminalID identifies the till this server runs on, derived from the first active
// network interface so it is stable across restarts, e.g. "POS-A1B2C3D4".
func TerminalID() string {
	interfaces, err := net.Interfaces()
	if err != nil {
		return "POS-UNKNOWN"
	}

	var macAddress string
	for _, i := range interfaces {
		// Find the first active physical network interface
		if i.Flags&net.FlagUp != 0 && len(i.HardwareAddr) > 0 {
			macAddress = i.HardwareAddr.String()
			break
		}
	}

	return terminalIDFrom(macAddress)
}

func terminalIDFrom(macAddress string) string {
	if macAddress == "" {
		return "POS-UNKNOWN"
	}

	// Hash the MAC address so the hardware address itself never ends up on receipts
	hash := sha256.Sum256([]byte(macAddress + "retail-edge-terminal"))
	return "POS-" + strings.ToUpper(hex.EncodeToString(hash[:])[:8])
}
