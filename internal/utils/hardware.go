package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"strings"
)

// GetDeviceID reads the physical MAC address of the machine and hashes
// it into a clean terminal ID like "TILL-A1B2C3D4". It shows up on the
// system status endpoint so support can tell tills apart.
func GetDeviceID() string {
	interfaces, err := net.Interfaces()
	if err != nil {
		return "UNKNOWN-DEVICE"
	}

	var macAddress string
	for _, i := range interfaces {
		// First active physical interface wins
		if i.Flags&net.FlagUp != 0 && len(i.HardwareAddr) > 0 {
			macAddress = i.HardwareAddr.String()
			break
		}
	}

	if macAddress == "" {
		return "UNKNOWN-DEVICE"
	}

	hash := sha256.Sum256([]byte(macAddress + "DOKON-POS-TERMINAL"))
	hashString := hex.EncodeToString(hash[:])

	return "TILL-" + strings.ToUpper(hashString[:8])
}
