package helpers

import (
	"fmt"

	"xui-manager/internal/constants"
	"xui-manager/internal/models"
)

// FormatGB renders a byte count as gigabytes for table columns
func FormatGB(bytes int64) string {
	return fmt.Sprintf("%.2f GB", float64(bytes)/constants.BytesInGB)
}

// CalculateInboundTraffic calculates total client traffic for an inbound
func CalculateInboundTraffic(clientStats []models.ClientStat) (downBytes int64, upBytes int64) {
	for _, client := range clientStats {
		downBytes += client.Down
		upBytes += client.Up
	}
	return
}
