package utils

import (
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/braunma/rackfloor/pkg/models"
)

// statusColors maps equipment status to display color (hex without #)
var statusColors = map[models.EquipmentStatus]string{
	models.StatusOnline:   "4caf50",
	models.StatusWarning:  "ffeb3b",
	models.StatusCritical: "f44336",
	models.StatusOffline:  "9e9e9e",
}

// NormalizeColor converts various color formats to 6-char lowercase hex without #
func NormalizeColor(input string) string {
	if input == "" {
		return ""
	}

	input = strings.TrimPrefix(input, "#")
	input = strings.ToLower(input)

	// Expand shorthand (e.g., "f00" -> "ff0000")
	if len(input) == 3 {
		return string([]byte{
			input[0], input[0],
			input[1], input[1],
			input[2], input[2],
		})
	}

	if len(input) == 6 {
		return input
	}

	return ""
}

// StatusColor returns the display color for an equipment status
func StatusColor(status models.EquipmentStatus) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return statusColors[models.StatusOffline]
}

// ColorizeStatus renders text in the display color of status
func ColorizeStatus(status models.EquipmentStatus, text string) string {
	hex := StatusColor(status)
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return text
	}
	return color.RGB(int(v>>16&0xff), int(v>>8&0xff), int(v&0xff)).Sprint(text)
}
