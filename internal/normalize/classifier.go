package normalize

import "strings"

// Category labels assigned by Classify
const (
	CategoryPMIC      = "PMIC"
	CategorySensor    = "Sensor"
	CategoryMemory    = "Memory"
	CategoryStorage   = "Storage"
	CategoryRF        = "RF"
	CategoryMCU       = "MCU"
	CategorySoC       = "SoC"
	CategoryComponent = "Component"
)

type categoryRule struct {
	label    string
	keywords []string
}

// categoryRules are checked in order and the first hit wins. Keyword sets
// overlap (a "flash storage" part hits both Memory and Storage), so the
// order is part of the classification.
var categoryRules = []categoryRule{
	{CategoryPMIC, []string{"pmic", "regulator", "buck", "boost", "ldo", "power management"}},
	{CategorySensor, []string{"sensor", "imu", "accelerometer", "gyroscope", "camera", "lidar"}},
	{CategoryMemory, []string{"lpddr", "ddr", "sdram", "dram", "flash", "memory", "ram"}},
	{CategoryStorage, []string{"nvme", "emmc", "nand", "ssd", "storage"}},
	{CategoryRF, []string{"transceiver", "rf", "wifi", "bluetooth", "lte", "5g", "radio"}},
	{CategoryMCU, []string{"mcu", "microcontroller", "stm32", "rp2040", "esp32", "atmega"}},
	{CategorySoC, []string{"soc", "processor", "cpu", "jetson", "snapdragon"}},
}

// Classify maps a part number and description to a coarse category by
// case-insensitive substring match. Parts matching no rule are "Component".
func Classify(mpn, description string) string {
	haystack := strings.ToLower(mpn + " " + description)

	for _, rule := range categoryRules {
		if containsAny(haystack, rule.keywords) {
			return rule.label
		}
	}
	return CategoryComponent
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
