package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: board name (platform.Board.Name, placed in ctx under CtxDeviceKey)
// Val: raw JSON for that board
// -----------------------------------------------------------------------------

const cfgPico = `{
  "hal": {
    "devices": [
      {"id": "led", "type": "gpio_led", "params": {"pin": 25, "name": "user"}},
      {"id": "button", "type": "gpio_button", "params": {"pin": 15, "pull": "up", "invert": true, "debounce_ms": 30, "name": "user"}},
      {"id": "sr04", "type": "hcsr04", "params": {"trigger": 2, "echo": 3, "timeout_us": 38000, "name": "front"}}
    ]
  },
  "blink": {"period_ms": 500, "periods_ms": [2000, 1500, 1000, 500]},
  "buttonled": {"report_ms": 2000},
  "ranger": {"interval_ms": 100, "alpha": 0.3, "max_jump_mm": 500}
}`

const cfgNucleoF446RE = `{
  "hal": {
    "devices": [
      {"id": "led", "type": "gpio_led", "params": {"pin": 5, "name": "user"}},
      {"id": "button", "type": "gpio_button", "params": {"pin": 45, "invert": true, "debounce_ms": 30, "name": "user"}},
      {"id": "sr04", "type": "hcsr04", "params": {"trigger": 34, "echo": 35, "timeout_us": 38000, "name": "front"}}
    ]
  },
  "blink": {"period_ms": 2000, "periods_ms": [2000, 1500, 1000, 500]},
  "buttonled": {"report_ms": 2000},
  "ranger": {"interval_ms": 100, "alpha": 0.3, "max_jump_mm": 500}
}`

const cfgSTM32F4Disco = `{
  "hal": {
    "devices": [
      {"id": "led", "type": "gpio_led", "params": {"pin": 60, "name": "user"}},
      {"id": "button", "type": "gpio_button", "params": {"pin": 0, "pull": "down", "debounce_ms": 30, "name": "user"}},
      {"id": "sr04", "type": "hcsr04", "params": {"trigger": 34, "echo": 35, "timeout_us": 38000, "name": "front"}}
    ]
  },
  "blink": {"period_ms": 500, "periods_ms": [2000, 1500, 1000, 500]},
  "buttonled": {"report_ms": 2000},
  "ranger": {"interval_ms": 100, "alpha": 0.3, "max_jump_mm": 500}
}`

var embeddedConfigs = map[string][]byte{
	"pico":          []byte(cfgPico),
	"nucleo_f446re": []byte(cfgNucleoF446RE),
	"stm32f4disco":  []byte(cfgSTM32F4Disco),
	"host":          []byte(cfgPico),
}
