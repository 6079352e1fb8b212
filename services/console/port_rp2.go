//go:build rp2040

package console

import (
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// NewUARTPort opens UART0 on GP0/GP1 for the console.
func NewUARTPort(baud uint32) (Port, error) {
	u := uartx.UART0
	if err := u.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	}); err != nil {
		return nil, err
	}
	return u, nil
}
