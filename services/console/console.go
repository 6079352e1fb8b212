// Package console serves a line-oriented command prompt on a Port and turns
// commands into HAL control requests.
package console

import (
	"context"
	"time"

	"blinkcode-go/bus"
	"blinkcode-go/errcode"
	"blinkcode-go/services/hal"
	"blinkcode-go/types"
	"blinkcode-go/x/strconvx"
)

const (
	maxLine        = 128
	requestTimeout = time.Second
	statusWait     = 100 * time.Millisecond

	prompt = "> "
)

type Service struct {
	conn *bus.Connection
	port Port
}

func New(conn *bus.Connection, port Port) *Service {
	return &Service{conn: conn, port: port}
}

// Run reads lines until ctx ends or the port fails. LF ends a line; CR is
// ignored; over-long lines are truncated.
func (s *Service) Run(ctx context.Context) error {
	s.write("blinkcode console, type help\r\n" + prompt)
	buf := make([]byte, 64)
	line := make([]byte, 0, maxLine)
	for {
		n, err := s.port.RecvSomeContext(ctx, buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			println("[console] port read failed:", err.Error())
			return err
		}
		for _, b := range buf[:n] {
			switch b {
			case '\n':
				out := s.Exec(ctx, string(line))
				line = line[:0]
				if out != "" {
					s.write(out + "\r\n")
				}
				s.write(prompt)
			case '\r':
			case 0x08, 0x7f: // backspace, delete
				if len(line) > 0 {
					line = line[:len(line)-1]
				}
			default:
				if len(line) < maxLine {
					line = append(line, b)
				}
			}
		}
	}
}

func (s *Service) write(str string) {
	if _, err := s.port.Write([]byte(str)); err != nil {
		println("[console] write failed:", err.Error())
	}
}

// Exec runs one command line and returns the text to show.
func (s *Service) Exec(ctx context.Context, line string) string {
	cmd, err := Parse(line)
	if err != nil {
		return "error: " + err.Error()
	}
	switch cmd.Verb {
	case "":
		return ""
	case "help":
		return helpText
	case "status":
		return s.status(cmd.LED)
	}

	rctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	reply, err := s.conn.RequestWait(rctx, s.conn.NewMessage(hal.Control(cmd.LED, cmd.Verb), cmd.Payload, false))
	if err != nil {
		return "error: " + string(errcode.Timeout)
	}
	switch r := reply.Payload.(type) {
	case types.OKReply:
		return "ok"
	case types.ErrorReply:
		return "error: " + r.Error
	}
	return "error: " + string(errcode.InvalidPayload)
}

// status reports the retained value of an LED.
func (s *Service) status(led string) string {
	sub := s.conn.Subscribe(hal.Value(led))
	defer s.conn.Unsubscribe(sub)
	select {
	case m := <-sub.Channel():
		v, ok := m.Payload.(types.LEDValue)
		if !ok {
			return "error: " + string(errcode.InvalidPayload)
		}
		return FormatValue(led, v)
	case <-time.After(statusWait):
		return "error: " + string(errcode.UnknownCapability)
	}
}

// FormatValue renders an LED value as one status line.
func FormatValue(led string, v types.LEDValue) string {
	out := led + ": "
	if v.On {
		out += "on"
	} else {
		out += "off"
	}
	if v.Blinking {
		out += ", blinking step " + strconvx.Itoa(v.Cursor+1) + "/" + strconvx.Itoa(v.Steps)
	} else if v.Steps > 0 {
		out += ", pattern finished"
	}
	return out
}
