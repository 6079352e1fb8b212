package console

import (
	"strings"

	"github.com/google/shlex"

	"blinkcode-go/errcode"
	"blinkcode-go/types"
	"blinkcode-go/x/strconvx"
)

const helpText = `commands:
  blink <led> text "<msg>" [unit_ms] [once]
  blink <led> code "<.- ...>" [unit_ms] [once]
  blink <led> steps <ms> <ms>... [once]
  stop <led>
  set <led> on|off
  toggle <led>
  status <led>
  help`

// Command is one parsed console line. Verb is a HAL control verb, or
// "status"/"help" which the console answers itself.
type Command struct {
	Verb    string
	LED     string
	Payload any
}

func usage(msg string) error {
	return &errcode.E{C: errcode.InvalidCommand, Op: "console", Msg: msg}
}

// Parse tokenises a line with shell quoting rules and maps it to a Command.
// An empty line gives a zero Command and no error.
func Parse(line string) (Command, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return Command{}, usage("unbalanced quotes")
	}
	if len(args) == 0 {
		return Command{}, nil
	}
	verb := strings.ToLower(args[0])
	args = args[1:]

	switch verb {
	case "help", "?":
		return Command{Verb: "help"}, nil
	case "stop", "toggle", "status":
		if len(args) != 1 {
			return Command{}, usage(verb + " <led>")
		}
		return Command{Verb: verb, LED: args[0]}, nil
	case "set":
		if len(args) != 2 {
			return Command{}, usage("set <led> on|off")
		}
		switch strings.ToLower(args[1]) {
		case "on", "1":
			return Command{Verb: "set", LED: args[0], Payload: types.LEDSet{On: true}}, nil
		case "off", "0":
			return Command{Verb: "set", LED: args[0], Payload: types.LEDSet{On: false}}, nil
		}
		return Command{}, usage("set <led> on|off")
	case "blink":
		return parseBlink(args)
	}
	return Command{}, usage("unknown command " + verb + "; try help")
}

func parseBlink(args []string) (Command, error) {
	if len(args) < 3 {
		return Command{}, usage("blink <led> text|code|steps ...")
	}
	led, enc, rest := args[0], strings.ToLower(args[1]), args[2:]

	req := types.LEDBlink{Encoding: enc}
	if n := len(rest); n > 0 && strings.EqualFold(rest[n-1], "once") {
		req.Once = true
		rest = rest[:n-1]
	}

	switch enc {
	case types.EncodingText, types.EncodingCode:
		if len(rest) < 1 || len(rest) > 2 {
			return Command{}, usage("blink <led> " + enc + " <msg> [unit_ms] [once]")
		}
		if enc == types.EncodingText {
			req.Text = rest[0]
		} else {
			req.Code = rest[0]
		}
		if len(rest) == 2 {
			u, err := strconvx.ParseUint32(rest[1])
			if err != nil || u == 0 {
				return Command{}, usage("unit_ms must be a positive integer")
			}
			req.UnitMs = u
		}
	case types.EncodingSteps:
		if len(rest) == 0 {
			return Command{}, usage("blink <led> steps <ms> <ms>... [once]")
		}
		req.Durations = make([]uint32, 0, len(rest))
		for _, a := range rest {
			d, err := strconvx.ParseUint32(a)
			if err != nil {
				return Command{}, usage("step " + a + " is not a duration in ms")
			}
			req.Durations = append(req.Durations, d)
		}
	default:
		return Command{}, usage("encoding must be text, code or steps")
	}
	return Command{Verb: "blink", LED: led, Payload: req}, nil
}
