package gesture

import (
	"strconv"
	"strings"
	"time"
)

// Decoder turns raw getevent output lines into RawEvents. Malformed lines
// are skipped, never reported as errors; a capture stream is full of noise
// (sync markers from other devices, shell banners, partial lines).
type Decoder struct {
	now func() time.Time
}

func NewDecoder() *Decoder {
	return &Decoder{now: time.Now}
}

// Decode parses one line. Two layouts are accepted:
//
//	0003 0035 000007ff
//	/dev/input/event2: 0003 0035 000007ff
//
// An optional leading "[ 1234.567890]" timestamp prefix is discarded; the
// decoder stamps the event with its own clock instead. The second return is
// false when the line does not decode.
func (d *Decoder) Decode(line string) (RawEvent, bool) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "[") {
		end := strings.IndexByte(line, ']')
		if end < 0 {
			return RawEvent{}, false
		}
		line = strings.TrimSpace(line[end+1:])
	}

	fields := strings.Fields(line)
	if len(fields) < 3 {
		return RawEvent{}, false
	}
	// With a device-path prefix (or any extra leading tokens) the event
	// triple is always the last three fields.
	fields = fields[len(fields)-3:]

	evType, err := strconv.ParseUint(fields[0], 16, 16)
	if err != nil {
		return RawEvent{}, false
	}
	code, err := strconv.ParseUint(fields[1], 16, 16)
	if err != nil {
		return RawEvent{}, false
	}
	// Values are printed as unsigned hex words; ffffffff is how the kernel
	// spells -1 (tracking id release).
	value, err := strconv.ParseUint(fields[2], 16, 32)
	if err != nil {
		return RawEvent{}, false
	}

	return RawEvent{
		Type:  uint16(evType),
		Code:  uint16(code),
		Value: int32(value),
		Time:  d.now(),
	}, true
}
