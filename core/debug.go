package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// BootEvent captures one step of the boot sequence. The ring lives in
// RAM, so a debugger attached to a halted board can read the last steps.
type BootEvent struct {
	EventType uint8  // Event type code
	State     State  // Sequencer state when recorded
	Seq       uint16 // Monotonic event number within this boot
	Value     uint32 // Context-dependent value
}

// Event type codes
const (
	EvtStart          = 1 // Sequencer entered; value = magic
	EvtCause          = 2 // Reset cause read; value = 1 for hardware reset
	EvtCellRead       = 3 // Persistent cell read; value = contents
	EvtMagicSeen      = 4 // Double-tap confirmed, cell cleared
	EvtArmed          = 5 // Magic written; value = saved prior
	EvtRestored       = 6 // Prior written back; value = prior
	EvtPeriphReset    = 7 // Indicators returned to defaults
	EvtHandoff        = 8 // About to jump to the user program
	EvtIndicatorFault = 9 // Indicator driver returned an error; value = op
)

const (
	EventRingSize = 16 // Keep last 16 events
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Boot event ring buffer
	eventRing     [EventRingSize]BootEvent
	eventRingHead uint8
	eventSeq      uint16
)

// SetDebugWriter sets the platform-specific debug output function
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordEvent captures a boot event in the ring buffer and mirrors it to
// the debug writer when debug output is enabled.
func RecordEvent(eventType uint8, state State, value uint32) {
	idx := eventRingHead
	eventSeq++
	eventRing[idx] = BootEvent{
		EventType: eventType,
		State:     state,
		Seq:       eventSeq,
		Value:     value,
	}
	eventRingHead = (idx + 1) % EventRingSize

	if debugEnabled {
		DebugPrintln(formatEvent(&eventRing[idx]))
	}
}

// Events returns the recorded events from oldest to newest.
func Events() []BootEvent {
	out := make([]BootEvent, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		out = append(out, evt)
	}
	return out
}

// DumpEvents outputs the event ring through the debug writer, ignoring
// the enable flag.
func DumpEvents() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[BOOT] === Event Ring Dump ===")
	for _, evt := range Events() {
		debugPrintln(formatEvent(&evt))
	}
	debugPrintln("[BOOT] === End Dump ===")
}

// ClearEvents clears the event buffer
func ClearEvents() {
	for i := range eventRing {
		eventRing[i] = BootEvent{}
	}
	eventRingHead = 0
	eventSeq = 0
}

// EventName returns the short name of an event code
func EventName(eventType uint8) string {
	switch eventType {
	case EvtStart:
		return "START"
	case EvtCause:
		return "CAUSE"
	case EvtCellRead:
		return "CELL_READ"
	case EvtMagicSeen:
		return "MAGIC_SEEN"
	case EvtArmed:
		return "ARMED"
	case EvtRestored:
		return "RESTORED"
	case EvtPeriphReset:
		return "PERIPH_RESET"
	case EvtHandoff:
		return "HANDOFF"
	case EvtIndicatorFault:
		return "INDICATOR_FAULT!"
	default:
		return "UNKNOWN"
	}
}

func formatEvent(evt *BootEvent) string {
	return "[BOOT] #" + utoa(uint32(evt.Seq)) +
		" " + EventName(evt.EventType) +
		" state=" + evt.State.String() +
		" v=" + hex32(evt.Value)
}
