package dom

// DataTransfer carries the drag session's transfer effect fields, mirroring
// the platform drag event surface the engine writes to.
type DataTransfer struct {
	// DropEffect is the effect requested for the current target.
	DropEffect string

	// EffectAllowed is the effect the source permits.
	EffectAllowed string

	data map[string]string
}

// NewDataTransfer creates an empty transfer with unset effects.
func NewDataTransfer() *DataTransfer {
	return &DataTransfer{
		DropEffect:    "none",
		EffectAllowed: "uninitialized",
	}
}

// SetData stores a typed payload string.
func (t *DataTransfer) SetData(format, value string) {
	if t.data == nil {
		t.data = make(map[string]string)
	}
	t.data[format] = value
}

// Data returns the payload for a format, or "" if absent.
func (t *DataTransfer) Data(format string) string {
	return t.data[format]
}
