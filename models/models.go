package models

// Sample is one image/label pair reduced to the fields written to a record.
type Sample struct {
	Height   int64
	Width    int64
	ImageRaw []byte
	Label    int64
}
