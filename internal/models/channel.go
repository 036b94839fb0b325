package models

// Channel is one relay output addressed by its logical index.
type Channel struct {
	Index int    `json:"index"` // 0..7, the cloud's virtual pin
	Line  int    `json:"line"`  // GPIO number driving the relay module
	Label string `json:"label"`
	On    bool   `json:"on"` // last commanded state, not the electrical level
}
