package main

// courseMessage is sent once per subscription; the course never changes
// after generation.
type courseMessage struct {
	Ver    int     `json:"ver"`
	Type   string  `json:"type"`
	Course *Course `json:"course"`
}

// stateMessage is the per-tick snapshot the renderer consumes. Effect
// triggers are fire-and-forget; they appear on exactly one message.
type stateMessage struct {
	Ver            int             `json:"ver"`
	Type           string          `json:"type"`
	Tick           uint64          `json:"t"`
	Clock          float64         `json:"clock"`
	Marbles        []Marble        `json:"marbles"`
	EffectTriggers []EffectTrigger `json:"effectTriggers,omitempty"`
	Rankings       []RankingEntry  `json:"rankings"`
	Complete       bool            `json:"complete,omitempty"`
	ServerTime     int64           `json:"serverTime"`
}
