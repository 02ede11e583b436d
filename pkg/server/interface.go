/*
Package server implements msgpack IPC for spelling services.

The server reads a stream of msgpack encoded requests from stdin and writes
one msgpack response per request to stdout. Logs go to stderr so stdout only
ever carries protocol messages.

# IPC

Every request carries an ID that is echoed back, and an op:

	{"id": "r1", "op": "has", "w": "Walk"}
	{"id": "r2", "op": "suggest", "w": "talsk", "n": 5}
	{"id": "r3", "op": "complete", "w": "tal", "n": 10}
	{"id": "r4", "op": "info"}

Responses:

	{"id": "r1", "ok": true, "f": false}
	{"id": "r2", "s": [{"w": "talks", "c": 75}, {"w": "talk", "c": 96}], "n": 2, "t": 310}
	{"id": "r4", "words": 40123, "nodes": 9811}

Errors use the short form {"id", "e", "c"} where c follows HTTP status codes.

On start the server sends {"status": "ready"} once.

Suggestion fields left out of a request take the configured defaults: n
(number of results), cl (change limit), ic (ignore case), cm (compound
method: "none", "separate" or "join") and ties.
*/
package server

// Ops understood by the server.
const (
	OpHas      = "has"
	OpSuggest  = "suggest"
	OpComplete = "complete"
	OpInfo     = "info"
)

// Request is one client message. Pointer fields are optional.
type Request struct {
	ID             string  `msgpack:"id"`
	Op             string  `msgpack:"op"`
	Word           string  `msgpack:"w"`
	Limit          *int    `msgpack:"n,omitempty"`
	ChangeLimit    *int    `msgpack:"cl,omitempty"`
	IgnoreCase     *bool   `msgpack:"ic,omitempty"`
	CompoundMethod *string `msgpack:"cm,omitempty"`
	IncludeTies    *bool   `msgpack:"ties,omitempty"`
}

// ReadyMessage is sent once before the first request is read.
type ReadyMessage struct {
	Status string `msgpack:"status"`
}

// HasResponse answers OpHas.
type HasResponse struct {
	ID        string `msgpack:"id"`
	Found     bool   `msgpack:"ok"`
	Forbidden bool   `msgpack:"f"`
}

// Suggestion is one entry of a SuggestResponse. Cost is zero for completions.
type Suggestion struct {
	Word string `msgpack:"w"`
	Cost int    `msgpack:"c"`
}

// SuggestResponse answers OpSuggest and OpComplete.
type SuggestResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"n"`
	// TimeTaken is in microseconds.
	TimeTaken int64 `msgpack:"t"`
}

// InfoResponse answers OpInfo.
type InfoResponse struct {
	ID    string `msgpack:"id"`
	Words int    `msgpack:"words"`
	// Counted is set when Words came from a walk rather than the build.
	Counted bool `msgpack:"counted"`
	Nodes   int  `msgpack:"nodes"`
	// Legacy dictionaries have no compound, case or forbidden entries.
	Legacy bool           `msgpack:"legacy"`
	Cache  map[string]int `msgpack:"cache,omitempty"`
}

// ErrorResponse holds basic error information for any request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
