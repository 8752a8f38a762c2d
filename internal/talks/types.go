package talks

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Talk mirrors a single entry of the server's talk list.
type Talk struct {
	Title     string    `json:"title"`
	Presenter string    `json:"presenter"`
	Summary   string    `json:"summary"`
	Comments  []Comment `json:"comments"`
}

// Comment is an append-only remark attached to a talk.
type Comment struct {
	Author  string `json:"author"`
	Message string `json:"message"`
}

// talkBody is the PUT /talks/{title} payload.
type talkBody struct {
	Presenter string `json:"presenter"`
	Summary   string `json:"summary"`
}

// commentBody is the POST /talks/{title}/comments payload.
type commentBody struct {
	Author  string `json:"author"`
	Message string `json:"message"`
}

// listEnvelope is the object form of GET /talks.
type listEnvelope struct {
	Talks []Talk `json:"talks"`
}

// DecodeTalks parses a GET /talks body. Servers send either a bare array or
// an object with a "talks" field; both are accepted.
func DecodeTalks(data []byte) ([]Talk, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty body")
	}
	if trimmed[0] == '[' {
		var list []Talk
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var env listEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	if env.Talks == nil {
		return []Talk{}, nil
	}
	return env.Talks, nil
}

// Find returns the talk with the given title.
func Find(list []Talk, title string) (Talk, bool) {
	for _, t := range list {
		if t.Title == title {
			return t, true
		}
	}
	return Talk{}, false
}
