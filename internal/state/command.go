package state

import (
	"net/http"

	"github.com/five82/skillshare/internal/talks"
)

// Command describes one network request produced by Reduce. Commands are
// data; the effects package performs them.
type Command interface {
	// Kind is a short stable label used in logs and metrics.
	Kind() string
	// Method and Path describe the request for logging.
	Method() string
	Path() string
}

// PutTalk is PUT /talks/{Title}.
type PutTalk struct {
	Title     string
	Presenter string
	Summary   string
}

// RemoveTalk is DELETE /talks/{Title}.
type RemoveTalk struct {
	Title string
}

// PostComment is POST /talks/{Talk}/comments.
type PostComment struct {
	Talk    string
	Author  string
	Message string
}

func (PutTalk) Kind() string     { return "put_talk" }
func (RemoveTalk) Kind() string  { return "delete_talk" }
func (PostComment) Kind() string { return "post_comment" }

func (PutTalk) Method() string     { return http.MethodPut }
func (RemoveTalk) Method() string  { return http.MethodDelete }
func (PostComment) Method() string { return http.MethodPost }

func (c PutTalk) Path() string     { return talks.TalkRef(c.Title).EscapedPath() }
func (c RemoveTalk) Path() string  { return talks.TalkRef(c.Title).EscapedPath() }
func (c PostComment) Path() string { return talks.TalkRef(c.Talk, "comments").EscapedPath() }
