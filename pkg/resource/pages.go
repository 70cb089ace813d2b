package resource

import "strings"

// ProtocolErrorPage is shown for addresses no source can serve.
const ProtocolErrorPage = "<h1>Protocol Error</h1><p>Only .hero domains are supported. Try <b>localhost.hero:8080</b></p>"

var stripTags = strings.NewReplacer("<", "", ">", "")

// ErrorPage wraps a fetch failure into a page. Angle brackets are dropped from
// the message so it cannot open blocks of its own.
func ErrorPage(err error) string {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return "<h1>Connection Error</h1><p>ERROR: " + stripTags.Replace(msg) + "</p>"
}
