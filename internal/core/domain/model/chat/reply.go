package chat

// ReplyKind discriminates the outbound reply union.
type ReplyKind int

const (
	// ReplyText is a plain text message.
	ReplyText ReplyKind = iota

	// ReplyChoice is a text body with tappable options.
	ReplyChoice

	// ReplyCatalog is the interactive catalog prompt.
	ReplyCatalog
)

// Option is one tappable choice in a ReplyChoice.
type Option struct {
	ID    string
	Title string
}

// Reply is a typed outbound message. The conversation machine produces
// replies; the notification dispatcher renders them through the gateway.
type Reply struct {
	Kind    ReplyKind
	Body    string
	Options []Option
}

// TextReply builds a plain text reply.
func TextReply(body string) Reply {
	return Reply{Kind: ReplyText, Body: body}
}

// ChoiceReply builds a reply with tappable options.
func ChoiceReply(body string, options ...Option) Reply {
	return Reply{Kind: ReplyChoice, Body: body, Options: options}
}

// CatalogReply builds the catalog prompt reply.
func CatalogReply() Reply {
	return Reply{Kind: ReplyCatalog}
}
