package live

// MessageType identifies a live reload message
type MessageType string

const (
	// MessageHello is sent once when a browser connects, carrying its client id
	MessageHello MessageType = "HELLO"
	// MessageReload asks browsers to reload the page
	MessageReload MessageType = "RELOAD"
	// MessageError reports a failed rebuild
	MessageError MessageType = "ERROR"
)

// Message is the JSON frame exchanged with browsers
type Message struct {
	Type  MessageType `json:"type"`
	ID    string      `json:"id,omitempty"`
	Files []string    `json:"files,omitempty"`
	Error string      `json:"error,omitempty"`
}
