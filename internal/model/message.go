// Package model defines the data shapes exchanged with clients
package model

// Delivery statuses for chat messages. Transitions only ever move forward,
// a delivered message never goes back to sent.
const (
	StatusSent      = "sent"
	StatusDelivered = "delivered"
	StatusRead      = "read"
)

var statusRank = map[string]int{
	StatusSent:      0,
	StatusDelivered: 1,
	StatusRead:      2,
}

// Message is a single chat message as relayed between the two phone panes.
// Type is either "text" or "file"; the file-only fields stay empty for text
// messages. Messages live only in connected clients, the server never stores
// them past the relay.
type Message struct {
	Room    string `json:"room"`
	Type    string `json:"type"`
	Content string `json:"content"`

	FileName  string `json:"fileName,omitempty"`
	LocalPath string `json:"localPath,omitempty"`
	MimeType  string `json:"mimeType,omitempty"`
	Converted bool   `json:"converted,omitempty"`
	DriveLink string `json:"driveLink,omitempty"`

	Time     string `json:"time"`
	SenderID string `json:"senderId"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

const (
	MessageText = "text"
	MessageFile = "file"
)

// Advance moves the delivery status forward to next. Statuses are monotonic
// so a lower-ranked next is ignored.
func (m *Message) Advance(next string) {
	if statusRank[next] > statusRank[m.Status] {
		m.Status = next
	}
}

// Typing is the payload of a typing indicator. Receivers expire it locally,
// the server only fans it out.
type Typing struct {
	Room   string `json:"room"`
	UserID string `json:"userId"`
}
