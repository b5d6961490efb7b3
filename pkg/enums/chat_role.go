package enums

import "fmt"

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// String implements fmt.Stringer.
func (r ChatRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known ChatRole.
func (r ChatRole) IsValid() bool {
	return r == ChatRoleUser || r == ChatRoleAssistant
}

// ParseChatRole converts raw input into a ChatRole.
func ParseChatRole(value string) (ChatRole, error) {
	switch ChatRole(value) {
	case ChatRoleUser:
		return ChatRoleUser, nil
	case ChatRoleAssistant:
		return ChatRoleAssistant, nil
	}
	return "", fmt.Errorf("invalid chat role %q", value)
}
