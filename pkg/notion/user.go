package notion

type UserType string

const (
	UserPerson UserType = "person"
	UserBot    UserType = "bot"
)

type User struct {
	ID        string   `json:"id"`
	Type      UserType `json:"type,omitempty"`
	Name      string   `json:"name,omitempty"`
	AvatarURL *string  `json:"avatar_url,omitempty"`
	Person    *Person  `json:"person,omitempty"`
	Bot       *Bot     `json:"bot,omitempty"`
}

type Person struct {
	Email string `json:"email,omitempty"`
}

type Bot struct {
	Owner         *BotOwner `json:"owner,omitempty"`
	WorkspaceName string    `json:"workspace_name,omitempty"`
}

type BotOwner struct {
	Type      string `json:"type"`
	Workspace bool   `json:"workspace,omitempty"`
	User      *User  `json:"user,omitempty"`
}

func (*User) ObjectType() ObjectType { return ObjectUser }
func (*User) isObject()              {}

func (u User) MarshalJSON() ([]byte, error) {
	type alias User
	return marshalTagged(ObjectUser, alias(u))
}
