package schema

import (
	"encoding/json"
	"time"
)

const PasswordChangedRoutingKey = "password_changed"

type PasswordChanged struct {
	Email     string    `json:"email"`
	ChangedAt time.Time `json:"changed_at"`
}

func (p *PasswordChanged) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

func (p *PasswordChanged) Unmarshal(data []byte) error {
	return json.Unmarshal(data, p)
}
